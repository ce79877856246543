package schema

import (
	"go.uber.org/zap"

	"db-blueprint/internal/naming"
)

// Comment given to every natural language column.
const languageComment = "Lang"

// SynthesisKind identifies what a SynthesisRequest asks the builder for.
type SynthesisKind int

const (
	JoinTable SynthesisKind = iota
	LanguageTables
)

func (k SynthesisKind) String() string {
	if k == LanguageTables {
		return "language_tables"
	}
	return "join_table"
}

// SynthesisRequest is a table the classifier wants the builder to create in
// addition to the base table.
type SynthesisRequest struct {
	Kind SynthesisKind

	// Parent is the base table name for both kinds.
	Parent string

	// JoinTable requests.
	Child       string
	Attribute   string
	Cardinality Cardinality

	// LanguageTables requests.
	Locales []string
	Fields  []Field
}

// Classification partitions one entity's fields.
type Classification struct {
	Table           string
	Valid           []Field
	NaturalLanguage []Field
	Invalid         []Field
	ForeignKeys     []string
	Requests        []SynthesisRequest
	Diagnostics     []error
}

// Classifier turns raw field specs into columns, foreign keys and synthesis
// requests. It never writes to the registry.
type Classifier struct {
	resolver  *Resolver
	inflector *naming.Inflector
	policy    CardinalityPolicy
	logger    *zap.Logger
}

func NewClassifier(resolver *Resolver, inflector *naming.Inflector, policy CardinalityPolicy, logger *zap.Logger) *Classifier {
	if inflector == nil {
		inflector = naming.Default()
	}
	if policy == nil {
		policy = PluralNamePolicy{Inflector: inflector}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		resolver:  resolver,
		inflector: inflector,
		policy:    policy,
		logger:    logger,
	}
}

// Classify processes fields in order for the table named tableName. Join and
// language tables are only requested when allowSynthesis is set.
func (c *Classifier) Classify(tableName string, fields []FieldSpec, allowSynthesis bool, locales []string) *Classification {
	result := &Classification{Table: tableName}

	columns := make(map[string]bool)
	languageColumns := map[string]bool{"id": true, "parent_id": true}
	joins := make(map[string]bool)

	for _, spec := range fields {
		name := naming.Snake(spec.Name)
		log := c.logger.With(zap.String("table", tableName), zap.String("field", name), zap.String("token", spec.Token))

		outcome := c.resolver.Resolve(spec.Token)
		switch outcome.Kind {
		case DirectMatch:
			if outcome.Canonical == TextType {
				if languageColumns[name] {
					result.Diagnostics = append(result.Diagnostics, &DuplicateFieldError{Table: tableName, Field: name})
					continue
				}
				languageColumns[name] = true
				result.NaturalLanguage = append(result.NaturalLanguage, Field{
					Name:     name,
					Type:     outcome.Canonical,
					Comment:  languageComment,
					Nullable: true,
				})
				log.Debug("natural language field deferred to language tables")
				continue
			}

			if columns[name] {
				result.Diagnostics = append(result.Diagnostics, &DuplicateFieldError{Table: tableName, Field: name})
				continue
			}
			columns[name] = true
			result.Valid = append(result.Valid, Field{
				Name:    name,
				Type:    outcome.Canonical,
				Comment: naming.Title(naming.Sentence(name)),
			})
			log.Debug("matched primitive type", zap.String("type", outcome.Canonical))

		case ThingMatch:
			child := c.inflector.TableName(outcome.Entity)

			if c.policy.Infer(name) == OneToMany {
				if allowSynthesis && child != tableName && !joins[name] {
					joins[name] = true
					result.Requests = append(result.Requests, SynthesisRequest{
						Kind:        JoinTable,
						Parent:      tableName,
						Child:       child,
						Attribute:   name,
						Cardinality: OneToMany,
					})
					log.Debug("collection of things, join table requested", zap.String("child", child))
				}
				continue
			}

			column := name + "_id"
			if columns[column] {
				result.Diagnostics = append(result.Diagnostics, &DuplicateFieldError{Table: tableName, Field: column})
				continue
			}
			columns[column] = true
			result.Valid = append(result.Valid, Field{
				Name:        column,
				Type:        "bigInteger",
				Comment:     naming.Title(outcome.Entity) + " ID",
				ParentTable: child,
			})
			result.ForeignKeys = appendUnique(result.ForeignKeys, child)
			log.Debug("reference to thing, foreign key added", zap.String("parent_table", child))

		default:
			result.Invalid = append(result.Invalid, Field{
				Name:    spec.Token,
				Type:    spec.Token,
				Comment: naming.Title(naming.Sentence(name)),
			})
			result.Diagnostics = append(result.Diagnostics, &UnrecognizedFieldError{Table: tableName, Field: name, Token: spec.Token})
			log.Debug("no matching type or thing")
		}
	}

	if allowSynthesis && len(result.NaturalLanguage) > 0 {
		result.Requests = append(result.Requests, SynthesisRequest{
			Kind:    LanguageTables,
			Parent:  tableName,
			Locales: append([]string(nil), locales...),
			Fields:  append([]Field(nil), result.NaturalLanguage...),
		})
	}

	return result
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
