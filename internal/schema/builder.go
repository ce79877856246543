package schema

import (
	"fmt"

	"go.uber.org/zap"

	"db-blueprint/internal/naming"
)

// Builder turns classifications into table definitions and is the only
// writer of the Registry.
type Builder struct {
	registry *Registry
	logger   *zap.Logger
}

func NewBuilder(registry *Registry, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{registry: registry, logger: logger}
}

// CommitResult lists what a Commit registered and what it skipped because a
// table of the same name already existed.
type CommitResult struct {
	Registered []string
	Duplicates []string
}

// BaseTable builds the entity's own table from its classification.
func (b *Builder) BaseTable(c *Classification) *Table {
	return &Table{
		Name:        c.Table,
		Fields:      append([]Field(nil), c.Valid...),
		ForeignKeys: append([]string(nil), c.ForeignKeys...),
	}
}

// Intermediate builds the join table for parent.attribute pointing at child.
// Both ends are plain foreign key columns; ForeignKeys stays empty.
func (b *Builder) Intermediate(parent, child, attribute string, cardinality Cardinality) *Table {
	b.logger.Debug("building join table",
		zap.String("parent", parent),
		zap.String("child", child),
		zap.String("cardinality", cardinality.String()),
	)
	return &Table{
		Name: parent + "_" + attribute,
		Fields: []Field{
			primaryKey(),
			referenceField(parent+"_id", parent),
			referenceField(child+"_id", child),
		},
	}
}

// LanguageTables builds one table per locale, in locale order, each holding
// its own copy of the natural language fields.
func (b *Builder) LanguageTables(locales []string, parent string, fields []Field) []*Table {
	tables := make([]*Table, 0, len(locales))
	for _, locale := range locales {
		columns := make([]Field, 0, len(fields)+2)
		columns = append(columns, primaryKey(), referenceField("parent_id", parent))
		columns = append(columns, fields...)
		tables = append(tables, &Table{
			Name:   parent + "_" + locale,
			Fields: columns,
		})
	}
	return tables
}

// Synthesize executes the classifier's requests. Tables with the same name
// are produced once.
func (b *Builder) Synthesize(requests []SynthesisRequest) []*Table {
	var out []*Table
	seen := make(map[string]bool)
	add := func(t *Table) {
		if seen[t.Name] {
			return
		}
		seen[t.Name] = true
		out = append(out, t)
	}

	for _, req := range requests {
		switch req.Kind {
		case JoinTable:
			add(b.Intermediate(req.Parent, req.Child, req.Attribute, req.Cardinality))
		case LanguageTables:
			for _, t := range b.LanguageTables(req.Locales, req.Parent, req.Fields) {
				add(t)
			}
		}
	}
	return out
}

// Commit registers base followed by synthesized. A base table that already
// exists fails the whole commit and nothing is registered; synthesized tables
// that already exist are skipped.
func (b *Builder) Commit(base *Table, synthesized []*Table) (*CommitResult, error) {
	if base != nil && b.registry.Has(base.Name) {
		return nil, &DuplicateTableError{Table: base.Name}
	}

	result := &CommitResult{}
	if base != nil {
		if err := b.registry.add(base); err != nil {
			return nil, err
		}
		result.Registered = append(result.Registered, base.Name)
	}

	for _, t := range synthesized {
		if err := b.registry.add(t); err != nil {
			b.logger.Debug("table already registered, skipping", zap.String("table", t.Name))
			result.Duplicates = append(result.Duplicates, t.Name)
			continue
		}
		result.Registered = append(result.Registered, t.Name)
	}
	return result, nil
}

// Register adds a single synthesized table, ignoring duplicates. It reports
// whether the table was added.
func (b *Builder) Register(t *Table) bool {
	res, err := b.Commit(nil, []*Table{t})
	return err == nil && len(res.Registered) == 1
}

func primaryKey() Field {
	return Field{Name: "id", Type: "bigIncrements", Comment: "Primary Key"}
}

func referenceField(name, parent string) Field {
	return Field{
		Name:        name,
		Type:        "bigInteger",
		Comment:     fmt.Sprintf("%s ID", naming.Title(naming.Humanize(parent))),
		ParentTable: parent,
	}
}
