package schema

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"db-blueprint/internal/naming"
)

// Options configures a Pipeline.
type Options struct {
	Vocabulary *Vocabulary
	Catalog    *Catalog
	Inflector  *naming.Inflector
	Policy     CardinalityPolicy

	// AllowSynthesis enables join and language table synthesis.
	AllowSynthesis bool
	// Locales fans natural language fields out into one table per locale.
	Locales []string
	// ExcludeTables lists table names whose entities are skipped.
	ExcludeTables []string
}

// Pipeline owns the state of one synthesis run: the registry and the
// components feeding it. Entities are processed one at a time.
type Pipeline struct {
	opts       Options
	inflector  *naming.Inflector
	classifier *Classifier
	builder    *Builder
	registry   *Registry
	exclude    map[string]bool
	logger     *zap.Logger
}

// EntityReport summarizes the processing of one entity.
type EntityReport struct {
	Entity         string
	Table          string
	Skipped        bool
	Classification *Classification
	Registered     []string
	Duplicates     []string
}

// InvalidFields returns the names of the fields that could not be resolved.
func (r *EntityReport) InvalidFields() []string {
	if r.Classification == nil {
		return nil
	}
	var out []string
	for _, d := range r.Classification.Diagnostics {
		var unrecognized *UnrecognizedFieldError
		if errors.As(d, &unrecognized) {
			out = append(out, unrecognized.Field)
		}
	}
	return out
}

// NewPipeline validates the collaborators and wires the components. A nil or
// empty vocabulary or a nil catalog is a MissingCollaboratorError.
func NewPipeline(opts Options, logger *zap.Logger) (*Pipeline, error) {
	if opts.Vocabulary == nil || opts.Vocabulary.Len() == 0 {
		return nil, &MissingCollaboratorError{Name: "vocabulary"}
	}
	if opts.Catalog == nil {
		return nil, &MissingCollaboratorError{Name: "catalog"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Inflector == nil {
		opts.Inflector = naming.Default()
	}
	if opts.Policy == nil {
		opts.Policy = PluralNamePolicy{Inflector: opts.Inflector}
	}

	exclude := make(map[string]bool, len(opts.ExcludeTables))
	for _, t := range opts.ExcludeTables {
		exclude[naming.Snake(t)] = true
	}

	registry := NewRegistry()
	return &Pipeline{
		opts:       opts,
		inflector:  opts.Inflector,
		classifier: NewClassifier(NewResolver(opts.Vocabulary, opts.Catalog), opts.Inflector, opts.Policy, logger),
		builder:    NewBuilder(registry, logger),
		registry:   registry,
		exclude:    exclude,
		logger:     logger,
	}, nil
}

// Process classifies one entity and registers its base table plus every
// synthesized table. If the base table already exists the entity fails and
// the registry is left untouched.
func (p *Pipeline) Process(e Entity) (*EntityReport, error) {
	table := p.inflector.TableName(e.Name)
	report := &EntityReport{Entity: e.Name, Table: table}

	if p.exclude[table] {
		p.logger.Info("entity excluded", zap.String("entity", e.Name), zap.String("table", table))
		report.Skipped = true
		return report, nil
	}

	c := p.classifier.Classify(table, e.Fields, p.opts.AllowSynthesis, p.opts.Locales)
	report.Classification = c

	result, err := p.builder.Commit(p.builder.BaseTable(c), p.builder.Synthesize(c.Requests))
	if err != nil {
		return report, fmt.Errorf("entity %s: %w", e.Name, err)
	}
	report.Registered = result.Registered
	report.Duplicates = result.Duplicates

	p.logger.Info("entity classified",
		zap.String("entity", e.Name),
		zap.String("table", table),
		zap.Int("valid", len(c.Valid)),
		zap.Int("natural_language", len(c.NaturalLanguage)),
		zap.Int("invalid", len(c.Invalid)),
		zap.Strings("registered", result.Registered),
	)
	return report, nil
}

// ProcessAll processes entities in order. A failing entity does not stop
// the run; all failures are joined into the returned error.
func (p *Pipeline) ProcessAll(entities []Entity) ([]*EntityReport, error) {
	reports := make([]*EntityReport, 0, len(entities))
	var errs []error
	for _, e := range entities {
		report, err := p.Process(e)
		if err != nil {
			p.logger.Warn("entity failed", zap.String("entity", e.Name), zap.Error(err))
			errs = append(errs, err)
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

// Registry returns the run's registry.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// Builder returns the run's builder, for callers registering extra tables.
func (p *Pipeline) Builder() *Builder {
	return p.builder
}
