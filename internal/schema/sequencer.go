package schema

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Phase is one of the two ordered emission passes.
type Phase int

const (
	PhaseCreate Phase = iota
	PhaseForeignKeys
)

func (p Phase) String() string {
	if p == PhaseForeignKeys {
		return "add_foreign_keys"
	}
	return "create"
}

// Artifact is one unit handed to an Emitter: a table creation (columns
// only) or the foreign key constraints of a table.
type Artifact struct {
	Ordinal   int
	Phase     Phase
	Timestamp time.Time
	Table     *Table
}

// Emitter renders or applies artifacts. Artifacts arrive in ordinal order.
type Emitter interface {
	Emit(a Artifact) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(a Artifact) error

func (f EmitterFunc) Emit(a Artifact) error {
	return f(a)
}

// Sequencer drains a registry in two passes, every table creation first and
// then every foreign key addition, so constraints never reference a table
// that does not exist yet.
type Sequencer struct {
	base    time.Time
	step    time.Duration
	strict  bool
	logger  *zap.Logger
	emitted int
}

type SequencerOption func(*Sequencer)

// WithStep sets the logical time between two artifacts (default 1s).
func WithStep(d time.Duration) SequencerOption {
	return func(s *Sequencer) {
		if d > 0 {
			s.step = d
		}
	}
}

// WithStrictReferences controls whether dangling foreign key targets fail
// the drain (default) or are only logged.
func WithStrictReferences(strict bool) SequencerOption {
	return func(s *Sequencer) { s.strict = strict }
}

func WithSequencerLogger(logger *zap.Logger) SequencerOption {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSequencer creates a sequencer whose artifact timestamps start at base.
func NewSequencer(base time.Time, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		base:   base,
		step:   time.Second,
		strict: true,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan returns the artifacts for reg in emission order without emitting them.
func (s *Sequencer) Plan(reg *Registry) ([]Artifact, error) {
	if err := reg.Validate(); err != nil {
		if s.strict {
			return nil, fmt.Errorf("validate references: %w", err)
		}
		s.logger.Warn("dangling foreign key references", zap.Error(err))
	}

	tables := reg.Tables()
	artifacts := make([]Artifact, 0, len(tables)*2)
	next := func(p Phase, t *Table) {
		ordinal := len(artifacts) + 1
		artifacts = append(artifacts, Artifact{
			Ordinal:   ordinal,
			Phase:     p,
			Timestamp: s.base.Add(time.Duration(ordinal) * s.step),
			Table:     t,
		})
	}

	for _, t := range tables {
		next(PhaseCreate, t)
	}
	for _, t := range tables {
		if len(t.ForeignKeys) > 0 {
			next(PhaseForeignKeys, t)
		}
	}
	return artifacts, nil
}

// Drain plans reg and hands every artifact to e, stopping at the first
// emitter error.
func (s *Sequencer) Drain(reg *Registry, e Emitter) error {
	artifacts, err := s.Plan(reg)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		if err := e.Emit(a); err != nil {
			return fmt.Errorf("emit %s %s (artifact %d): %w", a.Phase, a.Table.Name, a.Ordinal, err)
		}
		s.emitted++
		s.logger.Debug("artifact emitted",
			zap.Int("ordinal", a.Ordinal),
			zap.String("phase", a.Phase.String()),
			zap.String("table", a.Table.Name),
		)
	}
	return nil
}

// Emitted returns the number of artifacts successfully emitted so far.
func (s *Sequencer) Emitted() int {
	return s.emitted
}
