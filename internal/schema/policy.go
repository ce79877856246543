package schema

import "db-blueprint/internal/naming"

// CardinalityPolicy infers the cardinality of a reference to a thing from
// the referencing field's name.
type CardinalityPolicy interface {
	Infer(fieldName string) Cardinality
}

// PluralNamePolicy treats a field whose name is already plural ("chapters")
// as a collection and everything else as a single reference. It is a
// heuristic and misses irregular nouns the inflector does not know.
type PluralNamePolicy struct {
	Inflector *naming.Inflector
}

func (p PluralNamePolicy) Infer(fieldName string) Cardinality {
	inf := p.Inflector
	if inf == nil {
		inf = naming.Default()
	}
	if inf.IsPlural(naming.Snake(fieldName)) {
		return OneToMany
	}
	return Reference
}
