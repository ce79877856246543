package schema

// OutcomeKind tags the result of resolving a type token.
type OutcomeKind int

const (
	NoMatch OutcomeKind = iota
	DirectMatch
	ThingMatch
)

func (k OutcomeKind) String() string {
	switch k {
	case DirectMatch:
		return "DirectMatch"
	case ThingMatch:
		return "ThingMatch"
	default:
		return "NoMatch"
	}
}

// Outcome is the tagged result of Resolve. Canonical is set for
// DirectMatch, Entity for ThingMatch.
type Outcome struct {
	Kind      OutcomeKind
	Canonical string
	Entity    string
}

// Resolver matches raw type tokens against the primitive vocabulary and the
// thing catalog.
type Resolver struct {
	vocabulary *Vocabulary
	catalog    *Catalog
}

func NewResolver(vocabulary *Vocabulary, catalog *Catalog) *Resolver {
	return &Resolver{vocabulary: vocabulary, catalog: catalog}
}

// Resolve classifies token. Primitive types are tried first, so a token that
// is both a primitive and a known entity resolves as primitive.
func (r *Resolver) Resolve(token string) Outcome {
	if canonical, ok := r.vocabulary.Lookup(token); ok {
		return Outcome{Kind: DirectMatch, Canonical: canonical}
	}
	if entity, ok := r.catalog.Lookup(token); ok {
		return Outcome{Kind: ThingMatch, Entity: entity}
	}
	return Outcome{Kind: NoMatch}
}
