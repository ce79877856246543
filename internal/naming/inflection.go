package naming

import (
	"github.com/jinzhu/inflection"
)

// Config holds pluralization overrides.
type Config struct {
	// PluralOverrides maps singular -> custom plural
	// Example: {"staff": "staff"}
	PluralOverrides map[string]string `mapstructure:"plural_overrides"`

	// SingularOverrides maps plural -> custom singular
	// Example: {"data": "datum"}
	SingularOverrides map[string]string `mapstructure:"singular_overrides"`
}

// DefaultConfig returns a Config without overrides.
func DefaultConfig() Config {
	return Config{
		PluralOverrides:   make(map[string]string),
		SingularOverrides: make(map[string]string),
	}
}

// Inflector pluralizes and singularizes words, checking the configured
// overrides before falling back to the inflection library.
type Inflector struct {
	config Config
}

// NewInflector creates an Inflector with the given overrides.
func NewInflector(cfg Config) *Inflector {
	if cfg.PluralOverrides == nil {
		cfg.PluralOverrides = make(map[string]string)
	}
	if cfg.SingularOverrides == nil {
		cfg.SingularOverrides = make(map[string]string)
	}
	return &Inflector{config: cfg}
}

// Default returns an Inflector without overrides.
func Default() *Inflector {
	return NewInflector(DefaultConfig())
}

// Pluralize converts a singular word to its plural form. Words that are
// already plural ("people", "children") come back unchanged.
func (i *Inflector) Pluralize(word string) string {
	if override, ok := i.config.PluralOverrides[word]; ok {
		return override
	}
	if i.pluralOf(i.Singularize(word)) == word {
		return word
	}
	return inflection.Plural(word)
}

func (i *Inflector) pluralOf(singular string) string {
	if override, ok := i.config.PluralOverrides[singular]; ok {
		return override
	}
	return inflection.Plural(singular)
}

// Singularize converts a plural word to its singular form.
func (i *Inflector) Singularize(word string) string {
	if override, ok := i.config.SingularOverrides[word]; ok {
		return override
	}
	return inflection.Singular(word)
}

// IsPlural reports whether word is the plural of its own singular form.
func (i *Inflector) IsPlural(word string) bool {
	return word != "" && i.pluralOf(i.Singularize(word)) == word
}

// TableName returns the snake_case plural table name for an entity name.
// "Person" -> "people", "BookReview" -> "book_reviews"
func (i *Inflector) TableName(entity string) string {
	return i.Pluralize(Snake(entity))
}
