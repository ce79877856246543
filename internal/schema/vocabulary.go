package schema

import (
	"fmt"
	"strings"
	"unicode"

	"db-blueprint/internal/naming"
)

// DefaultTypes is the primitive vocabulary used when none is configured:
// the column types of the Laravel schema builder.
var DefaultTypes = []string{
	"bigIncrements",
	"bigInteger",
	"binary",
	"boolean",
	"char",
	"date",
	"dateTime",
	"decimal",
	"double",
	"enum",
	"float",
	"increments",
	"integer",
	"json",
	"jsonb",
	"longText",
	"mediumInteger",
	"mediumText",
	"morphs",
	"nullableTimestamps",
	"rememberToken",
	"smallInteger",
	"softDeletes",
	"string",
	"text",
	"time",
	"tinyInteger",
	"timestamp",
	"timestamps",
}

// TextType is the canonical type routed to language tables.
const TextType = "text"

// Rule turns a vocabulary entry into its canonical type name.
type Rule int

const (
	RuleCamel Rule = iota
	RuleSnake
	RulePascal
	RuleVerbatim
)

var ruleNames = map[string]Rule{
	"camel":    RuleCamel,
	"snake":    RuleSnake,
	"pascal":   RulePascal,
	"verbatim": RuleVerbatim,
}

// ParseRule parses a rule name ("camel", "snake", "pascal", "verbatim").
func ParseRule(s string) (Rule, error) {
	r, ok := ruleNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return RuleCamel, fmt.Errorf("unknown canonicalization rule %q", s)
	}
	return r, nil
}

func (r Rule) String() string {
	switch r {
	case RuleSnake:
		return "snake"
	case RulePascal:
		return "pascal"
	case RuleVerbatim:
		return "verbatim"
	default:
		return "camel"
	}
}

// Apply canonicalizes s.
func (r Rule) Apply(s string) string {
	switch r {
	case RuleSnake:
		return naming.Snake(s)
	case RulePascal:
		return naming.Pascal(s)
	case RuleVerbatim:
		return s
	default:
		return naming.Camel(s)
	}
}

// Vocabulary is the set of recognized primitive datatype identifiers.
// Matching ignores case, spaces, underscores and dashes.
type Vocabulary struct {
	entries []string
	index   map[string]string // normalized -> entry
	aliases map[string]string // normalized alias -> entry
	rules   map[string]Rule   // normalized entry -> rule
}

// NewVocabulary builds a vocabulary from the given entries. Later entries
// that normalize to an existing one are ignored.
func NewVocabulary(types []string) *Vocabulary {
	v := &Vocabulary{
		index:   make(map[string]string, len(types)),
		aliases: make(map[string]string),
		rules:   make(map[string]Rule),
	}
	for _, t := range types {
		key := normalizeKey(t)
		if key == "" {
			continue
		}
		if _, ok := v.index[key]; ok {
			continue
		}
		v.index[key] = t
		v.entries = append(v.entries, t)
	}
	return v
}

// SetRule overrides the canonicalization rule of an entry.
func (v *Vocabulary) SetRule(entry string, r Rule) error {
	key := normalizeKey(entry)
	if _, ok := v.index[key]; !ok {
		return fmt.Errorf("rule for unknown vocabulary entry %q", entry)
	}
	v.rules[key] = r
	return nil
}

// SetAlias makes alias resolve to entry, e.g. "Number" -> "decimal".
func (v *Vocabulary) SetAlias(alias, entry string) error {
	target, ok := v.index[normalizeKey(entry)]
	if !ok {
		return fmt.Errorf("alias %q targets unknown vocabulary entry %q", alias, entry)
	}
	v.aliases[normalizeKey(alias)] = target
	return nil
}

// Lookup returns the canonical type for token.
func (v *Vocabulary) Lookup(token string) (string, bool) {
	key := normalizeKey(token)
	if key == "" {
		return "", false
	}

	entry, ok := v.aliases[key]
	if !ok {
		entry, ok = v.index[key]
	}
	if !ok {
		return "", false
	}
	return v.rules[normalizeKey(entry)].Apply(entry), true
}

// Entries returns the vocabulary entries in declaration order.
func (v *Vocabulary) Entries() []string {
	out := make([]string, len(v.entries))
	copy(out, v.entries)
	return out
}

func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// normalizeKey lower cases s and drops everything but letters and digits.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
