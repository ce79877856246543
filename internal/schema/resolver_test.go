package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-blueprint/internal/naming"
)

func TestResolve(t *testing.T) {
	r := NewResolver(testVocabulary(t), testCatalog())

	tests := []struct {
		token    string
		expected Outcome
	}{
		{"Integer", Outcome{Kind: DirectMatch, Canonical: "integer"}},
		{"big integer", Outcome{Kind: DirectMatch, Canonical: "bigInteger"}},
		{"BIG_INTEGER", Outcome{Kind: DirectMatch, Canonical: "bigInteger"}},
		{"date-time", Outcome{Kind: DirectMatch, Canonical: "dateTime"}},
		{"Text", Outcome{Kind: DirectMatch, Canonical: "text"}},
		{"Number", Outcome{Kind: DirectMatch, Canonical: "decimal"}},
		{"Person", Outcome{Kind: ThingMatch, Entity: "Person"}},
		{"person", Outcome{Kind: ThingMatch, Entity: "Person"}},
		{"Chapters", Outcome{Kind: ThingMatch, Entity: "Chapter"}},
		{"Widget", Outcome{Kind: NoMatch}},
		{"", Outcome{Kind: NoMatch}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.token))
		})
	}
}

func TestResolvePrimitiveWinsOverThing(t *testing.T) {
	r := NewResolver(testVocabulary(t), testCatalog("Date", "Person"))

	out := r.Resolve("Date")
	assert.Equal(t, DirectMatch, out.Kind)
	assert.Equal(t, "date", out.Canonical)
	assert.Empty(t, out.Entity)
}

func TestVocabularyRules(t *testing.T) {
	v := NewVocabulary([]string{"bigInteger", "dateTime", "VARCHAR"})
	require.NoError(t, v.SetRule("dateTime", RuleSnake))
	require.NoError(t, v.SetRule("varchar", RuleVerbatim))

	got, ok := v.Lookup("big integer")
	require.True(t, ok)
	assert.Equal(t, "bigInteger", got)

	got, ok = v.Lookup("DateTime")
	require.True(t, ok)
	assert.Equal(t, "date_time", got)

	got, ok = v.Lookup("varchar")
	require.True(t, ok)
	assert.Equal(t, "VARCHAR", got)

	assert.Error(t, v.SetRule("missing", RuleSnake))
	assert.Error(t, v.SetAlias("Whatever", "missing"))
}

func TestParseRule(t *testing.T) {
	for _, name := range []string{"camel", "snake", "pascal", "verbatim"} {
		r, err := ParseRule(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.String())
	}

	r, err := ParseRule(" Pascal ")
	require.NoError(t, err)
	assert.Equal(t, "BigInteger", r.Apply("big_integer"))

	_, err = ParseRule("kebab")
	assert.Error(t, err)
}

func TestVocabularyIgnoresDuplicates(t *testing.T) {
	v := NewVocabulary([]string{"string", "String", "", "text"})
	assert.Equal(t, []string{"string", "text"}, v.Entries())
	assert.Equal(t, 2, v.Len())
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog([]string{"Person", "CreativeWork", "person"}, naming.Default())

	assert.Equal(t, []string{"Person", "CreativeWork"}, c.Names())
	assert.Equal(t, 2, c.Len())

	for _, token := range []string{"Person", "people", "PERSON"} {
		name, ok := c.Lookup(token)
		require.True(t, ok, token)
		assert.Equal(t, "Person", name)
	}

	for _, token := range []string{"creative work", "creative_works", "CreativeWorks"} {
		name, ok := c.Lookup(token)
		require.True(t, ok, token)
		assert.Equal(t, "CreativeWork", name)
	}

	_, ok := c.Lookup("Place")
	assert.False(t, ok)
}
