package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"db-blueprint/internal/naming"
)

func testVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	v := NewVocabulary(DefaultTypes)
	require.NoError(t, v.SetAlias("Number", "decimal"))
	return v
}

func testCatalog(names ...string) *Catalog {
	if len(names) == 0 {
		names = []string{"Person", "Chapter", "Book", "Organization"}
	}
	return NewCatalog(names, naming.Default())
}

func testClassifier(t *testing.T, catalog ...string) *Classifier {
	t.Helper()
	return NewClassifier(NewResolver(testVocabulary(t), testCatalog(catalog...)), naming.Default(), nil, nil)
}

func fieldNames(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}
