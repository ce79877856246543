package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, locales []string, catalog ...string) *Pipeline {
	t.Helper()
	p, err := NewPipeline(Options{
		Vocabulary:     testVocabulary(t),
		Catalog:        testCatalog(catalog...),
		AllowSynthesis: true,
		Locales:        locales,
	}, nil)
	require.NoError(t, err)
	return p
}

func TestNewPipelineMissingCollaborator(t *testing.T) {
	_, err := NewPipeline(Options{Catalog: testCatalog()}, nil)
	var missing *MissingCollaboratorError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "vocabulary", missing.Name)

	_, err = NewPipeline(Options{Vocabulary: NewVocabulary(nil), Catalog: testCatalog()}, nil)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "vocabulary", missing.Name)

	_, err = NewPipeline(Options{Vocabulary: testVocabulary(t)}, nil)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "catalog", missing.Name)
}

func TestPipelineBookWithAuthor(t *testing.T) {
	p := newTestPipeline(t, nil, "Person")

	report, err := p.Process(Entity{Name: "Book", Fields: []FieldSpec{
		{Name: "title", Token: "Text"},
		{Name: "author", Token: "Person"},
		{Name: "pages", Token: "Integer"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "books", report.Table)
	assert.Equal(t, []string{"title"}, fieldNames(report.Classification.NaturalLanguage))

	books, ok := p.Registry().Get("books")
	require.True(t, ok)
	want := &Table{
		Name: "books",
		Fields: []Field{
			{Name: "author_id", Type: "bigInteger", Comment: "Person ID", ParentTable: "people"},
			{Name: "pages", Type: "integer", Comment: "Pages"},
		},
		ForeignKeys: []string{"people"},
	}
	if diff := cmp.Diff(want, books); diff != "" {
		t.Errorf("books mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"books"}, p.Registry().Names())
}

func TestPipelineBookWithChapters(t *testing.T) {
	p := newTestPipeline(t, nil, "Chapter")

	_, err := p.Process(Entity{Name: "Book", Fields: []FieldSpec{{Name: "chapters", Token: "Chapter"}}})
	require.NoError(t, err)

	assert.Equal(t, []string{"books", "books_chapters"}, p.Registry().Names())

	books, _ := p.Registry().Get("books")
	assert.Empty(t, books.Fields)
	assert.Empty(t, books.ForeignKeys)

	join, _ := p.Registry().Get("books_chapters")
	assert.Equal(t, []string{"id", "books_id", "chapters_id"}, fieldNames(join.Fields))
}

func TestPipelineLanguageTables(t *testing.T) {
	p := newTestPipeline(t, []string{"en", "fr"})

	_, err := p.Process(Entity{Name: "Book", Fields: []FieldSpec{{Name: "title", Token: "Text"}}})
	require.NoError(t, err)

	assert.Equal(t, []string{"books", "books_en", "books_fr"}, p.Registry().Names())
	for _, name := range []string{"books_en", "books_fr"} {
		table, ok := p.Registry().Get(name)
		require.True(t, ok)
		assert.Equal(t, []string{"id", "parent_id", "title"}, fieldNames(table.Fields))

		parent, _ := table.Field("parent_id")
		assert.Equal(t, "books", parent.ParentTable)
	}
}

func TestPipelineIrregularPlurals(t *testing.T) {
	p := newTestPipeline(t, []string{"en"}, "Person")

	_, err := p.Process(Entity{Name: "Person", Fields: []FieldSpec{{Name: "bio", Token: "Text"}}})
	require.NoError(t, err)
	_, err = p.Process(Entity{Name: "Book", Fields: []FieldSpec{
		{Name: "people", Token: "Person"},
		{Name: "children", Token: "Person"},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"people", "people_en", "books", "books_people", "books_children"}, p.Registry().Names())

	en, _ := p.Registry().Get("people_en")
	parent, ok := en.Field("parent_id")
	require.True(t, ok)
	assert.Equal(t, "people", parent.ParentTable)

	books, _ := p.Registry().Get("books")
	assert.Empty(t, books.Fields)
	assert.Empty(t, books.ForeignKeys)

	join, _ := p.Registry().Get("books_children")
	assert.Equal(t, []string{"id", "books_id", "people_id"}, fieldNames(join.Fields))
	child, _ := join.Field("people_id")
	assert.Equal(t, "people", child.ParentTable)

	require.NoError(t, p.Registry().Validate())
}

func TestPipelineNoLocales(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.Process(Entity{Name: "Book", Fields: []FieldSpec{{Name: "title", Token: "Text"}}})
	require.NoError(t, err)

	assert.Equal(t, []string{"books"}, p.Registry().Names())
}

func TestPipelineExcludedTable(t *testing.T) {
	p, err := NewPipeline(Options{
		Vocabulary:    testVocabulary(t),
		Catalog:       testCatalog(),
		ExcludeTables: []string{"Roles"},
	}, nil)
	require.NoError(t, err)

	report, err := p.Process(Entity{Name: "Role", Fields: []FieldSpec{{Name: "name", Token: "String"}}})
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Zero(t, p.Registry().Len())
}

func TestProcessAllContinuesPastFailures(t *testing.T) {
	p := newTestPipeline(t, []string{"en"})

	reports, err := p.ProcessAll([]Entity{
		{Name: "Book", Fields: []FieldSpec{{Name: "title", Token: "Text"}, {Name: "shelf", Token: "Widget"}}},
		{Name: "Book", Fields: []FieldSpec{{Name: "isbn", Token: "String"}}},
		{Name: "Person", Fields: []FieldSpec{{Name: "name", Token: "String"}}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateTable))
	require.Len(t, reports, 3)
	assert.Equal(t, []string{"shelf"}, reports[0].InvalidFields())
	assert.Empty(t, reports[1].Registered)
	assert.Equal(t, []string{"people"}, reports[2].Registered)
	assert.Equal(t, []string{"books", "books_en", "people"}, p.Registry().Names())

	books, _ := p.Registry().Get("books")
	assert.Empty(t, books.Fields)
}
