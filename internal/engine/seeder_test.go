package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-blueprint/internal/schema"
)

func seedTables() []*schema.Table {
	return []*schema.Table{
		{
			Name: "books",
			Fields: []schema.Field{
				{Name: "author_id", Type: "bigInteger", Comment: "Person ID", ParentTable: "people"},
				{Name: "pages", Type: "integer", Comment: "Pages"},
			},
			ForeignKeys: []string{"people"},
		},
		{
			Name:   "people",
			Fields: []schema.Field{{Name: "name", Type: "string", Comment: "Name"}},
		},
		{
			Name: "books_chapters",
			Fields: []schema.Field{
				{Name: "id", Type: "bigIncrements", Comment: "Primary Key"},
				{Name: "books_id", Type: "bigInteger", ParentTable: "books"},
				{Name: "chapters_id", Type: "bigInteger", ParentTable: "chapters"},
			},
		},
		{Name: "chapters"},
	}
}

func findSet(sets []SeedSet, table string) SeedSet {
	for _, s := range sets {
		if s.Table == table {
			return s
		}
	}
	return SeedSet{}
}

func TestSeedOrderAndForeignKeys(t *testing.T) {
	sets := NewSeeder(3, 42, nil).Seed(seedTables())

	require.Len(t, sets, 4)
	var order []string
	for _, s := range sets {
		order = append(order, s.Table)
	}
	assert.Equal(t, []string{"people", "chapters", "books", "books_chapters"}, order)

	books := findSet(sets, "books")
	assert.Equal(t, []string{"author_id", "pages"}, books.Columns)
	require.Len(t, books.Rows, 3)
	for i, row := range books.Rows {
		assert.Equal(t, int64(i+1), row[0])
		assert.IsType(t, 0, row[1])
	}

	join := findSet(sets, "books_chapters")
	assert.Equal(t, []string{"books_id", "chapters_id"}, join.Columns)
	assert.Equal(t, []interface{}{int64(2), int64(2)}, join.Rows[1])
}

func TestSeedKeyOnlyTable(t *testing.T) {
	sets := NewSeeder(2, 1, nil).Seed([]*schema.Table{{Name: "chapters"}})

	require.Len(t, sets, 1)
	assert.Equal(t, []string{"id"}, sets[0].Columns)
	assert.Equal(t, [][]interface{}{{int64(1)}, {int64(2)}}, sets[0].Rows)
}

func TestSeedMissingParent(t *testing.T) {
	tables := []*schema.Table{{
		Name: "reviews",
		Fields: []schema.Field{
			{Name: "critic_id", Type: "bigInteger", ParentTable: "critics", Nullable: true},
			{Name: "book_id", Type: "bigInteger", ParentTable: "books"},
		},
	}}

	sets := NewSeeder(1, 1, nil).Seed(tables)

	require.Len(t, sets, 1)
	assert.Equal(t, []interface{}{nil, int64(1)}, sets[0].Rows[0])
}
