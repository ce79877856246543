package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"DateTime", []string{"Date", "Time"}},
		{"URLPath", []string{"URL", "Path"}},
		{"first_name", []string{"first", "name"}},
		{"Big Integer", []string{"Big", "Integer"}},
		{"api_v2_key", []string{"api", "v2", "key"}},
		{"Sha256Hash", []string{"Sha256", "Hash"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Words(tt.input))
		})
	}
}

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Book", "book"},
		{"BookReview", "book_review"},
		{"dateTime", "date_time"},
		{"First Name", "first_name"},
		{"ISBN", "isbn"},
		{"already_snake", "already_snake"},
		{"with-dashes", "with_dashes"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snake(tt.input))
		})
	}
}

func TestCamelAndPascal(t *testing.T) {
	assert.Equal(t, "bigInteger", Camel("BigInteger"))
	assert.Equal(t, "bigInteger", Camel("big_integer"))
	assert.Equal(t, "text", Camel("Text"))
	assert.Equal(t, "dateTime", Camel("DateTime"))
	assert.Equal(t, "", Camel(""))

	assert.Equal(t, "BookReviews", Pascal("book_reviews"))
	assert.Equal(t, "BooksEn", Pascal("books_en"))
}

func TestHumanCases(t *testing.T) {
	assert.Equal(t, "first name", Humanize("first_name"))
	assert.Equal(t, "First name", Sentence("firstName"))
	assert.Equal(t, "First Name", Title("first name"))
	assert.Equal(t, "Person ID", Title("Person ID"))
}

func TestPluralize(t *testing.T) {
	inf := Default()

	tests := []struct {
		input    string
		expected string
	}{
		{"book", "books"},
		{"person", "people"},
		{"category", "categories"},
		{"book_review", "book_reviews"},
		{"chapters", "chapters"},
		{"people", "people"},
		{"children", "children"},
		{"men", "men"},
		{"child", "children"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, inf.Pluralize(tt.input))
		})
	}
}

func TestSingularize(t *testing.T) {
	inf := Default()

	assert.Equal(t, "book", inf.Singularize("books"))
	assert.Equal(t, "person", inf.Singularize("people"))
	assert.Equal(t, "category", inf.Singularize("categories"))
}

func TestIsPlural(t *testing.T) {
	inf := Default()

	assert.True(t, inf.IsPlural("chapters"))
	assert.True(t, inf.IsPlural("authors"))
	assert.False(t, inf.IsPlural("author"))
	assert.True(t, inf.IsPlural("people"))
	assert.True(t, inf.IsPlural("children"))
	assert.True(t, inf.IsPlural("men"))
	assert.False(t, inf.IsPlural("person"))
	assert.False(t, inf.IsPlural("child"))
	assert.False(t, inf.IsPlural("pages_count"))
	assert.False(t, inf.IsPlural(""))
}

func TestOverrides(t *testing.T) {
	inf := NewInflector(Config{
		PluralOverrides:   map[string]string{"staff": "staff"},
		SingularOverrides: map[string]string{"data": "datum"},
	})

	assert.Equal(t, "staff", inf.Pluralize("staff"))
	assert.Equal(t, "datum", inf.Singularize("data"))
	assert.Equal(t, "users", inf.Pluralize("user"))
	assert.True(t, inf.IsPlural("staff"))
	assert.Equal(t, "data", inf.Pluralize("data"))
	assert.True(t, inf.IsPlural("data"))
}

func TestTableName(t *testing.T) {
	inf := Default()

	assert.Equal(t, "books", inf.TableName("Book"))
	assert.Equal(t, "people", inf.TableName("Person"))
	assert.Equal(t, "book_reviews", inf.TableName("BookReview"))
	assert.Equal(t, "creative_works", inf.TableName("Creative Work"))
}
