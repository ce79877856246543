package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"db-blueprint/internal/dialect"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	timeLayout     = "15:04:05"

	// default VARCHAR length of the string and char types
	stringLength = 255
)

// Generator produces fake column values. A fixed seed gives reproducible
// values.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewGenerator creates a generator; seed 0 picks a random seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: time.Now()}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}

// Value generates a random value for col based on its canonical type and the
// meaning derived from its name and comment.
func (g *Generator) Value(col dialect.Column) interface{} {
	meaning := AnalyzeMeaning(col.Name, col.Comment)

	switch col.Type {
	case "string", "char", "enum":
		return truncate(g.text(meaning, 3), stringLength)
	case "text", "mediumText", "longText":
		return g.text(meaning, 12)

	case "integer", "bigInteger", "mediumInteger", "smallInteger", "tinyInteger":
		return g.integer(col.Type, meaning)
	case "decimal", "double", "float":
		return g.faker.Price(0.99, 99.99)
	case "boolean":
		return g.faker.Bool()

	case "date":
		return g.date().Format(dateLayout)
	case "dateTime", "timestamp":
		return g.date().Format(dateTimeLayout)
	case "time":
		return g.date().Format(timeLayout)

	case "json", "jsonb":
		return fmt.Sprintf(`{"%s": "%s"}`, g.faker.Word(), g.faker.Word())
	case "binary":
		return []byte(g.faker.LetterN(16))
	}

	if col.Nullable {
		return nil
	}
	return g.faker.Word()
}

func (g *Generator) text(meaning string, words int) string {
	switch meaning {
	case "email":
		return g.faker.Email()
	case "phone":
		return g.faker.Phone()
	case "password":
		return g.faker.Password(true, true, true, false, false, 16)
	case "url":
		return g.faker.URL()
	case "zipcode":
		return g.faker.Zip()
	case "address":
		return g.faker.Street()
	case "city":
		return g.faker.City()
	case "country":
		return g.faker.Country()
	case "ip":
		return g.faker.IPv4Address()
	case "name":
		return g.faker.Name()
	case "year":
		return fmt.Sprintf("%d", g.faker.Number(2000, g.now.Year()))
	case "yesno":
		if g.faker.Bool() {
			return "Y"
		}
		return "N"
	case "title":
		return strings.TrimSuffix(g.faker.Sentence(3), ".")
	case "description":
		return g.faker.Paragraph(1, 3, words, " ")
	case "date":
		return g.date().Format(dateTimeLayout)
	}
	return g.faker.Sentence(words)
}

func (g *Generator) integer(typ, meaning string) int {
	switch meaning {
	case "yesno":
		return g.faker.Number(0, 1)
	case "year":
		return g.faker.Number(2000, g.now.Year())
	}

	switch typ {
	case "tinyInteger":
		return g.faker.Number(0, 127) // Safe range for signed/unsigned logic simplicity
	case "smallInteger":
		return g.faker.Number(1, 30000)
	}
	return g.faker.Number(1, 50000)
}

func (g *Generator) date() time.Time {
	return g.faker.DateRange(g.now.AddDate(-1, 0, 0), g.now)
}
