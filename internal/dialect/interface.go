package dialect

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"db-blueprint/internal/schema"
)

// Dialect abstracts database-specific rendering and execution hooks.
type Dialect interface {
	Name() string

	// DDL Generation
	ColumnType(canonical string) string
	Quote(ident string) string
	CreateTableSQL(t *schema.Table) string
	AddForeignKeysSQL(t *schema.Table) []string
	DropTableSQL(table string) string

	// Query Generation
	PlaceholderFormat() sq.PlaceholderFormat

	// Execution Hooks, run around seed inserts
	BeforeSeed(tx *sql.Tx, tables []string) error
	AfterSeed(tx *sql.Tx, tables []string) error
}
