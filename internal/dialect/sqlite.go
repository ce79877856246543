package dialect

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"db-blueprint/internal/schema"
)

// SQLiteDialect targets mattn/go-sqlite3. SQLite cannot add constraints to
// an existing table, so the foreign key phase renders nothing.
type SQLiteDialect struct{}

var sqliteTypes = map[string]string{
	"bigIncrements": "INTEGER",
	"increments":    "INTEGER",
	"bigInteger":    "INTEGER",
	"binary":        "BLOB",
	"boolean":       "BOOLEAN",
	"char":          "VARCHAR(255)",
	"date":          "DATE",
	"dateTime":      "DATETIME",
	"decimal":       "NUMERIC",
	"double":        "REAL",
	"enum":          "VARCHAR(255)",
	"float":         "REAL",
	"integer":       "INTEGER",
	"json":          "TEXT",
	"jsonb":         "TEXT",
	"longText":      "TEXT",
	"mediumInteger": "INTEGER",
	"mediumText":    "TEXT",
	"smallInteger":  "INTEGER",
	"string":        "VARCHAR(255)",
	"text":          "TEXT",
	"time":          "TIME",
	"tinyInteger":   "INTEGER",
	"timestamp":     "DATETIME",
}

func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

func (d *SQLiteDialect) ColumnType(canonical string) string {
	return lookupType(sqliteTypes, canonical, "TEXT")
}

func (d *SQLiteDialect) Quote(ident string) string {
	return quoteWith(ident, `"`, `"`)
}

func (d *SQLiteDialect) CreateTableSQL(t *schema.Table) string {
	return renderCreateTable(d, t, func(c Column) string {
		return columnDefinition(d.ColumnType(c.Type), c, "PRIMARY KEY AUTOINCREMENT")
	})
}

func (d *SQLiteDialect) AddForeignKeysSQL(t *schema.Table) []string {
	return nil
}

func (d *SQLiteDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.Quote(table))
}

func (d *SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *SQLiteDialect) BeforeSeed(tx *sql.Tx, tables []string) error {
	_, err := tx.Exec("PRAGMA defer_foreign_keys = ON")
	return err
}

func (d *SQLiteDialect) AfterSeed(tx *sql.Tx, tables []string) error {
	return nil
}
