package dialect

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"db-blueprint/internal/schema"
)

// PostgresDialect serves both the lib/pq ("postgres") and pgx drivers.
type PostgresDialect struct{}

var postgresTypes = map[string]string{
	"bigIncrements": "BIGSERIAL",
	"increments":    "SERIAL",
	"bigInteger":    "BIGINT",
	"binary":        "BYTEA",
	"boolean":       "BOOLEAN",
	"char":          "CHAR(255)",
	"date":          "DATE",
	"dateTime":      "TIMESTAMP(0) WITHOUT TIME ZONE",
	"decimal":       "NUMERIC(8, 2)",
	"double":        "DOUBLE PRECISION",
	"enum":          "VARCHAR(255)",
	"float":         "REAL",
	"integer":       "INTEGER",
	"json":          "JSON",
	"jsonb":         "JSONB",
	"longText":      "TEXT",
	"mediumInteger": "INTEGER",
	"mediumText":    "TEXT",
	"smallInteger":  "SMALLINT",
	"string":        "VARCHAR(255)",
	"text":          "TEXT",
	"time":          "TIME(0) WITHOUT TIME ZONE",
	"tinyInteger":   "SMALLINT",
	"timestamp":     "TIMESTAMP(0) WITHOUT TIME ZONE",
}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) ColumnType(canonical string) string {
	return lookupType(postgresTypes, canonical, "TEXT")
}

func (d *PostgresDialect) Quote(ident string) string {
	return quoteWith(ident, `"`, `"`)
}

func (d *PostgresDialect) CreateTableSQL(t *schema.Table) string {
	return renderCreateTable(d, t, func(c Column) string {
		return columnDefinition(d.ColumnType(c.Type), c, "PRIMARY KEY")
	})
}

func (d *PostgresDialect) AddForeignKeysSQL(t *schema.Table) []string {
	return renderForeignKeys(d, t)
}

func (d *PostgresDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", d.Quote(table))
}

func (d *PostgresDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
}

// BeforeSeed defers constraint checks to commit time. It only affects
// constraints declared DEFERRABLE.
func (d *PostgresDialect) BeforeSeed(tx *sql.Tx, tables []string) error {
	_, err := tx.Exec("SET CONSTRAINTS ALL DEFERRED")
	return err
}

func (d *PostgresDialect) AfterSeed(tx *sql.Tx, tables []string) error {
	_, err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE")
	return err
}
