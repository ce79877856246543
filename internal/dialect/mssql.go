package dialect

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"db-blueprint/internal/schema"
)

type MSSQLDialect struct{}

var mssqlTypes = map[string]string{
	"bigIncrements": "BIGINT",
	"increments":    "INT",
	"bigInteger":    "BIGINT",
	"binary":        "VARBINARY(MAX)",
	"boolean":       "BIT",
	"char":          "NCHAR(255)",
	"date":          "DATE",
	"dateTime":      "DATETIME2",
	"decimal":       "DECIMAL(8, 2)",
	"double":        "FLOAT",
	"enum":          "NVARCHAR(255)",
	"float":         "REAL",
	"integer":       "INT",
	"json":          "NVARCHAR(MAX)",
	"jsonb":         "NVARCHAR(MAX)",
	"longText":      "NVARCHAR(MAX)",
	"mediumInteger": "INT",
	"mediumText":    "NVARCHAR(MAX)",
	"smallInteger":  "SMALLINT",
	"string":        "NVARCHAR(255)",
	"text":          "NVARCHAR(MAX)",
	"time":          "TIME",
	"tinyInteger":   "TINYINT",
	"timestamp":     "DATETIME2",
}

func (d *MSSQLDialect) Name() string {
	return "mssql"
}

func (d *MSSQLDialect) ColumnType(canonical string) string {
	return lookupType(mssqlTypes, canonical, "NVARCHAR(MAX)")
}

func (d *MSSQLDialect) Quote(ident string) string {
	return quoteWith(ident, "[", "]")
}

func (d *MSSQLDialect) CreateTableSQL(t *schema.Table) string {
	return renderCreateTable(d, t, func(c Column) string {
		return columnDefinition(d.ColumnType(c.Type), c, "IDENTITY(1,1) PRIMARY KEY")
	})
}

func (d *MSSQLDialect) AddForeignKeysSQL(t *schema.Table) []string {
	return renderForeignKeys(d, t)
}

func (d *MSSQLDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.Quote(table))
}

// PlaceholderFormat returns @p1, @p2, ... which go-mssqldb binds positionally.
func (d *MSSQLDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.AtP
}

// BeforeSeed disables constraints on the seeded tables so that circular
// references can be filled in any order.
func (d *MSSQLDialect) BeforeSeed(tx *sql.Tx, tables []string) error {
	for _, t := range tables {
		if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s NOCHECK CONSTRAINT all", d.Quote(t))); err != nil {
			return fmt.Errorf("failed to disable constraints on %s: %w", t, err)
		}
	}
	return nil
}

// AfterSeed re-enables and validates the constraints disabled by BeforeSeed.
func (d *MSSQLDialect) AfterSeed(tx *sql.Tx, tables []string) error {
	for _, t := range tables {
		if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s WITH CHECK CHECK CONSTRAINT all", d.Quote(t))); err != nil {
			return fmt.Errorf("failed to enable constraints on %s: %w", t, err)
		}
	}
	return nil
}
