package dialect

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"db-blueprint/internal/schema"
)

type OracleDialect struct{}

var oracleTypes = map[string]string{
	"bigIncrements": "NUMBER(19)",
	"increments":    "NUMBER(10)",
	"bigInteger":    "NUMBER(19)",
	"binary":        "BLOB",
	"boolean":       "NUMBER(1)",
	"char":          "CHAR(255)",
	"date":          "DATE",
	"dateTime":      "DATE",
	"decimal":       "NUMBER(8, 2)",
	"double":        "BINARY_DOUBLE",
	"enum":          "VARCHAR2(255)",
	"float":         "BINARY_FLOAT",
	"integer":       "NUMBER(10)",
	"json":          "CLOB",
	"jsonb":         "CLOB",
	"longText":      "CLOB",
	"mediumInteger": "NUMBER(7)",
	"mediumText":    "CLOB",
	"smallInteger":  "NUMBER(5)",
	"string":        "VARCHAR2(255)",
	"text":          "CLOB",
	"time":          "VARCHAR2(8)",
	"tinyInteger":   "NUMBER(3)",
	"timestamp":     "TIMESTAMP",
}

func (d *OracleDialect) Name() string {
	return "oracle"
}

func (d *OracleDialect) ColumnType(canonical string) string {
	return lookupType(oracleTypes, canonical, "CLOB")
}

func (d *OracleDialect) Quote(ident string) string {
	return quoteWith(ident, `"`, `"`)
}

func (d *OracleDialect) CreateTableSQL(t *schema.Table) string {
	return renderCreateTable(d, t, func(c Column) string {
		return columnDefinition(d.ColumnType(c.Type), c, "GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY")
	})
}

func (d *OracleDialect) AddForeignKeysSQL(t *schema.Table) []string {
	return renderForeignKeys(d, t)
}

// DropTableSQL ignores ORA-00942 (table or view does not exist).
func (d *OracleDialect) DropTableSQL(table string) string {
	stmt := fmt.Sprintf("DROP TABLE %s CASCADE CONSTRAINTS", d.Quote(table))
	return fmt.Sprintf("BEGIN EXECUTE IMMEDIATE '%s'; EXCEPTION WHEN OTHERS THEN IF SQLCODE != -942 THEN RAISE; END IF; END;",
		strings.ReplaceAll(stmt, "'", "''"))
}

// PlaceholderFormat returns :1, :2, ... (1-based).
func (d *OracleDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Colon
}

// BeforeSeed sets the NLS formats to match the generated date strings
// ("2006-01-02 15:04:05").
func (d *OracleDialect) BeforeSeed(tx *sql.Tx, tables []string) error {
	if _, err := tx.Exec("ALTER SESSION SET NLS_DATE_FORMAT = 'YYYY-MM-DD HH24:MI:SS'"); err != nil {
		return fmt.Errorf("failed to set NLS_DATE_FORMAT: %w", err)
	}
	if _, err := tx.Exec("ALTER SESSION SET NLS_TIMESTAMP_FORMAT = 'YYYY-MM-DD HH24:MI:SS'"); err != nil {
		return fmt.Errorf("failed to set NLS_TIMESTAMP_FORMAT: %w", err)
	}
	return nil
}

func (d *OracleDialect) AfterSeed(tx *sql.Tx, tables []string) error {
	return nil
}
