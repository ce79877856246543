package dialect

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"db-blueprint/internal/schema"
)

type MysqlDialect struct{}

var mysqlTypes = map[string]string{
	"bigIncrements": "BIGINT",
	"increments":    "INT",
	"bigInteger":    "BIGINT",
	"binary":        "BLOB",
	"boolean":       "TINYINT(1)",
	"char":          "CHAR(255)",
	"date":          "DATE",
	"dateTime":      "DATETIME",
	"decimal":       "DECIMAL(8, 2)",
	"double":        "DOUBLE",
	"enum":          "VARCHAR(255)",
	"float":         "FLOAT",
	"integer":       "INT",
	"json":          "JSON",
	"jsonb":         "JSON",
	"longText":      "LONGTEXT",
	"mediumInteger": "MEDIUMINT",
	"mediumText":    "MEDIUMTEXT",
	"smallInteger":  "SMALLINT",
	"string":        "VARCHAR(255)",
	"text":          "TEXT",
	"time":          "TIME",
	"tinyInteger":   "TINYINT",
	"timestamp":     "TIMESTAMP",
}

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) ColumnType(canonical string) string {
	return lookupType(mysqlTypes, canonical, "TEXT")
}

func (d *MysqlDialect) Quote(ident string) string {
	return quoteWith(ident, "`", "`")
}

func (d *MysqlDialect) CreateTableSQL(t *schema.Table) string {
	return renderCreateTable(d, t, func(c Column) string {
		def := columnDefinition(d.ColumnType(c.Type), c, "NOT NULL AUTO_INCREMENT PRIMARY KEY")
		if c.Comment != "" {
			def += " COMMENT '" + strings.ReplaceAll(c.Comment, "'", "''") + "'"
		}
		return def
	})
}

func (d *MysqlDialect) AddForeignKeysSQL(t *schema.Table) []string {
	return renderForeignKeys(d, t)
}

func (d *MysqlDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.Quote(table))
}

func (d *MysqlDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *MysqlDialect) BeforeSeed(tx *sql.Tx, tables []string) error {
	_, err := tx.Exec("SET FOREIGN_KEY_CHECKS = 0")
	return err
}

func (d *MysqlDialect) AfterSeed(tx *sql.Tx, tables []string) error {
	_, err := tx.Exec("SET FOREIGN_KEY_CHECKS = 1")
	return err
}
