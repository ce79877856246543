package dialect

import (
	"fmt"
	"strings"

	"db-blueprint/internal/schema"
)

// maxIdentifier is the shortest identifier limit among supported databases
// (PostgreSQL, 63 bytes).
const maxIdentifier = 63

// ConstraintName returns the foreign key constraint name for table.column.
func ConstraintName(table, column string) string {
	name := "fk_" + table + "_" + column
	if len(name) > maxIdentifier {
		name = name[:maxIdentifier]
	}
	return name
}

// quoteWith wraps ident in left/right, doubling any embedded right quote.
func quoteWith(ident, left, right string) string {
	return left + strings.ReplaceAll(ident, right, right+right) + right
}

// columnDefinition renders the type and constraints of c. identity is the
// clause used for auto incrementing primary keys.
func columnDefinition(typ string, c Column, identity string) string {
	if c.AutoIncrement {
		return typ + " " + identity
	}
	if c.Nullable {
		return typ + " NULL"
	}
	return typ + " NOT NULL"
}

// renderCreateTable renders a CREATE TABLE statement, one column per line.
// Foreign key constraints are never part of it.
func renderCreateTable(d Dialect, t *schema.Table, define func(Column) string) string {
	cols := Columns(t)
	lines := make([]string, 0, len(cols))
	for _, c := range cols {
		lines = append(lines, "    "+d.Quote(c.Name)+" "+define(c))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", d.Quote(t.Name), strings.Join(lines, ",\n"))
}

// renderForeignKeys renders one ALTER TABLE statement per constrained column.
func renderForeignKeys(d Dialect, t *schema.Table) []string {
	fields := t.ForeignKeyFields()
	stmts := make([]string, 0, len(fields))
	for _, f := range fields {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			d.Quote(t.Name),
			d.Quote(ConstraintName(t.Name, f.Name)),
			d.Quote(f.Name),
			d.Quote(f.ParentTable),
			d.Quote("id"),
		))
	}
	return stmts
}

// lookupType maps canonical to a dialect type, falling back to fallback for
// types the dialect does not know.
func lookupType(types map[string]string, canonical, fallback string) string {
	if t, ok := types[canonical]; ok {
		return t
	}
	return fallback
}
