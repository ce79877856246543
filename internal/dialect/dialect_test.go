package dialect

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-blueprint/internal/schema"
)

func booksTable() *schema.Table {
	return &schema.Table{
		Name: "books",
		Fields: []schema.Field{
			{Name: "author_id", Type: "bigInteger", Comment: "Person ID", ParentTable: "people"},
			{Name: "pages", Type: "integer", Comment: "Pages"},
			{Name: "summary", Type: "text", Nullable: true},
		},
		ForeignKeys: []string{"people"},
	}
}

func columnNames(cols []Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Name)
	}
	return out
}

func TestGetDialect(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
	}{
		{"mysql", "mysql"},
		{"postgres", "postgres"},
		{"pgx", "postgres"},
		{"sqlserver", "mssql"},
		{"mssql", "mssql"},
		{"oracle", "oracle"},
		{"sqlite3", "sqlite"},
		{"", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetDialect(tt.driver).Name())
		})
	}
}

func TestColumnsAddsImplicitID(t *testing.T) {
	cols := Columns(booksTable())

	require.Len(t, cols, 4)
	assert.Equal(t, Column{Name: "id", Type: "bigIncrements", Comment: "Primary Key", PrimaryKey: true, AutoIncrement: true}, cols[0])
	assert.Equal(t, "people", cols[1].ParentTable)
}

func TestColumnsKeepsDeclaredKey(t *testing.T) {
	table := &schema.Table{
		Name: "books_en",
		Fields: []schema.Field{
			{Name: "id", Type: "bigIncrements", Comment: "Primary Key"},
			{Name: "parent_id", Type: "bigInteger", ParentTable: "books"},
		},
	}

	cols := Columns(table)

	assert.Equal(t, []string{"id", "parent_id"}, columnNames(cols))
	assert.True(t, cols[0].AutoIncrement)
}

func TestColumnsExpandsHelpers(t *testing.T) {
	table := &schema.Table{
		Name: "comments",
		Fields: []schema.Field{
			{Name: "commentable", Type: "morphs"},
			{Name: "stamps", Type: "timestamps"},
			{Name: "more_stamps", Type: "nullableTimestamps"},
			{Name: "deleted", Type: "softDeletes"},
			{Name: "token", Type: "rememberToken"},
		},
	}

	cols := Columns(table)

	assert.Equal(t, []string{
		"id",
		"commentable_id",
		"commentable_type",
		"created_at",
		"updated_at",
		"deleted_at",
		"remember_token",
	}, columnNames(cols))
	assert.True(t, cols[3].Nullable)
	assert.Equal(t, "timestamp", cols[5].Type)
}

func TestMysqlCreateTable(t *testing.T) {
	d := &MysqlDialect{}

	got := d.CreateTableSQL(booksTable())

	want := "CREATE TABLE `books` (\n" +
		"    `id` BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY COMMENT 'Primary Key',\n" +
		"    `author_id` BIGINT NOT NULL COMMENT 'Person ID',\n" +
		"    `pages` INT NOT NULL COMMENT 'Pages',\n" +
		"    `summary` TEXT NULL\n" +
		")"
	assert.Equal(t, want, got)
}

func TestPostgresCreateTable(t *testing.T) {
	d := &PostgresDialect{}

	got := d.CreateTableSQL(booksTable())

	want := "CREATE TABLE \"books\" (\n" +
		"    \"id\" BIGSERIAL PRIMARY KEY,\n" +
		"    \"author_id\" BIGINT NOT NULL,\n" +
		"    \"pages\" INTEGER NOT NULL,\n" +
		"    \"summary\" TEXT NULL\n" +
		")"
	assert.Equal(t, want, got)
}

func TestCreateTableNeverHasConstraints(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "mssql", "oracle", "sqlite3"} {
		d := GetDialect(driver)
		got := d.CreateTableSQL(booksTable())
		assert.NotContains(t, strings.ToUpper(got), "FOREIGN KEY", driver)
		assert.NotContains(t, strings.ToUpper(got), "REFERENCES", driver)
	}
}

func TestAddForeignKeys(t *testing.T) {
	tests := []struct {
		driver   string
		expected []string
	}{
		{"mysql", []string{"ALTER TABLE `books` ADD CONSTRAINT `fk_books_author_id` FOREIGN KEY (`author_id`) REFERENCES `people` (`id`)"}},
		{"postgres", []string{`ALTER TABLE "books" ADD CONSTRAINT "fk_books_author_id" FOREIGN KEY ("author_id") REFERENCES "people" ("id")`}},
		{"mssql", []string{"ALTER TABLE [books] ADD CONSTRAINT [fk_books_author_id] FOREIGN KEY ([author_id]) REFERENCES [people] ([id])"}},
		{"sqlite3", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got := GetDialect(tt.driver).AddForeignKeysSQL(booksTable())
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestAddForeignKeysSkipsUnlistedParents(t *testing.T) {
	join := &schema.Table{
		Name: "books_chapters",
		Fields: []schema.Field{
			{Name: "id", Type: "bigIncrements"},
			{Name: "books_id", Type: "bigInteger", ParentTable: "books"},
			{Name: "chapters_id", Type: "bigInteger", ParentTable: "chapters"},
		},
	}

	assert.Empty(t, (&PostgresDialect{}).AddForeignKeysSQL(join))
}

func TestDropTable(t *testing.T) {
	assert.Equal(t, "DROP TABLE IF EXISTS `books`", (&MysqlDialect{}).DropTableSQL("books"))
	assert.Equal(t, `DROP TABLE IF EXISTS "books" CASCADE`, (&PostgresDialect{}).DropTableSQL("books"))
	assert.Contains(t, (&OracleDialect{}).DropTableSQL("books"), `DROP TABLE "books" CASCADE CONSTRAINTS`)
}

func TestPlaceholderFormat(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
	}{
		{"mysql", "INSERT INTO t (a,b) VALUES (?,?)"},
		{"postgres", "INSERT INTO t (a,b) VALUES ($1,$2)"},
		{"mssql", "INSERT INTO t (a,b) VALUES (@p1,@p2)"},
		{"oracle", "INSERT INTO t (a,b) VALUES (:1,:2)"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			query, args, err := sq.Insert("t").Columns("a", "b").Values(1, 2).
				PlaceholderFormat(GetDialect(tt.driver).PlaceholderFormat()).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
			assert.Len(t, args, 2)
		})
	}
}

func TestQuoteEscapes(t *testing.T) {
	assert.Equal(t, "`a``b`", (&MysqlDialect{}).Quote("a`b"))
	assert.Equal(t, `"a""b"`, (&PostgresDialect{}).Quote(`a"b`))
	assert.Equal(t, "[a]]b]", (&MSSQLDialect{}).Quote("a]b"))
}

func TestConstraintNameIsTruncated(t *testing.T) {
	name := ConstraintName(strings.Repeat("t", 40), strings.Repeat("c", 40))
	assert.Len(t, name, maxIdentifier)
	assert.True(t, strings.HasPrefix(name, "fk_"))
}

func TestColumnTypeFallback(t *testing.T) {
	assert.Equal(t, "TEXT", (&MysqlDialect{}).ColumnType("geometry"))
	assert.Equal(t, "NVARCHAR(MAX)", (&MSSQLDialect{}).ColumnType("geometry"))
	assert.Equal(t, "CLOB", (&OracleDialect{}).ColumnType("geometry"))
}

func TestArtifactSQL(t *testing.T) {
	d := &PostgresDialect{}
	table := booksTable()

	create := ArtifactSQL(d, schema.Artifact{Phase: schema.PhaseCreate, Table: table})
	require.Len(t, create, 1)
	assert.True(t, strings.HasPrefix(create[0], `CREATE TABLE "books"`))

	fks := ArtifactSQL(d, schema.Artifact{Phase: schema.PhaseForeignKeys, Table: table})
	assert.Equal(t, d.AddForeignKeysSQL(table), fks)
}
