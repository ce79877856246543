//go:build integration

package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-blueprint/internal/dialect"
)

func TestApplySQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "blueprint.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	artifacts := applyArtifacts(t)
	seeds := NewSeeder(5, 42, nil).Seed(createdTables(artifacts))
	applier := NewApplier(db, &dialect.SQLiteDialect{}, nil)

	report, err := applier.Apply(context.Background(), artifacts, ApplyOptions{Fresh: true, Seeds: seeds})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	for _, table := range []string{"people", "books"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "`+table+`"`).Scan(&n))
		assert.Equal(t, 5, n, table)
	}

	// a second fresh run starts from empty tables
	_, err = applier.Apply(context.Background(), artifacts, ApplyOptions{Fresh: true})
	require.NoError(t, err)

	dropped, err := applier.Drop(context.Background(), createdTables(artifacts))
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
}
