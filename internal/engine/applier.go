package engine

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"db-blueprint/internal/dialect"
	"db-blueprint/internal/schema"
)

// ApplyOptions controls an Apply run.
type ApplyOptions struct {
	// Fresh drops every table of the run before creating it.
	Fresh bool
	// Seeds are inserted after all artifacts are applied.
	Seeds []SeedSet
	// OnProgress is called after each statement or inserted row.
	OnProgress func()
}

// TableResult reports the rows inserted into one table.
type TableResult struct {
	TableName string
	Target    int
	Actual    int
	Status    string
}

// ApplyReport summarizes an Apply run.
type ApplyReport struct {
	Dropped    int
	Statements int
	Results    []TableResult
}

// Applier executes emission artifacts and seed rows against a database.
type Applier struct {
	db     *sql.DB
	d      dialect.Dialect
	logger *zap.Logger
}

func NewApplier(db *sql.DB, d dialect.Dialect, logger *zap.Logger) *Applier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{db: db, d: d, logger: logger}
}

// Apply runs everything in one transaction: the optional drops, the
// artifacts in ordinal order, then the seed inserts. MySQL and Oracle commit
// DDL implicitly, so on those databases a failure can leave created tables
// behind.
func (a *Applier) Apply(ctx context.Context, artifacts []schema.Artifact, opts ApplyOptions) (*ApplyReport, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	report, err := a.apply(ctx, tx, artifacts, opts)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			a.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return report, err
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit: %w", err)
	}
	return report, nil
}

func (a *Applier) apply(ctx context.Context, tx *sql.Tx, artifacts []schema.Artifact, opts ApplyOptions) (*ApplyReport, error) {
	report := &ApplyReport{}
	progress := func() {
		if opts.OnProgress != nil {
			opts.OnProgress()
		}
	}

	if opts.Fresh {
		dropped, err := a.drop(ctx, tx, createdTables(artifacts))
		report.Dropped = dropped
		if err != nil {
			return report, err
		}
	}

	for _, art := range artifacts {
		for _, stmt := range dialect.ArtifactSQL(a.d, art) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return report, fmt.Errorf("%s %s (artifact %d): %w", art.Phase, art.Table.Name, art.Ordinal, err)
			}
			report.Statements++
			a.logger.Debug("statement applied", zap.Int("ordinal", art.Ordinal), zap.String("sql", stmt))
			progress()
		}
	}

	if len(opts.Seeds) == 0 {
		return report, nil
	}

	tables := make([]string, 0, len(opts.Seeds))
	for _, set := range opts.Seeds {
		tables = append(tables, set.Table)
	}
	if err := a.d.BeforeSeed(tx, tables); err != nil {
		return report, fmt.Errorf("before seed hook: %w", err)
	}

	for _, set := range opts.Seeds {
		result, err := a.insert(ctx, tx, set, progress)
		report.Results = append(report.Results, result)
		if err != nil {
			return report, err
		}
	}

	if err := a.d.AfterSeed(tx, tables); err != nil {
		return report, fmt.Errorf("after seed hook: %w", err)
	}
	return report, nil
}

// Drop removes tables from the database in one transaction, children
// first so that no drop is blocked by a referencing table.
func (a *Applier) Drop(ctx context.Context, tables []*schema.Table) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	dropped, err := a.drop(ctx, tx, tables)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			a.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return dropped, err
	}
	if err := tx.Commit(); err != nil {
		return dropped, fmt.Errorf("commit: %w", err)
	}
	return dropped, nil
}

func (a *Applier) drop(ctx context.Context, tx *sql.Tx, tables []*schema.Table) (int, error) {
	sorted := schema.SortTablesByFKCount(tables)
	dropped := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, a.d.DropTableSQL(sorted[i].Name)); err != nil {
			return dropped, fmt.Errorf("drop %s: %w", sorted[i].Name, err)
		}
		dropped++
		a.logger.Debug("table dropped", zap.String("table", sorted[i].Name))
	}
	return dropped, nil
}

func (a *Applier) insert(ctx context.Context, tx *sql.Tx, set SeedSet, progress func()) (TableResult, error) {
	result := TableResult{TableName: set.Table, Target: len(set.Rows), Status: "OK"}

	cols := make([]string, len(set.Columns))
	for i, c := range set.Columns {
		cols[i] = a.d.Quote(c)
	}

	for _, row := range set.Rows {
		query, args, err := sq.Insert(a.d.Quote(set.Table)).
			Columns(cols...).
			Values(row...).
			PlaceholderFormat(a.d.PlaceholderFormat()).
			ToSql()
		if err != nil {
			result.Status = "FAILED"
			return result, fmt.Errorf("build insert for %s: %w", set.Table, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			result.Status = "FAILED"
			return result, fmt.Errorf("insert into %s: %w", set.Table, err)
		}
		result.Actual++
		progress()
	}
	return result, nil
}

func createdTables(artifacts []schema.Artifact) []*schema.Table {
	var tables []*schema.Table
	for _, a := range artifacts {
		if a.Phase == schema.PhaseCreate {
			tables = append(tables, a.Table)
		}
	}
	return tables
}
