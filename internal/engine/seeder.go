package engine

import (
	"go.uber.org/zap"

	"db-blueprint/internal/dialect"
	"db-blueprint/internal/schema"
)

// SeedSet holds the generated rows of one table, in insert order.
type SeedSet struct {
	Table   string          `yaml:"table"`
	Columns []string        `yaml:"columns"`
	Rows    [][]interface{} `yaml:"rows"`
}

// Seeder generates fake rows for synthesized tables.
type Seeder struct {
	count  int
	gen    *Generator
	logger *zap.Logger
}

// NewSeeder creates a seeder producing count rows per table.
func NewSeeder(count int, seed int64, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{count: count, gen: NewGenerator(seed), logger: logger}
}

// Seed generates rows for every table, parents before children. Auto
// increment keys are left to the database, which is assumed to number a
// fresh table's rows from 1, so foreign keys draw from the ids 1..count of
// the parent. Tables with no other column get explicit ids 1..count. A
// parent seeded later (a reference cycle) or not seeded at all yields NULL
// for nullable columns and 1 otherwise.
func (s *Seeder) Seed(tables []*schema.Table) []SeedSet {
	pool := make(map[string][]int64)
	sets := make([]SeedSet, 0, len(tables))

	for _, table := range schema.SortTablesByFKCount(tables) {
		cols := dialect.Columns(table)
		var insertCols []dialect.Column
		var colNames []string
		for _, c := range cols {
			if !c.AutoIncrement {
				insertCols = append(insertCols, c)
				colNames = append(colNames, c.Name)
			}
		}

		// Tables holding nothing but their key get explicit ids.
		explicitIDs := len(insertCols) == 0
		if explicitIDs {
			insertCols = cols
			colNames = colNames[:0]
			for _, c := range cols {
				colNames = append(colNames, c.Name)
			}
		}

		set := SeedSet{Table: table.Name, Columns: colNames}
		for i := 0; i < s.count && len(insertCols) > 0; i++ {
			row := make([]interface{}, 0, len(insertCols))
			for _, c := range insertCols {
				if explicitIDs && c.AutoIncrement {
					row = append(row, int64(i+1))
					continue
				}
				row = append(row, s.value(c, pool, i))
			}
			set.Rows = append(set.Rows, row)
		}

		// refresh the FK pool for the child tables
		ids := make([]int64, len(set.Rows))
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		pool[table.Name] = ids

		s.logger.Debug("table seeded", zap.String("table", table.Name), zap.Int("rows", len(set.Rows)))
		sets = append(sets, set)
	}
	return sets
}

func (s *Seeder) value(c dialect.Column, pool map[string][]int64, index int) interface{} {
	if c.ParentTable == "" {
		return s.gen.Value(c)
	}
	if ids := pool[c.ParentTable]; len(ids) > 0 {
		return ids[index%len(ids)]
	}
	if c.Nullable {
		return nil
	}
	return int64(1)
}
