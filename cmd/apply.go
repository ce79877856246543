package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"db-blueprint/internal/dialect"
	"db-blueprint/internal/emitter"
	"db-blueprint/internal/engine"
	"db-blueprint/internal/schema"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the synthesized schema in the active database",
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd, map[string]string{"seed.count": "count"})
		fresh, _ := cmd.Flags().GetBool("fresh")
		withSeeds, _ := cmd.Flags().GetBool("seed")
		seedFiles, _ := cmd.Flags().GetBool("seed-files")

		s, err := LoadSettings()
		if err != nil {
			return err
		}

		config, err := resolveDBConfig()
		if err != nil {
			return err
		}
		db, err := openDB(config)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("📐 Connected to %s (%s)\n", config.Name, config.Driver)
		d := dialect.GetDialect(config.Driver)
		logger.Sugar().Infof("Using Dialect: %s", d.Name())

		start := time.Now()
		p, err := synthesize(s)
		if err != nil {
			return err
		}

		seq, err := newSequencer(s)
		if err != nil {
			return err
		}
		artifacts, err := seq.Plan(p.Registry())
		if err != nil {
			return err
		}

		opts := engine.ApplyOptions{Fresh: fresh}
		switch {
		case seedFiles:
			var names []string
			for _, t := range schema.SortTablesByFKCount(p.Registry().Tables()) {
				names = append(names, t.Name)
			}
			opts.Seeds, err = emitter.ReadSeeds(s.Output.SeedsDir, names)
			if err != nil {
				return err
			}
		case withSeeds:
			opts.Seeds = engine.NewSeeder(s.Seed.Count, s.Seed.RandomSeed, logger).Seed(p.Registry().Tables())
		}

		total := 0
		for _, a := range artifacts {
			total += len(dialect.ArtifactSQL(d, a))
		}
		for _, set := range opts.Seeds {
			total += len(set.Rows)
		}

		bar := startProgress("Applying: ", total)
		opts.OnProgress = bar.Incr
		report, err := engine.NewApplier(db, d, logger).Apply(context.Background(), artifacts, opts)
		bar.Stop()
		if err != nil {
			return err
		}

		fmt.Println("\n📊 Summary Report (Dependency Order):")
		if report.Dropped > 0 {
			fmt.Printf("Dropped Tables: %d\n", report.Dropped)
		}
		fmt.Printf("Statements Executed: %d (%d artifacts)\n", report.Statements, len(artifacts))
		rows := 0
		for i, r := range report.Results {
			icon := "✓"
			if r.Status != "OK" || r.Actual != r.Target {
				icon = "!"
			}
			fmt.Printf("[%s] [%02d/%02d] %-20s : %d rows (Target: %d) - %s\n",
				icon, i+1, len(report.Results), r.TableName, r.Actual, r.Target, r.Status)
			rows += r.Actual
		}
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Rows: %d\n", rows)
		logger.Sugar().Infof("Apply Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(applyCmd)

	applyCmd.Flags().Bool("fresh", false, "Drop the synthesized tables before creating them")
	applyCmd.Flags().Bool("seed", false, "Insert generated rows after creating the tables")
	applyCmd.Flags().Bool("seed-files", false, "Insert rows from previously written seed files")
	applyCmd.Flags().Int("count", 0, "Number of seed rows per table (overrides config)")
	applyCmd.MarkFlagsMutuallyExclusive("seed", "seed-files")
}
