package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"db-blueprint/internal/dialect"
	"db-blueprint/internal/emitter"
	"db-blueprint/internal/engine"
	"db-blueprint/internal/schema"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate migration files from entity descriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd, map[string]string{
			"output.format": "format",
			"output.dir":    "out",
			"seed.count":    "count",
		})
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		withSeeds, _ := cmd.Flags().GetBool("seed")

		s, err := LoadSettings()
		if err != nil {
			return err
		}

		format, err := emitter.ParseFormat(s.Output.Format)
		if err != nil {
			return err
		}
		d := dialect.GetDialect(resolveDriver())

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

		out, err := emitter.New(emitter.Options{
			Dir:     s.Output.Dir,
			Format:  format,
			Dialect: d,
			DryRun:  dryRun,
		}, logger)
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Println("[SIMULATION] Dry-Run Mode Active: No files will be written.")
		}

		bar := startProgress("Emitting: ", len(artifacts))
		err = seq.Drain(p.Registry(), schema.EmitterFunc(func(a schema.Artifact) error {
			defer bar.Incr()
			return out.Emit(a)
		}))
		bar.Stop()
		if err != nil {
			return err
		}

		fmt.Println("\n🗂  Migration Plan (Emission Order):")
		for i, name := range out.Files() {
			fmt.Printf("[%02d/%02d] %s\n", i+1, len(artifacts), name)
		}

		if withSeeds && !dryRun {
			sets := engine.NewSeeder(s.Seed.Count, s.Seed.RandomSeed, logger).Seed(p.Registry().Tables())
			files, err := emitter.WriteSeeds(s.Output.SeedsDir, sets)
			if err != nil {
				return err
			}
			fmt.Printf("🌱 %d seed files written to %s (%d rows per table)\n", len(files), s.Output.SeedsDir, s.Seed.Count)
		}

		fmt.Println("--------------------------------------------------")
		fmt.Printf("Total Migrations: %d\n", seq.Emitted())
		logger.Sugar().Infof("Generate Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Bool("dry-run", false, "List the migration plan without writing files")
	generateCmd.Flags().Bool("seed", false, "Also write seed files for every table")
	generateCmd.Flags().String("format", "", "Output format: laravel or sql (overrides config)")
	generateCmd.Flags().String("out", "", "Migrations directory (overrides config)")
	generateCmd.Flags().Int("count", 0, "Number of seed rows per table (overrides config)")
}
