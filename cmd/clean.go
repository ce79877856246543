package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"db-blueprint/internal/dialect"
	"db-blueprint/internal/emitter"
	"db-blueprint/internal/engine"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated migration and seed files",
	RunE: func(cmd *cobra.Command, args []string) error {
		drop, _ := cmd.Flags().GetBool("drop")

		s, err := LoadSettings()
		if err != nil {
			return err
		}

		removed := 0
		for _, dir := range []string{s.Output.Dir, s.Output.SeedsDir} {
			files, err := emitter.Clean(dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				logger.Debug("file removed", zap.String("dir", dir), zap.String("file", f))
			}
			removed += len(files)
		}
		fmt.Printf("🧹 Removed %d generated files\n", removed)

		if !drop {
			return nil
		}
		return dropTables(s)
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().Bool("drop", false, "Also drop the synthesized tables from the active database")
}

// dropTables drops every table the configured entities synthesize, children
// first.
func dropTables(s *Settings) error {
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

	p, err := synthesize(s)
	if err != nil {
		return err
	}

	d := dialect.GetDialect(config.Driver)
	dropped, err := engine.NewApplier(db, d, logger).Drop(context.Background(), p.Registry().Tables())
	if err != nil {
		return err
	}
	fmt.Printf("Dropped Tables: %d\n", dropped)
	return nil
}
