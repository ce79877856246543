package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"db-blueprint/internal/loader"
	"db-blueprint/internal/naming"
	"db-blueprint/internal/schema"
)

// synthesize loads the collaborators and entities named by s, runs every
// entity through the pipeline and prints the per-entity report. Entity
// failures are reported and returned after all entities were processed.
func synthesize(s *Settings) (*schema.Pipeline, error) {
	inflector := naming.NewInflector(s.Naming)

	vocabulary, err := loadVocabulary(s.Vocabulary)
	if err != nil {
		return nil, err
	}

	entities, err := loader.LoadEntities(s.Entities.Paths)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("no entities found in %v (set entities.paths)", s.Entities.Paths)
	}

	catalog, err := loadCatalog(s.Catalog, entities, inflector)
	if err != nil {
		return nil, err
	}

	p, err := schema.NewPipeline(schema.Options{
		Vocabulary:     vocabulary,
		Catalog:        catalog,
		Inflector:      inflector,
		AllowSynthesis: s.Synthesis.Enabled,
		Locales:        s.Synthesis.Locales,
		ExcludeTables:  s.Synthesis.ExcludeTables,
	}, logger)
	if err != nil {
		return nil, err
	}

	fmt.Printf("📐 Loaded %d entities (%d types, %d things)\n", len(entities), vocabulary.Len(), catalog.Len())

	reports, procErr := p.ProcessAll(entities)
	printReports(reports)
	if procErr != nil {
		return nil, procErr
	}
	return p, nil
}

func loadVocabulary(cfg VocabularyConfig) (*schema.Vocabulary, error) {
	types := cfg.Types
	if cfg.Path != "" {
		loaded, err := loader.LoadVocabularyTypes(cfg.Path)
		if err != nil {
			return nil, err
		}
		types = loaded
	}
	return loader.BuildVocabulary(types, cfg.Aliases, cfg.Rules)
}

// loadCatalog merges the catalog file, the inline things and the names of
// the entities being processed.
func loadCatalog(cfg CatalogConfig, entities []schema.Entity, inflector *naming.Inflector) (*schema.Catalog, error) {
	if cfg.Path == "" && len(cfg.Things) == 0 {
		return nil, &schema.MissingCollaboratorError{
			Name: "catalog",
			Err:  errors.New("neither catalog.path nor catalog.things is configured"),
		}
	}

	names := append([]string{}, cfg.Things...)
	if cfg.Path != "" {
		loaded, err := loader.LoadCatalog(cfg.Path)
		if err != nil {
			return nil, err
		}
		names = append(names, loaded...)
	}
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return schema.NewCatalog(names, inflector), nil
}

func printReports(reports []*schema.EntityReport) {
	fmt.Println("\n📋 Entity Report:")
	for i, r := range reports {
		if r.Skipped {
			fmt.Printf("[-] [%02d/%02d] %-20s : skipped (table %s excluded)\n", i+1, len(reports), r.Entity, r.Table)
			continue
		}

		c := r.Classification
		invalid := r.InvalidFields()
		icon := "✓"
		if len(c.Invalid) > 0 || len(r.Registered) == 0 {
			icon = "!"
		}
		fmt.Printf("[%s] [%02d/%02d] %-20s : %d valid, %d invalid\n",
			icon, i+1, len(reports), r.Entity, len(c.Valid)+len(c.NaturalLanguage), len(c.Invalid))
		if len(invalid) > 0 {
			fmt.Printf("    └ Invalid: %s\n", strings.Join(invalid, ", "))
		}
		if len(r.Registered) > 0 {
			fmt.Printf("    └ Tables: %s\n", strings.Join(r.Registered, ", "))
		}
		if len(r.Duplicates) > 0 {
			fmt.Printf("    └ Already registered: %s\n", strings.Join(r.Duplicates, ", "))
		}
	}
	fmt.Println("--------------------------------------------------")
}

func newSequencer(s *Settings) (*schema.Sequencer, error) {
	base, err := s.BaseDate(time.Now())
	if err != nil {
		return nil, err
	}
	return schema.NewSequencer(base,
		schema.WithStrictReferences(s.Synthesis.StrictReferences),
		schema.WithSequencerLogger(logger),
	), nil
}
