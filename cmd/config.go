package cmd

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"db-blueprint/internal/naming"
	"db-blueprint/internal/schema"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// Settings is the decoded configuration of one run.
type Settings struct {
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Entities   EntitiesConfig   `mapstructure:"entities"`
	Synthesis  SynthesisConfig  `mapstructure:"synthesis"`
	Naming     naming.Config    `mapstructure:"naming"`
	Output     OutputConfig     `mapstructure:"output"`
	Seed       SeedConfig       `mapstructure:"seed"`
}

type VocabularyConfig struct {
	// Path points to a file listing the types; it replaces Types when set.
	Path    string            `mapstructure:"path"`
	Types   []string          `mapstructure:"types"`
	Aliases map[string]string `mapstructure:"aliases"`
	Rules   map[string]string `mapstructure:"rules"`
}

type CatalogConfig struct {
	Path   string   `mapstructure:"path"`
	Things []string `mapstructure:"things"`
}

type EntitiesConfig struct {
	Paths []string `mapstructure:"paths"`
}

type SynthesisConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	Locales          []string `mapstructure:"locales"`
	ExcludeTables    []string `mapstructure:"exclude_tables"`
	StrictReferences bool     `mapstructure:"strict_references"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Format   string `mapstructure:"format"`
	SeedsDir string `mapstructure:"seeds_dir"`
	BaseDate string `mapstructure:"base_date"`
}

type SeedConfig struct {
	Count      int   `mapstructure:"count"`
	RandomSeed int64 `mapstructure:"random_seed"`
}

func setDefaults() {
	viper.SetDefault("vocabulary.types", schema.DefaultTypes)
	viper.SetDefault("synthesis.enabled", true)
	viper.SetDefault("synthesis.locales", []string{"en"})
	viper.SetDefault("synthesis.exclude_tables", []string{"roles"})
	viper.SetDefault("synthesis.strict_references", true)
	viper.SetDefault("output.dir", "database/migrations")
	viper.SetDefault("output.format", "laravel")
	viper.SetDefault("output.seeds_dir", "database/seeds")
	viper.SetDefault("seed.count", 10)
	viper.SetDefault("log.level", "info")
}

// bindFlags binds config keys to flags of cmd. Subcommands share keys, so
// the binding happens when the command runs rather than in init.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// LoadSettings decodes the run configuration from viper.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if s.Seed.Count < 0 {
		return nil, fmt.Errorf("seed.count must not be negative (got %d)", s.Seed.Count)
	}
	return &s, nil
}

// BaseDate returns the timestamp of the first artifact: output.base_date
// when configured, otherwise the start of today.
func (s *Settings) BaseDate(now time.Time) (time.Time, error) {
	if s.Output.BaseDate == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s.Output.BaseDate, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid output.base_date %q: %w", s.Output.BaseDate, err)
	}
	return t, nil
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// resolveDBConfig prefers the active entry of databases[] and falls back to
// database.driver / database.dsn.
func resolveDBConfig() (*DBConfig, error) {
	if active, err := GetActiveDBConfig(); err == nil {
		return active, nil
	}

	connStr := viper.GetString("database.dsn")
	if connStr == "" {
		return nil, fmt.Errorf("database.dsn is required (via flag, config or an active databases entry)")
	}

	driver := viper.GetString("database.driver")
	if driver == "" {
		driver = detectDriver(connStr)
	}
	return &DBConfig{Name: "CLI", Driver: driver, DSN: connStr, Active: true}, nil
}

// resolveDriver returns the driver of the database apply would use. Without
// any DSN configured it falls back to database.driver.
func resolveDriver() string {
	if config, err := resolveDBConfig(); err == nil {
		return config.Driver
	}
	return viper.GetString("database.driver")
}

func detectDriver(connStr string) string {
	switch {
	case strings.HasPrefix(connStr, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(connStr, "oracle://"):
		return "oracle"
	case strings.HasPrefix(connStr, "file:") || strings.HasSuffix(connStr, ".db") || strings.HasSuffix(connStr, ".sqlite"):
		return "sqlite3"
	case strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode"):
		return "postgres"
	default:
		return "mysql"
	}
}

func openDB(config *DBConfig) (*sql.DB, error) {
	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return db, nil
}
