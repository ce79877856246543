package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

var RootCmd = &cobra.Command{
	Use:   "db-blueprint",
	Short: "A schema synthesis tool",
	Long: `
  ____  ____    ____  _    _   _ _____ ____  ____  ___ _   _ _____
 |  _ \| __ )  | __ )| |  | | | | ____|  _ \|  _ \|_ _| \ | |_   _|
 | | | |  _ \  |  _ \| |  | | | |  _| | |_) | |_) || ||  \| | | |
 | |_| | |_) | | |_) | |__| |_| | |___|  __/|  _ < | || |\  | | |
 |____/|____/  |____/|_____\___/|_____|_|   |_| \_\___|_| \_| |_|

DB BLUEPRINT 📐 - Schema Synthesis from Entity Descriptions
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-blueprint.yaml)")
	RootCmd.PersistentFlags().String("dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().String("driver", "", "Database driver (mysql, postgres, pgx, sqlserver, oracle, sqlite3)")
	RootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.BindPFlag("database.driver", RootCmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))

	setDefaults()
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println("Warning: failed to load .env:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-blueprint")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BLUEPRINT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger on stderr. Debug runs get the
// development encoder with caller information.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level %q: %w", level, err)
	}

	cfg := zap.NewProductionEncoderConfig()
	opts := []zap.Option{}
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentEncoderConfig()
		opts = append(opts, zap.AddCaller())
	}
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core, opts...), nil
}
