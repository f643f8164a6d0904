// Package cmd - stockapi CLI commands
package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ioane-gh/PLTR-Stock/internal/pkg/config"
	"github.com/ioane-gh/PLTR-Stock/internal/pkg/logger"
)

const (
	serviceName    = "pltr-stock-api"
	serviceVersion = "1.0.0"
)

var (
	// 공통 플래그
	cfg         *config.Config
	debug       bool
	driver      string
	dbPath      string
	databaseURL string
)

// rootCmd 루트 커맨드
var rootCmd = &cobra.Command{
	Use:   "stockapi",
	Short: "PLTR daily stock price API",
	Long: `PLTR daily stock price API

Usage:
    stockapi [command]

Commands:
    ingest    Load a CSV/XLSX price file into the stocks table (replaces it)
    serve     Run the read-only HTTP API
    version   Print version
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute 루트 커맨드 실행
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug logging (overrides LOG_LEVEL/LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "store driver: sqlite or postgres (env DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite store file (env DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL DSN (env DATABASE_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads .env / environment, applies flags that were set, then
// initializes the global logger
func initConfig(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		loaded.Server.Debug = debug
	}
	if flags.Changed("driver") {
		loaded.Database.Driver = driver
	}
	if flags.Changed("db") {
		loaded.Database.Path = dbPath
	}
	if flags.Changed("database-url") {
		loaded.Database.URL = databaseURL
	}
	applyServeFlags(cmd, loaded)
	applyIngestFlags(cmd, loaded)

	if err := loaded.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:          loaded.EffectiveLogLevel(),
		Format:         loaded.EffectiveLogFormat(),
		FileEnabled:    loaded.Logging.FileEnabled,
		FilePath:       loaded.Logging.FilePath,
		RotationSize:   loaded.Logging.RotationSize,
		RetentionDays:  loaded.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		return err
	}

	cfg = loaded
	return nil
}
