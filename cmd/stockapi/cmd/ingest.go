package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ioane-gh/PLTR-Stock/internal/infra/database"
	"github.com/ioane-gh/PLTR-Stock/internal/pkg/config"
	"github.com/ioane-gh/PLTR-Stock/internal/service/ingest"
)

var csvPath string

// ingestCmd ingest 서브커맨드
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the price file into the stocks table",
	Long: `Replaces the stocks table with the rows of a CSV (or .xlsx) file with header
Date,Open,High,Low,Close,Adj Close,Volume. The load is atomic: on any error the
previous table is left untouched. Do not run while the server is serving.

Examples:
  stockapi ingest --csv Datasets/PLTR_2020-09-30_2025-09-09.csv
  stockapi ingest --csv prices.xlsx --db /var/lib/stockapi/pltr.db`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&csvPath, "csv", "", "source file (env CSV_PATH)")
}

func applyIngestFlags(cmd *cobra.Command, c *config.Config) {
	if f := cmd.Flags().Lookup("csv"); f != nil && f.Changed {
		c.Ingest.SourcePath = csvPath
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("source", cfg.Ingest.SourcePath).
		Str("driver", cfg.Database.Driver).
		Msg("Starting ingestion...")

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	n, err := ingest.NewLoader(store).Load(ctx, cfg.Ingest.SourcePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows into table stocks\n", n)
	return nil
}
