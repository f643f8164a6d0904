package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ioane-gh/PLTR-Stock/internal/api/handlers"
	"github.com/ioane-gh/PLTR-Stock/internal/api/router"
	"github.com/ioane-gh/PLTR-Stock/internal/infra/database"
	"github.com/ioane-gh/PLTR-Stock/internal/pkg/config"
	"github.com/ioane-gh/PLTR-Stock/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var (
	host string
	port string
)

// serveCmd serve 서브커맨드
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the read-only stock API. Ctrl+C로 종료할 수 있습니다.

Routes:
  GET /api/stocks
  GET /api/stocks/date/{date}
  GET /api/stocks/latest
  GET /api/health
  GET /api/health/ready
  GET /metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "listen host (env API_HOST)")
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (env API_PORT)")
}

func applyServeFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if f := flags.Lookup("host"); f != nil && f.Changed {
		c.Server.Host = host
	}
	if f := flags.Lookup("port"); f != nil && f.Changed {
		c.Server.Port = port
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", serviceVersion).
		Str("driver", cfg.Database.Driver).
		Msg("Starting PLTR stock API...")

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var accessLogger *zerolog.Logger
	if cfg.Logging.FileEnabled {
		l := logger.NewAccessLogger(cfg.Logging.FilePath, cfg.Logging.RotationSize, cfg.Logging.RetentionDays)
		accessLogger = &l
	}

	handler := router.NewRouter(&router.Config{
		StockHandler:   handlers.NewStockHandler(store),
		HealthHandler:  handlers.NewHealthHandler(store),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AccessLogger:   accessLogger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", server.Addr).Msg("API server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutdown signal received, stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("API server stopped")
	return nil
}
