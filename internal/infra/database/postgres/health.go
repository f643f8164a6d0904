package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// pingTimeout bounds readiness checks
const pingTimeout = 3 * time.Second

// Health pings the database and reports pool usage at debug level
func (p *Pool) Health(ctx context.Context) error {
	start := time.Now()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	stats := p.Stat()
	log.Debug().
		Int32("active_conns", stats.AcquiredConns()).
		Int32("idle_conns", stats.IdleConns()).
		Int32("total_conns", stats.TotalConns()).
		Int32("max_conns", stats.MaxConns()).
		Dur("response_time", time.Since(start)).
		Msg("PostgreSQL health check")

	return nil
}
