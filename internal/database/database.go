package database

import (
	"context"
	"fmt"
	"time"

	"menu-app/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Connect opens the single PostgreSQL connection that backs one menu session.
// Session tables live exactly as long as this connection.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgx.Conn, error) {
	connConfig, err := pgx.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	connConfig.ConnectTimeout = time.Duration(cfg.ConnectTimeout) * time.Second

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("opening session database connection")

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("session database connection established")

	return conn, nil
}
