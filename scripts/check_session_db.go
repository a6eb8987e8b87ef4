//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"menu-app/internal/config"
	"menu-app/internal/database"
	"menu-app/internal/repository"

	"github.com/rs/zerolog"
)

// Verifies that the configured PostgreSQL server can host a menu session.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	conn, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	repo, err := repository.NewPostgresMenuRepository(ctx, conn, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create session table: %v\n", err)
		os.Exit(1)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s (session menu has %d items)\n", dbName, count)
}
