package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menu-app/internal/config"
	"menu-app/internal/database"
	"menu-app/internal/handler"
	"menu-app/internal/importer"
	"menu-app/internal/repository"
	"menu-app/internal/router"
	"menu-app/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("backend", cfg.Store.Backend).Msg("starting menu-app API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the session menu store
	repo, closeStore, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	menuService := service.NewMenuService(repo, logger)

	// Every session starts empty and ends empty
	defer func() {
		resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer resetCancel()
		if err := menuService.Reset(resetCtx); err != nil {
			logger.Error().Err(err).Msg("failed to reset menu at session end")
		}
	}()

	if len(cfg.Import.Files) > 0 {
		if err := importMenu(ctx, cfg, menuService, logger); err != nil {
			return err
		}
	}

	// Initialize HTTP handlers
	menuHandler := handler.NewMenuHandler(menuService, logger)

	// Initialize router
	mux := router.New(menuHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, ending menu session")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newRepository builds the configured store backend and a function that
// releases it.
func newRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.MenuItemRepository, func(), error) {
	if cfg.Store.Backend != config.BackendPostgres {
		return repository.NewMemoryMenuRepository(logger), func() {}, nil
	}

	conn, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	closeConn := func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := conn.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("failed to close database connection")
		}
	}

	repo, err := repository.NewPostgresMenuRepository(ctx, conn, logger)
	if err != nil {
		closeConn()
		return nil, nil, fmt.Errorf("failed to initialize menu repository: %w", err)
	}

	return repo, closeConn, nil
}

// importMenu seeds the session from the configured menu files.
func importMenu(ctx context.Context, cfg *config.Config, menu service.MenuService, logger zerolog.Logger) error {
	fileLoader := importer.NewFileLoader(logger)

	var s3Loader importer.Loader
	if cfg.S3.Enabled {
		var err error
		s3Loader, err = importer.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
	} else {
		logger.Info().Msg("using local file system for menu files (S3 disabled)")
	}

	loader := importer.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	result, err := importer.NewImporter(loader, menu, logger).Import(ctx, cfg.Import.Files...)
	if err != nil {
		return fmt.Errorf("failed to import menu: %w", err)
	}

	for _, rejection := range result.Rejected {
		logger.Warn().
			Str("file", rejection.File).
			Int("line", rejection.Line).
			Str("code", rejection.Code).
			Str("reason", rejection.Reason).
			Msg("menu line rejected")
	}

	return nil
}
