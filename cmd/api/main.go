package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zero-waste-meals/internal/auth"
	"zero-waste-meals/internal/cache"
	"zero-waste-meals/internal/config"
	"zero-waste-meals/internal/database"
	"zero-waste-meals/internal/handler"
	"zero-waste-meals/internal/repository"
	"zero-waste-meals/internal/router"
	"zero-waste-meals/internal/service"
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
	logger.Info().Msg("starting zero waste meals API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Initialize identity verification
	verifier, err := auth.NewHMACVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	// Initialize listing cache with Redis and no-op fallback
	var listings cache.ListingCache
	if cfg.Redis.Enabled {
		listings, err = cache.NewRedisCache(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to connect to redis, continuing without listing cache")
			listings = cache.NewNoopCache()
		}
	} else {
		listings = cache.NewNoopCache()
		logger.Info().Msg("listing cache disabled")
	}

	// Initialize repositories
	foodRepo := repository.NewFoodRepository(pool, logger)
	requestRepo := repository.NewRequestRepository(pool, logger)

	// Initialize services
	foodService := service.NewFoodService(foodRepo, listings, logger)
	requestService := service.NewRequestService(requestRepo, foodRepo, listings, logger)

	// Initialize HTTP handlers
	foodHandler := handler.NewFoodHandler(foodService, logger)
	requestHandler := handler.NewRequestHandler(requestService, logger)

	// Initialize router
	mux := router.New(foodHandler, requestHandler, verifier, logger)

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
			Msg("shutdown signal received, starting graceful shutdown")

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
