package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-ordering/internal/catalog"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/database"
	"restaurant-ordering/internal/events"
	"restaurant-ordering/internal/handler"
	"restaurant-ordering/internal/identity"
	"restaurant-ordering/internal/repository"
	"restaurant-ordering/internal/router"
	"restaurant-ordering/internal/service"
	"restaurant-ordering/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Auth.Validate(); err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting restaurant ordering API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Order ledger
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Menu catalog
	mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()
	menuStore := catalog.NewMongoStore(mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), logger)

	menuCache := catalog.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to redis, serving the menu uncached")
		} else {
			defer redisClient.Close()
			menuCache = catalog.NewRedisCache(redisClient, cfg.Redis.TTL)
		}
	}

	publisher := events.NewNoopPublisher()
	if cfg.Events.Enabled {
		p, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to message broker, order events disabled")
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	validator := validation.New()

	// Repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Services
	menuService := service.NewMenuService(menuStore, menuCache, validator, logger)
	orderService := service.NewOrderService(orderRepo, menuStore, validator, publisher, logger)

	// Identity
	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	resolver := identity.NewResolver(userRepo, logger)

	// HTTP
	menuHandler := handler.NewMenuHandler(menuService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	mux := router.New(menuHandler, orderHandler, verifier, resolver, cfg.Auth.AdminAPIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
