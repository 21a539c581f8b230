package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-ordering/internal/catalog"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/database"
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

	path := flag.String("path", cfg.Seed.Path, "seed file path, relative to S3_PREFIX when S3 is enabled")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall time limit")
	flag.Parse()

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mongodb: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()
	store := catalog.NewMongoStore(mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), logger)

	var remote catalog.Loader
	if cfg.Seed.S3Enabled {
		remote, err = catalog.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 loader, falling back to local file system only")
			remote = nil
		}
	} else {
		logger.Info().Msg("using local file system for the menu seed (S3 disabled)")
	}
	loader := catalog.NewFallbackLoader(remote, catalog.NewFileLoader(logger), cfg.Seed.S3Prefix, logger)

	n, err := catalog.NewSeeder(store, loader, validation.New(), logger).Seed(ctx, *path)
	if err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	logger.Info().Int("items_inserted", n).Msg("menu seed finished")
	return nil
}
