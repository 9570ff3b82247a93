package main

import (
	"context"
	"log"

	"booksearch/internal/config"
	"booksearch/internal/platform/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, flush, err := logging.New(cfg.LogLevel, cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer flush()

	app, err := NewApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize api server", zap.Error(err))
		flush()
		log.Fatal(err)
	}

	if err := app.Run(); err != nil {
		logger.Error("api server exited with error", zap.Error(err))
	}
}
