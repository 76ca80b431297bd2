package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/config"
	"github.com/cybercell/domainintel/internal/intel"
	"github.com/cybercell/domainintel/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ingestor := intel.NewIngestor(db, cfg.Intel.FeedURL, cfg.Intel.FeedLimit, cfg.Intel.FeedInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go ingestor.Run(ctx)

	logger.Info("Threat feed ingestor started",
		zap.String("feed", cfg.Intel.FeedURL),
		zap.Duration("interval", cfg.Intel.FeedInterval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down ingestor...")
	cancel()
	logger.Info("Ingestor exited")
}
