package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/ai"
	"github.com/cybercell/domainintel/internal/api"
	"github.com/cybercell/domainintel/internal/api/handlers"
	"github.com/cybercell/domainintel/internal/config"
	"github.com/cybercell/domainintel/internal/intel"
	"github.com/cybercell/domainintel/internal/metrics"
	"github.com/cybercell/domainintel/internal/normalize"
	"github.com/cybercell/domainintel/internal/risk"
	"github.com/cybercell/domainintel/internal/storage/postgres"
	"github.com/cybercell/domainintel/internal/storage/redis"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Database
	db, err := postgres.NewConnection(cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis cache for provider payloads
	cache := redis.NewClient(cfg.Redis.URL, cfg.Redis.CacheTTL)
	defer cache.Close()

	metricsCollector := metrics.NewCollector()

	// Text generation is optional and fixed for the process lifetime.
	var generator ai.TextGenerator = ai.Disabled{}
	if cfg.AIEnabled() {
		generator = ai.NewOpenAIGenerator(cfg.AI.APIKey, cfg.AI.Model)
		logger.Info("AI explanation enhancement enabled", zap.String("model", cfg.AI.Model))
	} else {
		logger.Info("AI explanation enhancement disabled, using deterministic explanations")
	}

	guardrail := ai.NewGuardrail(ai.DefaultGuardrailConfig())
	explainer := ai.NewExplainer(generator, guardrail, cfg.AI.MaxTokens, cfg.AI.Timeout, metricsCollector, logger)

	normalizer := normalize.New(logger)
	engine := risk.NewEngine(normalizer, risk.NewRules(cfg.RuleConfig()), explainer, logger)

	// Intel collectors
	collector := intel.NewCollector(
		intel.NewResolver(cfg.Intel.Timeout),
		intel.NewWHOISClient(),
		intel.NewSSLProbe(cfg.Intel.Timeout),
		intel.NewGeoIPClient(cfg.Intel.GeoIPEndpoint, cfg.Intel.Timeout),
		intel.NewBlacklistChecker(db),
		cache,
		metricsCollector,
		logger,
	)

	handler := handlers.NewHandler(db, collector, normalizer, engine, metricsCollector, cfg, logger)
	server := api.NewServer(cfg, handler, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("API server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
