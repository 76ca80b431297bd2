package handlers

import (
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/config"
	"github.com/cybercell/domainintel/internal/intel"
	"github.com/cybercell/domainintel/internal/metrics"
	"github.com/cybercell/domainintel/internal/normalize"
	"github.com/cybercell/domainintel/internal/risk"
	"github.com/cybercell/domainintel/internal/storage/postgres"
)

type Handler struct {
	db         *postgres.DB
	collector  *intel.Collector
	normalizer *normalize.Normalizer
	engine     *risk.Engine
	metrics    *metrics.Collector
	config     *config.Config
	logger     *zap.Logger
}

func NewHandler(db *postgres.DB, collector *intel.Collector, normalizer *normalize.Normalizer, engine *risk.Engine, metrics *metrics.Collector, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		db:         db,
		collector:  collector,
		normalizer: normalizer,
		engine:     engine,
		metrics:    metrics,
		config:     cfg,
		logger:     logger,
	}
}
