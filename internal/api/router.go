package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/api/handlers"
	"github.com/cybercell/domainintel/internal/api/middleware"
	"github.com/cybercell/domainintel/internal/config"
)

type Server struct {
	Router *gin.Engine
}

func NewServer(cfg *config.Config, h *handlers.Handler, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	server := &Server{Router: router}
	server.setupRoutes(cfg, h)
	return server
}

func (s *Server) setupRoutes(cfg *config.Config, h *handlers.Handler) {
	s.Router.GET("/health", h.HealthCheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	auth := s.Router.Group("/api/v1/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
	}

	// API routes (protected)
	api := s.Router.Group("/api/v1")
	api.Use(middleware.AuthRequired(cfg.Auth.JWTSecret))

	// Analyses hit several external providers; keep them rate limited.
	api.POST("/domains/analyze", middleware.RateLimit(cfg.Intel.AnalyzeRPM), h.Analyze)
	api.GET("/scans", h.ListScans)
	api.GET("/scans/:id", h.GetScan)
	api.GET("/intel/stats", h.IntelStats)
}
