package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitegrade/analyzer"
	"github.com/use-agent/sitegrade/api/handler"
	"github.com/use-agent/sitegrade/api/middleware"
	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(an *analyzer.Analyzer, sessions *session.Store, results store.ResultStore, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(sessions, results, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Analysis lifecycle
	protected.POST("/analyze", handler.Analyze(an))
	protected.GET("/analyze/:id/progress", handler.Progress(sessions))
	protected.GET("/analyze/:id/result", handler.Result(sessions, results))
	protected.GET("/analyze/:id/export", handler.Export(sessions, results))

	// Recent analyses listing
	protected.GET("/analyses", handler.ListAnalyses(results))

	return r
}
