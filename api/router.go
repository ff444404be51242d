package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gkobilansky/landing-page-report/analyzer"
	"github.com/gkobilansky/landing-page-report/api/handler"
	"github.com/gkobilansky/landing-page-report/api/middleware"
	"github.com/gkobilansky/landing-page-report/cache"
	"github.com/gkobilansky/landing-page-report/config"
	"github.com/gkobilansky/landing-page-report/renderer"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(rd *renderer.Renderer, an *analyzer.Analyzer, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(rd, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Analyze a live page (capture + score).
	protected.POST("/analyze", handler.Analyze(rd, an, cc, cfg))

	// Score a pre-captured snapshot (no browser).
	protected.POST("/analyze/snapshot", handler.AnalyzeSnapshot(an))

	return r
}
