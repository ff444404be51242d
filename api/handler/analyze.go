package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gkobilansky/landing-page-report/analyzer"
	"github.com/gkobilansky/landing-page-report/cache"
	"github.com/gkobilansky/landing-page-report/config"
	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/renderer"
	"github.com/gkobilansky/landing-page-report/webhook"
)

// Analyze returns a handler for POST /api/v1/analyze.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup when the client opted in via max_age.
//  3. Renderer.Capture → page snapshot          (records capture_ms)
//  4. Analyzer.Analyze → scored report          (records analysis_ms)
//  5. Optional webhook delivery, fill Timing, return 200.
func Analyze(rd *renderer.Renderer, an *analyzer.Analyzer, cc *cache.Cache, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults(
			cfg.Renderer.DefaultViewportWidth,
			cfg.Renderer.DefaultViewportHeight,
			int(cfg.Renderer.DefaultTimeout/time.Second),
		)

		// ── 2. Cache lookup ─────────────────────────────────────────
		cacheKey := cache.Key(req.URL, req.ViewportWidth, req.ViewportHeight, req.Categories)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				// Concurrent hits share the cached value; respond with a
				// copy so per-request fields never race.
				resp := *cached
				resp.CacheStatus = "hit"
				resp.Timing = models.TimingInfo{
					TotalMs: time.Since(totalStart).Milliseconds(),
				}
				c.JSON(http.StatusOK, &resp)
				return
			}
		}

		// ── 3. Capture ──────────────────────────────────────────────
		captureStart := time.Now()
		snap, err := rd.Capture(c.Request.Context(), &renderer.CaptureRequest{
			URL:            req.URL,
			ViewportWidth:  req.ViewportWidth,
			ViewportHeight: req.ViewportHeight,
			Timeout:        time.Duration(req.Timeout) * time.Second,
			Stealth:        req.Stealth,
			Screenshot:     *req.Screenshot,
			Headers:        req.Headers,
		})
		captureMs := time.Since(captureStart).Milliseconds()

		if err != nil {
			timing := models.TimingInfo{
				TotalMs:   time.Since(totalStart).Milliseconds(),
				CaptureMs: captureMs,
			}
			if req.WebhookURL != "" {
				webhook.DeliverAsync(req.WebhookURL, cfg.Webhook.Secret, cfg.Webhook.Timeout, &webhook.Event{
					Type:      webhook.EventAnalysisFailed,
					URL:       req.URL,
					Timestamp: time.Now().Unix(),
					Data:      gin.H{"error": err.Error()},
				})
			}
			respondError(c, err, timing)
			return
		}

		// ── 4. Analyze ──────────────────────────────────────────────
		analysisStart := time.Now()
		report := an.Analyze(c.Request.Context(), snap, req.Categories)
		analysisMs := time.Since(analysisStart).Milliseconds()

		resp := &models.AnalyzeResponse{
			Success: true,
			Report:  report,
			Timing: models.TimingInfo{
				TotalMs:    time.Since(totalStart).Milliseconds(),
				CaptureMs:  captureMs,
				AnalysisMs: analysisMs,
			},
		}

		// ── 5. Cache store + webhook ────────────────────────────────
		if cc != nil && req.MaxAge > 0 {
			stored := *resp
			stored.CacheStatus = ""
			cc.Set(cacheKey, &stored)
			resp.CacheStatus = "miss"
		}
		if req.WebhookURL != "" {
			webhook.DeliverAsync(req.WebhookURL, cfg.Webhook.Secret, cfg.Webhook.Timeout, &webhook.Event{
				Type:      webhook.EventAnalysisCompleted,
				URL:       req.URL,
				Timestamp: time.Now().Unix(),
				Data:      report,
			})
		}

		c.JSON(http.StatusOK, resp)
	}
}

// respondError maps an AnalysisError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error, timing models.TimingInfo) {
	analysisErr, ok := err.(*models.AnalysisError)
	if !ok {
		analysisErr = models.NewAnalysisError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(analysisErr), models.AnalyzeResponse{
		Success: false,
		Error:   analysisErr.ToDetail(),
		Timing:  timing,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AnalysisError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
