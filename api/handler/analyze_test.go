package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gkobilansky/landing-page-report/cache"
	"github.com/gkobilansky/landing-page-report/config"
	"github.com/gkobilansky/landing-page-report/models"
)

// The cache-hit path returns before the renderer is touched, so these
// tests run without a browser.

func TestAnalyze_CacheHitDoesNotMutateEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Renderer: config.RendererConfig{
			DefaultTimeout:        30 * time.Second,
			MaxTimeout:            120 * time.Second,
			DefaultViewportWidth:  1366,
			DefaultViewportHeight: 768,
		},
	}

	cc := cache.New(16)
	key := cache.Key("https://example.com", 1366, 768, models.AllCategories)
	score := 85
	cc.Set(key, &models.AnalyzeResponse{
		Success: true,
		Report:  &models.Report{URL: "https://example.com", OverallScore: &score},
	})

	r := gin.New()
	r.POST("/api/v1/analyze", Analyze(nil, nil, cc, cfg))

	// Two hits in a row: each response reports "hit", and neither leaks
	// its per-request fields into the shared cached value.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
			strings.NewReader(`{"url":"https://example.com","max_age":60000}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp models.AnalyzeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.CacheStatus != "hit" {
			t.Errorf("cache status = %q, want hit", resp.CacheStatus)
		}
		if resp.Report == nil || resp.Report.OverallScore == nil || *resp.Report.OverallScore != 85 {
			t.Errorf("cached report not returned intact: %+v", resp.Report)
		}
	}

	stored, hit := cc.Get(key, 60000)
	if !hit {
		t.Fatal("entry disappeared from the cache")
	}
	if stored.CacheStatus != "" {
		t.Errorf("cache hits mutated the shared entry: CacheStatus = %q", stored.CacheStatus)
	}
	if stored.Timing.TotalMs != 0 {
		t.Errorf("cache hits mutated the shared entry: TotalMs = %d", stored.Timing.TotalMs)
	}
}
