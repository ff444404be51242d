package models

import "github.com/gkobilansky/landing-page-report/snapshot"

// Category names accepted in AnalyzeRequest.Categories and used as keys
// in AnalyzeResponse.Categories.
const (
	CategoryCTA         = "cta"
	CategoryWhitespace  = "whitespace"
	CategorySocialProof = "social_proof"
	CategoryFonts       = "fonts"
	CategoryImages      = "images"
	CategoryPageSpeed   = "page_speed"
)

// AllCategories lists every analyzer in report order.
var AllCategories = []string{
	CategoryCTA, CategoryWhitespace, CategorySocialProof,
	CategoryFonts, CategoryImages, CategoryPageSpeed,
}

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	// URL is the landing page to analyze. Required.
	URL string `json:"url" binding:"required,url"`

	// ViewportWidth/ViewportHeight set the capture viewport in CSS pixels.
	// Defaults come from the service configuration. The fold line is
	// ViewportHeight.
	ViewportWidth  int `json:"viewport_width,omitempty" binding:"omitempty,min=320,max=3840"`
	ViewportHeight int `json:"viewport_height,omitempty" binding:"omitempty,min=320,max=2400"`

	// Timeout is the maximum duration in seconds for capture + analysis.
	// Defaults to the configured capture timeout. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// Stealth enables anti-bot-detection evasions during capture.
	Stealth bool `json:"stealth,omitempty"`

	// Categories restricts the analysis to a subset of analyzers.
	// Empty means all.
	Categories []string `json:"categories,omitempty"`

	// Screenshot controls whether a full-page screenshot is captured for
	// raster-based whitespace analysis. Default: true.
	Screenshot *bool `json:"screenshot,omitempty"`

	// MaxAge enables the response cache: accept a cached report younger
	// than this many milliseconds. 0 disables caching.
	MaxAge int `json:"max_age,omitempty"`

	// WebhookURL, when set, receives the completed report as an
	// HMAC-signed POST in addition to the synchronous response.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`

	// Headers are extra HTTP headers applied during capture.
	Headers map[string]string `json:"headers,omitempty"`
}

// Defaults fills unset fields from the service's configured viewport and
// capture timeout (in seconds).
func (r *AnalyzeRequest) Defaults(viewportWidth, viewportHeight, timeoutSec int) {
	if r.ViewportWidth == 0 {
		r.ViewportWidth = viewportWidth
	}
	if r.ViewportHeight == 0 {
		r.ViewportHeight = viewportHeight
	}
	if r.Timeout == 0 {
		r.Timeout = timeoutSec
	}
	if r.Screenshot == nil {
		t := true
		r.Screenshot = &t
	}
	if len(r.Categories) == 0 {
		r.Categories = AllCategories
	}
}

// SnapshotAnalyzeRequest is the payload for POST /api/v1/analyze/snapshot:
// a pre-captured snapshot supplied by an external renderer, analyzed
// without touching the browser.
type SnapshotAnalyzeRequest struct {
	Snapshot   snapshot.PageSnapshot `json:"snapshot" binding:"required"`
	Categories []string              `json:"categories,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *SnapshotAnalyzeRequest) Defaults() {
	if len(r.Categories) == 0 {
		r.Categories = AllCategories
	}
}
