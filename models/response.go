package models

import "github.com/gkobilansky/landing-page-report/signal"

// CategoryResult is one analyzer's verdict. Score is nil when the
// category does not apply to the page (e.g. zero images) — a nil score is
// excluded from the overall average and is NOT the same as zero.
type CategoryResult struct {
	Score           *int     `json:"score"` // 0-100, or null = not applicable
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Scored builds an applicable CategoryResult with the given score.
func Scored(score int, issues, recommendations []string) CategoryResult {
	if issues == nil {
		issues = []string{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}
	return CategoryResult{Score: &score, Issues: issues, Recommendations: recommendations}
}

// NotApplicable builds a null-score CategoryResult.
func NotApplicable(note string) CategoryResult {
	res := CategoryResult{Score: nil, Issues: []string{}, Recommendations: []string{}}
	if note != "" {
		res.Issues = append(res.Issues, note)
	}
	return res
}

// CTADetail carries the full deduplicated CTA signal set plus the
// selected primary, alongside the category score.
type CTADetail struct {
	Signals []signal.CTA `json:"signals"`
	Primary *signal.CTA  `json:"primary,omitempty"`
}

// SocialProofDetail carries the deduplicated social proof signal set.
type SocialProofDetail struct {
	Signals []signal.SocialProof `json:"signals"`
}

// Report is the complete analysis result for one page.
type Report struct {
	URL          string                    `json:"url"`
	FinalURL     string                    `json:"final_url,omitempty"`
	Title        string                    `json:"title,omitempty"`
	OverallScore *int                      `json:"overall_score"` // null when every category was inapplicable
	Categories   map[string]CategoryResult `json:"categories"`
	CTA          *CTADetail                `json:"cta,omitempty"`
	SocialProof  *SocialProofDetail        `json:"social_proof,omitempty"`
}

// TimingInfo provides duration breakdowns for the operation.
type TimingInfo struct {
	TotalMs    int64 `json:"total_ms"`
	CaptureMs  int64 `json:"capture_ms,omitempty"`
	AnalysisMs int64 `json:"analysis_ms,omitempty"`
}

// AnalyzeResponse is the response for POST /api/v1/analyze.
type AnalyzeResponse struct {
	Success bool    `json:"success"`
	Report  *Report `json:"report,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// PoolStats reports renderer page pool utilisation.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool"`
	Version   string    `json:"version"`
}
