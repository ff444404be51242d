package pagespeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gkobilansky/landing-page-report/models"
)

// Band thresholds for the deduction table.
const (
	ttfbSlow    = 800 * time.Millisecond
	ttfbOK      = 400 * time.Millisecond
	totalSlow   = 3 * time.Second
	totalOK     = 1500 * time.Millisecond
	htmlHeavy   = 1 << 20 // 1 MB
	scriptsMany = 40
	scriptsSome = 20
	domHeavy    = 3000
)

// Analyze fetches the page and scores the timings. A failed fetch is
// graceful degradation, not an error: the category reports null and is
// excluded from the overall average.
func Analyze(ctx context.Context, c *Collector, url string) models.CategoryResult {
	if url == "" {
		return models.NotApplicable("No URL available for timing measurement")
	}
	t, err := c.Collect(ctx, url)
	if err != nil {
		slog.Debug("pagespeed fetch failed, skipping category", "url", url, "error", err)
		return models.NotApplicable("Page timing could not be measured")
	}
	return Score(t)
}

// Score applies the deduction bands to one set of timings.
func Score(t *Timings) models.CategoryResult {
	score := 100
	var issues, recs []string

	switch {
	case t.TTFB > ttfbSlow:
		score -= 20
		issues = append(issues, fmt.Sprintf("Time to first byte is slow: %dms", t.TTFB.Milliseconds()))
		recs = append(recs, "Cut server response time with caching or a CDN")
	case t.TTFB > ttfbOK:
		score -= 10
		issues = append(issues, fmt.Sprintf("Time to first byte could be faster: %dms", t.TTFB.Milliseconds()))
		recs = append(recs, "Enable edge caching for the landing page document")
	}

	switch {
	case t.Total > totalSlow:
		score -= 25
		issues = append(issues, fmt.Sprintf("The document took %.1fs to download", t.Total.Seconds()))
		recs = append(recs, "Reduce page weight and enable compression")
	case t.Total > totalOK:
		score -= 10
		issues = append(issues, fmt.Sprintf("Document download took %.1fs", t.Total.Seconds()))
		recs = append(recs, "Trim render-blocking resources from the document")
	}

	if t.HTMLBytes > htmlHeavy {
		score -= 15
		issues = append(issues, fmt.Sprintf("The HTML document is %d KB", t.HTMLBytes/1024))
		recs = append(recs, "Move inline data out of the document and minify the HTML")
	}

	switch {
	case t.Scripts > scriptsMany:
		score -= 15
		issues = append(issues, fmt.Sprintf("The page loads %d external scripts", t.Scripts))
		recs = append(recs, "Bundle scripts and drop unused third-party tags")
	case t.Scripts > scriptsSome:
		score -= 5
		issues = append(issues, fmt.Sprintf("The page loads %d external scripts", t.Scripts))
		recs = append(recs, "Audit third-party scripts for ones you can remove")
	}

	if t.DOMNodes > domHeavy {
		score -= 10
		issues = append(issues, fmt.Sprintf("The DOM contains roughly %d elements", t.DOMNodes))
		recs = append(recs, "Simplify the markup; deep DOM trees slow down rendering")
	}

	if score < 0 {
		score = 0
	}
	return models.Scored(score, issues, recs)
}
