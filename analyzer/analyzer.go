// Package analyzer orchestrates the category analyzers over one page
// snapshot and aggregates their results into an overall report.
package analyzer

import (
	"context"
	"log/slog"
	"math"

	"github.com/gkobilansky/landing-page-report/analyzer/cta"
	"github.com/gkobilansky/landing-page-report/analyzer/fonts"
	"github.com/gkobilansky/landing-page-report/analyzer/images"
	"github.com/gkobilansky/landing-page-report/analyzer/pagespeed"
	"github.com/gkobilansky/landing-page-report/analyzer/socialproof"
	"github.com/gkobilansky/landing-page-report/analyzer/whitespace"
	"github.com/gkobilansky/landing-page-report/config"
	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

// Analyzer runs the category analyzers. All category passes are pure
// functions over the snapshot, so one Analyzer may serve any number of
// concurrent analyses; only the page-speed collector touches the network.
type Analyzer struct {
	dicts      *dict.Dictionaries
	speed      *pagespeed.Collector
	speedFetch bool
}

// New builds an Analyzer with the default dictionaries.
func New(cfg config.AnalyzerConfig) *Analyzer {
	return &Analyzer{
		dicts:      dict.Default(),
		speed:      pagespeed.NewCollector(cfg.SpeedTimeout),
		speedFetch: cfg.SpeedFetch,
	}
}

// Analyze produces the full report for one snapshot. Failures are
// isolated per category: a panicking analyzer scores 0 with an error
// issue and never aborts its siblings.
func (a *Analyzer) Analyze(ctx context.Context, snap *snapshot.PageSnapshot, categories []string) *models.Report {
	if len(categories) == 0 {
		categories = models.AllCategories
	}

	report := &models.Report{
		URL:        snap.URL,
		FinalURL:   snap.FinalURL,
		Title:      snap.Title,
		Categories: make(map[string]models.CategoryResult, len(categories)),
	}

	for _, cat := range categories {
		switch cat {
		case models.CategoryCTA:
			report.Categories[cat] = guard(cat, func() models.CategoryResult {
				res, detail := cta.Analyze(snap, a.dicts)
				report.CTA = detail
				return res
			})
		case models.CategorySocialProof:
			report.Categories[cat] = guard(cat, func() models.CategoryResult {
				res, detail := socialproof.Analyze(snap, a.dicts)
				report.SocialProof = detail
				return res
			})
		case models.CategoryWhitespace:
			report.Categories[cat] = guard(cat, func() models.CategoryResult {
				res, _ := whitespace.Analyze(snap)
				return res
			})
		case models.CategoryFonts:
			report.Categories[cat] = guard(cat, func() models.CategoryResult {
				return fonts.Analyze(snap)
			})
		case models.CategoryImages:
			report.Categories[cat] = guard(cat, func() models.CategoryResult {
				return images.Analyze(snap)
			})
		case models.CategoryPageSpeed:
			report.Categories[cat] = guard(cat, func() models.CategoryResult {
				if !a.speedFetch {
					return models.NotApplicable("Page speed measurement is disabled")
				}
				return pagespeed.Analyze(ctx, a.speed, speedURL(snap))
			})
		default:
			slog.Warn("unknown analysis category requested", "category", cat)
		}
	}

	report.OverallScore = Overall(report.Categories)
	return report
}

// Overall averages the applicable category scores. Null (not-applicable)
// categories are excluded from both numerator and denominator; if every
// category was inapplicable the overall score is null too.
func Overall(categories map[string]models.CategoryResult) *int {
	sum, n := 0, 0
	for _, res := range categories {
		if res.Score == nil {
			continue
		}
		sum += *res.Score
		n++
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(n)))
	return &avg
}

// guard converts a panicking category analyzer into a terminal zero
// score so sibling categories still report.
func guard(category string, fn func() models.CategoryResult) (res models.CategoryResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("category analyzer panicked", "category", category, "panic", r)
			res = models.Scored(0, []string{category + " analysis failed due to an error"}, nil)
		}
	}()
	return fn()
}

// speedURL prefers the post-redirect URL for timing so we measure the
// document a visitor actually receives.
func speedURL(snap *snapshot.PageSnapshot) string {
	if snap.FinalURL != "" {
		return snap.FinalURL
	}
	return snap.URL
}
