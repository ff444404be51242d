package whitespace

import (
	"fmt"
	"log/slog"

	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

// Metrics gathers every whitespace measurement for one page. The
// effective ratio is the raster ratio when a screenshot was analyzable,
// the DOM estimate otherwise.
type Metrics struct {
	DOMRatio     float64  `json:"dom_ratio"`
	RasterRatio  *float64 `json:"raster_ratio,omitempty"`
	ClutterScore int      `json:"clutter_score"`
	Grid         DensityGrid
	Spacing      SpacingChecks
}

// EffectiveRatio returns the raster ratio when available, the DOM
// estimate otherwise.
func (m *Metrics) EffectiveRatio() float64 {
	if m.RasterRatio != nil {
		return *m.RasterRatio
	}
	return m.DOMRatio
}

// SpacingChecks flags each spacing concern that falls below its
// adequacy threshold.
type SpacingChecks struct {
	HeadlineTight     bool `json:"headline_tight"`
	CTATight          bool `json:"cta_tight"`
	ContentBlockTight bool `json:"content_block_tight"`
	LineHeightTight   bool `json:"line_height_tight"`
}

// Spacing adequacy thresholds in CSS pixels (line height as a ratio of
// font size).
const (
	headlineMarginMin = 16.0
	ctaMarginMin      = 12.0
	blockMarginMin    = 10.0
	lineHeightMin     = 1.35
)

// Measure computes the full whitespace metrics for a snapshot. A missing
// or undecodable screenshot is not an error — the DOM estimate stands in.
func Measure(snap *snapshot.PageSnapshot) Metrics {
	m := Metrics{
		Grid:    AnalyzeDensity(snap.Elements, snap.Viewport, DefaultColumns, DefaultRows),
		Spacing: checkSpacing(snap.Elements),
	}
	m.DOMRatio = AnalyzeOverlapArea(snap.Elements, snap.Viewport).WhitespaceRatio

	if len(snap.Screenshot) > 0 {
		if stats, err := AnalyzeRaster(snap.Screenshot, DefaultLumaThreshold); err == nil {
			r := stats.Ratio
			m.RasterRatio = &r
		} else {
			slog.Debug("raster analysis unavailable, using DOM estimate", "error", err)
		}
	}

	m.ClutterScore = Clutter(&m)
	return m
}

// Clutter composes the 0-100 clutter estimate from the effective
// whitespace ratio band, the density band, and the spacing checks.
func Clutter(m *Metrics) int {
	ratio := m.EffectiveRatio()

	score := 0
	switch {
	case ratio <= 0.25:
		score += 60
	case ratio < 0.35:
		score += 40
	case ratio < 0.45:
		score += 20
	case ratio < 0.55:
		score += 5
	}

	switch maxCell := m.Grid.MaxCellCount(); {
	case maxCell > 50:
		score += 25
	case maxCell > 30:
		score += 15
	case maxCell > 20:
		score += 8
	}

	if m.Spacing.HeadlineTight {
		score -= 4
	}
	if m.Spacing.CTATight {
		score -= 5
	}
	if m.Spacing.ContentBlockTight {
		score -= 3
	}
	if m.Spacing.LineHeightTight {
		score -= 3
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Analyze runs whitespace measurement and scoring for one snapshot.
func Analyze(snap *snapshot.PageSnapshot) (models.CategoryResult, Metrics) {
	m := Measure(snap)
	score := 100 - m.ClutterScore

	var issues, recs []string
	ratio := m.EffectiveRatio()
	source := "estimated from element layout"
	if m.RasterRatio != nil {
		source = "measured from the rendered screenshot"
	}

	switch {
	case ratio <= 0.25:
		issues = append(issues, fmt.Sprintf("The page is very crowded: only %.0f%% whitespace (%s)", ratio*100, source))
		recs = append(recs, "Remove or consolidate content blocks to let the layout breathe")
	case ratio < 0.35:
		issues = append(issues, fmt.Sprintf("The page feels dense: %.0f%% whitespace (%s)", ratio*100, source))
		recs = append(recs, "Increase section padding and margins around key content")
	case ratio < 0.45:
		issues = append(issues, fmt.Sprintf("Whitespace is below the comfortable range at %.0f%% (%s)", ratio*100, source))
		recs = append(recs, "Add breathing room around the hero and primary call-to-action")
	}

	if maxCell := m.Grid.MaxCellCount(); maxCell > 30 {
		issues = append(issues, fmt.Sprintf("One area of the viewport packs %d elements", maxCell))
		recs = append(recs, "Spread dense element clusters across more vertical space")
	}

	if m.Spacing.HeadlineTight {
		issues = append(issues, "Headlines sit too close to surrounding content")
		recs = append(recs, "Give headlines more vertical margin")
	}
	if m.Spacing.CTATight {
		issues = append(issues, "Call-to-action buttons lack isolating space")
		recs = append(recs, "Add margin around buttons so they stand apart from nearby content")
	}
	if m.Spacing.ContentBlockTight {
		issues = append(issues, "Content blocks run together with little separation")
		recs = append(recs, "Increase spacing between paragraphs and sections")
	}
	if m.Spacing.LineHeightTight {
		issues = append(issues, "Body text line height is below the readable range")
		recs = append(recs, "Use a line height of at least 1.4x the font size for body text")
	}

	return models.Scored(score, issues, recs), m
}

// checkSpacing inspects margins and line heights of the roles that most
// affect perceived crowding.
func checkSpacing(records []snapshot.ElementRecord) SpacingChecks {
	var checks SpacingChecks

	var lineHeightSum, fontSizeSum float64
	textSamples := 0

	for i := range records {
		e := &records[i]
		if e.Hidden() {
			continue
		}
		margin := e.Style.MarginTop + e.Style.MarginBottom

		switch e.Tag {
		case "h1", "h2":
			if margin > 0 && margin < headlineMarginMin {
				checks.HeadlineTight = true
			}
		case "button":
			if margin > 0 && margin < ctaMarginMin {
				checks.CTATight = true
			}
		case "p", "li":
			if margin > 0 && margin < blockMarginMin {
				checks.ContentBlockTight = true
			}
			if e.Style.FontSize > 0 && e.Style.LineHeight > 0 {
				lineHeightSum += e.Style.LineHeight
				fontSizeSum += e.Style.FontSize
				textSamples++
			}
		}
		if e.Tag == "a" && (e.ClassContains("btn") || e.ClassContains("button") || e.ClassContains("cta")) {
			if margin > 0 && margin < ctaMarginMin {
				checks.CTATight = true
			}
		}
	}

	if textSamples > 0 && fontSizeSum > 0 {
		if lineHeightSum/fontSizeSum < lineHeightMin {
			checks.LineHeightTight = true
		}
	}

	return checks
}
