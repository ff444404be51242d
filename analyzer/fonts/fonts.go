// Package fonts audits typography hygiene: family sprawl, size sprawl,
// undersized body text, and weak heading hierarchy, all read from
// captured computed styles.
package fonts

import (
	"fmt"
	"math"
	"strings"

	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

const (
	maxComfortableFamilies = 2
	maxComfortableSizes    = 5
	minBodyFontSize        = 14.0
	minHeadingRatio        = 1.2
)

// genericFamilies are CSS fallback keywords, not real typeface choices.
var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "inherit": true, "initial": true,
}

var bodyTags = map[string]bool{
	"p": true, "li": true, "span": true, "a": true, "td": true,
	"label": true, "blockquote": true,
}

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true,
}

// Analyze scores font hygiene from element computed styles. Pages with
// no styled text elements report a null score: the category does not
// apply.
func Analyze(snap *snapshot.PageSnapshot) models.CategoryResult {
	families := make(map[string]bool)
	sizes := make(map[int]bool)
	var minBody, maxHeading float64
	styledText := 0

	for i := range snap.Elements {
		e := &snap.Elements[i]
		if e.Hidden() || strings.TrimSpace(e.Text) == "" {
			continue
		}
		if e.Style.FontFamily == "" && e.Style.FontSize == 0 {
			continue
		}
		styledText++

		if fam := primaryFamily(e.Style.FontFamily); fam != "" {
			families[fam] = true
		}
		if e.Style.FontSize > 0 {
			sizes[int(math.Round(e.Style.FontSize))] = true
			if bodyTags[e.Tag] {
				if minBody == 0 || e.Style.FontSize < minBody {
					minBody = e.Style.FontSize
				}
			}
			if headingTags[e.Tag] && e.Style.FontSize > maxHeading {
				maxHeading = e.Style.FontSize
			}
		}
	}

	if styledText == 0 {
		return models.NotApplicable("No styled text elements were captured")
	}

	score := 100
	var issues, recs []string

	if extra := len(families) - maxComfortableFamilies; extra > 0 {
		score -= 15 * extra
		issues = append(issues, fmt.Sprintf("The page mixes %d font families", len(families)))
		recs = append(recs, "Limit the design to two typefaces: one for headings, one for body text")
	}

	if len(sizes) > maxComfortableSizes {
		score -= 10
		issues = append(issues, fmt.Sprintf("The page uses %d distinct font sizes", len(sizes)))
		recs = append(recs, "Consolidate to a small type scale (e.g. 4-5 sizes)")
	}

	if minBody > 0 && minBody < minBodyFontSize {
		score -= 15
		issues = append(issues, fmt.Sprintf("Body text as small as %.0fpx was found", minBody))
		recs = append(recs, "Keep body text at 14px or larger for readability")
	}

	if maxHeading > 0 && minBody > 0 && maxHeading/minBody < minHeadingRatio {
		score -= 10
		issues = append(issues, "Headings are barely larger than body text")
		recs = append(recs, "Make headings at least 1.2x the body font size to establish hierarchy")
	}

	if score < 0 {
		score = 0
	}
	return models.Scored(score, issues, recs)
}

// primaryFamily extracts the first concrete family from a font-family
// stack, skipping generic fallback keywords.
func primaryFamily(stack string) string {
	for _, part := range strings.Split(stack, ",") {
		fam := strings.ToLower(strings.Trim(strings.TrimSpace(part), `"'`))
		if fam == "" || genericFamilies[fam] {
			continue
		}
		return fam
	}
	return ""
}
