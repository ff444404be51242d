package cta

import (
	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/signal"
)

// SelectPrimary picks the page's main conversion target as a weighted
// sum over independent factors. Ties break on input order: the first
// maximal signal wins, so identical inputs always give identical output.
// A page can have CTAs and still no primary: when no signal accumulates
// positive weight (header nav links only, say) nothing qualifies.
func SelectPrimary(signals []signal.CTA, d *dict.Dictionaries) *signal.CTA {
	best := 0
	bestIdx := -1
	for i := range signals {
		w := primaryWeight(&signals[i], d)
		if w > best {
			best = w
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil
	}
	return &signals[bestIdx]
}

func primaryWeight(s *signal.CTA, d *dict.Dictionaries) int {
	w := 0

	// Conversion-intent bonuses.
	if s.Context == signal.ContextHero {
		w += 25
	}
	if s.Type == signal.CTAFormSubmit {
		w += 20
	}
	if dict.ContainsAny(s.Text, d.Checkout) {
		w += 20
	}

	// Explicit primary styling.
	if s.Type == signal.CTAPrimary {
		w += 30
	}

	if s.AboveFold {
		w += 15
	}

	switch dict.Strength(s.ActionStrength) {
	case dict.StrengthStrong:
		w += 15
	case dict.StrengthMedium:
		w += 7
	}

	switch s.Visibility {
	case signal.LevelHigh:
		w += 10
	case signal.LevelMedium:
		w += 4
	}

	switch s.Context {
	case signal.ContextForm:
		w += 8
	case signal.ContextContent:
		w += 5
	}

	switch s.Urgency {
	case signal.LevelHigh:
		w += 8
	case signal.LevelMedium:
		w += 4
	}

	// Header navigation links rarely are the conversion target.
	if s.Context == signal.ContextHeader && s.Type == signal.CTATextLink {
		w -= 15
	}

	return w
}

// Score computes the CTA category result from the deduplicated signal
// set and the selected primary. Starts at 100 and applies fixed
// deductions; the final score is clamped to [0,100].
//
// Zero CTAs intentionally stacks the "none at all" and "none above the
// fold" penalties before clamping; see the scoring table.
func Score(signals []signal.CTA, primary *signal.CTA) models.CategoryResult {
	score := 100
	var issues, recs []string

	aboveFold := 0
	mobileOK := 0
	for i := range signals {
		if signals[i].AboveFold {
			aboveFold++
		}
		if signals[i].MobileOptimized {
			mobileOK++
		}
	}

	if len(signals) == 0 {
		score -= 50
		issues = append(issues, "No call-to-action elements found on the page")
		recs = append(recs, "Add a clear, prominent call-to-action button to the page")
	}

	if aboveFold == 0 {
		score -= 50
		issues = append(issues, "No call-to-action is visible above the fold")
		recs = append(recs, "Place your main call-to-action within the first viewport")
	}

	if len(signals) > 0 && primary == nil {
		score -= 30
		issues = append(issues, "No clear primary call-to-action could be identified")
		recs = append(recs, "Make one call-to-action visually dominant over the others")
	}

	if aboveFold > 4 {
		score -= 20
		issues = append(issues, "Too many competing calls-to-action above the fold")
		recs = append(recs, "Reduce above-the-fold CTAs to one primary and at most one secondary action")
	}

	if primary != nil {
		if dict.Strength(primary.ActionStrength) == dict.StrengthWeak {
			score -= 15
			issues = append(issues, "The primary call-to-action uses weak action words")
			recs = append(recs, "Use a specific action verb like \"Get Started\" or \"Start Free Trial\"")
		}
		if primary.Visibility == signal.LevelLow {
			score -= 20
			issues = append(issues, "The primary call-to-action has low visual prominence")
			recs = append(recs, "Give the primary button a solid, contrasting background color")
		}
		if !primary.HasValueProposition {
			score -= 10
			issues = append(issues, "The primary call-to-action does not communicate a value proposition")
			recs = append(recs, "Pair the button with a benefit, e.g. \"Start Free — no credit card required\"")
		}
		if primary.Context == signal.ContextFooter {
			score -= 25
			issues = append(issues, "The primary call-to-action is buried in the footer")
			recs = append(recs, "Move the primary call-to-action into the hero section")
		}
	}

	if len(signals) > 0 && float64(mobileOK)/float64(len(signals)) < 0.8 {
		score -= 10
		issues = append(issues, "Several calls-to-action are smaller than the 44px mobile tap target")
		recs = append(recs, "Resize buttons to at least 44x44px for touch devices")
	}

	// Bonuses.
	if primary != nil {
		if primary.HasGuarantee {
			score += 5
		}
		if primary.HasValueProposition && primary.Context == signal.ContextHero {
			score += 5
		}
	}

	return models.Scored(clamp(score), issues, recs)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
