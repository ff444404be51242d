package cta

import (
	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/signal"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

// Analyze runs the full CTA pipeline over one snapshot:
// classify → dedupe → select primary → score.
func Analyze(snap *snapshot.PageSnapshot, d *dict.Dictionaries) (models.CategoryResult, *models.CTADetail) {
	raw := Classify(snap.Elements, snap.Viewport, d)
	signals := signal.DedupeCTAs(raw)
	primary := SelectPrimary(signals, d)
	result := Score(signals, primary)

	if signals == nil {
		signals = []signal.CTA{}
	}
	return result, &models.CTADetail{Signals: signals, Primary: primary}
}
