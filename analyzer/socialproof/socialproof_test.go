package socialproof

import (
	"testing"

	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/signal"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

var vp = snapshot.Viewport{Width: 1366, Height: 768}

func testimonialCard() snapshot.ElementRecord {
	return snapshot.ElementRecord{
		Tag:     "div",
		Classes: []string{"testimonial-card"},
		Text:    `"This product doubled our conversion rate in two weeks. Absolutely recommended." — Jane Doe, CEO at Acme`,
		Attrs:   map[string]string{"hasImg": "true"},
		Rect:    snapshot.Rect{Top: 400, Left: 100, Width: 400, Height: 180},
		Style:   snapshot.ComputedStyle{BackgroundColor: "rgb(245, 245, 245)"},
	}
}

func TestClassify_Structural(t *testing.T) {
	d := dict.Default()

	records := []snapshot.ElementRecord{
		testimonialCard(),
		{
			Tag:   "blockquote",
			Text:  "The onboarding was the smoothest we have ever experienced as a team.",
			Rect:  snapshot.Rect{Top: 900, Width: 500, Height: 100},
			Style: snapshot.ComputedStyle{},
		},
		{
			Tag:     "div",
			Classes: []string{"rating-stars"},
			Text:    "4.8 out of 5 stars",
			Rect:    snapshot.Rect{Top: 200, Width: 150, Height: 24},
			Style:   snapshot.ComputedStyle{},
		},
	}

	signals := Classify(records, vp, d)
	if len(signals) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(signals))
	}

	card := signals[0]
	if card.Type != signal.ProofTestimonial {
		t.Errorf("testimonial class should map to testimonial, got %s", card.Type)
	}
	if !card.HasName {
		t.Error("attribution line should set HasName")
	}
	if !card.HasCompany {
		t.Error("role/company mention should set HasCompany")
	}
	if !card.HasImage {
		t.Error("hasImg attribute should set HasImage")
	}

	if signals[1].Type != signal.ProofTestimonial {
		t.Errorf("blockquote should map to testimonial, got %s", signals[1].Type)
	}
	if signals[2].Type != signal.ProofRating {
		t.Errorf("rating class should map to rating, got %s", signals[2].Type)
	}
	if !signals[2].HasRating {
		t.Error("rating signal should set HasRating")
	}
}

func TestClassify_RecoveryPass(t *testing.T) {
	d := dict.Default()

	records := []snapshot.ElementRecord{
		// Customer-count claim in an unclassed div.
		{
			Tag:   "div",
			Text:  "Trusted by 12,000+ customers worldwide",
			Rect:  snapshot.Rect{Top: 600, Width: 400, Height: 30},
			Style: snapshot.ComputedStyle{},
		},
		// Long quoted snippet.
		{
			Tag:   "p",
			Text:  `"We switched from our previous vendor and never looked back, support is stellar."`,
			Rect:  snapshot.Rect{Top: 1000, Width: 500, Height: 60},
			Style: snapshot.ComputedStyle{},
		},
		// Plain marketing copy: not proof.
		{
			Tag:   "p",
			Text:  "Our platform helps you design beautiful landing pages.",
			Rect:  snapshot.Rect{Top: 1100, Width: 500, Height: 60},
			Style: snapshot.ComputedStyle{},
		},
	}

	signals := Classify(records, vp, d)
	if len(signals) != 2 {
		t.Fatalf("expected 2 recovered signals, got %d", len(signals))
	}
	if signals[0].Type != signal.ProofCustomerCount {
		t.Errorf("count claim should map to customer-count, got %s", signals[0].Type)
	}
	if signals[1].Type != signal.ProofTestimonial {
		t.Errorf("long quote should map to testimonial, got %s", signals[1].Type)
	}
}

func TestClassify_CustomerClassRequiresNumber(t *testing.T) {
	d := dict.Default()

	records := []snapshot.ElementRecord{
		{
			Tag:     "div",
			Classes: []string{"customer-logos"},
			Text:    "Companies that rely on us every day",
			Rect:    snapshot.Rect{Top: 500, Width: 600, Height: 80},
			Style:   snapshot.ComputedStyle{},
		},
	}

	if signals := Classify(records, vp, d); len(signals) != 0 {
		t.Errorf("count-ish class without a number claim should not classify, got %d signals", len(signals))
	}
}

func TestCredibility(t *testing.T) {
	full := signal.SocialProof{
		Text:       "A testimonial body that is long enough to sit inside the comfortable range for detail, roughly in the middle of it.",
		HasName:    true,
		HasCompany: true,
		HasImage:   true,
		HasRating:  true,
	}
	// 50 + 15 + 20 + 10 + 15 + 10 (length 100-500) = 120 → clamp 100.
	if got := Credibility(&full); got != 100 {
		t.Errorf("fully-attributed proof = %d, want 100", got)
	}

	thin := signal.SocialProof{Text: "Great!"}
	// 50 − 20 (under 20 chars) = 30.
	if got := Credibility(&thin); got != 30 {
		t.Errorf("thin proof = %d, want 30", got)
	}

	fake := signal.SocialProof{Text: "Lorem ipsum dolor sit amet consectetur", Suspicious: true}
	// 50 − 30 = 20.
	if got := Credibility(&fake); got != 20 {
		t.Errorf("suspicious proof = %d, want 20", got)
	}
}

func TestScore_ZeroSignals(t *testing.T) {
	res := Score(nil)

	if res.Score == nil || *res.Score != 0 {
		t.Fatalf("zero signals should score 0, got %v", res.Score)
	}
	if len(res.Issues) != 1 || res.Issues[0] != "No social proof elements found on the page" {
		t.Errorf("unexpected issues: %v", res.Issues)
	}
}

func TestScore_Deductions(t *testing.T) {
	// One below-fold testimonial without attribution: every structural
	// deduction applies.
	signals := []signal.SocialProof{
		{Text: "Really solid product that we enjoy using daily", Type: signal.ProofTestimonial, Credibility: 50},
	}
	res := Score(signals)

	// 100 − 30 (none above fold) − 20 (one type) − 25 (no high credibility)
	// − 15 (unattributed testimonials) − 10 (no trust/cert) − 10 (no count)
	// − 5 (no hero proof) = 0 after clamping at −15.
	if res.Score == nil || *res.Score != 0 {
		t.Fatalf("score = %v, want 0 (issues: %v)", res.Score, res.Issues)
	}
}

func TestAnalyze_MergesDOMAndAnnotations(t *testing.T) {
	d := dict.Default()
	snap := &snapshot.PageSnapshot{
		Viewport: vp,
		Elements: []snapshot.ElementRecord{testimonialCard()},
		HTML: `<html><head><script type="application/ld+json">
		{"@type":"Product","name":"Acme","aggregateRating":{"ratingValue":4.8,"reviewCount":231}}
		</script></head><body></body></html>`,
	}

	res, detail := Analyze(snap, d)
	if res.Score == nil {
		t.Fatal("social proof score must never be null")
	}
	if len(detail.Signals) != 2 {
		t.Fatalf("expected DOM + annotation signals, got %d", len(detail.Signals))
	}

	var sawAnnotation bool
	for _, s := range detail.Signals {
		if s.Source == "jsonld" {
			sawAnnotation = true
			if s.Type != signal.ProofRating {
				t.Errorf("aggregate rating should map to rating, got %s", s.Type)
			}
			if s.Text != "Acme: Rated 4.8 out of 5 (231 reviews)" {
				t.Errorf("unexpected synthesized text: %q", s.Text)
			}
			// No geometry, but not visually buried either: annotations
			// must not trip the low-visibility deduction.
			if s.Visibility != signal.LevelMedium {
				t.Errorf("annotation visibility = %s, want medium", s.Visibility)
			}
			if s.AboveFold {
				t.Error("annotations carry no geometry and are never above the fold")
			}
		}
	}
	if !sawAnnotation {
		t.Error("annotation-derived signal missing from the merged set")
	}
}
