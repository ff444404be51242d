package socialproof

import (
	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/signal"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

const highCredibility = 70

// Analyze runs the full social proof pipeline over one snapshot:
// DOM classification + JSON-LD annotations → dedupe → score.
func Analyze(snap *snapshot.PageSnapshot, d *dict.Dictionaries) (models.CategoryResult, *models.SocialProofDetail) {
	raw := Classify(snap.Elements, snap.Viewport, d)
	raw = append(raw, FromJSONLD(snap.HTML, d)...)
	signals := signal.DedupeProof(raw)
	result := Score(signals)

	if signals == nil {
		signals = []signal.SocialProof{}
	}
	return result, &models.SocialProofDetail{Signals: signals}
}

// Score computes the social proof category result. Starts at 100; a page
// with zero signals short-circuits to 0. The final score is clamped to
// [0,100].
func Score(signals []signal.SocialProof) models.CategoryResult {
	if len(signals) == 0 {
		return models.Scored(0,
			[]string{"No social proof elements found on the page"},
			[]string{"Add testimonials, reviews, or trust badges to build visitor confidence"},
		)
	}

	score := 100
	var issues, recs []string

	var (
		aboveFold     int
		highCred      int
		lowVisibility int
		heroAbove     bool
		suspicious    bool
		trustOrCert   bool
		customerCount bool
		testimonials  int
		namedCredible int
	)
	types := make(map[signal.ProofType]bool)

	for i := range signals {
		s := &signals[i]
		types[s.Type] = true
		if s.AboveFold {
			aboveFold++
			if s.Context == signal.ContextHero {
				heroAbove = true
			}
		}
		if s.Credibility >= highCredibility {
			highCred++
		}
		if s.Visibility == signal.LevelLow {
			lowVisibility++
		}
		if s.Suspicious {
			suspicious = true
		}
		if s.Type == signal.ProofTrustBadge || s.Type == signal.ProofCertification {
			trustOrCert = true
		}
		if s.Type == signal.ProofCustomerCount {
			customerCount = true
		}
		if s.Type == signal.ProofTestimonial {
			testimonials++
			if s.HasName && s.Credibility >= 60 {
				namedCredible++
			}
		}
	}

	if aboveFold == 0 {
		score -= 30
		issues = append(issues, "No social proof is visible above the fold")
		recs = append(recs, "Surface a testimonial or trust badge within the first viewport")
	}

	switch {
	case len(types) < 2:
		score -= 20
		issues = append(issues, "Only one type of social proof is present")
		recs = append(recs, "Mix proof types: testimonials, ratings, customer counts, trust badges")
	case len(types) >= 4:
		score += 10
	}

	if highCred == 0 {
		score -= 25
		issues = append(issues, "No high-credibility social proof was found")
		recs = append(recs, "Add full attribution (name, role, company, photo) to testimonials")
	}

	if testimonials > 0 {
		if float64(namedCredible)/float64(testimonials) < 0.5 {
			score -= 15
			issues = append(issues, "Most testimonials lack a credible named attribution")
			recs = append(recs, "Attach real names and roles to testimonials")
		}
	} else {
		score -= 15
		issues = append(issues, "No testimonials were found on the page")
		recs = append(recs, "Add at least one customer testimonial")
	}

	if !trustOrCert {
		score -= 10
		issues = append(issues, "No trust badges or certifications were found")
		recs = append(recs, "Display security seals, certifications, or award badges")
	}

	if !customerCount {
		score -= 10
		issues = append(issues, "No customer count or usage statistics were found")
		recs = append(recs, "State how many customers or users you serve, e.g. \"Trusted by 10,000+ teams\"")
	}

	if float64(lowVisibility)/float64(len(signals)) > 0.3 {
		score -= 10
		issues = append(issues, "A large share of social proof elements have low visual prominence")
		recs = append(recs, "Make social proof larger and higher-contrast")
	}

	if !heroAbove {
		score -= 5
		issues = append(issues, "The hero section carries no social proof")
		recs = append(recs, "Add a rating or customer count directly under the hero headline")
	}

	if suspicious {
		score -= 15
		issues = append(issues, "Some social proof content looks like placeholder text")
		recs = append(recs, "Replace placeholder testimonials with real customer quotes")
	}

	// Excellence bonus for a genuinely well-proofed page.
	if len(signals) >= 3 && aboveFold >= 2 && highCred >= 2 && len(types) >= 3 {
		score += 10
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
