// Package socialproof classifies testimonials, reviews, trust badges and
// related credibility signals, and scores the category.
package socialproof

import (
	"regexp"
	"strings"

	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/signal"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

const (
	minTextLen = 5
	maxTextLen = 1000
)

// classRule maps a class-token substring to a proof type. Rules are
// tried in order; the first hit wins.
type classRule struct {
	sub string
	typ signal.ProofType
}

var classRules = []classRule{
	{"testimonial", signal.ProofTestimonial},
	{"quote", signal.ProofTestimonial},
	{"review", signal.ProofReview},
	{"rating", signal.ProofRating},
	{"stars", signal.ProofRating},
	{"trust", signal.ProofTrustBadge},
	{"badge", signal.ProofTrustBadge},
	{"secure", signal.ProofTrustBadge},
	{"guarantee", signal.ProofTrustBadge},
	{"certif", signal.ProofCertification},
	{"accredit", signal.ProofCertification},
	{"compliance", signal.ProofCertification},
	{"partner", signal.ProofPartnership},
	{"case-study", signal.ProofCaseStudy},
	{"casestudy", signal.ProofCaseStudy},
	{"success-story", signal.ProofCaseStudy},
	{"press", signal.ProofNewsMention},
	{"featured", signal.ProofNewsMention},
	{"news", signal.ProofNewsMention},
	{"social", signal.ProofSocialMedia},
	{"twitter", signal.ProofSocialMedia},
	{"facebook", signal.ProofSocialMedia},
	{"instagram", signal.ProofSocialMedia},
	{"linkedin", signal.ProofSocialMedia},
	{"youtube", signal.ProofSocialMedia},
	{"client", signal.ProofCustomerCount},
	{"customer", signal.ProofCustomerCount},
}

var (
	titleRe = regexp.MustCompile(`(?i)\b(ceo|cto|coo|cfo|founder|co-founder|director|manager|head of|president|vp|owner|lead)\b`)
	// "Jane Doe, CEO at Acme" / "— Jane Doe, Acme Inc"
	companyRe = regexp.MustCompile(`(?i)\b(?:at|of|from)\s+[A-Z][\w&.-]+|,\s*[A-Z][\w&.-]+\s*(?:inc|llc|ltd|co|corp|gmbh)?\.?$`)
	ratingRe  = regexp.MustCompile(`(?i)[★⭐]|\b\d(?:[.,]\d)?\s*(?:/|out of)\s*5\b|\bstars?\b`)
	quoteRe   = regexp.MustCompile(`^["“”'‘’«]`)
)

// Classify maps the element records of one page to social proof signals.
// Malformed or partial records are skipped, never fatal.
func Classify(records []snapshot.ElementRecord, vp snapshot.Viewport, d *dict.Dictionaries) []signal.SocialProof {
	var out []signal.SocialProof
	claimed := make(map[int]bool, len(records))

	// First pass: structural selectors (tag + class rules).
	for i := range records {
		e := &records[i]
		typ, ok := structuralType(e, d)
		if !ok {
			continue
		}
		text := cleanText(e.Text)
		if !textAcceptable(text, d) || e.Hidden() {
			continue
		}
		out = append(out, buildSignal(e, text, typ, vp, d))
		claimed[i] = true
	}

	// Second pass: recover proof the structural selectors missed —
	// customer-count claims, quoted snippets, and trust phrasing in
	// plain text containers.
	for i := range records {
		if claimed[i] {
			continue
		}
		e := &records[i]
		if e.Text == "" || e.Hidden() {
			continue
		}
		text := cleanText(e.Text)
		if !textAcceptable(text, d) {
			continue
		}
		var typ signal.ProofType
		switch {
		case d.Match(dict.PatternCustomerCount, text):
			typ = signal.ProofCustomerCount
		case quoteRe.MatchString(text) && len(text) >= 40:
			typ = signal.ProofTestimonial
		case dict.ContainsAny(text, d.TrustWords):
			typ = signal.ProofTrustBadge
		default:
			continue
		}
		out = append(out, buildSignal(e, text, typ, vp, d))
	}

	return out
}

func structuralType(e *snapshot.ElementRecord, d *dict.Dictionaries) (signal.ProofType, bool) {
	if e.Tag == "blockquote" {
		return signal.ProofTestimonial, true
	}
	for _, r := range classRules {
		if e.ClassContains(r.sub) {
			// Count-ish classes only qualify when the text actually
			// carries a number claim.
			if r.typ == signal.ProofCustomerCount && !d.Match(dict.PatternCustomerCount, e.Text) {
				continue
			}
			return r.typ, true
		}
	}
	return "", false
}

// textAcceptable is the social proof text gate: length band plus the
// logo/decorative/navigation rejections. Standalone person names are
// rejected too — attribution lines are folded into their parent
// testimonial by the renderer's text aggregation.
func textAcceptable(text string, d *dict.Dictionaries) bool {
	n := len([]rune(text))
	if n < minTextLen || n > maxTextLen {
		return false
	}
	if d.IsNavigation(text) {
		return false
	}
	if d.Match(dict.PatternName, text) ||
		d.Match(dict.PatternLogo, text) ||
		d.Match(dict.PatternDecorative, text) {
		return false
	}
	return true
}

func buildSignal(e *snapshot.ElementRecord, text string, typ signal.ProofType, vp snapshot.Viewport, d *dict.Dictionaries) signal.SocialProof {
	s := signal.SocialProof{
		Text:       text,
		Type:       typ,
		AboveFold:  e.AboveFold(vp),
		Visibility: signal.VisibilityOf(e),
		Context:    signal.ContextOf(e),
		HasName:    hasPersonName(text, d),
		HasCompany: titleRe.MatchString(text) || companyRe.MatchString(text),
		HasImage:   e.Attr("hasImg") == "true",
		HasRating:  typ == signal.ProofRating || ratingRe.MatchString(text),
		Suspicious: d.Match(dict.PatternSuspicious, text),
		Source:     "dom",
		Position:   e.Rect,
	}
	s.Credibility = Credibility(&s)
	return s
}

// hasPersonName looks for a name-shaped segment inside the text — the
// attribution line of a testimonial, typically after a dash or on its
// own line.
func hasPersonName(text string, d *dict.Dictionaries) bool {
	for _, seg := range splitSegments(text) {
		seg = strings.TrimSpace(seg)
		// Bare initials ("JD", "CEO") are not attribution.
		if !strings.Contains(seg, " ") {
			continue
		}
		if d.Match(dict.PatternName, seg) {
			return true
		}
		// "— Jane Doe, CEO at Acme": the name leads the segment.
		fields := strings.Fields(seg)
		if len(fields) >= 2 && d.Match(dict.PatternName, strings.Join(fields[:2], " ")) {
			return true
		}
	}
	return false
}

func splitSegments(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '\n', '—', '–', ',', '|':
			return true
		}
		return false
	})
}

// Credibility estimates how trustworthy a proof element appears:
// base 50, bonuses for attribution completeness, penalties for thin or
// placeholder content. Clamped to [0,100].
func Credibility(s *signal.SocialProof) int {
	c := 50
	if s.HasName {
		c += 15
	}
	if s.HasCompany {
		c += 20
	}
	if s.HasImage {
		c += 10
	}
	if s.HasRating {
		c += 15
	}
	n := len([]rune(s.Text))
	switch {
	case n >= 100 && n <= 500:
		c += 10
	case n < 20:
		c -= 20
	}
	if s.Suspicious {
		c -= 30
	}
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
