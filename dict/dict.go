// Package dict holds the immutable word and pattern lists that drive
// element classification. Data lives here; matching logic is a small set
// of functions over it, so adding a phrase never means touching an
// analyzer.
package dict

import (
	"regexp"
	"strings"
)

// Strength grades how compelling a call-to-action phrase is.
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthMedium Strength = "medium"
	StrengthWeak   Strength = "weak"
)

// PatternClass names one category of rejection/promotion patterns.
// The set is closed: every pattern the engine evaluates belongs to one
// of these classes and goes through Dictionaries.Match.
type PatternClass int

const (
	// PatternName matches person-name shapes: "First Last", "First M.",
	// short all-caps initials. Used to reject signature lines picked up
	// near testimonials.
	PatternName PatternClass = iota
	// PatternLogo matches brand/logo captions.
	PatternLogo
	// PatternDecorative matches pagination markers, slide counters and
	// similar chrome.
	PatternDecorative
	// PatternPrimaryClass matches class tokens that explicitly mark a
	// primary button, e.g. "btn-primary" or "btn-primary-2".
	PatternPrimaryClass
	// PatternSuspicious matches placeholder or fabricated-looking
	// social proof content.
	PatternSuspicious
	// PatternCustomerCount matches "10,000+ customers" style claims.
	PatternCustomerCount
)

// Dictionaries is the full immutable classification configuration.
// Use Default() — the zero value matches nothing.
type Dictionaries struct {
	ActionStrong []string
	ActionMedium []string

	Urgency   []string
	ValueProp []string
	Guarantee []string
	Checkout  []string

	// Navigation words are rejected as CTA text when they make up the
	// whole phrase ("home", "about us", ...).
	Navigation []string

	// PrimaryClassTokens are exact class tokens that force the primary
	// CTA type.
	PrimaryClassTokens []string

	// TrustWords mark trust-badge / certification phrasing for the
	// social proof recovery pass.
	TrustWords []string

	patterns map[PatternClass][]*regexp.Regexp
}

var defaultDicts = &Dictionaries{
	ActionStrong: []string{
		"get started", "start free", "start now", "try free", "try it free",
		"buy now", "shop now", "order now", "sign up", "join now",
		"book now", "claim", "get your", "get my", "download now",
		"start trial", "free trial", "subscribe now", "add to cart",
		"request demo", "get a demo", "build your",
	},
	ActionMedium: []string{
		"learn more", "get", "try", "start", "download", "join",
		"subscribe", "register", "explore", "discover", "see how",
		"view plans", "see pricing", "contact us", "request",
	},
	Urgency: []string{
		"now", "today", "limited", "hurry", "last chance", "ends",
		"only", "expires", "don't miss", "while supplies last",
		"instant", "immediately", "before it's gone",
	},
	ValueProp: []string{
		"free", "save", "discount", "bonus", "exclusive", "guarantee",
		"no credit card", "cancel anytime", "no commitment", "instant access",
		"unlimited", "premium", "% off", "risk-free", "trial",
	},
	Guarantee: []string{
		"guarantee", "money back", "money-back", "refund", "risk-free",
		"no risk", "satisfaction guaranteed", "cancel anytime",
	},
	Checkout: []string{
		"buy", "checkout", "order", "purchase", "cart", "pay",
		"get started", "sign up", "subscribe", "start trial", "book",
	},
	Navigation: []string{
		"home", "about", "about us", "blog", "contact", "contact us",
		"services", "products", "pricing", "faq", "menu", "login",
		"log in", "sign in", "search", "next", "previous", "back",
		"close", "skip", "read more", "see all", "view all", "more",
		"terms", "privacy", "careers", "support", "docs", "documentation",
	},
	PrimaryClassTokens: []string{
		"btn-primary", "button-primary", "primary-button", "primary-btn",
		"cta", "cta-button", "btn-cta", "hero-cta", "main-cta", "primary",
	},
	TrustWords: []string{
		"trusted by", "secure", "ssl", "verified", "certified", "award",
		"accredited", "official partner", "as seen on", "featured in",
		"money back guarantee", "satisfaction guaranteed",
	},
	patterns: map[PatternClass][]*regexp.Regexp{
		PatternName: {
			// "Jane Doe", "Jane M. Doe"
			regexp.MustCompile(`^[A-Z][a-z]+ (?:[A-Z]\.? )?[A-Z][a-z]+$`),
			// "Jane D."
			regexp.MustCompile(`^[A-Z][a-z]+ [A-Z]\.$`),
			// All-caps initials up to 3 chars ("JD", "JMD").
			regexp.MustCompile(`^[A-Z]{1,3}$`),
		},
		PatternLogo: {
			regexp.MustCompile(`(?i)^(?:[\w.-]+ )?logo$`),
			regexp.MustCompile(`(?i)^(?:™|®|©).*$`),
			regexp.MustCompile(`(?i)^[\w.-]+\.(?:com|io|co|net|org)$`),
		},
		PatternDecorative: {
			// "1/5", "2 of 10" slide counters, bare pagination numbers.
			regexp.MustCompile(`^\d+\s*/\s*\d+$`),
			regexp.MustCompile(`(?i)^\d+ of \d+$`),
			regexp.MustCompile(`^[\d\s.·•–—-]+$`),
			regexp.MustCompile(`^[«»‹›<>→←›]+$`),
		},
		PatternPrimaryClass: {
			regexp.MustCompile(`(?i)^(?:btn|button)[-_]primary(?:[-_]\d+)?$`),
			regexp.MustCompile(`(?i)^primary(?:[-_](?:btn|button))?(?:[-_]\d+)?$`),
		},
		PatternSuspicious: {
			regexp.MustCompile(`(?i)lorem ipsum`),
			regexp.MustCompile(`(?i)\b(?:john|jane) doe\b`),
			regexp.MustCompile(`(?i)\btest (?:user|customer|review)\b`),
			regexp.MustCompile(`(?i)\bsample (?:text|review|testimonial)\b`),
			regexp.MustCompile(`(?i)\bplaceholder\b`),
			regexp.MustCompile(`(?i)^as+df+`),
		},
		PatternCustomerCount: {
			regexp.MustCompile(`(?i)\b\d[\d,.]*(?:k|m)?\+?\s*(?:happy\s+)?(?:customers|users|clients|companies|businesses|members|downloads|installs|reviews|teams|developers)\b`),
			regexp.MustCompile(`(?i)\b(?:over|more than|join)\s+\d[\d,.]*(?:k|m)?\+?\b`),
		},
	},
}

// Default returns the built-in dictionaries. The returned value is shared
// and must be treated as read-only.
func Default() *Dictionaries { return defaultDicts }

// Match reports whether text matches any pattern of the given class.
func (d *Dictionaries) Match(class PatternClass, text string) bool {
	for _, re := range d.patterns[class] {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the case-folded text contains any of the
// given phrases. Single-word phrases must match on word boundaries so
// that "get" does not fire inside "target"; multi-word phrases use plain
// substring containment.
func ContainsAny(text string, phrases []string) bool {
	t := strings.ToLower(text)
	var padded string
	for _, p := range phrases {
		if strings.ContainsAny(p, " %") {
			if strings.Contains(t, p) {
				return true
			}
			continue
		}
		if padded == "" {
			padded = " " + strings.Join(strings.FieldsFunc(t, isWordSep), " ") + " "
		}
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

func isWordSep(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ',', '.', '!', '?', ':', ';', '(', ')', '"', '\'':
		return true
	}
	return false
}

// IsNavigation reports whether the whole phrase is a navigation word.
func (d *Dictionaries) IsNavigation(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, n := range d.Navigation {
		if t == n {
			return true
		}
	}
	return false
}

// ActionStrength grades the strongest action phrase found in text.
func (d *Dictionaries) ActionStrength(text string) Strength {
	if ContainsAny(text, d.ActionStrong) {
		return StrengthStrong
	}
	if ContainsAny(text, d.ActionMedium) {
		return StrengthMedium
	}
	return StrengthWeak
}

// HasAction reports whether text contains any action phrase at all.
func (d *Dictionaries) HasAction(text string) bool {
	return d.ActionStrength(text) != StrengthWeak
}

// HasPrimaryClass reports whether any class token marks the element as an
// explicit primary button, by exact vocabulary or by pattern
// (e.g. "btn-primary-2").
func (d *Dictionaries) HasPrimaryClass(classes []string) bool {
	for _, c := range classes {
		lc := strings.ToLower(c)
		for _, tok := range d.PrimaryClassTokens {
			if lc == tok {
				return true
			}
		}
		if d.Match(PatternPrimaryClass, c) {
			return true
		}
	}
	return false
}
