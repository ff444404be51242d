// Package signal defines the typed, scored domain objects the classifiers
// produce from raw element records, plus the similarity-based deduplicator
// shared by the CTA and social proof analyzers.
package signal

import (
	"github.com/gkobilansky/landing-page-report/snapshot"
)

// CTAType classifies a call-to-action element.
type CTAType string

const (
	CTAPrimary    CTAType = "primary"
	CTASecondary  CTAType = "secondary"
	CTAFormSubmit CTAType = "form-submit"
	CTATextLink   CTAType = "text-link"
	CTAOther      CTAType = "other"
)

// Level is a coarse high/medium/low grade.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Context names the structural page region a signal lives in.
type Context string

const (
	ContextHero    Context = "hero"
	ContextHeader  Context = "header"
	ContextContent Context = "content"
	ContextSidebar Context = "sidebar"
	ContextFooter  Context = "footer"
	ContextForm    Context = "form"
	ContextOther   Context = "other"
)

// CTA is one classified call-to-action signal.
type CTA struct {
	Text                string        `json:"text"`
	Type                CTAType       `json:"type"`
	AboveFold           bool          `json:"above_fold"`
	ActionStrength      string        `json:"action_strength"` // strong | medium | weak
	Urgency             Level         `json:"urgency"`
	Visibility          Level         `json:"visibility"`
	Context             Context       `json:"context"`
	HasValueProposition bool          `json:"has_value_proposition"`
	HasUrgency          bool          `json:"has_urgency"`
	HasGuarantee        bool          `json:"has_guarantee"`
	MobileOptimized     bool          `json:"mobile_optimized"`
	Position            snapshot.Rect `json:"position"`
}

// ProofType classifies a social proof signal.
type ProofType string

const (
	ProofTestimonial   ProofType = "testimonial"
	ProofReview        ProofType = "review"
	ProofRating        ProofType = "rating"
	ProofTrustBadge    ProofType = "trust-badge"
	ProofCustomerCount ProofType = "customer-count"
	ProofSocialMedia   ProofType = "social-media"
	ProofCertification ProofType = "certification"
	ProofPartnership   ProofType = "partnership"
	ProofCaseStudy     ProofType = "case-study"
	ProofNewsMention   ProofType = "news-mention"
)

// SocialProof is one classified social proof signal. Credibility is a
// heuristic 0-100 estimate of how trustworthy the element appears.
type SocialProof struct {
	Text        string    `json:"text"`
	Type        ProofType `json:"type"`
	Credibility int       `json:"credibility"`
	AboveFold   bool      `json:"above_fold"`
	Visibility  Level     `json:"visibility"`
	Context     Context   `json:"context"`
	HasName     bool      `json:"has_name"`
	HasCompany  bool      `json:"has_company"`
	HasImage    bool      `json:"has_image"`
	HasRating   bool      `json:"has_rating"`
	Suspicious  bool      `json:"suspicious,omitempty"`
	Source      string    `json:"source,omitempty"` // "dom" | "jsonld"
	Position    snapshot.Rect
}
