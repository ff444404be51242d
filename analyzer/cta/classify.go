// Package cta classifies call-to-action elements, selects the page's
// primary CTA, and scores the category.
package cta

import (
	"strings"

	"github.com/gkobilansky/landing-page-report/dict"
	"github.com/gkobilansky/landing-page-report/signal"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

const (
	minTextLen = 2
	maxTextLen = 60

	// Apple/Google tap target guideline, used for the mobile check.
	minTapTarget = 44
)

// selectorGroup pairs a structural predicate with the default CTA type it
// implies. Groups are tried in order; the first match wins and is then
// refined (see classifyOne).
type selectorGroup struct {
	match func(*snapshot.ElementRecord) bool
	typ   signal.CTAType
}

var groups = []selectorGroup{
	{func(e *snapshot.ElementRecord) bool {
		if e.Tag != "input" {
			return false
		}
		t := strings.ToLower(e.Attr("type"))
		return t == "submit" || t == "button" || t == "image"
	}, signal.CTAFormSubmit},
	{func(e *snapshot.ElementRecord) bool { return e.Tag == "button" }, signal.CTASecondary},
	{func(e *snapshot.ElementRecord) bool {
		return e.Tag == "a" && (e.ClassContains("btn") || e.ClassContains("button") || e.ClassContains("cta"))
	}, signal.CTASecondary},
	{func(e *snapshot.ElementRecord) bool { return strings.EqualFold(e.Role, "button") }, signal.CTASecondary},
	{func(e *snapshot.ElementRecord) bool { return e.Tag == "a" }, signal.CTATextLink},
}

// recoveryTags is the broader element universe scanned by the second
// pass for action phrases the structural selectors missed (e.g.
// "$150 – Build Your Dream Site" in a styled div).
var recoveryTags = map[string]bool{
	"a": true, "button": true, "div": true, "span": true,
	"p": true, "li": true, "label": true, "summary": true,
}

// Classify maps the element records of one page to CTA signals. Malformed
// or partial records are skipped, never fatal.
func Classify(records []snapshot.ElementRecord, vp snapshot.Viewport, d *dict.Dictionaries) []signal.CTA {
	var out []signal.CTA
	claimed := make(map[int]bool, len(records))

	// First pass: structural selector groups.
	for i := range records {
		e := &records[i]
		if sig, ok := classifyOne(e, vp, d); ok {
			out = append(out, sig)
			claimed[i] = true
		}
	}

	// Second pass: recover text-only CTAs from the broader universe.
	for i := range records {
		if claimed[i] {
			continue
		}
		e := &records[i]
		if !recoveryTags[e.Tag] {
			continue
		}
		text := cleanText(e.Text)
		if !textAcceptable(text, d) || e.Hidden() {
			continue
		}
		if !d.HasAction(text) {
			continue
		}
		out = append(out, buildSignal(e, text, signal.CTAOther, vp, d))
	}

	return out
}

// classifyOne applies the ordered selector groups and the refinement
// rules to a single record.
func classifyOne(e *snapshot.ElementRecord, vp snapshot.Viewport, d *dict.Dictionaries) (signal.CTA, bool) {
	text := cleanText(e.Text)
	if text == "" && e.Tag == "input" {
		text = cleanText(e.Attr("value"))
	}

	// Text-quality gate runs before any classification.
	if !textAcceptable(text, d) {
		return signal.CTA{}, false
	}
	if e.Hidden() {
		return signal.CTA{}, false
	}

	typ := signal.CTAType("")
	for _, g := range groups {
		if g.match(e) {
			typ = g.typ
			break
		}
	}
	if typ == "" {
		return signal.CTA{}, false
	}

	// Refinement 1: explicit primary vocabulary or primary-class pattern.
	if d.HasPrimaryClass(e.Classes) {
		typ = signal.CTAPrimary
	}

	// Refinement 2: submit-typed inputs and buttons nested in a form are
	// form submits regardless of styling.
	if e.Tag == "input" || (e.Tag == "button" && e.Ancestry.InForm) {
		if t := strings.ToLower(e.Attr("type")); e.Tag != "button" || t == "" || t == "submit" {
			typ = signal.CTAFormSubmit
		}
	}

	// Refinement 3: strong action phrase on a visually prominent
	// secondary button reads as the real primary.
	if typ == signal.CTASecondary &&
		d.ActionStrength(text) == dict.StrengthStrong &&
		!e.TransparentBackground() {
		typ = signal.CTAPrimary
	}

	return buildSignal(e, text, typ, vp, d), true
}

// textAcceptable is the shared text-quality gate: length band plus the
// name/logo/decorative/navigation rejections.
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

func buildSignal(e *snapshot.ElementRecord, text string, typ signal.CTAType, vp snapshot.Viewport, d *dict.Dictionaries) signal.CTA {
	strength := d.ActionStrength(text)
	return signal.CTA{
		Text:                text,
		Type:                typ,
		AboveFold:           e.AboveFold(vp),
		ActionStrength:      string(strength),
		Urgency:             urgencyLevel(text, d),
		Visibility:          signal.VisibilityOf(e),
		Context:             signal.ContextOf(e),
		HasValueProposition: dict.ContainsAny(text, d.ValueProp),
		HasUrgency:          dict.ContainsAny(text, d.Urgency),
		HasGuarantee:        dict.ContainsAny(text, d.Guarantee),
		MobileOptimized:     e.Rect.Width >= minTapTarget && e.Rect.Height >= minTapTarget,
		Position:            e.Rect,
	}
}


// urgencyLevel grades urgency from phrase density: two or more urgency
// phrases (or one plus an exclamation) is high, one is medium.
func urgencyLevel(text string, d *dict.Dictionaries) signal.Level {
	t := strings.ToLower(text)
	hits := 0
	for _, u := range d.Urgency {
		if dict.ContainsAny(t, []string{u}) {
			hits++
		}
	}
	switch {
	case hits >= 2 || (hits == 1 && strings.Contains(text, "!")):
		return signal.LevelHigh
	case hits == 1:
		return signal.LevelMedium
	default:
		return signal.LevelLow
	}
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
