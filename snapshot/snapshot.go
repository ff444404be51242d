// Package snapshot defines the contract between the browser renderer and
// the analysis engine: a flat, immutable set of element records captured
// once per page load. The engine never touches a live DOM — it only
// transforms these records.
package snapshot

import (
	"strings"
	"time"
)

// Rect is an element's bounding box in CSS pixels, relative to the
// document origin.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the box area. Degenerate boxes yield 0.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the box has no renderable extent.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// CenterX returns the horizontal center of the box.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the box.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Bottom returns the bottom edge of the box.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the right edge of the box.
func (r Rect) Right() float64 { return r.Left + r.Width }

// IntersectArea returns the area of the overlap between two boxes,
// 0 when they are disjoint.
func (r Rect) IntersectArea(o Rect) float64 {
	w := min(r.Right(), o.Right()) - max(r.Left, o.Left)
	h := min(r.Bottom(), o.Bottom()) - max(r.Top, o.Top)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// ComputedStyle is the subset of CSS properties the analyzers consume.
// Numeric values are in CSS pixels; absent values are zero/empty.
// Opacity is a pointer so a caller-supplied partial subset is
// distinguishable from an explicit opacity:0.
type ComputedStyle struct {
	Display         string   `json:"display,omitempty"`
	Visibility      string   `json:"visibility,omitempty"`
	Position        string   `json:"position,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	Color           string   `json:"color,omitempty"`
	FontFamily      string   `json:"fontFamily,omitempty"`
	FontSize        float64  `json:"fontSize,omitempty"`
	FontWeight      string   `json:"fontWeight,omitempty"`
	LineHeight      float64  `json:"lineHeight,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
	MarginTop       float64  `json:"marginTop,omitempty"`
	MarginBottom    float64  `json:"marginBottom,omitempty"`
}

// AncestryFlags record which structural page regions contain the element.
// They are computed by the renderer (element.closest equivalents) so the
// engine never needs a tree.
type AncestryFlags struct {
	InHeader bool `json:"inHeader,omitempty"`
	InFooter bool `json:"inFooter,omitempty"`
	InNav    bool `json:"inNav,omitempty"`
	InForm   bool `json:"inForm,omitempty"`
	InHero   bool `json:"inHero,omitempty"`
	InAside  bool `json:"inAside,omitempty"`
}

// ElementRecord is one rendered element as captured by the renderer.
// Records are immutable for the duration of an analysis run.
type ElementRecord struct {
	Text     string            `json:"text,omitempty"`
	Tag      string            `json:"tag"`
	Role     string            `json:"role,omitempty"`
	Classes  []string          `json:"classes,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Rect     Rect              `json:"rect"`
	Style    ComputedStyle     `json:"style"`
	Ancestry AncestryFlags     `json:"ancestry"`
}

// Attr returns the named attribute, "" when absent. Nil maps are fine.
func (e *ElementRecord) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

// HasClass reports whether the element carries the exact class token
// (case-insensitive).
func (e *ElementRecord) HasClass(token string) bool {
	for _, c := range e.Classes {
		if strings.EqualFold(c, token) {
			return true
		}
	}
	return false
}

// ClassContains reports whether any class token contains the given
// substring (case-insensitive). Useful for pattern-ish class families
// like "testimonial-card" or "btn-large".
func (e *ElementRecord) ClassContains(sub string) bool {
	sub = strings.ToLower(sub)
	for _, c := range e.Classes {
		if strings.Contains(strings.ToLower(c), sub) {
			return true
		}
	}
	return false
}

// Hidden reports whether the element cannot be seen: zero-size geometry,
// display:none, visibility:hidden, or fully transparent.
func (e *ElementRecord) Hidden() bool {
	if e.Rect.Empty() {
		return true
	}
	if e.Style.Display == "none" || e.Style.Visibility == "hidden" {
		return true
	}
	// A nil opacity means the style subset did not measure it; only an
	// explicit zero hides the element.
	if e.Style.Opacity != nil && *e.Style.Opacity <= 0 {
		return true
	}
	return false
}

// TransparentBackground reports whether the computed background color is
// absent or fully transparent.
func (e *ElementRecord) TransparentBackground() bool {
	bg := strings.ToLower(strings.TrimSpace(e.Style.BackgroundColor))
	switch bg {
	case "", "transparent", "rgba(0, 0, 0, 0)", "rgba(0,0,0,0)":
		return true
	}
	return false
}

// Viewport is the capture-time viewport in CSS pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the viewport area, 0 for degenerate viewports.
func (v Viewport) Area() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 0
	}
	return v.Width * v.Height
}

// AboveFold reports whether the element starts above the fold line, i.e.
// its top offset is less than the viewport height at capture time.
func (e *ElementRecord) AboveFold(vp Viewport) bool {
	return e.Rect.Top < vp.Height
}

// PageSnapshot is everything the renderer hands to the engine for one
// page load. Screenshot is optional; when present it enables the
// raster-based whitespace path.
type PageSnapshot struct {
	URL        string          `json:"url"`
	FinalURL   string          `json:"final_url,omitempty"`
	Title      string          `json:"title,omitempty"`
	StatusCode int             `json:"status_code,omitempty"`
	Viewport   Viewport        `json:"viewport"`
	Elements   []ElementRecord `json:"elements"`
	HTML       string          `json:"html,omitempty"`
	Screenshot []byte          `json:"screenshot,omitempty"`
	CapturedAt time.Time       `json:"captured_at,omitempty"`
}
