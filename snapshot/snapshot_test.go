package snapshot

import "testing"

func TestRect_Area(t *testing.T) {
	if got := (Rect{Width: 10, Height: 5}).Area(); got != 50 {
		t.Errorf("Area = %v, want 50", got)
	}
	if got := (Rect{Width: -1, Height: 5}).Area(); got != 0 {
		t.Errorf("degenerate box Area = %v, want 0", got)
	}
}

func TestRect_IntersectArea(t *testing.T) {
	a := Rect{Top: 0, Left: 0, Width: 10, Height: 10}

	overlap := Rect{Top: 5, Left: 5, Width: 10, Height: 10}
	if got := a.IntersectArea(overlap); got != 25 {
		t.Errorf("overlap area = %v, want 25", got)
	}

	disjoint := Rect{Top: 20, Left: 20, Width: 5, Height: 5}
	if got := a.IntersectArea(disjoint); got != 0 {
		t.Errorf("disjoint area = %v, want 0", got)
	}

	contained := Rect{Top: 2, Left: 2, Width: 4, Height: 4}
	if got := a.IntersectArea(contained); got != 16 {
		t.Errorf("contained area = %v, want 16", got)
	}
	if got := contained.IntersectArea(a); got != 16 {
		t.Errorf("intersection must be symmetric, got %v", got)
	}
}

func opacity(v float64) *float64 { return &v }

func TestElementRecord_Hidden(t *testing.T) {
	tests := []struct {
		name string
		e    ElementRecord
		want bool
	}{
		{"zero size", ElementRecord{}, true},
		{"display none", ElementRecord{
			Rect:  Rect{Width: 10, Height: 10},
			Style: ComputedStyle{Display: "none", Opacity: opacity(1)},
		}, true},
		{"visibility hidden", ElementRecord{
			Rect:  Rect{Width: 10, Height: 10},
			Style: ComputedStyle{Visibility: "hidden", Opacity: opacity(1)},
		}, true},
		{"opacity zero", ElementRecord{
			Rect:  Rect{Width: 10, Height: 10},
			Style: ComputedStyle{Display: "block", Opacity: opacity(0)},
		}, true},
		{"visible", ElementRecord{
			Rect:  Rect{Width: 10, Height: 10},
			Style: ComputedStyle{Display: "block", Opacity: opacity(1)},
		}, false},
		{"visible without style", ElementRecord{
			Rect: Rect{Width: 10, Height: 10},
		}, false},
		{"partial style without opacity", ElementRecord{
			Rect:  Rect{Width: 10, Height: 10},
			Style: ComputedStyle{Display: "block", BackgroundColor: "rgb(59, 130, 246)"},
		}, false},
	}
	for _, tt := range tests {
		if got := tt.e.Hidden(); got != tt.want {
			t.Errorf("%s: Hidden = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestElementRecord_TransparentBackground(t *testing.T) {
	transparent := []string{"", "transparent", "rgba(0, 0, 0, 0)", "rgba(0,0,0,0)"}
	for _, bg := range transparent {
		e := ElementRecord{Style: ComputedStyle{BackgroundColor: bg}}
		if !e.TransparentBackground() {
			t.Errorf("background %q should read as transparent", bg)
		}
	}
	e := ElementRecord{Style: ComputedStyle{BackgroundColor: "rgb(255, 0, 0)"}}
	if e.TransparentBackground() {
		t.Error("solid background read as transparent")
	}
}

func TestElementRecord_AboveFold(t *testing.T) {
	vp := Viewport{Width: 1366, Height: 768}

	above := ElementRecord{Rect: Rect{Top: 300, Width: 10, Height: 10}}
	if !above.AboveFold(vp) {
		t.Error("element at 300px should be above a 768px fold")
	}

	below := ElementRecord{Rect: Rect{Top: 768, Width: 10, Height: 10}}
	if below.AboveFold(vp) {
		t.Error("element starting exactly at the fold line is below it")
	}
}

func TestElementRecord_ClassHelpers(t *testing.T) {
	e := ElementRecord{Classes: []string{"Btn", "hero-CTA-large"}}

	if !e.HasClass("btn") {
		t.Error("HasClass must be case-insensitive")
	}
	if e.HasClass("cta") {
		t.Error("HasClass must not match substrings")
	}
	if !e.ClassContains("cta") {
		t.Error("ClassContains must match case-insensitive substrings")
	}

	empty := ElementRecord{}
	if empty.Attr("href") != "" {
		t.Error("Attr on a nil map must return empty")
	}
}
