package signal

import (
	"testing"

	"github.com/gkobilansky/landing-page-report/snapshot"
)

func TestContextOf_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		ancestry snapshot.AncestryFlags
		want     Context
	}{
		{"hero beats form", snapshot.AncestryFlags{InHero: true, InForm: true}, ContextHero},
		{"form beats header", snapshot.AncestryFlags{InForm: true, InHeader: true}, ContextForm},
		{"nav maps to header", snapshot.AncestryFlags{InNav: true}, ContextHeader},
		{"footer", snapshot.AncestryFlags{InFooter: true}, ContextFooter},
		{"aside maps to sidebar", snapshot.AncestryFlags{InAside: true}, ContextSidebar},
		{"no region is content", snapshot.AncestryFlags{}, ContextContent},
	}
	for _, tt := range tests {
		e := &snapshot.ElementRecord{Ancestry: tt.ancestry}
		if got := ContextOf(e); got != tt.want {
			t.Errorf("%s: ContextOf = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestVisibilityOf(t *testing.T) {
	solidBig := &snapshot.ElementRecord{
		Rect:  snapshot.Rect{Width: 200, Height: 48},
		Style: snapshot.ComputedStyle{BackgroundColor: "rgb(59, 130, 246)"},
	}
	if got := VisibilityOf(solidBig); got != LevelHigh {
		t.Errorf("solid comfortable button should be high visibility, got %s", got)
	}

	tinyLink := &snapshot.ElementRecord{
		Rect:  snapshot.Rect{Width: 40, Height: 16},
		Style: snapshot.ComputedStyle{BackgroundColor: "rgba(0, 0, 0, 0)"},
	}
	if got := VisibilityOf(tinyLink); got != LevelLow {
		t.Errorf("transparent tiny link should be low visibility, got %s", got)
	}

	solidSmall := &snapshot.ElementRecord{
		Rect:  snapshot.Rect{Width: 60, Height: 28},
		Style: snapshot.ComputedStyle{BackgroundColor: "rgb(0, 0, 0)"},
	}
	if got := VisibilityOf(solidSmall); got != LevelMedium {
		t.Errorf("solid but small element should be medium visibility, got %s", got)
	}
}
