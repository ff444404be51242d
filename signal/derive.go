package signal

import "github.com/gkobilansky/landing-page-report/snapshot"

// ContextOf maps ancestry flags to a single context with fixed
// precedence: hero beats form beats header/footer/sidebar.
func ContextOf(e *snapshot.ElementRecord) Context {
	switch {
	case e.Ancestry.InHero:
		return ContextHero
	case e.Ancestry.InForm:
		return ContextForm
	case e.Ancestry.InHeader || e.Ancestry.InNav:
		return ContextHeader
	case e.Ancestry.InFooter:
		return ContextFooter
	case e.Ancestry.InAside:
		return ContextSidebar
	default:
		return ContextContent
	}
}

// VisibilityOf grades how much the element stands out: a solid
// background at comfortable size is high, a transparent or tiny target
// is low.
func VisibilityOf(e *snapshot.ElementRecord) Level {
	solid := !e.TransparentBackground()
	big := e.Rect.Height >= 36 && e.Rect.Width >= 90
	switch {
	case solid && big:
		return LevelHigh
	case !solid && (e.Rect.Height < 24 || e.Rect.Width < 48):
		return LevelLow
	case solid || big:
		return LevelMedium
	default:
		return LevelLow
	}
}
