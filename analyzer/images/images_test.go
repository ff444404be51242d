package images

import (
	"testing"

	"github.com/gkobilansky/landing-page-report/snapshot"
)

func imgRecord(top float64) snapshot.ElementRecord {
	return snapshot.ElementRecord{
		Tag:   "img",
		Rect:  snapshot.Rect{Top: top, Width: 300, Height: 200},
		Style: snapshot.ComputedStyle{},
	}
}

func TestAnalyze_NoHTML(t *testing.T) {
	res := Analyze(&snapshot.PageSnapshot{})
	if res.Score != nil {
		t.Errorf("missing HTML must report a null score, got %d", *res.Score)
	}
}

func TestAnalyze_NoImages(t *testing.T) {
	snap := &snapshot.PageSnapshot{HTML: "<html><body><p>text only</p></body></html>"}
	res := Analyze(snap)
	if res.Score != nil {
		t.Fatalf("image-free page must report a null score, got %d", *res.Score)
	}
	if len(res.Issues) != 1 || res.Issues[0] != "No images found on the page" {
		t.Errorf("unexpected issues: %v", res.Issues)
	}
}

func TestAnalyze_Deductions(t *testing.T) {
	snap := &snapshot.PageSnapshot{
		Viewport: snapshot.Viewport{Width: 1366, Height: 768},
		HTML: `<html><body>
			<img src="/hero.jpg" alt="Product screenshot">
			<img src="/second.jpg">
		</body></html>`,
	}
	res := Analyze(snap)

	// −5 (one missing alt) − 10 (no srcset) − 10 (legacy formats) = 75.
	// No fold records exist, so the lazy-loading rule stays silent.
	if res.Score == nil || *res.Score != 75 {
		t.Errorf("score = %v, want 75 (issues: %v)", res.Score, res.Issues)
	}
}

func TestAnalyze_MissingAltCap(t *testing.T) {
	html := "<html><body>"
	for i := 0; i < 8; i++ {
		html += `<img src="/x.jpg">`
	}
	html += "</body></html>"

	res := Analyze(&snapshot.PageSnapshot{HTML: html})
	// Alt deduction caps at 25: 100 − 25 − 10 (srcset) − 10 (format) = 55.
	if res.Score == nil || *res.Score != 55 {
		t.Errorf("score = %v, want 55 (issues: %v)", res.Score, res.Issues)
	}
}

func TestAnalyze_ModernFormatDetection(t *testing.T) {
	direct := &snapshot.PageSnapshot{
		HTML: `<html><body><img src="/hero.webp" alt="hero" srcset="/hero-2x.webp 2x"></body></html>`,
	}
	res := Analyze(direct)
	if res.Score == nil || *res.Score != 100 {
		t.Errorf("webp + srcset + alt single image should score 100, got %v (issues: %v)", res.Score, res.Issues)
	}

	picture := &snapshot.PageSnapshot{
		HTML: `<html><body><picture>
			<source type="image/webp" srcset="/hero.webp">
			<img src="/hero.jpg" alt="hero" srcset="/hero-2x.jpg 2x">
		</picture></body></html>`,
	}
	res = Analyze(picture)
	if res.Score == nil || *res.Score != 100 {
		t.Errorf("picture/webp source should count as modern delivery, got %v (issues: %v)", res.Score, res.Issues)
	}
}

func TestAnalyze_LazyLoadingRule(t *testing.T) {
	snap := &snapshot.PageSnapshot{
		Viewport: snapshot.Viewport{Width: 1366, Height: 768},
		HTML: `<html><body>
			<img src="/a.webp" alt="a" srcset="/a2.webp 2x">
			<img src="/b.webp" alt="b" srcset="/b2.webp 2x">
		</body></html>`,
		Elements: []snapshot.ElementRecord{
			imgRecord(100),  // above fold
			imgRecord(1500), // below fold, not lazy
		},
	}
	res := Analyze(snap)
	if res.Score == nil || *res.Score != 85 {
		t.Errorf("eagerly loaded below-fold image should cost 15, got %v (issues: %v)", res.Score, res.Issues)
	}
}
