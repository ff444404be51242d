package whitespace

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gkobilansky/landing-page-report/snapshot"
)

var vp = snapshot.Viewport{Width: 1000, Height: 1200}

func rect(top, left, w, h float64) snapshot.ElementRecord {
	return snapshot.ElementRecord{
		Tag:   "div",
		Rect:  snapshot.Rect{Top: top, Left: left, Width: w, Height: h},
		Style: snapshot.ComputedStyle{},
	}
}

func TestAnalyzeDensity_CenterPointMembership(t *testing.T) {
	records := []snapshot.ElementRecord{
		rect(50, 50, 100, 100),   // center (100,100) → col 0, row 0
		rect(50, 300, 100, 100),  // center (350,100) → col 1, row 0
		rect(1150, 50, 100, 100), // center (100,1200) → outside (cy == height)
		rect(0, 0, 0, 0),         // zero size → excluded
	}

	grid := AnalyzeDensity(records, vp, 4, 6)

	if got := grid.PerCellCount[0]; got != 1 {
		t.Errorf("cell (0,0) count = %d, want 1", got)
	}
	if got := grid.PerCellCount[1]; got != 1 {
		t.Errorf("cell (1,0) count = %d, want 1", got)
	}

	total := 0
	for _, c := range grid.PerCellCount {
		total += c
	}
	if total != 2 {
		t.Errorf("each element must land in at most one cell, total = %d", total)
	}
	if grid.MaxCellCount() != 1 {
		t.Errorf("MaxCellCount = %d, want 1", grid.MaxCellCount())
	}
}

func TestAnalyzeDensity_EdgeClamping(t *testing.T) {
	// Center exactly inside the last column/row must clamp, not panic.
	records := []snapshot.ElementRecord{rect(1190, 990, 8, 8)}
	grid := AnalyzeDensity(records, vp, 4, 6)

	if got := grid.PerCellCount[len(grid.PerCellCount)-1]; got != 1 {
		t.Errorf("edge element should land in the last cell, got %d", got)
	}
}

func TestAnalyzeOverlapArea_NoDoubleCounting(t *testing.T) {
	one := AnalyzeOverlapArea([]snapshot.ElementRecord{rect(0, 0, 100, 100)}, vp)
	if one.ContentArea != 10000 {
		t.Errorf("single box content area = %v, want 10000", one.ContentArea)
	}

	// A duplicate box contributes nothing.
	two := AnalyzeOverlapArea([]snapshot.ElementRecord{
		rect(0, 0, 100, 100),
		rect(0, 0, 100, 100),
	}, vp)
	if two.ContentArea != 10000 {
		t.Errorf("duplicate boxes content area = %v, want 10000", two.ContentArea)
	}

	// A contained box contributes nothing either.
	nested := AnalyzeOverlapArea([]snapshot.ElementRecord{
		rect(0, 0, 100, 100),
		rect(10, 10, 20, 20),
	}, vp)
	if nested.ContentArea != 10000 {
		t.Errorf("nested boxes content area = %v, want 10000", nested.ContentArea)
	}
}

func TestAnalyzeOverlapArea_MoreContentLessWhitespace(t *testing.T) {
	sparse := AnalyzeOverlapArea([]snapshot.ElementRecord{rect(0, 0, 100, 100)}, vp)
	dense := AnalyzeOverlapArea([]snapshot.ElementRecord{
		rect(0, 0, 100, 100),
		rect(200, 200, 100, 100),
	}, vp)

	if dense.WhitespaceRatio >= sparse.WhitespaceRatio {
		t.Errorf("adding disjoint content must lower the whitespace ratio: %v vs %v",
			dense.WhitespaceRatio, sparse.WhitespaceRatio)
	}
}

func TestAnalyzeOverlapArea_SkipsContainers(t *testing.T) {
	// A near-viewport-sized wrapper is layout, not content.
	container := rect(0, 0, 1000, 1100) // 1.1M > 0.8 * 1.2M
	res := AnalyzeOverlapArea([]snapshot.ElementRecord{container}, vp)
	if res.ContentArea != 0 {
		t.Errorf("container should be excluded, content area = %v", res.ContentArea)
	}
}

func TestEffectiveRect_EstimatesTextHeight(t *testing.T) {
	// 80px wide → 10 chars per line; 100 chars → 10 lines → 200px tall.
	e := snapshot.ElementRecord{
		Tag:  "p",
		Text: string(bytes.Repeat([]byte("a"), 100)),
		Rect: snapshot.Rect{Top: 0, Left: 0, Width: 80, Height: 0},
	}
	res := AnalyzeOverlapArea([]snapshot.ElementRecord{e}, vp)
	if res.ContentArea != 80*200 {
		t.Errorf("estimated content area = %v, want %v", res.ContentArea, 80*200)
	}
}

func encodePNG(t *testing.T, c color.Color, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestAnalyzeRaster_AllWhite(t *testing.T) {
	stats, err := AnalyzeRaster(encodePNG(t, color.White, 20, 20), DefaultLumaThreshold)
	if err != nil {
		t.Fatalf("AnalyzeRaster: %v", err)
	}
	if stats.Ratio != 1.0 {
		t.Errorf("all-white ratio = %v, want 1.0", stats.Ratio)
	}
	if stats.ContentPixels != 0 {
		t.Errorf("all-white content pixels = %d, want 0", stats.ContentPixels)
	}
}

func TestAnalyzeRaster_AllBlack(t *testing.T) {
	stats, err := AnalyzeRaster(encodePNG(t, color.Black, 20, 20), DefaultLumaThreshold)
	if err != nil {
		t.Fatalf("AnalyzeRaster: %v", err)
	}
	if stats.Ratio != 0.0 {
		t.Errorf("all-black ratio = %v, want 0.0", stats.Ratio)
	}
	if stats.ContentPixels != stats.TotalPixels {
		t.Errorf("all pixels should be content, got %d of %d", stats.ContentPixels, stats.TotalPixels)
	}
}

func TestAnalyzeRaster_Errors(t *testing.T) {
	if _, err := AnalyzeRaster(nil, DefaultLumaThreshold); err == nil {
		t.Error("empty input should error")
	}
	if _, err := AnalyzeRaster([]byte("not an image"), DefaultLumaThreshold); err == nil {
		t.Error("undecodable input should error")
	}
}

func TestClutter_RatioBands(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{0.20, 60},
		{0.30, 40},
		{0.40, 20},
		{0.50, 5},
		{0.60, 0},
	}
	for _, tt := range tests {
		m := Metrics{DOMRatio: tt.ratio}
		if got := Clutter(&m); got != tt.want {
			t.Errorf("Clutter(ratio=%.2f) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

func TestClutter_RasterOverridesDOM(t *testing.T) {
	raster := 0.60
	m := Metrics{DOMRatio: 0.20, RasterRatio: &raster}
	if got := Clutter(&m); got != 0 {
		t.Errorf("raster ratio must supersede the DOM estimate, got %d", got)
	}
}

func TestClutter_DensityAndSpacing(t *testing.T) {
	m := Metrics{
		DOMRatio: 0.30, // +40
		Grid:     DensityGrid{PerCellCount: []int{35}},
		Spacing:  SpacingChecks{CTATight: true},
	}
	// 40 + 15 (max cell > 30) − 5 (tight CTA spacing) = 50.
	if got := Clutter(&m); got != 50 {
		t.Errorf("Clutter = %d, want 50", got)
	}
}

func TestMeasure_FallsBackWithoutScreenshot(t *testing.T) {
	snap := &snapshot.PageSnapshot{
		Viewport: vp,
		Elements: []snapshot.ElementRecord{rect(0, 0, 100, 100)},
	}
	m := Measure(snap)
	if m.RasterRatio != nil {
		t.Error("no screenshot must mean no raster ratio")
	}
	if m.EffectiveRatio() != m.DOMRatio {
		t.Error("effective ratio should fall back to the DOM estimate")
	}
}

func TestMeasure_BadScreenshotIsNotFatal(t *testing.T) {
	snap := &snapshot.PageSnapshot{
		Viewport:   vp,
		Elements:   []snapshot.ElementRecord{rect(0, 0, 100, 100)},
		Screenshot: []byte("corrupted"),
	}
	m := Measure(snap)
	if m.RasterRatio != nil {
		t.Error("undecodable screenshot must fall back to the DOM estimate")
	}
}

func TestAnalyze_ScoreIsInverseClutter(t *testing.T) {
	snap := &snapshot.PageSnapshot{
		Viewport:   vp,
		Elements:   []snapshot.ElementRecord{rect(100, 100, 200, 100)},
		Screenshot: encodePNG(t, color.White, 20, 20),
	}
	res, m := Analyze(snap)
	if res.Score == nil {
		t.Fatal("whitespace score must never be null")
	}
	if *res.Score != 100-m.ClutterScore {
		t.Errorf("score = %d, want %d", *res.Score, 100-m.ClutterScore)
	}
	// All-white raster → ratio 1.0 → no clutter at all.
	if *res.Score != 100 {
		t.Errorf("empty white page should score 100, got %d (issues: %v)", *res.Score, res.Issues)
	}
}

func TestCheckSpacing(t *testing.T) {
	records := []snapshot.ElementRecord{
		{Tag: "h1", Rect: snapshot.Rect{Width: 100, Height: 40}, Style: snapshot.ComputedStyle{MarginTop: 4, MarginBottom: 4}},
		{Tag: "p", Rect: snapshot.Rect{Width: 100, Height: 40}, Style: snapshot.ComputedStyle{FontSize: 16, LineHeight: 20}},
	}
	checks := checkSpacing(records)

	if !checks.HeadlineTight {
		t.Error("8px headline margin should flag HeadlineTight")
	}
	if !checks.LineHeightTight {
		t.Error("1.25 line-height ratio should flag LineHeightTight")
	}
	if checks.CTATight || checks.ContentBlockTight {
		t.Error("unrelated checks should stay clear")
	}
}
