// Package whitespace estimates visual density and breathing room: a
// DOM-derived whitespace ratio from overlap-aware content area, a grid
// density map, and — when a screenshot is available — a pixel-level
// raster ratio that supersedes the DOM estimate.
package whitespace

import (
	"math"
	"sort"

	"github.com/gkobilansky/landing-page-report/snapshot"
)

// Default grid partitioning of the viewport.
const (
	DefaultColumns = 4
	DefaultRows    = 6
)

// Line-wrap heuristic constants for elements that report no height.
const (
	approxCharWidth  = 8.0
	approxLineHeight = 20.0
)

// DensityGrid partitions the viewport into columns x rows cells and
// counts element membership per cell. sum(PerCellCount) never exceeds
// the number of qualifying elements: each element lands in at most one
// cell, by its center point.
type DensityGrid struct {
	Columns      int   `json:"columns"`
	Rows         int   `json:"rows"`
	PerCellCount []int `json:"per_cell_count"`
}

// MaxCellCount returns the highest cell occupancy.
func (g *DensityGrid) MaxCellCount() int {
	maxCount := 0
	for _, c := range g.PerCellCount {
		if c > maxCount {
			maxCount = c
		}
	}
	return maxCount
}

// AnalyzeDensity assigns each qualifying element to exactly one grid
// cell by its center point. Zero-size elements and elements fully
// outside the viewport's vertical extent are excluded.
func AnalyzeDensity(records []snapshot.ElementRecord, vp snapshot.Viewport, columns, rows int) DensityGrid {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	grid := DensityGrid{
		Columns:      columns,
		Rows:         rows,
		PerCellCount: make([]int, columns*rows),
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return grid
	}

	cellW := vp.Width / float64(columns)
	cellH := vp.Height / float64(rows)

	for i := range records {
		r := effectiveRect(&records[i])
		if r.Empty() {
			continue
		}
		if r.Bottom() <= 0 || r.Top >= vp.Height {
			continue
		}
		cx, cy := r.CenterX(), r.CenterY()
		if cx < 0 || cx >= vp.Width || cy < 0 || cy >= vp.Height {
			continue
		}
		col := int(cx / cellW)
		row := int(cy / cellH)
		if col >= columns {
			col = columns - 1
		}
		if row >= rows {
			row = rows - 1
		}
		grid.PerCellCount[row*columns+col]++
	}

	return grid
}

// AreaResult is the outcome of the overlap-aware content area pass.
type AreaResult struct {
	ContentArea     float64 `json:"content_area"`
	WhitespaceRatio float64 `json:"whitespace_ratio"`
}

// AnalyzeOverlapArea computes total content area without double-counting
// overlapping boxes: rectangles are taken largest-first, and each new
// rectangle contributes its area minus its intersections with the
// rectangles already accepted. O(n²), fine for the few hundred records a
// page yields.
func AnalyzeOverlapArea(records []snapshot.ElementRecord, vp snapshot.Viewport) AreaResult {
	viewportArea := vp.Area()
	if viewportArea <= 0 {
		return AreaResult{}
	}

	rects := make([]snapshot.Rect, 0, len(records))
	for i := range records {
		r := effectiveRect(&records[i])
		if r.Empty() {
			continue
		}
		// Only the first viewport matters for the whitespace estimate.
		if r.Bottom() <= 0 || r.Top >= vp.Height {
			continue
		}
		// Near-viewport-sized boxes are layout containers, not content.
		if r.Area() > 0.8*viewportArea {
			continue
		}
		rects = append(rects, clip(r, vp))
	}

	sort.Slice(rects, func(i, j int) bool { return rects[i].Area() > rects[j].Area() })

	total := 0.0
	accepted := make([]snapshot.Rect, 0, len(rects))
	for _, r := range rects {
		contribution := r.Area()
		for _, a := range accepted {
			contribution -= r.IntersectArea(a)
		}
		if contribution > 0 {
			total += contribution
		}
		accepted = append(accepted, r)
	}

	if total > viewportArea {
		total = viewportArea
	}

	ratio := 1 - total/viewportArea
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	return AreaResult{ContentArea: total, WhitespaceRatio: ratio}
}

// effectiveRect returns the element's box, estimating a height for
// text-bearing elements that report none — a stale layout box is less
// trustworthy than a character-count line-wrap estimate.
func effectiveRect(e *snapshot.ElementRecord) snapshot.Rect {
	r := e.Rect
	if r.Height <= 0 && e.Text != "" && r.Width > 0 {
		charsPerLine := r.Width / approxCharWidth
		if charsPerLine < 1 {
			charsPerLine = 1
		}
		lines := math.Ceil(float64(len(e.Text)) / charsPerLine)
		r.Height = lines * approxLineHeight
	}
	return r
}

func clip(r snapshot.Rect, vp snapshot.Viewport) snapshot.Rect {
	top := math.Max(r.Top, 0)
	left := math.Max(r.Left, 0)
	bottom := math.Min(r.Bottom(), vp.Height)
	right := math.Min(r.Right(), vp.Width)
	return snapshot.Rect{Top: top, Left: left, Width: right - left, Height: bottom - top}
}
