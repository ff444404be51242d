// Package images audits image optimization: alt text, lazy loading,
// responsive sources, modern formats, and above-the-fold image weight.
// It reads the rendered HTML; fold placement comes from element records.
package images

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gkobilansky/landing-page-report/models"
	"github.com/gkobilansky/landing-page-report/snapshot"
)

const maxAboveFoldImages = 10

// Analyze scores image optimization for one snapshot. Pages without any
// <img> report a null score: the category does not apply and must not
// drag down the overall average.
func Analyze(snap *snapshot.PageSnapshot) models.CategoryResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil || snap.HTML == "" {
		return models.NotApplicable("No rendered HTML was captured")
	}

	imgs := doc.Find("img")
	total := imgs.Length()
	if total == 0 {
		return models.NotApplicable("No images found on the page")
	}

	missingAlt := 0
	lazyCount := 0
	srcsetCount := 0
	modernFormat := false

	imgs.Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			missingAlt++
		}
		if loading, _ := s.Attr("loading"); strings.EqualFold(loading, "lazy") {
			lazyCount++
		}
		if _, ok := s.Attr("srcset"); ok {
			srcsetCount++
		}
		if src, _ := s.Attr("src"); isModernFormat(src) {
			modernFormat = true
		}
	})

	// <picture><source type="image/webp"> also counts as modern delivery.
	doc.Find("picture source").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t, _ := s.Attr("type")
		srcset, _ := s.Attr("srcset")
		if strings.Contains(t, "webp") || strings.Contains(t, "avif") ||
			isModernFormat(srcset) {
			modernFormat = true
			return false
		}
		return true
	})

	aboveFold, belowFold := foldCounts(snap)

	score := 100
	var issues, recs []string

	if missingAlt > 0 {
		deduction := 5 * missingAlt
		if deduction > 25 {
			deduction = 25
		}
		score -= deduction
		issues = append(issues, fmt.Sprintf("%d of %d images are missing alt text", missingAlt, total))
		recs = append(recs, "Add descriptive alt attributes to every meaningful image")
	}

	if belowFold > 0 && lazyCount == 0 {
		score -= 15
		issues = append(issues, "Below-the-fold images are not lazy-loaded")
		recs = append(recs, `Add loading="lazy" to images outside the first viewport`)
	}

	if srcsetCount == 0 && total > 1 {
		score -= 10
		issues = append(issues, "No responsive image sources (srcset) were found")
		recs = append(recs, "Serve appropriately sized images per device with srcset")
	}

	if !modernFormat {
		score -= 10
		issues = append(issues, "Images are served only in legacy formats")
		recs = append(recs, "Serve WebP or AVIF with a fallback for older browsers")
	}

	if aboveFold > maxAboveFoldImages {
		score -= 10
		issues = append(issues, fmt.Sprintf("%d images load above the fold", aboveFold))
		recs = append(recs, "Reduce above-the-fold image count to speed up first paint")
	}

	if score < 0 {
		score = 0
	}
	return models.Scored(score, issues, recs)
}

func isModernFormat(src string) bool {
	s := strings.ToLower(src)
	return strings.Contains(s, ".webp") || strings.Contains(s, ".avif")
}

// foldCounts splits captured <img> records by the fold line. When the
// renderer captured no image records both counts are zero and the
// fold-dependent rules stay silent.
func foldCounts(snap *snapshot.PageSnapshot) (above, below int) {
	for i := range snap.Elements {
		e := &snap.Elements[i]
		if e.Tag != "img" || e.Hidden() {
			continue
		}
		if e.AboveFold(snap.Viewport) {
			above++
		} else {
			below++
		}
	}
	return above, below
}
