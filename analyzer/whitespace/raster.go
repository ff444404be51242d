package whitespace

import (
	"bytes"
	"errors"
	"image"

	// Screenshot formats the renderer may hand us.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultLumaThreshold separates background from content: pixels with
// luma at or above it count as background.
const DefaultLumaThreshold = 240

// maxRasterWidth bounds the pixel loop; larger screenshots are
// downscaled first. The ratio is a heuristic, so resampling error is
// acceptable.
const maxRasterWidth = 1600

// RasterStats is the pixel-level whitespace measurement of a rendered
// screenshot. It reflects actual rendering rather than layout-box
// approximation, so when present it overrides the DOM estimate.
type RasterStats struct {
	TotalPixels   int     `json:"total_pixels"`
	ContentPixels int     `json:"content_pixels"`
	Ratio         float64 `json:"ratio"` // whitespace ratio, 0..1
}

var errEmptyImage = errors.New("whitespace: empty raster image")

// AnalyzeRaster thresholds a rendered raster image pixel by pixel.
// A pixel is content iff its luma (0.299R + 0.587G + 0.114B) is below
// threshold; the whitespace ratio is 1 − content/total.
func AnalyzeRaster(imageBytes []byte, threshold uint8) (RasterStats, error) {
	if len(imageBytes) == 0 {
		return RasterStats{}, errEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return RasterStats{}, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxRasterWidth {
		img = downscale(img, maxRasterWidth)
		bounds = img.Bounds()
	}
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return RasterStats{}, errEmptyImage
	}

	total := 0
	content := 0
	thr := float64(threshold)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			luma := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			total++
			if luma < thr {
				content++
			}
		}
	}

	return RasterStats{
		TotalPixels:   total,
		ContentPixels: content,
		Ratio:         1 - float64(content)/float64(total),
	}, nil
}

func downscale(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := int(float64(b.Dy()) * float64(width) / float64(b.Dx()))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
