package screens

import (
	"image"

	"github.com/ironsheep/screen-finder-mcp/internal/contour"
)

// Meter measures how dark a region of an image is, from 0 (white) to 100
// (black). imaging.BlacknessMeter is the standard implementation.
type Meter interface {
	Blackness(img image.Image, r image.Rectangle) float64
}

// MeterFunc adapts a plain function to Meter.
type MeterFunc func(img image.Image, r image.Rectangle) float64

// Blackness calls f.
func (f MeterFunc) Blackness(img image.Image, r image.Rectangle) float64 {
	return f(img, r)
}

// Extract measures one contour. The bounding box is clipped to the image.
// It returns false, without calling the meter, when the box is degenerate or
// below the pixel noise floor (t.MinWidthPx, t.MinHeightPx).
func Extract(id int, c contour.Contour, img image.Image, m Meter, t Thresholds) (Metrics, bool) {
	if len(c) == 0 {
		return Metrics{}, false
	}
	r := c.Bounds().Intersect(img.Bounds())
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 || w < t.MinWidthPx || h < t.MinHeightPx {
		return Metrics{}, false
	}

	area := c.Area()
	var solidity float64
	if hull := c.HullArea(); hull > 0 {
		solidity = area / hull
	}

	return Metrics{
		ID:          id,
		BBox:        BBoxFromRect(r),
		AspectRatio: float64(w) / float64(h),
		Blackness:   m.Blackness(img, r),
		AvgY:        float64(r.Min.Y) + float64(h)/2,
		ContourArea: area,
		Solidity:    solidity,
	}, true
}

// ExtractAll measures every contour. IDs count up from zero over the contours
// that survive the noise floor, in input order.
func ExtractAll(contours []contour.Contour, img image.Image, m Meter, t Thresholds) []Metrics {
	out := make([]Metrics, 0, len(contours))
	for _, c := range contours {
		if mt, ok := Extract(len(out), c, img, m, t); ok {
			out = append(out, mt)
		}
	}
	return out
}
