package screens

import (
	"image"

	"github.com/ironsheep/screen-finder-mcp/internal/contour"
)

// candidate builds a classified candidate directly, bypassing extraction.
func candidate(id int, cat Category, x, y, w, h int) Candidate {
	all := cat == Accepted
	return Candidate{
		Metrics: Metrics{
			ID:          id,
			BBox:        BBox{X: x, Y: y, Width: w, Height: h},
			AspectRatio: float64(w) / float64(h),
			Blackness:   90,
			AvgY:        float64(y) + float64(h)/2,
		},
		Category: cat,
		Checks:   Checks{Width: all, Height: all, Aspect: all, Blackness: all},
	}
}

func accepted(id, x, y, w, h int) Candidate {
	return candidate(id, Accepted, x, y, w, h)
}

// rectContour returns the four corners of r, as traced contours report them.
func rectContour(r image.Rectangle) contour.Contour {
	return contour.Contour{
		{r.Min.X, r.Min.Y},
		{r.Max.X - 1, r.Min.Y},
		{r.Max.X - 1, r.Max.Y - 1},
		{r.Min.X, r.Max.Y - 1},
	}
}

// constantMeter reports the same blackness for every region.
func constantMeter(v float64) Meter {
	return MeterFunc(func(image.Image, image.Rectangle) float64 { return v })
}

// stubSource returns fixed contours for every image.
type stubSource struct {
	contours []contour.Contour
	err      error
}

func (s stubSource) Contours(image.Image) ([]contour.Contour, error) {
	return s.contours, s.err
}

func ids(cs []Candidate) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
