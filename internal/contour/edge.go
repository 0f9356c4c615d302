package contour

import (
	"fmt"
	"image"

	"github.com/ironsheep/screen-finder-mcp/internal/imaging"
)

// EdgeTracer is the pure Go Source: Canny edges followed by boundary tracing.
type EdgeTracer struct {
	params EdgeParams
}

// NewEdgeTracer returns an EdgeTracer. Zero-valued Retrieval means external.
func NewEdgeTracer(p EdgeParams) *EdgeTracer {
	if p.Retrieval == "" {
		p.Retrieval = RetrievalExternal
	}
	return &EdgeTracer{params: p}
}

// Params returns the tracer's configuration.
func (t *EdgeTracer) Params() EdgeParams {
	return t.params
}

// Contours implements Source.
func (t *EdgeTracer) Contours(img image.Image) ([]Contour, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot trace empty image")
	}

	edges := imaging.EdgeMap(img, imaging.EdgeOptions{
		BlurSigma:     t.params.BlurSigma,
		ThresholdLow:  t.params.ThresholdLow,
		ThresholdHigh: t.params.ThresholdHigh,
		DilateRadius:  t.params.DilateRadius,
	})

	contours := Trace(edges, t.params.Retrieval, t.params.MinPixels)
	if bounds.Min != (image.Point{}) {
		for i, c := range contours {
			contours[i] = c.Translate(bounds.Min)
		}
	}
	return contours, nil
}
