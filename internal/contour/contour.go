package contour

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// Contour is a closed polygon given as an ordered list of vertices. The last
// vertex connects back to the first.
type Contour []image.Point

// Bounds returns the axis-aligned bounding rectangle with inclusive pixel
// extents: Max is one past the right-most and bottom-most points.
// An empty contour has empty bounds.
func (c Contour) Bounds() image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Area returns the enclosed area using the shoelace formula. Vertex order
// does not matter; the result is always non-negative.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	var sum int
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// ConvexHull returns the convex hull in counter-clockwise order (with Y
// pointing down this appears clockwise on screen). Collinear points are
// dropped.
func (c Contour) ConvexHull() Contour {
	pts := make([]image.Point, len(c))
	copy(pts, c)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Deduplicate
	uniq := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return Contour(uniq)
	}

	hull := make(Contour, 0, 2*len(uniq))
	for _, p := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// HullArea is the area of the convex hull.
func (c Contour) HullArea() float64 {
	return c.ConvexHull().Area()
}

// Contains reports whether p lies inside the polygon (even-odd rule).
// Points exactly on an edge may go either way.
func (c Contour) Contains(p image.Point) bool {
	in := false
	n := len(c)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := float64(b.X-a.X)*float64(p.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(p.X) < x {
				in = !in
			}
		}
	}
	return in
}

// Translate returns a copy of c shifted by d.
func (c Contour) Translate(d image.Point) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[i] = p.Add(d)
	}
	return out
}

func cross(o, a, b image.Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Source produces the contours of one image.
type Source interface {
	Contours(img image.Image) ([]Contour, error)
}

// Retrieval selects which contours a Source returns.
type Retrieval string

const (
	// RetrievalExternal drops contours enclosed by another contour.
	RetrievalExternal Retrieval = "external"

	// RetrievalList returns the outer boundary of every component.
	RetrievalList Retrieval = "list"
)

// Backend names accepted by NewSource.
const (
	BackendGo   = "go"
	BackendGocv = "gocv"
)

var (
	// ErrInvalidParams is returned when EdgeParams fail validation.
	ErrInvalidParams = errors.New("invalid edge parameters")

	// ErrGocvUnavailable is returned for the gocv backend when the binary
	// was built without the gocv build tag.
	ErrGocvUnavailable = errors.New("gocv backend not compiled in (build with -tags gocv)")
)

// EdgeParams configures contour extraction.
type EdgeParams struct {
	// Backend is "go" (default) or "gocv".
	Backend string `yaml:"backend" json:"backend,omitempty"`

	// BlurSigma is the Gaussian sigma applied before edge detection. The
	// default of 1.4 is what OpenCV derives for a 7x7 kernel.
	BlurSigma float64 `yaml:"blur_sigma" json:"blur_sigma"`

	// ThresholdLow and ThresholdHigh are the Canny hysteresis thresholds on
	// the 0-255 scale.
	ThresholdLow  int `yaml:"threshold_low" json:"threshold_low"`
	ThresholdHigh int `yaml:"threshold_high" json:"threshold_high"`

	// DilateRadius closes small gaps in the edge map. Zero disables it.
	DilateRadius float64 `yaml:"dilate_radius" json:"dilate_radius"`

	// Retrieval is "external" (default) or "list".
	Retrieval Retrieval `yaml:"retrieval" json:"retrieval,omitempty"`

	// MinPixels drops edge components with fewer pixels. Ignored by gocv.
	MinPixels int `yaml:"min_pixels" json:"min_pixels"`
}

// DefaultEdgeParams returns the settings tuned for photographed monitors.
func DefaultEdgeParams() EdgeParams {
	return EdgeParams{
		Backend:       BackendGo,
		BlurSigma:     1.4,
		ThresholdLow:  40,
		ThresholdHigh: 120,
		Retrieval:     RetrievalExternal,
		MinPixels:     10,
	}
}

// Validate checks the parameter ranges.
func (p EdgeParams) Validate() error {
	switch p.Backend {
	case "", BackendGo, BackendGocv:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidParams, p.Backend)
	}
	switch p.Retrieval {
	case "", RetrievalExternal, RetrievalList:
	default:
		return fmt.Errorf("%w: unknown retrieval mode %q", ErrInvalidParams, p.Retrieval)
	}
	if p.BlurSigma < 0 || p.DilateRadius < 0 {
		return fmt.Errorf("%w: blur_sigma and dilate_radius must not be negative", ErrInvalidParams)
	}
	if p.ThresholdLow < 0 || p.ThresholdHigh > 255 || p.ThresholdLow > p.ThresholdHigh {
		return fmt.Errorf("%w: thresholds must satisfy 0 <= low <= high <= 255, got %d/%d",
			ErrInvalidParams, p.ThresholdLow, p.ThresholdHigh)
	}
	if p.MinPixels < 0 {
		return fmt.Errorf("%w: min_pixels must not be negative", ErrInvalidParams)
	}
	return nil
}

// NewSource builds the Source named by p.Backend.
func NewSource(p EdgeParams) (Source, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Backend == BackendGocv {
		src, err := NewGocvSource(p)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return NewEdgeTracer(p), nil
}
