package screens

import (
	"fmt"
	"image"
)

// BBox is an axis-aligned bounding box. Width and Height count pixels, so a
// box covering columns 10 through 19 has X 10 and Width 10.
type BBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BBoxFromRect converts an image.Rectangle.
func BBoxFromRect(r image.Rectangle) BBox {
	return BBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect converts b to an image.Rectangle.
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Area returns Width * Height.
func (b BBox) Area() int {
	return b.Width * b.Height
}

// IntersectionArea returns the area shared by b and o.
func (b BBox) IntersectionArea(o BBox) int {
	return BBoxFromRect(b.Rect().Intersect(o.Rect())).Area()
}

// Overlap returns the share of b's own area that intersects o. This is not
// IoU: the denominator is b alone, so Overlap is not symmetric. An empty b
// never overlaps.
func (b BBox) Overlap(o BBox) float64 {
	a := b.Area()
	if a <= 0 {
		return 0
	}
	return float64(b.IntersectionArea(o)) / float64(a)
}

// Category is the classifier's verdict on a candidate.
type Category int

const (
	// Accepted candidates pass every check and may be selected.
	Accepted Category = iota + 1

	// Rejected candidates failed at least one check.
	Rejected
)

func (c Category) String() string {
	switch c {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// MarshalText renders the category as "accepted" or "rejected".
func (c Category) MarshalText() ([]byte, error) {
	switch c {
	case Accepted, Rejected:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
}

// UnmarshalText parses "accepted" or "rejected".
func (c *Category) UnmarshalText(text []byte) error {
	switch string(text) {
	case "accepted":
		*c = Accepted
	case "rejected":
		*c = Rejected
	default:
		return fmt.Errorf("invalid category %q", text)
	}
	return nil
}

// Checks records the outcome of each classification predicate.
type Checks struct {
	Width     bool `json:"width"`
	Height    bool `json:"height"`
	Aspect    bool `json:"aspect"`
	Blackness bool `json:"blackness"`
}

// All reports whether every check passed.
func (c Checks) All() bool {
	return c.Width && c.Height && c.Aspect && c.Blackness
}

// Metrics describes one contour that survived the noise floor. It carries no
// verdict; Classify turns it into a Candidate.
type Metrics struct {
	// ID is the position among surviving contours, in discovery order.
	ID int `json:"id"`

	BBox BBox `json:"bbox"`

	// AspectRatio is Width / Height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Blackness (0-100) of the bounding box region.
	Blackness float64 `json:"blackness"`

	// AvgY is the vertical centre of the box: Y + Height/2.
	AvgY float64 `json:"avg_y"`

	// ContourArea and Solidity (contour area / hull area) are reported for
	// diagnosis only. No check uses them.
	ContourArea float64 `json:"contour_area"`
	Solidity    float64 `json:"solidity"`
}

// Candidate is a classified region.
type Candidate struct {
	Metrics
	Category Category `json:"category"`
	Checks   Checks   `json:"checks"`
}

// IsAccepted reports whether the candidate passed classification.
func (c Candidate) IsAccepted() bool {
	return c.Category == Accepted
}
