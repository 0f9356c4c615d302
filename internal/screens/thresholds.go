package screens

import (
	"errors"
	"fmt"
)

// ErrInvalidThresholds is returned when a Thresholds value fails validation.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// Thresholds holds every tuning constant of the detector.
//
// The fractional bounds are relative to the image size and exclusive on both
// ends. The defaults encode the look of a monitor bezel photographed from a
// fixed working distance.
type Thresholds struct {
	// Width must lie strictly between MinWidthFrac and MaxWidthFrac of the
	// image width.
	MinWidthFrac float64 `yaml:"min_width_frac" json:"min_width_frac"`
	MaxWidthFrac float64 `yaml:"max_width_frac" json:"max_width_frac"`

	// Height must lie strictly between MinHeightFrac and MaxHeightFrac of the
	// image height.
	MinHeightFrac float64 `yaml:"min_height_frac" json:"min_height_frac"`
	MaxHeightFrac float64 `yaml:"max_height_frac" json:"max_height_frac"`

	// Width / height must lie strictly between MinAspect and MaxAspect.
	MinAspect float64 `yaml:"min_aspect" json:"min_aspect"`
	MaxAspect float64 `yaml:"max_aspect" json:"max_aspect"`

	// Blackness (0-100) must exceed MinBlackness.
	MinBlackness float64 `yaml:"min_blackness" json:"min_blackness"`

	// Contours whose bounding box is narrower than MinWidthPx or shorter than
	// MinHeightPx never become candidates. Absolute pixels, independent of
	// image size.
	MinWidthPx  int `yaml:"min_width_px" json:"min_width_px"`
	MinHeightPx int `yaml:"min_height_px" json:"min_height_px"`

	// MaxOverlap is the largest share of a candidate's area that may
	// intersect an already selected screen.
	MaxOverlap float64 `yaml:"max_overlap" json:"max_overlap"`

	// MaxScreens caps the number of selected screens.
	MaxScreens int `yaml:"max_screens" json:"max_screens"`
}

// DefaultThresholds returns the standard detector settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinWidthFrac:  0.15,
		MaxWidthFrac:  0.40,
		MinHeightFrac: 0.15,
		MaxHeightFrac: 0.6,
		MinAspect:     0.8,
		MaxAspect:     2.5,
		MinBlackness:  50,
		MinWidthPx:    300,
		MinHeightPx:   200,
		MaxOverlap:    0.3,
		MaxScreens:    3,
	}
}

// Validate reports the first inconsistent setting, wrapped in
// ErrInvalidThresholds.
func (t Thresholds) Validate() error {
	fracs := []struct {
		name string
		v    float64
	}{
		{"min_width_frac", t.MinWidthFrac},
		{"max_width_frac", t.MaxWidthFrac},
		{"min_height_frac", t.MinHeightFrac},
		{"max_height_frac", t.MaxHeightFrac},
	}
	for _, f := range fracs {
		if f.v <= 0 || f.v > 1 {
			return fmt.Errorf("%w: %s must be in (0, 1], got %g", ErrInvalidThresholds, f.name, f.v)
		}
	}
	if t.MinWidthFrac >= t.MaxWidthFrac {
		return fmt.Errorf("%w: min_width_frac %g must be below max_width_frac %g", ErrInvalidThresholds, t.MinWidthFrac, t.MaxWidthFrac)
	}
	if t.MinHeightFrac >= t.MaxHeightFrac {
		return fmt.Errorf("%w: min_height_frac %g must be below max_height_frac %g", ErrInvalidThresholds, t.MinHeightFrac, t.MaxHeightFrac)
	}
	if t.MinAspect < 0 || t.MinAspect >= t.MaxAspect {
		return fmt.Errorf("%w: aspect bounds must satisfy 0 <= min < max, got %g/%g", ErrInvalidThresholds, t.MinAspect, t.MaxAspect)
	}
	if t.MinBlackness < 0 || t.MinBlackness > 100 {
		return fmt.Errorf("%w: min_blackness must be in [0, 100], got %g", ErrInvalidThresholds, t.MinBlackness)
	}
	if t.MinWidthPx < 0 || t.MinHeightPx < 0 {
		return fmt.Errorf("%w: pixel floors must not be negative", ErrInvalidThresholds)
	}
	if t.MaxOverlap < 0 || t.MaxOverlap > 1 {
		return fmt.Errorf("%w: max_overlap must be in [0, 1], got %g", ErrInvalidThresholds, t.MaxOverlap)
	}
	if t.MaxScreens < 1 {
		return fmt.Errorf("%w: max_screens must be at least 1, got %d", ErrInvalidThresholds, t.MaxScreens)
	}
	return nil
}
