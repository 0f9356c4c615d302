//go:build !gocv

package contour

import "image"

// GocvSource is a placeholder; every call fails with ErrGocvUnavailable.
type GocvSource struct{}

// NewGocvSource always fails in builds without the gocv tag.
func NewGocvSource(EdgeParams) (*GocvSource, error) {
	return nil, ErrGocvUnavailable
}

// Contours implements Source.
func (*GocvSource) Contours(image.Image) ([]Contour, error) {
	return nil, ErrGocvUnavailable
}
