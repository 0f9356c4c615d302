//go:build !gocv

package contour

import (
	"errors"
	"image"
	"testing"
)

func TestNewSource_GocvUnavailable(t *testing.T) {
	p := DefaultEdgeParams()
	p.Backend = BackendGocv

	if _, err := NewSource(p); !errors.Is(err, ErrGocvUnavailable) {
		t.Errorf("NewSource error = %v, want ErrGocvUnavailable", err)
	}

	var s GocvSource
	if _, err := s.Contours(image.NewGray(image.Rect(0, 0, 4, 4))); !errors.Is(err, ErrGocvUnavailable) {
		t.Errorf("Contours error = %v, want ErrGocvUnavailable", err)
	}
}
