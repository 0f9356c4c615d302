package screens

import (
	"errors"
	"testing"
)

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()

	if err := th.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	want := Thresholds{
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
	if th != want {
		t.Errorf("DefaultThresholds = %+v, want %+v", th, want)
	}
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(th *Thresholds)
	}{
		{"zero width frac", func(th *Thresholds) { th.MinWidthFrac = 0 }},
		{"width frac above one", func(th *Thresholds) { th.MaxWidthFrac = 1.5 }},
		{"width min above max", func(th *Thresholds) { th.MinWidthFrac = 0.5 }},
		{"height min equals max", func(th *Thresholds) { th.MinHeightFrac = 0.6 }},
		{"negative height frac", func(th *Thresholds) { th.MaxHeightFrac = -0.1 }},
		{"aspect min above max", func(th *Thresholds) { th.MinAspect = 3 }},
		{"negative aspect", func(th *Thresholds) { th.MinAspect = -1 }},
		{"blackness above 100", func(th *Thresholds) { th.MinBlackness = 101 }},
		{"negative blackness", func(th *Thresholds) { th.MinBlackness = -1 }},
		{"negative width floor", func(th *Thresholds) { th.MinWidthPx = -1 }},
		{"negative height floor", func(th *Thresholds) { th.MinHeightPx = -1 }},
		{"overlap above one", func(th *Thresholds) { th.MaxOverlap = 1.1 }},
		{"negative overlap", func(th *Thresholds) { th.MaxOverlap = -0.1 }},
		{"zero screens", func(th *Thresholds) { th.MaxScreens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.modify(&th)
			err := th.Validate()
			if !errors.Is(err, ErrInvalidThresholds) {
				t.Errorf("Validate() = %v, want ErrInvalidThresholds", err)
			}
		})
	}
}

func TestThresholds_ValidateEdgeValues(t *testing.T) {
	th := DefaultThresholds()
	th.MaxWidthFrac = 1
	th.MaxHeightFrac = 1
	th.MinAspect = 0
	th.MinBlackness = 0
	th.MaxOverlap = 0
	th.MaxScreens = 1
	th.MinWidthPx = 0
	th.MinHeightPx = 0

	if err := th.Validate(); err != nil {
		t.Errorf("edge values should validate: %v", err)
	}
}
