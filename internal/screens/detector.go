package screens

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"

	"github.com/ironsheep/screen-finder-mcp/internal/contour"
	"github.com/ironsheep/screen-finder-mcp/internal/imaging"
)

// Report is everything one detection run learned about an image.
type Report struct {
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	ContourCount int         `json:"contour_count"`
	Candidates   []Candidate `json:"candidates"`
	YRef         float64     `json:"y_ref"`
	HasYRef      bool        `json:"has_y_ref"`
	Overlapping  []int       `json:"overlapping"`

	Selection ScreenSelection `json:"selection"`
}

// Detector runs the full pipeline: contours, metrics, classification,
// selection and left-to-right ordering. A Detector holds no per-image state
// and is safe for concurrent use if its Source and Meter are.
type Detector struct {
	source     contour.Source
	meter      Meter
	thresholds Thresholds
	logger     *log.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithSource sets the contour source.
func WithSource(s contour.Source) Option {
	return func(d *Detector) { d.source = s }
}

// WithMeter sets the blackness meter.
func WithMeter(m Meter) Option {
	return func(d *Detector) { d.meter = m }
}

// WithThresholds replaces the default thresholds.
func WithThresholds(t Thresholds) Option {
	return func(d *Detector) { d.thresholds = t }
}

// WithLogger sends per-candidate diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// NewDetector returns a Detector using the pure Go edge tracer, luminance
// blackness and DefaultThresholds unless overridden. Logging is off by
// default.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		source:     contour.NewEdgeTracer(contour.DefaultEdgeParams()),
		meter:      imaging.BlacknessMeter{Method: imaging.BlacknessLuminance},
		thresholds: DefaultThresholds(),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Thresholds returns the detector's thresholds.
func (d *Detector) Thresholds() Thresholds {
	return d.thresholds
}

// Detect finds the screens in img.
func (d *Detector) Detect(ctx context.Context, img image.Image) (*Report, error) {
	if err := d.thresholds.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contours, err := d.source.Contours(img)
	if err != nil {
		return nil, fmt.Errorf("contour extraction failed: %w", err)
	}
	return d.DetectContours(ctx, img, contours)
}

// DetectContours runs the pipeline on contours that were already extracted
// from img.
func (d *Detector) DetectContours(ctx context.Context, img image.Image, contours []contour.Contour) (*Report, error) {
	t := d.thresholds
	if err := t.Validate(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	d.logger.Printf("Image %dx%d: %d contours", width, height, len(contours))

	metrics := ExtractAll(contours, img, d.meter, t)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := ClassifyAll(metrics, width, height, t)
	for _, c := range candidates {
		d.logger.Printf("Candidate #%d: Pos(%d,%d) Size(%dx%d) Aspect(%.2f) Solidity(%.2f) Blackness(%.2f) y_avg(%.2f) -> %s",
			c.ID, c.BBox.X, c.BBox.Y, c.BBox.Width, c.BBox.Height,
			c.AspectRatio, c.Solidity, c.Blackness, c.AvgY, c.Category)
	}

	sel := Select(candidates, t)
	if sel.HasYRef {
		d.logger.Printf("y reference: %.2f", sel.YRef)
	}
	for _, id := range sel.Overlapping {
		d.logger.Printf("Candidate #%d overlaps with a selected screen, discarded", id)
	}

	final := Finalize(sel.Selected)
	if final.Count == 0 {
		d.logger.Printf("No screens detected")
	}
	for _, s := range final.Screens {
		d.logger.Printf("Screen %d (candidate #%d): Pos(%d,%d) Size(%dx%d)",
			s.Index, s.CandidateID, s.BBox.X, s.BBox.Y, s.BBox.Width, s.BBox.Height)
	}

	return &Report{
		Width:        width,
		Height:       height,
		ContourCount: len(contours),
		Candidates:   candidates,
		YRef:         sel.YRef,
		HasYRef:      sel.HasYRef,
		Overlapping:  sel.Overlapping,
		Selection:    final,
	}, nil
}
