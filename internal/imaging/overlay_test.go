package imaging

import (
	"image"
	"image/color"
	"testing"
)

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRenderOverlay_Box(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	result, err := RenderOverlay(img, []OverlayBox{
		{Rect: image.Rect(20, 40, 80, 90), Color: ColorAccepted, Thickness: 3},
	})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	out := decodeResult(t, result)

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint8
	}{
		{"left edge", 20, 60, 0, 255, 0},
		{"left edge inner line", 22, 60, 0, 255, 0},
		{"inside thickness", 23, 60, 255, 255, 255},
		{"right edge", 79, 60, 0, 255, 0},
		{"top edge", 50, 40, 0, 255, 0},
		{"bottom edge", 50, 89, 0, 255, 0},
		{"outside box", 10, 10, 255, 255, 255},
		{"center", 50, 65, 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := rgbAt(out, tt.x, tt.y)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("pixel (%d,%d): got (%d,%d,%d), want (%d,%d,%d)", tt.x, tt.y, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRenderOverlay_DoesNotModifySource(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	if _, err := RenderOverlay(img, []OverlayBox{{Rect: img.Bounds(), Color: ColorRejected}}); err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	if r, g, b := rgbAt(img, 0, 0); r != 255 || g != 255 || b != 255 {
		t.Errorf("source modified: got (%d,%d,%d)", r, g, b)
	}
}

func TestRenderOverlay_InvalidColorFallsBackToRed(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	result, err := RenderOverlay(img, []OverlayBox{{Rect: image.Rect(10, 10, 40, 40), Color: "not-a-color"}})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	if r, g, b := rgbAt(decodeResult(t, result), 10, 25); r != 255 || g != 0 || b != 0 {
		t.Errorf("fallback color: got (%d,%d,%d), want red", r, g, b)
	}
}

func TestRenderOverlay_Label(t *testing.T) {
	img := createInMemoryImage(120, 120, color.White)

	result, err := RenderOverlay(img, []OverlayBox{
		{Rect: image.Rect(20, 60, 100, 110), Label: "Screen 1", Color: ColorAccepted},
	})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	out := decodeResult(t, result)

	// The label plate sits above the box and darkens the white background.
	if r, _, _ := rgbAt(out, 21, 47); r == 255 {
		t.Error("expected label plate above the box")
	}
	if r, g, b := rgbAt(out, 110, 47); r != 255 || g != 255 || b != 255 {
		t.Errorf("pixel right of the label should be untouched, got (%d,%d,%d)", r, g, b)
	}
}

func TestRenderOverlay_LabelAtTopEdge(t *testing.T) {
	img := createInMemoryImage(120, 120, color.White)

	result, err := RenderOverlay(img, []OverlayBox{
		{Rect: image.Rect(10, 0, 100, 80), Label: "Screen 2", Color: ColorSelected},
	})
	if err != nil {
		t.Fatalf("RenderOverlay failed: %v", err)
	}
	// No room above, so the plate goes inside the top of the box.
	if r, _, _ := rgbAt(decodeResult(t, result), 12, 8); r == 255 {
		t.Error("expected label plate below the top edge")
	}
}

func TestRenderOverlay_BoxOutsideImage(t *testing.T) {
	img := createInMemoryImage(30, 30, color.White)

	if _, err := RenderOverlay(img, []OverlayBox{{Rect: image.Rect(100, 100, 200, 200), Color: ColorAccepted}}); err != nil {
		t.Fatalf("RenderOverlay should ignore boxes outside the image: %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"808080", color.RGBA{128, 128, 128, 255}, false},
		{"#00c8ff", color.RGBA{0, 200, 255, 255}, false},
		{"", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
