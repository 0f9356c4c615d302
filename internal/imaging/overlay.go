package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay colors used for screen detection debug images.
const (
	ColorAccepted = "#00FF00"
	ColorRejected = "#808080"
	ColorSelected = "#00C8FF"
)

// OverlayBox is one rectangle to draw on a debug image.
type OverlayBox struct {
	Rect      image.Rectangle
	Label     string // drawn above the box; empty for none
	Color     string // hex "#RRGGBB"; invalid values fall back to red
	Thickness int    // line width in pixels, minimum 1
}

// RenderOverlay draws boxes over a copy of img and returns it as base64 PNG.
// Boxes are drawn in order, so later boxes paint over earlier ones.
func RenderOverlay(img image.Image, boxes []OverlayBox) (*EncodedImage, error) {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	for _, box := range boxes {
		c, err := parseHexColor(box.Color)
		if err != nil {
			c = color.RGBA{R: 255, A: 255}
		}
		thickness := box.Thickness
		if thickness < 1 {
			thickness = 1
		}
		drawRect(dst, box.Rect, c, thickness)
		if box.Label != "" {
			drawLabel(dst, box.Rect.Min.X, box.Rect.Min.Y, box.Label, c)
		}
	}

	return encodePNG(dst)
}

// parseHexColor parses "#RRGGBB" (the leading # is optional).
func parseHexColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// drawRect outlines r with lines growing inward from its edges.
func drawRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, thickness int) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	for i := 0; i < thickness; i++ {
		inner := r.Inset(i)
		if inner.Empty() {
			break
		}
		draw.Draw(dst, image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+1), src, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(inner.Min.X, inner.Max.Y-1, inner.Max.X, inner.Max.Y), src, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(inner.Min.X, inner.Min.Y, inner.Min.X+1, inner.Max.Y), src, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(inner.Max.X-1, inner.Min.Y, inner.Max.X, inner.Max.Y), src, image.Point{}, draw.Src)
	}
}

// drawLabel writes text on a dark plate just above (x, y), or just below it
// when there is no room above.
func drawLabel(dst *image.RGBA, x, y int, text string, fg color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: face}

	width := d.MeasureString(text).Ceil()
	height := face.Height
	top := y - height - 2
	if top < dst.Bounds().Min.Y {
		top = y + 2
	}

	plate := image.Rect(x, top, x+width+4, top+height+2).Intersect(dst.Bounds())
	draw.Draw(dst, plate, image.NewUniform(color.RGBA{A: 180}), image.Point{}, draw.Over)

	d.Dot = fixed.P(x+2, top+face.Ascent+1)
	d.DrawString(text)
}
