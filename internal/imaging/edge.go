package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// EdgeOptions controls the Canny-style edge detector.
type EdgeOptions struct {
	// BlurSigma is the Gaussian sigma applied before gradients. Zero disables
	// blurring. 1.4 matches a 7x7 kernel.
	BlurSigma float64

	// ThresholdLow and ThresholdHigh are hysteresis thresholds on the 0-255
	// gradient scale.
	ThresholdLow  int
	ThresholdHigh int

	// DilateRadius grows the edge map to bridge small gaps. Zero disables it.
	DilateRadius float64
}

// DefaultEdgeOptions returns the settings tuned for photographed monitors.
func DefaultEdgeOptions() EdgeOptions {
	return EdgeOptions{
		BlurSigma:     1.4,
		ThresholdLow:  40,
		ThresholdHigh: 120,
	}
}

// EdgeDetect performs Canny-style edge detection on an image and returns the
// edge map as a base64 PNG.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow: Low hysteresis threshold (0-255). Typical value: 40.
//   - thresholdHigh: High hysteresis threshold (0-255). Typical value: 120.
//
// Edges are white (255) on black. The default blur from DefaultEdgeOptions is
// applied first.
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh int) (*EncodedImage, error) {
	opts := DefaultEdgeOptions()
	opts.ThresholdLow = thresholdLow
	opts.ThresholdHigh = thresholdHigh
	return encodePNG(EdgeMap(img, opts))
}

// EdgeMap computes a binary edge map for img.
//
// The returned image always has bounds (0,0)-(width,height) regardless of the
// source bounds; callers translating back to source coordinates must add
// img.Bounds().Min.
//
// # Algorithm
//
//  1. Grayscale conversion (bild)
//  2. Gaussian blur with opts.BlurSigma (disintegration/imaging)
//  3. Sobel gradients, magnitude = sqrt(Gx² + Gy²)
//  4. Non-maximum suppression along the quantized gradient direction
//  5. Hysteresis: strong pixels seed a flood through connected weak pixels
//  6. Optional dilation (bild)
func EdgeMap(img image.Image, opts EdgeOptions) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var src image.Image = effect.Grayscale(img)
	if opts.BlurSigma > 0 {
		src = imaging.Blur(src, opts.BlurSigma)
	}
	gray := luminance(src, width, height)

	magnitude, direction := sobel(gray, width, height)
	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	edges := hysteresis(suppressed, width, height,
		float64(opts.ThresholdLow)/255.0, float64(opts.ThresholdHigh)/255.0)

	if opts.DilateRadius > 0 {
		edges = dilate(edges, opts.DilateRadius)
	}
	return edges
}

// luminance reads img into a 0-1 grid indexed [y][x] from its own origin.
func luminance(img image.Image, width, height int) [][]float64 {
	min := img.Bounds().Min
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			g := color.GrayModel.Convert(img.At(x+min.X, y+min.Y)).(color.Gray)
			gray[y][x] = float64(g.Y) / 255.0
		}
	}
	return gray
}

func sobel(gray [][]float64, width, height int) (magnitude, direction [][]float64) {
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := gray[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// suppressNonMaxima thins edges to ridges of the gradient magnitude.
// Border pixels are never kept.
func suppressNonMaxima(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis keeps every pixel at or above high, plus pixels at or above low
// that are 8-connected to one of them through other such pixels.
func hysteresis(suppressed [][]float64, width, height int, low, high float64) *image.Gray {
	result := image.NewGray(image.Rect(0, 0, width, height))
	stack := make([]image.Point, 0, 256)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] < high || result.GrayAt(x, y).Y != 0 {
				continue
			}
			result.SetGray(x, y, color.Gray{Y: 255})
			stack = append(stack[:0], image.Pt(x, y))

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						if result.GrayAt(nx, ny).Y != 0 || suppressed[ny][nx] < low || suppressed[ny][nx] == 0 {
							continue
						}
						result.SetGray(nx, ny, color.Gray{Y: 255})
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}
		}
	}
	return result
}

func dilate(edges *image.Gray, radius float64) *image.Gray {
	grown := effect.Dilate(edges, radius)
	b := grown.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if grown.RGBAAt(x+b.Min.X, y+b.Min.Y).R > 127 {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
