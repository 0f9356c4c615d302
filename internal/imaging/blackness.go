package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// BlacknessMethod selects how the darkness of a region is measured.
type BlacknessMethod string

const (
	// BlacknessLuminance averages BT.601 luminance. Closest to human perception.
	BlacknessLuminance BlacknessMethod = "luminance"

	// BlacknessRGBSum averages R+G+B.
	BlacknessRGBSum BlacknessMethod = "rgb_sum"

	// BlacknessHSVValue averages the HSV value channel, max(R,G,B).
	BlacknessHSVValue BlacknessMethod = "hsv_value"

	// BlacknessEuclidean averages the RGB distance from pure black.
	BlacknessEuclidean BlacknessMethod = "euclidean"
)

// ParseBlacknessMethod validates a method name. The empty string selects
// BlacknessLuminance.
func ParseBlacknessMethod(s string) (BlacknessMethod, error) {
	switch m := BlacknessMethod(s); m {
	case "":
		return BlacknessLuminance, nil
	case BlacknessLuminance, BlacknessRGBSum, BlacknessHSVValue, BlacknessEuclidean:
		return m, nil
	default:
		return "", fmt.Errorf("unknown blackness method: %s", s)
	}
}

// BlacknessMeter measures regions with a fixed method. The zero value uses
// BlacknessLuminance.
type BlacknessMeter struct {
	Method BlacknessMethod
}

// Blackness implements screens.Meter.
func (m BlacknessMeter) Blackness(img image.Image, r image.Rectangle) float64 {
	method := m.Method
	if method == "" {
		method = BlacknessLuminance
	}
	return Blackness(img, r, method)
}

// Blackness reports how dark a region is, from 0 (white) to 100 (pure black).
//
// The region is clipped to the image bounds; an empty region measures 0.
// An unknown method falls back to BlacknessLuminance.
func Blackness(img image.Image, r image.Rectangle, method BlacknessMethod) float64 {
	px, n := regionPixels(img, r)
	if n == 0 {
		return 0
	}

	var sum float64
	switch method {
	case BlacknessRGBSum:
		for i := 0; i < len(px); i += 4 {
			sum += float64(px[i]) + float64(px[i+1]) + float64(px[i+2])
		}
		return (765 - sum/float64(n)) / 765 * 100

	case BlacknessHSVValue:
		for i := 0; i < len(px); i += 4 {
			c := colorful.Color{R: float64(px[i]) / 255, G: float64(px[i+1]) / 255, B: float64(px[i+2]) / 255}
			_, _, v := c.Hsv()
			sum += v
		}
		return (1 - sum/float64(n)) * 100

	case BlacknessEuclidean:
		for i := 0; i < len(px); i += 4 {
			r, g, b := float64(px[i]), float64(px[i+1]), float64(px[i+2])
			sum += math.Sqrt(r*r + g*g + b*b)
		}
		maxDistance := math.Sqrt(3 * 255 * 255)
		return (maxDistance - sum/float64(n)) / maxDistance * 100

	default:
		for i := 0; i < len(px); i += 4 {
			sum += luma(px[i], px[i+1], px[i+2])
		}
		return (255 - sum/float64(n)) / 255 * 100
	}
}

// BlackPixelRatio returns the percentage (0-100) of pixels in r whose
// luminance is at or below threshold.
func BlackPixelRatio(img image.Image, r image.Rectangle, threshold uint8) float64 {
	px, n := regionPixels(img, r)
	if n == 0 {
		return 0
	}

	black := 0
	for i := 0; i < len(px); i += 4 {
		if math.Round(luma(px[i], px[i+1], px[i+2])) <= float64(threshold) {
			black++
		}
	}
	return float64(black) / float64(n) * 100
}

// Sensitivity selects the thresholds IsScreenOff applies.
type Sensitivity string

const (
	SensitivityStrict  Sensitivity = "strict"
	SensitivityMedium  Sensitivity = "medium"
	SensitivityLenient Sensitivity = "lenient"
)

// IsScreenOff reports whether a region looks like a powered-off display:
// both mean luminance blackness and the share of near-black pixels (luminance
// <= 30) must clear the sensitivity's thresholds.
//
//	strict:  blackness > 85, black pixels > 80%
//	medium:  blackness > 75, black pixels > 70%
//	lenient: blackness > 65, black pixels > 60%
//
// Unknown sensitivities return false.
func IsScreenOff(img image.Image, r image.Rectangle, sensitivity Sensitivity) bool {
	var minBlackness, minRatio float64
	switch sensitivity {
	case SensitivityStrict:
		minBlackness, minRatio = 85, 80
	case SensitivityMedium:
		minBlackness, minRatio = 75, 70
	case SensitivityLenient:
		minBlackness, minRatio = 65, 60
	default:
		return false
	}

	return Blackness(img, r, BlacknessLuminance) > minBlackness &&
		BlackPixelRatio(img, r, 30) > minRatio
}

// BlacknessAnalysis collects every darkness metric for one region.
type BlacknessAnalysis struct {
	Luminance              float64    `json:"blackness_luminance"`
	RGBSum                 float64    `json:"blackness_rgb_sum"`
	HSVValue               float64    `json:"blackness_hsv_value"`
	Euclidean              float64    `json:"blackness_euclidean"`
	BlackPixelRatioStrict  float64    `json:"black_pixel_ratio_strict"`
	BlackPixelRatioLenient float64    `json:"black_pixel_ratio_lenient"`
	PredominantlyBlack     bool       `json:"is_predominantly_black"`
	ScreenOff              bool       `json:"is_screen_off"`
	RegionSize             int        `json:"region_size"`
	AvgRGB                 [3]float64 `json:"avg_rgb"`
}

// AnalyzeBlackness measures r with every method. ScreenOff uses medium
// sensitivity; PredominantlyBlack means luminance blackness above 70.
func AnalyzeBlackness(img image.Image, r image.Rectangle) *BlacknessAnalysis {
	px, n := regionPixels(img, r)

	a := &BlacknessAnalysis{
		Luminance:              Blackness(img, r, BlacknessLuminance),
		RGBSum:                 Blackness(img, r, BlacknessRGBSum),
		HSVValue:               Blackness(img, r, BlacknessHSVValue),
		Euclidean:              Blackness(img, r, BlacknessEuclidean),
		BlackPixelRatioStrict:  BlackPixelRatio(img, r, 20),
		BlackPixelRatioLenient: BlackPixelRatio(img, r, 50),
		ScreenOff:              IsScreenOff(img, r, SensitivityMedium),
		RegionSize:             n,
	}
	a.PredominantlyBlack = a.Luminance > 70

	if n > 0 {
		var sr, sg, sb float64
		for i := 0; i < len(px); i += 4 {
			sr += float64(px[i])
			sg += float64(px[i+1])
			sb += float64(px[i+2])
		}
		a.AvgRGB = [3]float64{sr / float64(n), sg / float64(n), sb / float64(n)}
	}
	return a
}

// regionPixels returns the NRGBA bytes of r clipped to img, and the pixel count.
func regionPixels(img image.Image, r image.Rectangle) ([]uint8, int) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, 0
	}
	sub := imaging.Crop(img, r)
	return sub.Pix, r.Dx() * r.Dy()
}

// luma converts 8-bit RGB to grayscale using ITU-R BT.601 weights.
func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
