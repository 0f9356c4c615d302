//go:build gocv

package contour

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// GocvSource extracts contours with OpenCV: grayscale, Gaussian blur, Canny,
// optional dilation, then findContours with CHAIN_APPROX_SIMPLE.
type GocvSource struct {
	params EdgeParams
}

// NewGocvSource returns an OpenCV-backed Source.
func NewGocvSource(p EdgeParams) (*GocvSource, error) {
	if p.Retrieval == "" {
		p.Retrieval = RetrievalExternal
	}
	return &GocvSource{params: p}, nil
}

// Contours implements Source.
func (s *GocvSource) Contours(img image.Image) ([]Contour, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot trace empty image")
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	if s.params.BlurSigma > 0 {
		k := kernelSize(s.params.BlurSigma)
		gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), s.params.BlurSigma, s.params.BlurSigma, gocv.BorderDefault)
	} else {
		gray.CopyTo(&blurred)
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, float32(s.params.ThresholdLow), float32(s.params.ThresholdHigh))

	if s.params.DilateRadius > 0 {
		size := 2*int(math.Ceil(s.params.DilateRadius)) + 1
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(size, size))
		defer kernel.Close()
		dilated := gocv.NewMat()
		defer dilated.Close()
		gocv.Dilate(edges, &dilated, kernel)
		dilated.CopyTo(&edges)
	}

	mode := gocv.RetrievalExternal
	if s.params.Retrieval == RetrievalList {
		mode = gocv.RetrievalList
	}
	found := gocv.FindContours(edges, mode, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		c := Contour(found.At(i).ToPoints())
		contours = append(contours, c.Translate(bounds.Min))
	}
	return contours, nil
}

// kernelSize inverts OpenCV's sigma = 0.3*((k-1)*0.5 - 1) + 0.8, so the
// default sigma of 1.4 maps back to a 7x7 kernel.
func kernelSize(sigma float64) int {
	k := int(math.Round(((sigma-0.8)/0.3+1)*2 + 1))
	if k < 3 {
		k = 3
	}
	if k%2 == 0 {
		k++
	}
	return k
}
