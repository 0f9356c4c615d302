package screens

// Classify applies the four threshold checks to m. Every bound is strict, so
// a width of exactly MinWidthFrac * imgWidth is rejected.
func Classify(m Metrics, imgWidth, imgHeight int, t Thresholds) Candidate {
	w := float64(m.BBox.Width)
	h := float64(m.BBox.Height)

	checks := Checks{
		Width:     t.MinWidthFrac*float64(imgWidth) < w && w < t.MaxWidthFrac*float64(imgWidth),
		Height:    t.MinHeightFrac*float64(imgHeight) < h && h < t.MaxHeightFrac*float64(imgHeight),
		Aspect:    t.MinAspect < m.AspectRatio && m.AspectRatio < t.MaxAspect,
		Blackness: m.Blackness > t.MinBlackness,
	}

	category := Rejected
	if checks.All() {
		category = Accepted
	}
	return Candidate{Metrics: m, Category: category, Checks: checks}
}

// ClassifyAll classifies each entry of ms, preserving order.
func ClassifyAll(ms []Metrics, imgWidth, imgHeight int, t Thresholds) []Candidate {
	out := make([]Candidate, len(ms))
	for i, m := range ms {
		out[i] = Classify(m, imgWidth, imgHeight, t)
	}
	return out
}
