package screens

import (
	"math"
	"sort"
)

// Selection is the outcome of Select.
type Selection struct {
	// YRef is the mean AvgY of the accepted candidates. Only meaningful when
	// HasYRef is set; with no accepted candidates it is never computed.
	YRef    float64 `json:"y_ref"`
	HasYRef bool    `json:"has_y_ref"`

	// Selected holds the chosen candidates in the order they were taken.
	Selected []Candidate `json:"selected"`

	// Overlapping lists the IDs discarded for overlapping an earlier
	// selection. Accepted candidates never examined because MaxScreens was
	// reached appear in neither list.
	Overlapping []int `json:"overlapping"`
}

// Select picks up to t.MaxScreens accepted candidates.
//
// Accepted candidates are ordered by the distance of their AvgY from the mean
// AvgY of all accepted candidates, ties going to the lower ID. They are then
// taken greedily: a candidate is discarded for good when more than
// t.MaxOverlap of its own area intersects any candidate already taken.
// The input slice is not modified.
func Select(candidates []Candidate, t Thresholds) Selection {
	sel := Selection{Selected: []Candidate{}, Overlapping: []int{}}

	accepted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Category == Accepted {
			accepted = append(accepted, c)
		}
	}
	if len(accepted) == 0 {
		return sel
	}

	var sum float64
	for _, c := range accepted {
		sum += c.AvgY
	}
	yRef := sum / float64(len(accepted))
	sel.YRef, sel.HasYRef = yRef, true

	sort.SliceStable(accepted, func(i, j int) bool {
		di := math.Abs(accepted[i].AvgY - yRef)
		dj := math.Abs(accepted[j].AvgY - yRef)
		if di != dj {
			return di < dj
		}
		return accepted[i].ID < accepted[j].ID
	})

	for _, c := range accepted {
		if len(sel.Selected) >= t.MaxScreens {
			break
		}
		if overlapsAny(c, sel.Selected, t.MaxOverlap) {
			sel.Overlapping = append(sel.Overlapping, c.ID)
			continue
		}
		sel.Selected = append(sel.Selected, c)
	}
	return sel
}

func overlapsAny(c Candidate, taken []Candidate, maxOverlap float64) bool {
	for _, s := range taken {
		if c.BBox.Overlap(s.BBox) > maxOverlap {
			return true
		}
	}
	return false
}
