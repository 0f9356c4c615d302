package screens

import "sort"

// Screen is one detected display.
type Screen struct {
	// Index is the 1-based position counting from the left.
	Index       int  `json:"index"`
	CandidateID int  `json:"candidate_id"`
	BBox        BBox `json:"bbox"`
}

// ScreenSelection is the final, left-to-right list of detected displays.
type ScreenSelection struct {
	Screens []Screen `json:"screens"`
	Count   int      `json:"count"`
}

// Find returns the screen with the given 1-based index.
func (s ScreenSelection) Find(index int) (Screen, bool) {
	for _, sc := range s.Screens {
		if sc.Index == index {
			return sc, true
		}
	}
	return Screen{}, false
}

// Finalize orders selected candidates by ascending X (ties by ID) and
// numbers them from 1.
//
// Screens sharing the same X keep ID order, so X is non-decreasing rather
// than strictly ascending in that case.
func Finalize(selected []Candidate) ScreenSelection {
	ordered := make([]Candidate, len(selected))
	copy(ordered, selected)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].BBox.X != ordered[j].BBox.X {
			return ordered[i].BBox.X < ordered[j].BBox.X
		}
		return ordered[i].ID < ordered[j].ID
	})

	screens := make([]Screen, len(ordered))
	for i, c := range ordered {
		screens[i] = Screen{Index: i + 1, CandidateID: c.ID, BBox: c.BBox}
	}
	return ScreenSelection{Screens: screens, Count: len(screens)}
}
