package screens

import (
	"reflect"
	"testing"
)

func TestFinalize_OrdersLeftToRight(t *testing.T) {
	selected := []Candidate{
		accepted(4, 900, 10, 300, 200),
		accepted(1, 50, 20, 300, 200),
		accepted(7, 480, 30, 300, 200),
	}

	got := Finalize(selected)
	want := ScreenSelection{
		Screens: []Screen{
			{Index: 1, CandidateID: 1, BBox: BBox{X: 50, Y: 20, Width: 300, Height: 200}},
			{Index: 2, CandidateID: 7, BBox: BBox{X: 480, Y: 30, Width: 300, Height: 200}},
			{Index: 3, CandidateID: 4, BBox: BBox{X: 900, Y: 10, Width: 300, Height: 200}},
		},
		Count: 3,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Finalize = %+v, want %+v", got, want)
	}
	for i := 1; i < len(got.Screens); i++ {
		if got.Screens[i].BBox.X <= got.Screens[i-1].BBox.X {
			t.Errorf("X not strictly ascending at %d", i)
		}
	}

	if selected[0].ID != 4 {
		t.Error("Finalize reordered its input")
	}
}

func TestFinalize_EqualXTieByID(t *testing.T) {
	got := Finalize([]Candidate{
		accepted(3, 100, 600, 300, 200),
		accepted(1, 100, 10, 300, 200),
	})
	if got.Screens[0].CandidateID != 1 || got.Screens[1].CandidateID != 3 {
		t.Errorf("equal X should order by ID, got %+v", got.Screens)
	}
	if got.Screens[0].Index != 1 || got.Screens[1].Index != 2 {
		t.Errorf("indices not 1-based in order: %+v", got.Screens)
	}
	if got.Screens[1].BBox.X < got.Screens[0].BBox.X {
		t.Errorf("X decreased: %+v", got.Screens)
	}
}

func TestFinalize_Empty(t *testing.T) {
	got := Finalize(nil)
	if got.Count != 0 || got.Screens == nil || len(got.Screens) != 0 {
		t.Errorf("Finalize(nil) = %+v, want empty non-nil screens", got)
	}
}

func TestScreenSelection_Find(t *testing.T) {
	sel := Finalize([]Candidate{
		accepted(0, 500, 0, 300, 200),
		accepted(1, 0, 0, 300, 200),
	})

	s, ok := sel.Find(2)
	if !ok || s.CandidateID != 0 {
		t.Errorf("Find(2) = %+v, %v; want candidate 0", s, ok)
	}
	for _, idx := range []int{0, 3, -1} {
		if _, ok := sel.Find(idx); ok {
			t.Errorf("Find(%d) should fail", idx)
		}
	}
}

func TestBBox_Overlap(t *testing.T) {
	a := BBox{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name string
		b    BBox
		ab   float64
		ba   float64
	}{
		{"disjoint", BBox{X: 200, Y: 0, Width: 50, Height: 50}, 0, 0},
		{"touching", BBox{X: 100, Y: 0, Width: 100, Height: 100}, 0, 0},
		{"half", BBox{X: 50, Y: 0, Width: 100, Height: 100}, 0.5, 0.5},
		{"contained", BBox{X: 25, Y: 25, Width: 50, Height: 50}, 0.25, 1},
		{"empty other", BBox{X: 10, Y: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlap(tt.b); got != tt.ab {
				t.Errorf("a.Overlap(b) = %v, want %v", got, tt.ab)
			}
			if got := tt.b.Overlap(a); got != tt.ba {
				t.Errorf("b.Overlap(a) = %v, want %v", got, tt.ba)
			}
		})
	}
}
