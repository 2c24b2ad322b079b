package similarity

import (
	"math"
	"testing"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/textvec"
)

func TestCosine(t *testing.T) {
	a := textvec.NewVector([]int{0, 1}, []float64{1, 1})
	b := textvec.NewVector([]int{0}, []float64{2})
	zero := textvec.Vector{}

	if got := Cosine(a, b); math.Abs(got-1/math.Sqrt2) > 1e-12 {
		t.Errorf("Cosine(a,b) = %v", got)
	}
	if got := Cosine(a, a); math.Abs(got-1) > 1e-12 {
		t.Errorf("Cosine(a,a) = %v", got)
	}
	if got := Cosine(a, zero); got != 0 {
		t.Errorf("Cosine with zero vector = %v, want 0", got)
	}
	if got := Cosine(zero, zero); got != 0 || math.IsNaN(got) {
		t.Errorf("Cosine(zero, zero) = %v, want 0", got)
	}
}

func TestScore_CandidateOrder(t *testing.T) {
	q := textvec.NewVector([]int{1}, []float64{1})
	cands := []textvec.Vector{
		textvec.NewVector([]int{0}, []float64{1}),
		textvec.NewVector([]int{1}, []float64{1}),
	}
	got := Score(q, cands)
	if len(got) != 2 || got[0].Index != 0 || got[1].Index != 1 {
		t.Fatalf("Score() = %+v", got)
	}
	if got[0].Score != 0 || got[1].Score != 1 {
		t.Errorf("scores = %v, %v", got[0].Score, got[1].Score)
	}
}

func TestTopK(t *testing.T) {
	scored := []Scored{
		{Index: 0, Score: 0.2},
		{Index: 1, Score: 0.9},
		{Index: 2, Score: 0.5},
		{Index: 3, Score: 0.9},
		{Index: 4, Score: 0.5},
		{Index: 5, Score: 0},
	}

	tests := []struct {
		name string
		k    int
		want []int
	}{
		{"top3 ties by index", 3, []int{1, 3, 2}},
		{"top4", 4, []int{1, 3, 2, 4}},
		{"k larger than input", 10, []int{1, 3, 2, 4, 0, 5}},
		{"k zero", 0, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TopK(scored, tc.k)
			if len(got) != len(tc.want) {
				t.Fatalf("TopK = %+v, want indices %v", got, tc.want)
			}
			for i, idx := range tc.want {
				if got[i].Index != idx {
					t.Errorf("pos %d: index %d, want %d", i, got[i].Index, idx)
				}
			}
			for i := 1; i < len(got); i++ {
				if got[i].Score > got[i-1].Score {
					t.Errorf("scores not non-increasing at %d", i)
				}
			}
		})
	}

	if scored[0].Index != 0 || scored[1].Index != 1 {
		t.Error("TopK must not reorder its input")
	}
}

func TestTopK_AllEqualIsStable(t *testing.T) {
	scored := make([]Scored, 8)
	for i := range scored {
		scored[i] = Scored{Index: i}
	}
	got := TopK(scored, 5)
	for i, s := range got {
		if s.Index != i {
			t.Fatalf("got %+v, want indices 0..4", got)
		}
	}
}
