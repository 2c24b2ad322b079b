// Package similarity scores candidate term vectors against a query vector.
package similarity

import (
	"container/heap"
	"sort"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/textvec"
)

// Scored is a candidate index with its similarity score.
type Scored struct {
	Index int
	Score float64
}

// Cosine returns dot(a,b)/(|a|*|b|), or 0 when either vector is zero.
func Cosine(a, b textvec.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Score computes the cosine similarity of q to every candidate, in candidate order.
func Score(q textvec.Vector, candidates []textvec.Vector) []Scored {
	out := make([]Scored, len(candidates))
	for i, c := range candidates {
		out[i] = Scored{Index: i, Score: Cosine(q, c)}
	}
	return out
}

// TopK returns the k best entries ordered by descending score,
// ties broken by ascending index. The input slice is not modified.
func TopK(scored []Scored, k int) []Scored {
	if k <= 0 || len(scored) == 0 {
		return nil
	}

	h := make(worstFirst, 0, k)
	for _, s := range scored {
		if len(h) < k {
			heap.Push(&h, s)
			continue
		}
		if better(s, h[0]) {
			h[0] = s
			heap.Fix(&h, 0)
		}
	}

	out := []Scored(h)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

// better reports whether a ranks above b.
func better(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// worstFirst is a min-heap keeping the lowest-ranked entry at the root.
type worstFirst []Scored

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return better(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(Scored)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
