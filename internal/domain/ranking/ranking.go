package ranking

import (
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
)

// Path identifies how a result was ranked.
type Path string

const (
	// PathSimilarity ranks filtered candidates by cosine similarity to the free text.
	PathSimilarity Path = "similarity"
	// PathFilter ranks filtered candidates by rating, descending.
	PathFilter Path = "filter"
)

// Hit is one ranked record. Position is the row index in the snapshot.
type Hit struct {
	Position int
	Score    float64
	Record   product.Record
}

// Ignored describes a constraint that did not take part in filtering.
type Ignored struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// Result is an ordered, bounded list of hits, non-increasing by score.
type Result struct {
	catalog    catalog.Kind
	path       Path
	hits       []Hit
	ignored    []Ignored
	candidates int
}

// New creates a Result.
func New(kind catalog.Kind, path Path, hits []Hit, candidates int, ignored []Ignored) Result {
	return Result{catalog: kind, path: path, hits: hits, candidates: candidates, ignored: ignored}
}

// Catalog returns the catalog kind that produced the result.
func (r *Result) Catalog() catalog.Kind { return r.catalog }

// Path returns the ranking path.
func (r *Result) Path() Path { return r.path }

// Hits returns the ranked hits.
func (r *Result) Hits() []Hit { return r.hits }

// Len returns the number of hits.
func (r *Result) Len() int { return len(r.hits) }

// IsEmpty reports whether nothing matched.
func (r *Result) IsEmpty() bool { return len(r.hits) == 0 }

// Candidates returns the size of the filtered subset before top-K selection.
func (r *Result) Candidates() int { return r.candidates }

// Ignored returns constraints dropped during filtering.
func (r *Result) Ignored() []Ignored { return r.ignored }

// WithIgnored returns a copy with extra ignored constraints prepended.
func (r Result) WithIgnored(extra ...Ignored) Result {
	if len(extra) == 0 {
		return r
	}
	merged := make([]Ignored, 0, len(extra)+len(r.ignored))
	merged = append(merged, extra...)
	r.ignored = append(merged, r.ignored...)
	return r
}
