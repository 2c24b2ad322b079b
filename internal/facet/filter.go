// Package facet narrows catalog snapshots by categorical and numeric constraints.
package facet

import (
	"strconv"
	"strings"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
)

// ReasonUnsupported marks a constraint on a facet the catalog does not declare.
const ReasonUnsupported = "facet not supported by catalog"

type predicate func(r *product.Record) bool

// Result is the outcome of a filter pass.
type Result struct {
	// Positions are the matching row indices in snapshot order.
	Positions []int
	// Ignored lists constraints that did not take part in filtering.
	Ignored []ranking.Ignored
}

// Filter returns the rows of s satisfying every active constraint the profile declares.
// Empty constraints are no-ops; undeclared facets are reported as ignored.
func Filter(s *catalog.Snapshot, p catalog.Profile, f query.Facets) Result {
	preds, ignored := compile(p, f)

	positions := make([]int, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		r := s.At(i)
		if matchesAll(r, preds) {
			positions = append(positions, i)
		}
	}
	return Result{Positions: positions, Ignored: ignored}
}

// Records materializes the matching rows, preserving order.
func Records(s *catalog.Snapshot, positions []int) []product.Record {
	out := make([]product.Record, len(positions))
	for i, pos := range positions {
		out[i] = *s.At(pos)
	}
	return out
}

func matchesAll(r *product.Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func compile(p catalog.Profile, f query.Facets) ([]predicate, []ranking.Ignored) {
	var (
		preds   []predicate
		ignored []ranking.Ignored
	)

	add := func(facet catalog.Facet, value string, pred predicate) {
		if !p.Supports(facet) {
			ignored = append(ignored, ranking.Ignored{
				Field: string(facet), Value: value, Reason: ReasonUnsupported,
			})
			return
		}
		preds = append(preds, pred)
	}

	if v := strings.TrimSpace(f.Category); v != "" {
		add(catalog.FacetCategory, v, exactTag(product.TagCategory, v))
	}
	if v := strings.TrimSpace(f.Subcategory); v != "" {
		add(catalog.FacetSubcategory, v, exactTag(product.TagSubcategory, v))
	}
	if v := strings.TrimSpace(f.Brand); v != "" {
		needle := strings.ToLower(v)
		add(catalog.FacetBrand, v, func(r *product.Record) bool {
			return strings.Contains(strings.ToLower(r.Brand()), needle)
		})
	}
	if v := strings.TrimSpace(f.SkinType); v != "" {
		needle := strings.ToLower(v)
		add(catalog.FacetSkinType, v, func(r *product.Record) bool {
			return strings.Contains(strings.ToLower(r.Tag(product.TagSkinType)), needle)
		})
	}
	if f.MinRating != nil {
		bound := *f.MinRating
		add(catalog.FacetMinRating, formatFloat(bound), func(r *product.Record) bool {
			return r.Rating() >= bound
		})
	}
	if f.MaxPrice != nil {
		bound := *f.MaxPrice
		add(catalog.FacetMaxPrice, formatFloat(bound), func(r *product.Record) bool {
			return r.Price() <= bound
		})
	}

	return preds, ignored
}

// exactTag matches a closed-enum tag value, ignoring case and surrounding space.
func exactTag(key, want string) predicate {
	return func(r *product.Record) bool {
		return strings.EqualFold(strings.TrimSpace(r.Tag(key)), want)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
