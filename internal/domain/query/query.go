package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
)

// Facets holds optional filter constraints. Empty strings and nil bounds are inactive.
type Facets struct {
	Category    string
	Subcategory string
	Brand       string
	SkinType    string
	MinRating   *float64
	MaxPrice    *float64
}

// Active returns the facets carrying a constraint, in a stable order.
func (f Facets) Active() []catalog.Facet {
	var out []catalog.Facet
	if strings.TrimSpace(f.Category) != "" {
		out = append(out, catalog.FacetCategory)
	}
	if strings.TrimSpace(f.Subcategory) != "" {
		out = append(out, catalog.FacetSubcategory)
	}
	if strings.TrimSpace(f.Brand) != "" {
		out = append(out, catalog.FacetBrand)
	}
	if strings.TrimSpace(f.SkinType) != "" {
		out = append(out, catalog.FacetSkinType)
	}
	if f.MinRating != nil {
		out = append(out, catalog.FacetMinRating)
	}
	if f.MaxPrice != nil {
		out = append(out, catalog.FacetMaxPrice)
	}
	return out
}

// IsEmpty reports whether no constraint is active.
func (f Facets) IsEmpty() bool { return len(f.Active()) == 0 }

// Query is an immutable facet query with an optional free-text preference.
type Query struct {
	facets Facets
	text   string
}

// New creates a Query. Bound pointers are copied.
func New(f Facets, text string) Query {
	f.MinRating = copyFloat(f.MinRating)
	f.MaxPrice = copyFloat(f.MaxPrice)
	return Query{facets: f, text: text}
}

// Facets returns the filter constraints.
func (q *Query) Facets() Facets { return q.facets }

// Text returns the raw free-text preference.
func (q *Query) Text() string { return q.text }

// HasText reports whether the free-text preference is non-blank.
func (q *Query) HasText() bool { return strings.TrimSpace(q.text) != "" }

// Raw holds unparsed request values.
type Raw struct {
	Category    string
	Subcategory string
	Brand       string
	SkinType    string
	MinRating   string
	MaxPrice    string
	Text        string
}

// Parse builds a Query from raw strings. Malformed numeric constraints are dropped
// and reported as *domain.InvalidConstraintError; parsing itself never fails.
func Parse(raw Raw) (Query, []error) {
	var errs []error
	f := Facets{
		Category:    strings.TrimSpace(raw.Category),
		Subcategory: strings.TrimSpace(raw.Subcategory),
		Brand:       strings.TrimSpace(raw.Brand),
		SkinType:    strings.TrimSpace(raw.SkinType),
	}

	minRating, err := ParseBound(string(catalog.FacetMinRating), raw.MinRating)
	if err != nil {
		errs = append(errs, err)
	}
	f.MinRating = minRating

	maxPrice, err := ParseBound(string(catalog.FacetMaxPrice), raw.MaxPrice)
	if err != nil {
		errs = append(errs, err)
	}
	f.MaxPrice = maxPrice

	return New(f, raw.Text), errs
}

// ParseBound parses a numeric bound. Blank input is an absent bound.
// Non-numeric, non-finite and negative values yield an InvalidConstraintError.
func ParseBound(field, value string) (*float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, domain.NewInvalidConstraint(field, value, "not a number")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, domain.NewInvalidConstraint(field, value, "not a finite number")
	}
	if n < 0 {
		return nil, domain.NewInvalidConstraint(field, value, "must not be negative")
	}
	return &n, nil
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
