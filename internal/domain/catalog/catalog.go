package catalog

import (
	"fmt"
	"strings"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
)

// Kind identifies a catalog type. Kinds never share a vector space.
type Kind string

const (
	// KindSkincare ranks by notable effects and description.
	KindSkincare Kind = "skincare"
	// KindCosmetic ranks by ingredients, type and form.
	KindCosmetic Kind = "cosmetic"
	// KindMakeup ranks by ingredients; rating comes from the source rank column.
	KindMakeup Kind = "makeup"
)

// Kinds returns all supported catalog kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindSkincare, KindCosmetic, KindMakeup}
}

// IsValid checks if the kind is supported.
func (k Kind) IsValid() bool {
	return k == KindSkincare || k == KindCosmetic || k == KindMakeup
}

// ParseKind parses a kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("unsupported catalog kind: %q", s)
	}
	return k, nil
}

// Facet names a filterable attribute.
type Facet string

const (
	FacetCategory    Facet = "category"
	FacetSubcategory Facet = "subcategory"
	FacetBrand       Facet = "brand"
	FacetSkinType    Facet = "skin_type"
	FacetMinRating   Facet = "min_rating"
	FacetMaxPrice    Facet = "max_price"
)

// Default ranking sizes.
const (
	DefaultSimilarityTopK = 5
	DefaultFilterTopK     = 10
)

// Profile parameterizes the engine for one catalog kind.
type Profile struct {
	kind           Kind
	textFields     []string
	facets         []Facet
	similarityTopK int
	filterTopK     int
}

// DefaultProfile returns the built-in profile for a kind.
func DefaultProfile(k Kind) (Profile, error) {
	switch k {
	case KindSkincare:
		return Profile{
			kind:           k,
			textFields:     []string{product.TextNotableEffects, product.TextDescription},
			facets:         []Facet{FacetSkinType, FacetMaxPrice},
			similarityTopK: DefaultSimilarityTopK,
			filterTopK:     DefaultFilterTopK,
		}, nil
	case KindCosmetic:
		return Profile{
			kind:       k,
			textFields: []string{product.TextIngredients, product.TextType, product.TextForm},
			facets: []Facet{
				FacetCategory, FacetSubcategory, FacetBrand, FacetMinRating, FacetMaxPrice,
			},
			similarityTopK: DefaultSimilarityTopK,
			filterTopK:     DefaultFilterTopK,
		}, nil
	case KindMakeup:
		return Profile{
			kind:           k,
			textFields:     []string{product.TextIngredients},
			facets:         []Facet{FacetSkinType, FacetBrand, FacetMinRating, FacetMaxPrice},
			similarityTopK: DefaultSimilarityTopK,
			filterTopK:     DefaultFilterTopK,
		}, nil
	default:
		return Profile{}, fmt.Errorf("unsupported catalog kind: %q", k)
	}
}

// WithTopK returns a copy with overridden result sizes. Non-positive values keep the current size.
func (p Profile) WithTopK(similarity, filter int) Profile {
	if similarity > 0 {
		p.similarityTopK = similarity
	}
	if filter > 0 {
		p.filterTopK = filter
	}
	return p
}

// Kind returns the catalog kind.
func (p Profile) Kind() Kind { return p.kind }

// SimilarityTopK returns the result size for the similarity path.
func (p Profile) SimilarityTopK() int { return p.similarityTopK }

// FilterTopK returns the result size for the rating-sorted path.
func (p Profile) FilterTopK() int { return p.filterTopK }

// TextFields returns the free-text fields that make up a document.
func (p Profile) TextFields() []string { return append([]string(nil), p.textFields...) }

// Facets returns the declared facets.
func (p Profile) Facets() []Facet { return append([]Facet(nil), p.facets...) }

// Supports reports whether the profile declares the facet.
func (p Profile) Supports(f Facet) bool {
	for _, declared := range p.facets {
		if declared == f {
			return true
		}
	}
	return false
}

// Document builds the similarity text for a record: designated fields joined by a space.
// Missing fields contribute an empty string.
func (p Profile) Document(r *product.Record) string {
	parts := make([]string, len(p.textFields))
	for i, f := range p.textFields {
		parts[i] = r.Text(f)
	}
	return strings.Join(parts, " ")
}
