package beauty

import (
	"strconv"
	"time"

	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/analysis"
	recommenduc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
)

// Catalog identifies a product catalog. Catalogs never share a vector space.
type Catalog string

const (
	Skincare Catalog = "skincare"
	Cosmetic Catalog = "cosmetic"
	Makeup   Catalog = "makeup"
)

// Tag keys read by the facet filter.
const (
	TagSkinType    = product.TagSkinType
	TagCategory    = product.TagCategory
	TagSubcategory = product.TagSubcategory
)

// Text keys that make up the similarity document of each catalog.
// Skincare reads notable_effects and description, cosmetic reads
// ingredients, type and form, makeup reads ingredients.
const (
	TextIngredients    = product.TextIngredients
	TextDescription    = product.TextDescription
	TextNotableEffects = product.TextNotableEffects
	TextType           = product.TextType
	TextForm           = product.TextForm
)

// Product is one catalog row.
type Product struct {
	ID         string
	Name       string
	Brand      string
	Price      float64
	Rating     float64
	Tags       map[string]string
	Texts      map[string]string
	ProductURL string
	ImageURL   string
}

// Query holds the facet constraints and optional free text of a recommendation.
// Empty strings and nil bounds are inactive.
type Query struct {
	Category    string
	Subcategory string
	Brand       string
	SkinType    string
	MinRating   *float64
	MaxPrice    *float64
	Text        string
}

// Bound returns a pointer for Query.MinRating and Query.MaxPrice.
func Bound(v float64) *float64 { return &v }

// Hit is one ranked product. Position is its row in the catalog.
type Hit struct {
	Position int
	Score    float64
	Product  Product
}

// IgnoredConstraint is a constraint that took no part in filtering.
type IgnoredConstraint struct {
	Field  string
	Value  string
	Reason string
}

// Result is a ranked list of products, best first.
type Result struct {
	Catalog    Catalog
	Path       string // "similarity" or "filter"
	Hits       []Hit
	Candidates int
	Ignored    []IgnoredConstraint
}

// CatalogStatus describes a catalog's readiness.
type CatalogStatus struct {
	Catalog    Catalog
	Prepared   bool
	Rows       int
	Vocabulary int
	PreparedAt time.Time
}

// SkinProfile is a skin classification supplied by the caller.
// Tone is a level from "1" (very fair) to "6" (deep).
type SkinProfile struct {
	Type string
	Tone string
	Acne string
}

// Pixel is an RGB sample with channels in [0, 255].
type Pixel = analysis.Pixel

// Curated bundle types.
type (
	Bundle     = skin.Bundle
	Item       = skin.Item
	General    = skin.General
	RawMetrics = skin.Raw
)

// Analysis is a skin classification from pixels plus its curated bundle.
type Analysis struct {
	Type            string
	Tone            string
	ToneDescription string
	Acne            string
	Raw             *RawMetrics
	Recommendations Bundle
}

func toKind(c Catalog) (domcat.Kind, error) {
	return domcat.ParseKind(string(c))
}

func toRecord(p *Product) (product.Record, error) {
	return product.New(p.ID, product.Fields{
		Name:       p.Name,
		Brand:      p.Brand,
		Price:      p.Price,
		Rating:     p.Rating,
		Tags:       p.Tags,
		Texts:      p.Texts,
		ProductURL: p.ProductURL,
		ImageURL:   p.ImageURL,
	})
}

func fromRecord(r *product.Record) Product {
	return Product{
		ID:         r.ID(),
		Name:       r.Name(),
		Brand:      r.Brand(),
		Price:      r.Price(),
		Rating:     r.Rating(),
		Tags:       r.Tags(),
		Texts:      r.Texts(),
		ProductURL: r.ProductURL(),
		ImageURL:   r.ImageURL(),
	}
}

// toRaw renders bounds as request values so invalid ones are reported
// the same way the HTTP API reports them.
func toRaw(q *Query) query.Raw {
	return query.Raw{
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Brand:       q.Brand,
		SkinType:    q.SkinType,
		MinRating:   formatBound(q.MinRating),
		MaxPrice:    formatBound(q.MaxPrice),
		Text:        q.Text,
	}
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fromResult(res *ranking.Result) Result {
	out := Result{
		Catalog:    Catalog(res.Catalog()),
		Path:       string(res.Path()),
		Hits:       make([]Hit, 0, res.Len()),
		Candidates: res.Candidates(),
	}
	for _, h := range res.Hits() {
		out.Hits = append(out.Hits, Hit{Position: h.Position, Score: h.Score, Product: fromRecord(&h.Record)})
	}
	for _, ig := range res.Ignored() {
		out.Ignored = append(out.Ignored, IgnoredConstraint(ig))
	}
	return out
}

func fromStatus(st *recommenduc.Status) CatalogStatus {
	return CatalogStatus{
		Catalog:    Catalog(st.Kind),
		Prepared:   st.Prepared,
		Rows:       st.Rows,
		Vocabulary: st.Vocabulary,
		PreparedAt: st.PreparedAt,
	}
}
