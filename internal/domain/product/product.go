package product

import (
	"fmt"
	"math"
	"strings"
)

// Well-known categorical facet keys.
const (
	TagSkinType    = "skin_type"
	TagCategory    = "category"
	TagSubcategory = "subcategory"
	TagConcern     = "concern"
)

// Well-known free-text field keys.
const (
	TextIngredients    = "ingredients"
	TextDescription    = "description"
	TextNotableEffects = "notable_effects"
	TextType           = "type"
	TextForm           = "form"
)

// MaxNameLength is the maximum product name length in bytes.
const MaxNameLength = 512

// Fields holds the raw attributes used to build a Record.
type Fields struct {
	Name       string
	Brand      string
	Price      float64
	Rating     float64
	Tags       map[string]string
	Texts      map[string]string
	ProductURL string
	ImageURL   string
}

// Record is one immutable catalog row.
type Record struct {
	id         string
	name       string
	brand      string
	price      float64
	rating     float64
	tags       map[string]string
	texts      map[string]string
	productURL string
	imageURL   string
}

// New validates and creates a Record. The id is an optional external key.
func New(id string, f Fields) (Record, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Record{}, fmt.Errorf("product name is required")
	}
	if len(name) > MaxNameLength {
		return Record{}, fmt.Errorf("product name too long (max %d)", MaxNameLength)
	}
	if math.IsNaN(f.Price) || math.IsInf(f.Price, 0) || f.Price < 0 {
		return Record{}, fmt.Errorf("price must be a non-negative number, got %v", f.Price)
	}
	if math.IsNaN(f.Rating) || math.IsInf(f.Rating, 0) || f.Rating < 0 {
		return Record{}, fmt.Errorf("rating must be a non-negative number, got %v", f.Rating)
	}

	return Record{
		id:         id,
		name:       name,
		brand:      strings.TrimSpace(f.Brand),
		price:      f.Price,
		rating:     f.Rating,
		tags:       cloneMap(f.Tags),
		texts:      cloneMap(f.Texts),
		productURL: f.ProductURL,
		imageURL:   f.ImageURL,
	}, nil
}

// ID returns the external key (may be empty).
func (r *Record) ID() string { return r.id }

// Name returns the product name.
func (r *Record) Name() string { return r.name }

// Brand returns the brand (may be empty).
func (r *Record) Brand() string { return r.brand }

// Price returns the price used for max-price filtering.
func (r *Record) Price() float64 { return r.price }

// Rating returns the rating (or rank) used for ordering.
func (r *Record) Rating() float64 { return r.rating }

// Tag returns a categorical facet value, "" when absent.
func (r *Record) Tag(key string) string { return r.tags[key] }

// Tags returns all categorical facets.
func (r *Record) Tags() map[string]string { return r.tags }

// Text returns a free-text field, "" when absent.
func (r *Record) Text(key string) string { return r.texts[key] }

// Texts returns all free-text fields.
func (r *Record) Texts() map[string]string { return r.texts }

// ProductURL returns the product page link.
func (r *Record) ProductURL() string { return r.productURL }

// ImageURL returns the product picture link.
func (r *Record) ImageURL() string { return r.imageURL }

// Fields returns a copy of the record attributes.
func (r *Record) Fields() Fields {
	return Fields{
		Name:       r.name,
		Brand:      r.brand,
		Price:      r.price,
		Rating:     r.rating,
		Tags:       cloneMap(r.tags),
		Texts:      cloneMap(r.texts),
		ProductURL: r.productURL,
		ImageURL:   r.imageURL,
	}
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
