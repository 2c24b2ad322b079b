package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
)

type targetKind int

const (
	targetName targetKind = iota
	targetBrand
	targetPrice
	targetRating
	targetTag
	targetText
	targetProductURL
	targetImageURL
)

// binding maps one source column (first alias found wins) onto a record attribute.
type binding struct {
	aliases   []string
	target    targetKind
	key       string
	skinTypes bool
}

var layouts = map[domcat.Kind][]binding{
	domcat.KindSkincare: {
		{aliases: []string{"product_name", "Product", "name"}, target: targetName},
		{aliases: []string{"brand"}, target: targetBrand},
		{aliases: []string{"price"}, target: targetPrice},
		{aliases: []string{"rating"}, target: targetRating},
		{aliases: []string{"skintype", "skin_type", "Skin_type"}, target: targetTag, key: product.TagSkinType, skinTypes: true},
		{aliases: []string{"Concern", "concern"}, target: targetTag, key: product.TagConcern},
		{aliases: []string{"notable_effects"}, target: targetText, key: product.TextNotableEffects},
		{aliases: []string{"description"}, target: targetText, key: product.TextDescription},
		{aliases: []string{"product_type"}, target: targetText, key: product.TextType},
		{aliases: []string{"product_href", "product_url"}, target: targetProductURL},
		{aliases: []string{"picture_src", "product_pic"}, target: targetImageURL},
	},
	domcat.KindCosmetic: {
		{aliases: []string{"product_name", "name"}, target: targetName},
		{aliases: []string{"category"}, target: targetTag, key: product.TagCategory},
		{aliases: []string{"subcategory"}, target: targetTag, key: product.TagSubcategory},
		{aliases: []string{"brand"}, target: targetBrand},
		{aliases: []string{"price"}, target: targetPrice},
		{aliases: []string{"rating"}, target: targetRating},
		{aliases: []string{"ingredients"}, target: targetText, key: product.TextIngredients},
		{aliases: []string{"type"}, target: targetText, key: product.TextType},
		{aliases: []string{"form"}, target: targetText, key: product.TextForm},
		{aliases: []string{"title_href", "title-href", "product_url"}, target: targetProductURL},
		{aliases: []string{"image_url", "picture_src"}, target: targetImageURL},
	},
	domcat.KindMakeup: {
		{aliases: []string{"name", "product_name"}, target: targetName},
		{aliases: []string{"brand"}, target: targetBrand},
		{aliases: []string{"price"}, target: targetPrice},
		{aliases: []string{"rank", "rating"}, target: targetRating},
		{aliases: []string{"skin_type", "skintype"}, target: targetTag, key: product.TagSkinType, skinTypes: true},
		{aliases: []string{"ingredients"}, target: targetText, key: product.TextIngredients},
		{aliases: []string{"label", "category"}, target: targetTag, key: product.TagCategory},
		{aliases: []string{"product_url"}, target: targetProductURL},
		{aliases: []string{"image_url"}, target: targetImageURL},
	},
}

// ErrNoNameColumn is returned when a header carries none of the name aliases.
var ErrNoNameColumn = errors.New("no product name column")

// cell is one source value. Typed numeric columns skip string cleaning.
type cell struct {
	s       string
	num     float64
	numeric bool
}

func textCell(s string) cell { return cell{s: s} }

func numCell(v float64) cell {
	return cell{s: strconv.FormatFloat(v, 'f', -1, 64), num: v, numeric: true}
}

// columns is the resolved column index per binding, -1 when absent.
type columns struct {
	layout []binding
	index  []int
}

// resolveColumns matches a header against the kind's layout. Header names
// compare exactly first, then case-insensitively.
func resolveColumns(kind domcat.Kind, header []string) (columns, error) {
	layout, ok := layouts[kind]
	if !ok {
		return columns{}, fmt.Errorf("unsupported catalog kind: %q", kind)
	}

	exact := make(map[string]int, len(header))
	folded := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, bom))
		if _, dup := exact[h]; !dup {
			exact[h] = i
		}
		if _, dup := folded[strings.ToLower(h)]; !dup {
			folded[strings.ToLower(h)] = i
		}
	}

	cols := columns{layout: layout, index: make([]int, len(layout))}
	for bi, b := range layout {
		cols.index[bi] = -1
		for _, alias := range b.aliases {
			if i, ok := exact[alias]; ok {
				cols.index[bi] = i
				break
			}
		}
		if cols.index[bi] >= 0 {
			continue
		}
		for _, alias := range b.aliases {
			if i, ok := folded[strings.ToLower(alias)]; ok {
				cols.index[bi] = i
				break
			}
		}
	}

	for bi, b := range layout {
		if b.target == targetName && cols.index[bi] < 0 {
			return columns{}, fmt.Errorf("%s catalog: %w (want one of %v)", kind, ErrNoNameColumn, b.aliases)
		}
	}
	return cols, nil
}

// fields builds record attributes from one row. get returns the cell at a column index.
func (c columns) fields(get func(i int) cell, policy PricePolicy) (product.Fields, error) {
	f := product.Fields{Tags: map[string]string{}, Texts: map[string]string{}}
	for bi, b := range c.layout {
		idx := c.index[bi]
		if idx < 0 {
			continue
		}
		v := get(idx)

		switch b.target {
		case targetName:
			f.Name = strings.TrimSpace(v.s)
		case targetBrand:
			f.Brand = strings.TrimSpace(v.s)
		case targetPrice:
			p, err := priceOf(v, policy)
			if err != nil {
				return product.Fields{}, err
			}
			f.Price = p
		case targetRating:
			r, err := ratingOf(v)
			if err != nil {
				return product.Fields{}, err
			}
			f.Rating = r
		case targetTag:
			s := strings.TrimSpace(v.s)
			if b.skinTypes {
				s = CleanSkinTypes(s)
			}
			if s != "" {
				f.Tags[b.key] = s
			}
		case targetText:
			if s := strings.TrimSpace(v.s); s != "" {
				f.Texts[b.key] = s
			}
		case targetProductURL:
			f.ProductURL = strings.TrimSpace(v.s)
		case targetImageURL:
			f.ImageURL = strings.TrimSpace(v.s)
		}
	}
	return f, nil
}

func priceOf(v cell, policy PricePolicy) (float64, error) {
	if v.numeric {
		return v.num, nil
	}
	return CleanPrice(v.s, policy)
}

func ratingOf(v cell) (float64, error) {
	if v.numeric {
		return v.num, nil
	}
	s := strings.TrimSpace(v.s)
	if s == "" {
		return 0, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q: not a number", s)
	}
	return r, nil
}
