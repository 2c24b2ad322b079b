package skin

// Item is a curated product suggestion.
type Item struct {
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Brand      string   `json:"brand" yaml:"brand"`
	SkinType   Type     `json:"skin_type" yaml:"skin_type" validate:"required,oneof=normal oily dry combination all"`
	Concerns   []string `json:"concern" yaml:"concern"`
	Tone       Tone     `json:"tone,omitempty" yaml:"tone,omitempty" validate:"omitempty,oneof=1 2 3 4 5 6"`
	Price      float64  `json:"price" yaml:"price" validate:"gte=0"`
	ImageURL   string   `json:"img" yaml:"img" validate:"omitempty,url"`
	ProductURL string   `json:"url" yaml:"url" validate:"omitempty,url"`
}

// MatchesType reports whether the item suits the skin type: equal or "all".
func (i *Item) MatchesType(t Type) bool {
	return i.SkinType == t || i.SkinType == TypeAll
}

// General groups the per-category suggestion lists.
type General struct {
	Cleanser    []Item `json:"cleanser" validate:"max=3,dive"`
	Moisturizer []Item `json:"moisturizer" validate:"max=3,dive"`
	Serum       []Item `json:"serum" validate:"max=3,dive"`
}

// Bundle is the matcher output. Every list holds at most MaxPerCategory items.
type Bundle struct {
	Makeup  []Item  `json:"makeup" validate:"max=3,dive"`
	General General `json:"general"`
}

// MaxPerCategory bounds every bundle list.
const MaxPerCategory = 3

// IsEmpty reports whether the bundle holds no item.
func (b *Bundle) IsEmpty() bool {
	return len(b.Makeup) == 0 && len(b.General.Cleanser) == 0 &&
		len(b.General.Moisturizer) == 0 && len(b.General.Serum) == 0
}

// Table is the curated product table the matcher selects from.
type Table struct {
	Cleansers    []Item `json:"cleansers" yaml:"cleansers" validate:"dive"`
	Moisturizers []Item `json:"moisturizers" yaml:"moisturizers" validate:"dive"`
	Serums       []Item `json:"serums" yaml:"serums" validate:"dive"`
	Makeup       []Item `json:"makeup" yaml:"makeup" validate:"dive"`
}

// Len returns the total number of items in the table.
func (t *Table) Len() int {
	return len(t.Cleansers) + len(t.Moisturizers) + len(t.Serums) + len(t.Makeup)
}
