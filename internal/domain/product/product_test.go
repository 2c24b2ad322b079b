package product

import (
	"math"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("sku-1", Fields{
		Name:   "  Hydro Boost Gel  ",
		Brand:  "Neutrogena",
		Price:  9.99,
		Rating: 4.5,
		Tags:   map[string]string{TagSkinType: "Dry"},
		Texts:  map[string]string{TextDescription: "light gel"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != "sku-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Name() != "Hydro Boost Gel" {
		t.Errorf("Name() = %q, want trimmed", r.Name())
	}
	if r.Tag(TagSkinType) != "Dry" {
		t.Errorf("Tag(skin_type) = %q", r.Tag(TagSkinType))
	}
	if r.Text(TextDescription) != "light gel" {
		t.Errorf("Text(description) = %q", r.Text(TextDescription))
	}
	if r.Text(TextIngredients) != "" {
		t.Errorf("missing text field should be empty, got %q", r.Text(TextIngredients))
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
	}{
		{"empty name", Fields{Name: "  "}},
		{"negative price", Fields{Name: "x", Price: -1}},
		{"nan price", Fields{Name: "x", Price: math.NaN()}},
		{"inf rating", Fields{Name: "x", Rating: math.Inf(1)}},
		{"negative rating", Fields{Name: "x", Rating: -0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New("", tc.fields); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNew_ClonesMaps(t *testing.T) {
	tags := map[string]string{TagCategory: "face"}
	r, _ := New("", Fields{Name: "x", Tags: tags})

	tags[TagCategory] = "mutated"
	if r.Tag(TagCategory) != "face" {
		t.Error("tag mutation leaked into record")
	}

	f := r.Fields()
	f.Tags[TagCategory] = "again"
	if r.Tag(TagCategory) != "face" {
		t.Error("Fields() must return a copy")
	}
}
