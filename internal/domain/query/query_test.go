package query

import (
	"errors"
	"testing"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *float64
		wantErr bool
	}{
		{"blank", "  ", nil, false},
		{"integer", "4", ptr(4), false},
		{"decimal", " 4.5 ", ptr(4.5), false},
		{"zero", "0", ptr(0), false},
		{"word", "four", nil, true},
		{"nan", "NaN", nil, true},
		{"inf", "+Inf", nil, true},
		{"negative", "-1", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBound("min_rating", tc.value)
			if tc.wantErr {
				var ice *domain.InvalidConstraintError
				if !errors.As(err, &ice) {
					t.Fatalf("expected InvalidConstraintError, got %v", err)
				}
				if ice.Field != "min_rating" || ice.Value != tc.value {
					t.Errorf("error fields = %+v", ice)
				}
				if !errors.Is(err, domain.ErrInvalidConstraint) {
					t.Error("expected errors.Is ErrInvalidConstraint")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Errorf("got %v, want %v", deref(got), deref(tc.want))
			}
		})
	}
}

func TestParse_DropsMalformedBounds(t *testing.T) {
	q, errs := Parse(Raw{
		Category:  " Face ",
		MinRating: "abc",
		MaxPrice:  "25",
		Text:      "  ",
	})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	f := q.Facets()
	if f.Category != "Face" {
		t.Errorf("Category = %q", f.Category)
	}
	if f.MinRating != nil {
		t.Error("malformed min_rating must be absent")
	}
	if f.MaxPrice == nil || *f.MaxPrice != 25 {
		t.Errorf("MaxPrice = %v", deref(f.MaxPrice))
	}
	if q.HasText() {
		t.Error("blank text must not count as free text")
	}
}

func TestFacets_Active(t *testing.T) {
	f := Facets{Brand: "cerave", MaxPrice: ptr(10)}
	got := f.Active()
	want := []catalog.Facet{catalog.FacetBrand, catalog.FacetMaxPrice}
	if len(got) != len(want) {
		t.Fatalf("Active() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Active()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if !(Facets{}).IsEmpty() {
		t.Error("zero Facets must be empty")
	}
}

func TestNew_CopiesBounds(t *testing.T) {
	v := 3.0
	q := New(Facets{MinRating: &v}, "")
	v = 9
	if *q.Facets().MinRating != 3 {
		t.Error("bound pointer leaked into query")
	}
}

func ptr(v float64) *float64 { return &v }

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
