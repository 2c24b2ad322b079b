package catalog

import "testing"

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		in      string
		policy  PricePolicy
		want    float64
		wantErr bool
	}{
		{"", PriceCents, 0, false},
		{"   ", PriceCents, 0, false},
		{"Rp 35000", PriceCents, 350, false},
		{"35000", PriceWhole, 35000, false},
		{"$12.50", PriceCents, 12.5, false},
		{"12.50", PriceWhole, 12.5, false},
		{"1.299.00", PriceCents, 1.299, false},
		{"1,299", PriceCents, 0, false},
		{"free", PriceCents, 0, false},
		{"1,299.00", PriceCents, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := CleanPrice(tc.in, tc.policy)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("CleanPrice(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanSkinTypes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"['Oily', 'Dry']", "Oily,Dry"},
		{`["Normal"]`, "Normal"},
		{"Oily, Combination", "Oily,Combination"},
		{"[]", ""},
		{"", ""},
		{"['Dry', , 'Oily']", "Dry,Oily"},
	}
	for _, tc := range tests {
		if got := CleanSkinTypes(tc.in); got != tc.want {
			t.Errorf("CleanSkinTypes(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParsePricePolicy(t *testing.T) {
	if p, err := ParsePricePolicy(""); err != nil || p != PriceCents {
		t.Errorf("empty = %q, %v", p, err)
	}
	if p, err := ParsePricePolicy(" Whole "); err != nil || p != PriceWhole {
		t.Errorf("whole = %q, %v", p, err)
	}
	if _, err := ParsePricePolicy("euros"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
