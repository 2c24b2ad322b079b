package curated

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/validation"
)

func TestDefault(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(tbl.Cleansers) != 6 || len(tbl.Moisturizers) != 6 || len(tbl.Serums) != 6 || len(tbl.Makeup) != 12 {
		t.Errorf("sizes = %d/%d/%d/%d", len(tbl.Cleansers), len(tbl.Moisturizers), len(tbl.Serums), len(tbl.Makeup))
	}

	tones := map[skin.Tone]int{}
	for _, it := range tbl.Makeup {
		tones[it.Tone]++
	}
	for _, tone := range []skin.Tone{"1", "2", "3", "4", "5", "6"} {
		if tones[tone] != 2 {
			t.Errorf("tone %s has %d items", tone, tones[tone])
		}
	}
	if tbl.Serums[0].SkinType != skin.TypeAll {
		t.Errorf("first serum type = %q", tbl.Serums[0].SkinType)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantVal bool
	}{
		{"empty document", "", false},
		{"unknown key", "cleansers:\n  - name: x\n    skin_type: oily\n    colour: red\n", false},
		{"no items", "cleansers: []\n", false},
		{"missing name", "serums:\n  - skin_type: dry\n", true},
		{"bad skin type", "serums:\n  - name: x\n    skin_type: greasy\n", true},
		{"bad tone", "makeup:\n  - name: x\n    skin_type: all\n    tone: \"9\"\n", true},
		{"bad url", "makeup:\n  - name: x\n    skin_type: all\n    url: not a url\n", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			var verr *validation.Error
			if got := errors.As(err, &verr); got != tc.wantVal {
				t.Errorf("validation error = %v, want %v (%v)", got, tc.wantVal, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	body := "makeup:\n  - name: Tinted Balm\n    skin_type: all\n    concern: [coverage]\n    tone: \"4\"\n    price: 12.5\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Makeup) != 1 || tbl.Makeup[0].Name != "Tinted Balm" || tbl.Makeup[0].Price != 12.5 {
		t.Errorf("table = %+v", tbl)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	if tbl, err := Load(""); err != nil || tbl.Len() != 30 {
		t.Errorf("Load(\"\") = %d items, %v", tbl.Len(), err)
	}
}
