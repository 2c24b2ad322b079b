package analysis

import (
	"errors"
	"testing"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
)

func repeat(p Pixel, n int) []Pixel {
	out := make([]Pixel, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestAnalyze_NoPixels(t *testing.T) {
	m, err := Analyze(nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != skin.TypeNormal || m.Tone() != "3" || m.ToneDescription() != "Medium" || m.Acne() != skin.AcneLow {
		t.Errorf("default = %+v", m)
	}
	if m.Raw() != nil {
		t.Error("default analysis carries no raw metrics")
	}
}

func TestAnalyze_Classification(t *testing.T) {
	tests := []struct {
		name     string
		pixels   []Pixel
		skinType skin.Type
		tone     skin.Tone
		acne     skin.Acne
	}{
		{"bright neutral is oily", repeat(Pixel{220, 220, 220}, 4), skin.TypeOily, "1", skin.AcneLow},
		{"warm uniform is dry", repeat(Pixel{200, 150, 120}, 4), skin.TypeDry, "3", skin.AcneHigh},
		{"uneven red is combination", []Pixel{{60, 80, 90}, {180, 80, 90}}, skin.TypeCombination, "6", skin.AcneHigh},
		{"balanced is normal", repeat(Pixel{120, 110, 100}, 3), skin.TypeNormal, "6", skin.AcneLow},
		{
			"five percent red is moderate",
			append(repeat(Pixel{120, 110, 100}, 19), Pixel{200, 100, 100}),
			skin.TypeNormal, "6", skin.AcneModerate,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Analyze(tc.pixels)
			if err != nil {
				t.Fatal(err)
			}
			if m.Type() != tc.skinType {
				t.Errorf("Type() = %q, want %q", m.Type(), tc.skinType)
			}
			if m.Tone() != tc.tone {
				t.Errorf("Tone() = %q, want %q", m.Tone(), tc.tone)
			}
			if m.Acne() != tc.acne {
				t.Errorf("Acne() = %q, want %q", m.Acne(), tc.acne)
			}
			if m.Raw() == nil {
				t.Fatal("Raw() must be set for measured pixels")
			}
		})
	}
}

func TestAnalyze_ToneBands(t *testing.T) {
	tests := []struct {
		gray float64
		tone skin.Tone
		desc string
	}{
		{210, "1", "Very Fair"},
		{190, "2", "Fair"},
		{170, "3", "Light to Medium"},
		{150, "4", "Medium to Tan"},
		{130, "5", "Tan to Deep"},
		{110, "6", "Deep"},
	}
	for _, tc := range tests {
		m, err := Analyze([]Pixel{{tc.gray, tc.gray, tc.gray}})
		if err != nil {
			t.Fatal(err)
		}
		if m.Tone() != tc.tone || m.ToneDescription() != tc.desc {
			t.Errorf("gray %v: tone %q (%s), want %q (%s)", tc.gray, m.Tone(), m.ToneDescription(), tc.tone, tc.desc)
		}
	}
}

func TestAnalyze_RawRounded(t *testing.T) {
	m, err := Analyze(repeat(Pixel{200, 150, 120}, 2))
	if err != nil {
		t.Fatal(err)
	}
	raw := m.Raw()
	if raw.RedBlueRatio != 1.67 || raw.Luminance != 161.53 || raw.RedStdDev != 0 || raw.AcnePercentage != 100 {
		t.Errorf("Raw() = %+v", raw)
	}
}

func TestAnalyze_OutOfRange(t *testing.T) {
	_, err := Analyze([]Pixel{{10, 10, 10}, {300, 0, 0}})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
