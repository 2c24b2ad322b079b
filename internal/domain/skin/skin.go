package skin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
)

// Type is a skin type classification.
type Type string

const (
	TypeNormal      Type = "normal"
	TypeOily        Type = "oily"
	TypeDry         Type = "dry"
	TypeCombination Type = "combination"
	// TypeAll marks curated items suitable for every skin type. Never a measured type.
	TypeAll Type = "all"
)

// IsValid checks if the type is a measurable skin type.
func (t Type) IsValid() bool {
	switch t {
	case TypeNormal, TypeOily, TypeDry, TypeCombination:
		return true
	}
	return false
}

// Acne is an acne severity level.
type Acne string

const (
	AcneLow      Acne = "Low"
	AcneModerate Acne = "Moderate"
	AcneHigh     Acne = "High"
)

// IsValid checks if the level is supported.
func (a Acne) IsValid() bool {
	return a == AcneLow || a == AcneModerate || a == AcneHigh
}

// IsConcern reports whether the level calls for acne-targeted products.
func (a Acne) IsConcern() bool { return a == AcneModerate || a == AcneHigh }

// Tone is a skin tone on the '1' (very fair) to '6' (deep) scale.
type Tone string

// IsValid checks if the tone is on the scale.
func (t Tone) IsValid() bool {
	_, ok := t.Level()
	return ok
}

// Level returns the integer tone level.
func (t Tone) Level() (int, bool) {
	n, err := strconv.Atoi(string(t))
	if err != nil || n < 1 || n > 6 {
		return 0, false
	}
	return n, true
}

var toneDescriptions = map[Tone]string{
	"1": "Very Fair",
	"2": "Fair",
	"3": "Light to Medium",
	"4": "Medium to Tan",
	"5": "Tan to Deep",
	"6": "Deep",
}

// Description returns the human label for the tone.
func (t Tone) Description() string { return toneDescriptions[t] }

// Raw holds the pixel statistics behind a classification, rounded to 2 decimals.
type Raw struct {
	Luminance      float64 `json:"luminance"`
	RedBlueRatio   float64 `json:"red_blue_ratio"`
	RedStdDev      float64 `json:"red_std"`
	AcnePercentage float64 `json:"acne_percent"`
}

// Metrics is a validated skin classification.
type Metrics struct {
	skinType        Type
	tone            Tone
	toneDescription string
	acne            Acne
	raw             *Raw
}

// NewMetrics validates and creates Metrics. Type and acne are matched case-insensitively.
func NewMetrics(skinType, tone, acne string) (Metrics, error) {
	t := Type(strings.ToLower(strings.TrimSpace(skinType)))
	if !t.IsValid() {
		return Metrics{}, fmt.Errorf("%w: skin type %q", domain.ErrInvalidSkinMetrics, skinType)
	}
	tn := Tone(strings.TrimSpace(tone))
	if !tn.IsValid() {
		return Metrics{}, fmt.Errorf("%w: tone %q", domain.ErrInvalidSkinMetrics, tone)
	}
	a := normalizeAcne(acne)
	if !a.IsValid() {
		return Metrics{}, fmt.Errorf("%w: acne level %q", domain.ErrInvalidSkinMetrics, acne)
	}
	return Metrics{skinType: t, tone: tn, toneDescription: tn.Description(), acne: a}, nil
}

// Default returns the classification used when no pixels are available.
func Default() Metrics {
	return Metrics{skinType: TypeNormal, tone: "3", toneDescription: "Medium", acne: AcneLow}
}

// WithRaw returns a copy carrying raw pixel statistics.
func (m Metrics) WithRaw(raw Raw) Metrics {
	m.raw = &raw
	return m
}

// Type returns the skin type.
func (m *Metrics) Type() Type { return m.skinType }

// Tone returns the tone level.
func (m *Metrics) Tone() Tone { return m.tone }

// ToneDescription returns the tone label.
func (m *Metrics) ToneDescription() string { return m.toneDescription }

// Acne returns the acne level.
func (m *Metrics) Acne() Acne { return m.acne }

// Raw returns the pixel statistics, nil for default or user-supplied metrics.
func (m *Metrics) Raw() *Raw { return m.raw }

func normalizeAcne(s string) Acne {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return Acne(strings.ToUpper(s[:1]) + s[1:])
}
