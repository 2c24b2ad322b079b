// Package analysis classifies skin from sampled RGB pixels with fixed thresholds.
package analysis

import (
	"fmt"
	"math"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
)

// Pixel is an RGB sample with channels in [0, 255].
type Pixel [3]float64

// R returns the red channel.
func (p Pixel) R() float64 { return p[0] }

// G returns the green channel.
func (p Pixel) G() float64 { return p[1] }

// B returns the blue channel.
func (p Pixel) B() float64 { return p[2] }

// toneBands maps luminance lower bounds (exclusive) to tones, brightest first.
var toneBands = []struct {
	above float64
	tone  skin.Tone
}{
	{200, "1"},
	{180, "2"},
	{160, "3"},
	{140, "4"},
	{120, "5"},
}

const (
	dryRatio        = 1.3
	dryMaxRedStd    = 20.0
	oilyRatio       = 1.1
	oilyMinBlue     = 100.0
	combinationStd  = 25.0
	acneRedFactor   = 1.3
	acneHighPercent = 8.0
	acneModPercent  = 4.0
)

// Analyze classifies the pixels. No pixels yields skin.Default without raw statistics.
func Analyze(pixels []Pixel) (skin.Metrics, error) {
	if len(pixels) == 0 {
		return skin.Default(), nil
	}
	for i, p := range pixels {
		for _, c := range p {
			if math.IsNaN(c) || c < 0 || c > 255 {
				return skin.Metrics{}, fmt.Errorf("%w: pixel %d channel out of range", domain.ErrInvalidRequest, i)
			}
		}
	}

	var sumR, sumG, sumB float64
	for _, p := range pixels {
		sumR += p.R()
		sumG += p.G()
		sumB += p.B()
	}
	n := float64(len(pixels))
	r, g, b := sumR/n, sumG/n, sumB/n

	luminance := 0.299*r + 0.587*g + 0.114*b
	ratio := r / math.Max(b, 1)
	redStd := redStdDev(pixels, r)
	acnePct := acnePercent(pixels)

	m, err := skin.NewMetrics(
		string(classifyType(ratio, redStd, b)),
		string(classifyTone(luminance)),
		string(classifyAcne(acnePct)),
	)
	if err != nil {
		return skin.Metrics{}, err
	}
	return m.WithRaw(skin.Raw{
		Luminance:      round2(luminance),
		RedBlueRatio:   round2(ratio),
		RedStdDev:      round2(redStd),
		AcnePercentage: round2(acnePct),
	}), nil
}

func classifyTone(luminance float64) skin.Tone {
	for _, band := range toneBands {
		if luminance > band.above {
			return band.tone
		}
	}
	return "6"
}

func classifyType(ratio, redStd, meanBlue float64) skin.Type {
	switch {
	case ratio > dryRatio && redStd < dryMaxRedStd:
		return skin.TypeDry
	case ratio < oilyRatio && meanBlue > oilyMinBlue:
		return skin.TypeOily
	case redStd > combinationStd:
		return skin.TypeCombination
	default:
		return skin.TypeNormal
	}
}

func classifyAcne(percent float64) skin.Acne {
	switch {
	case percent > acneHighPercent:
		return skin.AcneHigh
	case percent > acneModPercent:
		return skin.AcneModerate
	default:
		return skin.AcneLow
	}
}

// redStdDev is the population standard deviation of the red channel.
func redStdDev(pixels []Pixel, mean float64) float64 {
	var sq float64
	for _, p := range pixels {
		d := p.R() - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(pixels)))
}

// acnePercent is the share of pixels whose red clearly dominates green and blue.
func acnePercent(pixels []Pixel) float64 {
	red := 0
	for _, p := range pixels {
		if p.R() > acneRedFactor*p.G() && p.R() > acneRedFactor*p.B() {
			red++
		}
	}
	return float64(red) / float64(len(pixels)) * 100
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
