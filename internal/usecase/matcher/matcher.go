// Package matcher selects curated product suggestions for a skin classification.
package matcher

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
)

// defaultTone stands in for untoned makeup items in the nearest-tone fallback.
const defaultTone skin.Tone = "3"

// minAcneCleansers is the acne-targeted cleanser count below which type matches are appended.
const minAcneCleansers = 2

// Matcher applies fixed priority rules over an injected curated table.
// Safe for concurrent use: the table is never mutated.
type Matcher struct {
	table  skin.Table
	logger *zap.Logger
}

// New creates a Matcher over a copy of the table.
func New(table skin.Table, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		table: skin.Table{
			Cleansers:    append([]skin.Item(nil), table.Cleansers...),
			Moisturizers: append([]skin.Item(nil), table.Moisturizers...),
			Serums:       append([]skin.Item(nil), table.Serums...),
			Makeup:       append([]skin.Item(nil), table.Makeup...),
		},
		logger: logger.With(zap.String("component", "matcher")),
	}
}

// Size returns the number of curated items.
func (m *Matcher) Size() int { return m.table.Len() }

// Match builds the suggestion bundle. Every list is de-duplicated by name
// and holds at most skin.MaxPerCategory items.
func (m *Matcher) Match(metrics skin.Metrics) skin.Bundle {
	b := skin.Bundle{
		Makeup: finalize(m.makeup(metrics.Tone())),
		General: skin.General{
			Cleanser:    finalize(m.cleansers(metrics.Type(), metrics.Acne())),
			Moisturizer: finalize(m.moisturizers(metrics.Type())),
			Serum:       finalize(m.serums(metrics.Type(), metrics.Acne())),
		},
	}

	m.logger.Debug("bundle matched",
		zap.String("skin_type", string(metrics.Type())),
		zap.String("tone", string(metrics.Tone())),
		zap.String("acne", string(metrics.Acne())),
		zap.Int("makeup", len(b.Makeup)),
		zap.Int("cleanser", len(b.General.Cleanser)),
		zap.Int("moisturizer", len(b.General.Moisturizer)),
		zap.Int("serum", len(b.General.Serum)),
	)
	return b
}

func (m *Matcher) cleansers(t skin.Type, acne skin.Acne) []skin.Item {
	if !acne.IsConcern() {
		return pick(m.table.Cleansers, func(i *skin.Item) bool { return i.MatchesType(t) })
	}

	out := pick(m.table.Cleansers, func(i *skin.Item) bool {
		return i.MatchesType(t) && hasConcern(i, "acne")
	})
	if len(out) < minAcneCleansers {
		out = append(out, pick(m.table.Cleansers, func(i *skin.Item) bool {
			return i.MatchesType(t) && !hasConcern(i, "acne")
		})...)
	}
	return out
}

func (m *Matcher) moisturizers(t skin.Type) []skin.Item {
	switch t {
	case skin.TypeDry:
		return pick(m.table.Moisturizers, func(i *skin.Item) bool {
			return i.MatchesType(t) && hasConcern(i, "intense")
		})
	case skin.TypeOily:
		return pick(m.table.Moisturizers, func(i *skin.Item) bool {
			return i.MatchesType(t) && hasConcern(i, "oil control")
		})
	default:
		return pick(m.table.Moisturizers, func(i *skin.Item) bool { return i.MatchesType(t) })
	}
}

func (m *Matcher) serums(t skin.Type, acne skin.Acne) []skin.Item {
	switch {
	case acne.IsConcern():
		out := pick(m.table.Serums, func(i *skin.Item) bool { return hasConcern(i, "acne") })
		return append(out, pick(m.table.Serums, func(i *skin.Item) bool { return i.MatchesType(t) })...)
	case t == skin.TypeDry:
		return pick(m.table.Serums, func(i *skin.Item) bool {
			return hasConcern(i, "hydration") || hasConcern(i, "plumping")
		})
	case t == skin.TypeOily:
		return pick(m.table.Serums, func(i *skin.Item) bool {
			return hasConcern(i, "oil control") || hasConcern(i, "pore")
		})
	default:
		return append([]skin.Item(nil), m.table.Serums...)
	}
}

// makeup prefers an exact tone match, then tones at most one step away.
func (m *Matcher) makeup(tone skin.Tone) []skin.Item {
	out := pick(m.table.Makeup, func(i *skin.Item) bool { return i.Tone == tone })
	if len(out) > 0 {
		return out
	}

	want, ok := tone.Level()
	if !ok {
		return nil
	}
	return pick(m.table.Makeup, func(i *skin.Item) bool {
		got, ok := itemTone(i).Level()
		return ok && abs(got-want) <= 1
	})
}

func itemTone(i *skin.Item) skin.Tone {
	if i.Tone == "" {
		return defaultTone
	}
	return i.Tone
}

// hasConcern reports whether any concern tag contains the keyword, ignoring case.
func hasConcern(i *skin.Item, keyword string) bool {
	for _, c := range i.Concerns {
		if strings.Contains(strings.ToLower(c), keyword) {
			return true
		}
	}
	return false
}

func pick(items []skin.Item, keep func(*skin.Item) bool) []skin.Item {
	var out []skin.Item
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// finalize drops repeated names, first occurrence wins, and truncates.
func finalize(items []skin.Item) []skin.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]skin.Item, 0, skin.MaxPerCategory)
	for _, it := range items {
		if _, dup := seen[it.Name]; dup {
			continue
		}
		seen[it.Name] = struct{}{}
		out = append(out, it)
		if len(out) == skin.MaxPerCategory {
			break
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
