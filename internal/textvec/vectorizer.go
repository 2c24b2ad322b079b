// Package textvec fits TF-IDF term vector spaces over product text.
//
// Weights are raw term counts times the smoothed inverse document frequency
// idf(t) = ln((1+N)/(1+df(t))) + 1, and every vector is L2-normalized.
// Tokens missing from the fitted vocabulary contribute nothing to Transform.
package textvec

import (
	"math"
	"sort"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
)

// Space is a fitted vocabulary with IDF weights. Immutable once built.
type Space struct {
	vocabulary map[string]int
	idf        []float64
	documents  int
}

// FitTransform builds a Space over the corpus and returns one vector per document.
// Documents without any token after stop-word removal map to zero vectors.
// Fails with *domain.EmptyCorpusError when no document yields a token.
func FitTransform(corpus []string) (*Space, []Vector, error) {
	tokenized := make([][]string, len(corpus))
	df := make(map[string]int)
	nonEmpty := 0

	for i, doc := range corpus {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		if len(tokens) == 0 {
			continue
		}
		nonEmpty++
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	if nonEmpty == 0 {
		return nil, nil, &domain.EmptyCorpusError{}
	}

	// Sorted terms give a deterministic index assignment across fits.
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	s := &Space{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		documents:  len(corpus),
	}
	n := float64(len(corpus))
	for i, t := range terms {
		s.vocabulary[t] = i
		s.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]Vector, len(corpus))
	for i, tokens := range tokenized {
		vectors[i] = s.weigh(tokens)
	}
	return s, vectors, nil
}

// Transform maps text into the fitted space. Out-of-vocabulary tokens are ignored.
func (s *Space) Transform(text string) Vector {
	return s.weigh(Tokenize(text))
}

// Size returns the vocabulary size.
func (s *Space) Size() int { return len(s.idf) }

// Documents returns the number of documents the space was fitted on.
func (s *Space) Documents() int { return s.documents }

// IDF returns the inverse document frequency of a term and whether it is known.
func (s *Space) IDF(term string) (float64, bool) {
	i, ok := s.vocabulary[term]
	if !ok {
		return 0, false
	}
	return s.idf[i], true
}

func (s *Space) weigh(tokens []string) Vector {
	counts := make(map[int]float64, len(tokens))
	for _, t := range tokens {
		if i, ok := s.vocabulary[t]; ok {
			counts[i]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(counts))
	for i := range counts {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for k, i := range indices {
		values[k] = counts[i] * s.idf[i]
	}
	return Vector{indices: indices, values: values}.normalized()
}
