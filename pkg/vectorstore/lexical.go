package vectorstore

import (
	"math"
	"strings"
	"unicode"
)

// termVector is a term-frequency map over lowercased word tokens.
type termVector map[string]float64

// vectorize tokenizes text into lowercased words and counts term
// frequencies. Punctuation separates tokens.
func vectorize(text string) termVector {
	vec := make(termVector)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		vec[w]++
	}
	return vec
}

// cosine returns the cosine similarity of two term vectors, in [0, 1].
// Either vector being empty yields zero.
func cosine(a, b termVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for term, fa := range a {
		normA += fa * fa
		if fb, ok := b[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range b {
		normB += fb * fb
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
