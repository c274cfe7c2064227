// Package mood resolves free-text mood words onto a fixed set of mood categories.
package mood

import (
	"context"
	"fmt"
	"strings"

	"github.com/justestif/moodtunes/internal/logging"
)

// Category is one of the canonical mood categories.
type Category string

const (
	Happy     Category = "happy"
	Sad       Category = "sad"
	Energetic Category = "energetic"
	Calm      Category = "calm"
	Romantic  Category = "romantic"
	Angry     Category = "angry"
	Fear      Category = "fear"
	Surprise  Category = "surprise"
	Disgust   Category = "disgust"
)

// Categories lists every category in canonical order. Semantic matching
// walks this order, so earlier categories win ties.
var Categories = []Category{Happy, Sad, Energetic, Calm, Romantic, Angry, Fear, Surprise, Disgust}

// Default is the category used when a word carries no usable signal.
const Default = Calm

// Valid reports whether c is a canonical category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Method records how a Resolution was reached.
type Method string

const (
	MethodDirect   Method = "direct"
	MethodSemantic Method = "semantic"
	MethodFallback Method = "fallback"
)

// Resolution is the outcome of resolving a mood word.
type Resolution struct {
	Input      string   `json:"input"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Method     Method   `json:"method"`
}

// EmbeddingOracle answers word-vector questions.
type EmbeddingOracle interface {
	// HasVector reports whether the oracle has a vector for word.
	HasVector(ctx context.Context, word string) (bool, error)
	// Similarity returns the cosine similarity of a and b.
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Resolver maps mood words to categories, first through a lexicon of
// known synonyms and then through embedding similarity.
type Resolver struct {
	oracle  EmbeddingOracle
	lexicon map[string]Category
}

// NewResolver creates a Resolver. Every lexicon value must name a
// canonical category. A nil oracle disables semantic matching.
func NewResolver(oracle EmbeddingOracle, lexicon map[string]string) (*Resolver, error) {
	lex := make(map[string]Category, len(lexicon))
	for word, name := range lexicon {
		c := Category(name)
		if !c.Valid() {
			return nil, fmt.Errorf("lexicon entry %q: unknown category %q", word, name)
		}
		lex[normalize(word)] = c
	}

	return &Resolver{oracle: oracle, lexicon: lex}, nil
}

// Resolve maps word onto a category. It never fails: words without a
// lexicon entry or vector, and oracle errors, resolve to Default with
// zero confidence.
func (r *Resolver) Resolve(ctx context.Context, word string) Resolution {
	w := normalize(word)

	if c, ok := r.lexicon[w]; ok {
		return Resolution{Input: w, Category: c, Confidence: 1.0, Method: MethodDirect}
	}

	fallback := Resolution{Input: w, Category: Default, Confidence: 0.0, Method: MethodFallback}
	if w == "" || r.oracle == nil {
		return fallback
	}

	ok, err := r.oracle.HasVector(ctx, w)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("word", w).Msg("embedding lookup failed")
		return fallback
	}
	if !ok {
		return fallback
	}

	best := Default
	bestScore := 0.0
	for i, c := range Categories {
		score, err := r.oracle.Similarity(ctx, w, string(c))
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("word", w).Str("category", string(c)).Msg("similarity lookup failed")
			return fallback
		}
		if i == 0 || score > bestScore {
			best, bestScore = c, score
		}
	}

	return Resolution{Input: w, Category: best, Confidence: clamp01(bestScore), Method: MethodSemantic}
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
