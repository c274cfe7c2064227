// Package embed provides word embeddings and the similarity oracle the mood
// resolver consults.
package embed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/justestif/moodtunes/internal/metrics"
)

// ErrNoVector is returned by an Embedder that has no vector for the text.
var ErrNoVector = errors.New("no vector for text")

// Embedder generates vector embeddings from text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CosineSimilarity computes similarity between two embeddings.
// Returns 0.0 if vectors have different lengths or either is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Oracle answers vector questions from an Embedder, keeping the most
// recently used vectors in a bounded cache. It is safe for concurrent use.
type Oracle struct {
	embedder Embedder
	name     string

	mu    sync.Mutex
	cache *vectorLRU // nil value: known to have no vector
}

// NewOracle wraps e with a cache of DefaultCacheSize entries. name labels
// oracle errors in metrics.
func NewOracle(e Embedder, name string) *Oracle {
	return NewOracleSize(e, name, DefaultCacheSize)
}

// NewOracleSize is NewOracle with an explicit cache capacity.
func NewOracleSize(e Embedder, name string, size int) *Oracle {
	return &Oracle{embedder: e, name: name, cache: newVectorLRU(size)}
}

func (o *Oracle) vector(ctx context.Context, text string) ([]float32, error) {
	o.mu.Lock()
	v, ok := o.cache.get(text)
	o.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := o.embedder.Embed(ctx, text)
	switch {
	case errors.Is(err, ErrNoVector):
		v = nil
	case err != nil:
		metrics.RecordOracleError(o.name, "embed")
		return nil, err
	}

	o.mu.Lock()
	o.cache.add(text, v)
	o.mu.Unlock()
	return v, nil
}

// HasVector reports whether the embedder produces a non-zero vector for word.
func (o *Oracle) HasVector(ctx context.Context, word string) (bool, error) {
	v, err := o.vector(ctx, word)
	if err != nil {
		return false, err
	}
	for _, x := range v {
		if x != 0 {
			return true, nil
		}
	}
	return false, nil
}

// Similarity returns the cosine similarity of the vectors for a and b.
// A missing vector gives zero similarity.
func (o *Oracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := o.vector(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embedding %q: %w", a, err)
	}
	vb, err := o.vector(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embedding %q: %w", b, err)
	}
	return CosineSimilarity(va, vb), nil
}

// Cached returns the number of cached entries.
func (o *Oracle) Cached() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cache.len()
}
