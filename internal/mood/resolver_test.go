package mood

import (
	"context"
	"errors"
	"testing"

	"github.com/justestif/moodtunes/internal/tables"
)

// fakeOracle serves similarities from a fixed table keyed by category.
type fakeOracle struct {
	vectors map[string]bool
	sims    map[string]float64
	err     error
	calls   int
}

func (f *fakeOracle) HasVector(_ context.Context, word string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.vectors[word], nil
}

func (f *fakeOracle) Similarity(_ context.Context, _, b string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.sims[b], nil
}

func newTestResolver(t *testing.T, oracle EmbeddingOracle) *Resolver {
	t.Helper()
	r, err := NewResolver(oracle, tables.Default().Lexicon)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func TestResolveDirect(t *testing.T) {
	oracle := &fakeOracle{}
	r := newTestResolver(t, oracle)

	tests := []struct {
		word string
		want Category
	}{
		{"furious", Angry},
		{"  Joyful ", Happy},
		{"MELANCHOLY", Sad},
		{"serene", Calm},
		{"tender", Romantic},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := r.Resolve(context.Background(), tt.word)
			if got.Category != tt.want {
				t.Errorf("Category = %q, want %q", got.Category, tt.want)
			}
			if got.Confidence != 1.0 {
				t.Errorf("Confidence = %v, want 1.0", got.Confidence)
			}
			if got.Method != MethodDirect {
				t.Errorf("Method = %q, want %q", got.Method, MethodDirect)
			}
		})
	}

	if oracle.calls != 0 {
		t.Errorf("direct hits should not consult the oracle, got %d calls", oracle.calls)
	}
}

func TestResolveNoVector(t *testing.T) {
	r := newTestResolver(t, &fakeOracle{vectors: map[string]bool{}})

	got := r.Resolve(context.Background(), "xyzzyqqq")
	if got.Category != Calm || got.Confidence != 0.0 {
		t.Errorf("Resolve(xyzzyqqq) = %s/%v, want calm/0", got.Category, got.Confidence)
	}
	if got.Method != MethodFallback {
		t.Errorf("Method = %q, want %q", got.Method, MethodFallback)
	}
}

func TestResolveSemantic(t *testing.T) {
	tests := []struct {
		name     string
		sims     map[string]float64
		wantCat  Category
		wantConf float64
	}{
		{
			name:     "highest similarity wins",
			sims:     map[string]float64{"happy": 0.2, "sad": 0.61, "calm": 0.4},
			wantCat:  Sad,
			wantConf: 0.61,
		},
		{
			name:     "ties go to the earlier category",
			sims:     map[string]float64{"energetic": 0.5, "angry": 0.5},
			wantCat:  Energetic,
			wantConf: 0.5,
		},
		{
			name:     "negative similarity clamps to zero",
			sims:     map[string]float64{"happy": -0.3, "sad": -0.3, "energetic": -0.3, "calm": -0.3, "romantic": -0.3, "angry": -0.3, "fear": -0.2, "surprise": -0.3, "disgust": -0.3},
			wantCat:  Fear,
			wantConf: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{vectors: map[string]bool{"gloomish": true}, sims: tt.sims}
			r := newTestResolver(t, oracle)

			got := r.Resolve(context.Background(), "gloomish")
			if got.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCat)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if got.Method != MethodSemantic {
				t.Errorf("Method = %q, want %q", got.Method, MethodSemantic)
			}
		})
	}
}

func TestResolveOracleError(t *testing.T) {
	r := newTestResolver(t, &fakeOracle{err: errors.New("connection refused")})

	got := r.Resolve(context.Background(), "gloomish")
	if got.Category != Calm || got.Confidence != 0 || got.Method != MethodFallback {
		t.Errorf("Resolve() = %+v, want calm/0/fallback", got)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	oracle := &fakeOracle{}
	r := newTestResolver(t, oracle)

	got := r.Resolve(context.Background(), "   ")
	if got.Category != Calm || got.Confidence != 0 {
		t.Errorf("Resolve(blank) = %s/%v, want calm/0", got.Category, got.Confidence)
	}
	if oracle.calls != 0 {
		t.Errorf("blank input should not consult the oracle, got %d calls", oracle.calls)
	}
}

func TestResolveNilOracle(t *testing.T) {
	r := newTestResolver(t, nil)

	if got := r.Resolve(context.Background(), "anger"); got.Category != Angry {
		t.Errorf("Resolve(anger) = %q, want angry", got.Category)
	}
	if got := r.Resolve(context.Background(), "gloomish"); got.Category != Calm {
		t.Errorf("Resolve(gloomish) = %q, want calm", got.Category)
	}
}

func TestNewResolverRejectsUnknownCategory(t *testing.T) {
	_, err := NewResolver(nil, map[string]string{"bored": "boredom"})
	if err == nil {
		t.Fatal("NewResolver() expected error for unknown category")
	}
}
