// Package recommend wires the pipeline together: resolve a mood word,
// generate a target profile, retrieve candidates, rank them, and keep the top few.
package recommend

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/metrics"
	"github.com/justestif/moodtunes/internal/mood"
	"github.com/justestif/moodtunes/internal/profile"
	"github.com/justestif/moodtunes/internal/rank"
	"github.com/justestif/moodtunes/internal/retrieve"
	"github.com/justestif/moodtunes/internal/vibes"
)

// TopN is how many recommendations a query returns.
const TopN = 5

// Reason explains an empty result.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNoCandidates      Reason = "no_candidates"
	ReasonOracleUnavailable Reason = "oracle_unavailable"
)

// Recommendation is one song in a result.
type Recommendation struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
}

// Explanation carries the per-track scores behind a result.
type Explanation struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Result is the outcome of one query.
type Result struct {
	QueryID         uuid.UUID        `json:"query_id"`
	Resolution      mood.Resolution  `json:"resolution"`
	Profile         profile.Profile  `json:"profile"`
	Mode            rank.Mode        `json:"mode,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Reason          Reason           `json:"reason,omitempty"`
	Explain         []Explanation    `json:"explain,omitempty"`
	Vibes           []vibes.Vibe     `json:"vibes,omitempty"`
}

// Resolver resolves a mood word.
type Resolver interface {
	Resolve(ctx context.Context, word string) mood.Resolution
}

// Generator turns a resolution into a target profile.
type Generator interface {
	Generate(category mood.Category, confidence float64, rng profile.Rand) profile.Profile
}

// Retriever gathers candidate tracks.
type Retriever interface {
	Retrieve(ctx context.Context, p profile.Profile) ([]catalog.Track, error)
}

// Ranker orders candidates.
type Ranker interface {
	Rank(ctx context.Context, candidates []catalog.Track, p profile.Profile, rng profile.Rand) rank.Ranking
}

// RandFactory returns a fresh random source for one query.
type RandFactory func() profile.Rand

// SeededRand returns a RandFactory whose every source starts from seed,
// so identical queries give identical results.
func SeededRand(seed uint64) RandFactory {
	return func() profile.Rand {
		return rand.New(rand.NewPCG(seed, seed))
	}
}

// RandomRand returns a RandFactory drawing from unpredictable seeds.
func RandomRand() RandFactory {
	return func() profile.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Engine runs recommendation queries. It holds no per-query state and is
// safe for concurrent use when its collaborators are.
type Engine struct {
	Resolver  Resolver
	Generator Generator
	Retriever Retriever
	Ranker    Ranker
	Rand      RandFactory
	// Clusters is the vibe cluster count. Zero disables vibe summaries.
	Clusters int
	// Reproducible leaves out vibe summaries, whose clustering does not
	// draw from Rand, so a seeded engine repeats its results exactly.
	Reproducible bool
}

// Recommend runs the full pipeline for word. Catalog problems surface as
// a Reason on an empty Result; only context cancellation is an error.
func (e *Engine) Recommend(ctx context.Context, word string) (Result, error) {
	start := time.Now()

	res := Result{QueryID: uuid.New(), Recommendations: []Recommendation{}}
	ctx = logging.WithQueryID(ctx, res.QueryID.String())
	log := logging.Ctx(ctx)

	newRand := e.Rand
	if newRand == nil {
		newRand = RandomRand()
	}
	rng := newRand()

	res.Resolution = e.Resolver.Resolve(ctx, word)
	metrics.Resolutions.WithLabelValues(string(res.Resolution.Method), string(res.Resolution.Category)).Inc()
	log.Info().
		Str("input", res.Resolution.Input).
		Str("category", string(res.Resolution.Category)).
		Float64("confidence", res.Resolution.Confidence).
		Str("method", string(res.Resolution.Method)).
		Msg("mood resolved")

	res.Profile = e.Generator.Generate(res.Resolution.Category, res.Resolution.Confidence, rng)

	if err := ctx.Err(); err != nil {
		return e.cancelled(res, start, err)
	}

	candidates, err := e.Retriever.Retrieve(ctx, res.Profile)
	switch {
	case ctx.Err() != nil:
		return e.cancelled(res, start, ctx.Err())
	case errors.Is(err, retrieve.ErrCatalogUnavailable):
		log.Warn().Err(err).Msg("catalog unavailable")
		return e.finish(res, ReasonOracleUnavailable, start), nil
	case err != nil:
		log.Warn().Err(err).Msg("retrieval failed")
		return e.finish(res, ReasonOracleUnavailable, start), nil
	case len(candidates) == 0:
		return e.finish(res, ReasonNoCandidates, start), nil
	}

	ranking := e.Ranker.Rank(ctx, candidates, res.Profile, rng)
	if err := ctx.Err(); err != nil {
		return e.cancelled(res, start, err)
	}
	res.Mode = ranking.Mode
	if len(ranking.Tracks) == 0 {
		return e.finish(res, ReasonNoCandidates, start), nil
	}

	top := ranking.Tracks[:min(TopN, len(ranking.Tracks))]
	for _, s := range top {
		res.Recommendations = append(res.Recommendations, Recommendation{Name: s.Track.Name, Artists: s.Track.Artists})
		res.Explain = append(res.Explain, Explanation{ID: s.Track.ID, Name: s.Track.Name, Score: s.Score})
	}

	if ranking.Mode == rank.ModeFeature && e.Clusters > 0 && !e.Reproducible {
		res.Vibes = vibes.Summarize(ranking.Tracks, e.Clusters)
	}

	return e.finish(res, ReasonNone, start), nil
}

func (e *Engine) finish(res Result, reason Reason, start time.Time) Result {
	res.Reason = reason
	metrics.RecordQuery(string(reason), time.Since(start))
	logging.Info().
		Str("query_id", res.QueryID.String()).
		Str("reason", string(reason)).
		Str("mode", string(res.Mode)).
		Int("results", len(res.Recommendations)).
		Dur("took", time.Since(start)).
		Msg("query done")
	return res
}

func (e *Engine) cancelled(res Result, start time.Time, err error) (Result, error) {
	metrics.RecordQuery("canceled", time.Since(start))
	return res, err
}
