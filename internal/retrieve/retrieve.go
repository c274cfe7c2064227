// Package retrieve gathers candidate tracks for a target profile by trying
// an ordered chain of catalog strategies.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/dedup"
	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/metrics"
	"github.com/justestif/moodtunes/internal/profile"
	"github.com/justestif/moodtunes/internal/tables"
)

// ErrCatalogUnavailable is returned when every strategy failed.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// MaxCandidates caps every strategy's result.
const MaxCandidates = 20

// Strategy is one way of finding candidates.
type Strategy interface {
	Name() string
	Candidates(ctx context.Context, p profile.Profile) ([]catalog.Track, error)
}

// Options tune the default strategy chain.
type Options struct {
	// Market is the catalog market for genre seeds and searches.
	Market string
	// ArtistSeeds enables the artist-seeded strategy.
	ArtistSeeds bool
	// SearchInterval is the minimum gap between fallback searches. Zero
	// leaves searches unpaced.
	SearchInterval time.Duration
}

// Retriever runs strategies in order until one yields candidates.
type Retriever struct {
	strategies []Strategy
}

// New creates a Retriever over an explicit chain.
func New(strategies ...Strategy) *Retriever {
	return &Retriever{strategies: strategies}
}

// NewDefault builds the standard chain: genre-seeded recommendations, then
// artist-seeded recommendations when enabled, then the search battery.
func NewDefault(cat catalog.Catalog, t tables.Tables, opts Options) *Retriever {
	if opts.Market == "" {
		opts.Market = "US"
	}

	chain := []Strategy{
		&GenreSeeded{
			Catalog:   cat,
			AllowList: t.GenreAllowList,
			Fallback:  t.FallbackGenres,
			Market:    opts.Market,
		},
	}
	if opts.ArtistSeeds {
		chain = append(chain, &ArtistSeeded{
			Catalog: cat,
			Artists: t.SeedArtists,
			Market:  "IN",
		})
	}
	chain = append(chain, NewSearchBattery(cat, t, opts.Market, opts.SearchInterval))

	return New(chain...)
}

// Retrieve returns the first non-empty result in chain order. It returns
// ErrCatalogUnavailable only if every strategy failed with an error; an
// empty slice and nil error means the catalog had nothing to offer.
func (r *Retriever) Retrieve(ctx context.Context, p profile.Profile) ([]catalog.Track, error) {
	log := logging.Ctx(ctx)

	var errs []error
	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tracks, err := s.Candidates(ctx, p)
		metrics.RecordStrategy(s.Name(), len(tracks), err)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn().Err(err).Str("strategy", s.Name()).Msg("strategy failed")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if len(tracks) == 0 {
			log.Debug().Str("strategy", s.Name()).Msg("strategy found nothing")
			continue
		}

		log.Debug().Str("strategy", s.Name()).Int("candidates", len(tracks)).Msg("strategy succeeded")
		metrics.Candidates.Observe(float64(len(tracks)))
		return tracks, nil
	}

	metrics.Candidates.Observe(0)
	if len(r.strategies) > 0 && len(errs) == len(r.strategies) {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, errors.Join(errs...))
	}
	return []catalog.Track{}, nil
}

// GenreSeeded asks the catalog for recommendations seeded by genre.
type GenreSeeded struct {
	Catalog   catalog.Catalog
	AllowList []string
	Fallback  []string
	Market    string
}

func (g *GenreSeeded) Name() string { return "genre_seeds" }

func (g *GenreSeeded) Candidates(ctx context.Context, p profile.Profile) ([]catalog.Track, error) {
	seeds := g.seeds(ctx)

	tracks, err := g.Catalog.Recommend(ctx, targets(p), catalog.Seeds{Genres: seeds}, g.Market, MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("recommending by genre %v: %w", seeds, err)
	}
	return capTracks(tracks), nil
}

// seeds intersects the available genre seeds with the allow-list, keeping
// allow-list order.
func (g *GenreSeeded) seeds(ctx context.Context) []string {
	available, err := g.Catalog.GenreSeeds(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("genre seed discovery failed, using pop")
		metrics.RecordOracleError("catalog", "genre_seeds")
		return []string{"pop"}
	}

	have := make(map[string]bool, len(available))
	for _, a := range available {
		have[a] = true
	}

	var seeds []string
	for _, genre := range g.AllowList {
		if have[genre] {
			seeds = append(seeds, genre)
		}
	}
	if len(seeds) == 0 {
		n := min(3, len(available), len(g.Fallback))
		seeds = append(seeds, g.Fallback[:n]...)
	}
	if len(seeds) > catalog.MaxSeeds {
		seeds = seeds[:catalog.MaxSeeds]
	}
	return seeds
}

// ArtistSeeded asks the catalog for recommendations seeded by curated artists.
type ArtistSeeded struct {
	Catalog catalog.Catalog
	Artists []string
	Market  string
}

const maxSeedArtists = 3

func (a *ArtistSeeded) Name() string { return "artist_seeds" }

func (a *ArtistSeeded) Candidates(ctx context.Context, p profile.Profile) ([]catalog.Track, error) {
	var ids []string
	var lookupErr error
	for _, name := range a.Artists[:min(maxSeedArtists, len(a.Artists))] {
		id, err := a.Catalog.FindArtist(ctx, name)
		if err != nil {
			lookupErr = fmt.Errorf("finding artist %q: %w", name, err)
			continue
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, lookupErr
	}

	tracks, err := a.Catalog.Recommend(ctx, targets(p), catalog.Seeds{Artists: ids}, a.Market, MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("recommending by artist: %w", err)
	}
	return capTracks(tracks), nil
}

// SearchBattery runs the bucket's fixed search queries and keeps the
// results that pass the relevance gate.
type SearchBattery struct {
	Catalog    catalog.Catalog
	Queries    map[string][]string
	Market     string
	Relevance  *Relevance
	Normalizer *dedup.Normalizer
	limiter    *rate.Limiter
}

const (
	searchLimit = 10
	// enoughRaw stops the battery once this many raw results are in hand.
	enoughRaw = 20
)

// NewSearchBattery creates the fallback search strategy. A positive
// interval paces consecutive queries.
func NewSearchBattery(cat catalog.Catalog, t tables.Tables, market string, interval time.Duration) *SearchBattery {
	s := &SearchBattery{
		Catalog:    cat,
		Queries:    t.SearchQueries,
		Market:     market,
		Relevance:  NewRelevance(t),
		Normalizer: dedup.NewNormalizer(t.FillerTokens),
	}
	if interval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return s
}

func (s *SearchBattery) Name() string { return "search" }

func (s *SearchBattery) Candidates(ctx context.Context, p profile.Profile) ([]catalog.Track, error) {
	bucket := p.Bucket()
	queries := s.Queries[string(bucket)]
	if len(queries) == 0 {
		queries = s.Queries[string(profile.DefaultBucket)]
	}

	log := logging.Ctx(ctx)

	var raw []catalog.Track
	var failed int
	var lastErr error
	for _, q := range queries {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		tracks, err := s.Catalog.Search(ctx, q, s.Market, searchLimit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Str("query", q).Msg("search failed")
			metrics.RecordOracleError("catalog", "search")
			failed++
			lastErr = err
			continue
		}

		raw = append(raw, tracks...)
		if len(raw) >= enoughRaw {
			break
		}
	}

	if failed > 0 && failed == len(queries) {
		return nil, fmt.Errorf("all %d searches failed: %w", failed, lastErr)
	}

	relevant := s.Relevance.Filter(raw)
	log.Debug().Str("bucket", string(bucket)).Int("raw", len(raw)).Int("relevant", len(relevant)).Msg("search battery done")

	return capTracks(s.Normalizer.Tracks(relevant)), nil
}

func targets(p profile.Profile) catalog.Targets {
	return catalog.Targets{Valence: p.Valence, Energy: p.Energy, Tempo: p.Tempo}
}

func capTracks(tracks []catalog.Track) []catalog.Track {
	if len(tracks) > MaxCandidates {
		return tracks[:MaxCandidates]
	}
	return tracks
}
