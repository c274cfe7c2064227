package main

import (
	"context"
	"fmt"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/justestif/moodtunes/internal/auth"
	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/config"
	"github.com/justestif/moodtunes/internal/db"
	"github.com/justestif/moodtunes/internal/embed"
	"github.com/justestif/moodtunes/internal/featurecache"
	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/mood"
	"github.com/justestif/moodtunes/internal/profile"
	"github.com/justestif/moodtunes/internal/rank"
	"github.com/justestif/moodtunes/internal/recommend"
	"github.com/justestif/moodtunes/internal/retrieve"
	"github.com/justestif/moodtunes/internal/spotify"
	"github.com/justestif/moodtunes/internal/tables"
)

// app holds the wired pipeline.
type app struct {
	tables   tables.Tables
	resolver *mood.Resolver
	engine   *recommend.Engine
	db       *db.DB
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// newResolverApp wires only what resolving needs.
func newResolverApp(ctx context.Context, cfg *config.Config) (*app, error) {
	t, err := tables.Load(cfg.Tables)
	if err != nil {
		return nil, err
	}

	oracle, err := newOracle(ctx, cfg.Embed)
	if err != nil {
		return nil, err
	}

	resolver, err := mood.NewResolver(oracle, t.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("building resolver: %w", err)
	}
	return &app{tables: t, resolver: resolver}, nil
}

// newApp wires the full recommendation pipeline.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := cfg.RequireCatalog(); err != nil {
		return nil, err
	}

	a, err := newResolverApp(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat, err := a.newCatalog(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.engine = &recommend.Engine{
		Resolver:  a.resolver,
		Generator: profile.NewGenerator(a.tables.Profiles),
		Retriever: retrieve.NewDefault(cat, a.tables, retrieve.Options{
			Market:         cfg.Spotify.Market,
			ArtistSeeds:    cfg.Retrieval.ArtistSeeds,
			SearchInterval: cfg.Retrieval.SearchInterval,
		}),
		Ranker:   rank.New(cat, a.tables),
		Rand:     recommend.RandomRand(),
		Clusters: cfg.Vibes,
	}
	return a, nil
}

// newOracle returns nil when semantic matching is off or unreachable;
// the resolver then falls back to the lexicon and the default category.
func newOracle(ctx context.Context, cfg config.EmbedConfig) (mood.EmbeddingOracle, error) {
	switch cfg.Kind() {
	case "vectors":
		table, err := embed.LoadTable(cfg.VectorsPath)
		if err != nil {
			return nil, err
		}
		logging.Debug().Int("words", table.Len()).Int("dim", table.Dim()).Msg("loaded word vectors")
		return embed.NewOracleSize(table, "vectors", cfg.CacheSize), nil
	case "ollama":
		e := embed.NewOllamaEmbedder(cfg.OllamaURL, cfg.Model, cfg.Timeout)
		if !e.Available(ctx) {
			logging.Warn().
				Str("url", cfg.OllamaURL).
				Str("model", cfg.Model).
				Msg("embedding model unavailable, semantic matching disabled")
			return nil, nil
		}
		return embed.NewOracleSize(e, "ollama", cfg.CacheSize), nil
	default:
		return nil, nil
	}
}

// newCatalog layers the Spotify adapter: breaker first, then the
// persistent feature cache so cache hits never count against the breaker.
func (a *app) newCatalog(ctx context.Context, cfg *config.Config) (catalog.Catalog, error) {
	authenticator, err := auth.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.TokenCache)
	if err != nil {
		return nil, err
	}

	httpClient := authenticator.Client(ctx)
	httpClient.Timeout = cfg.Spotify.Timeout

	var cat catalog.Catalog = spotify.New(spotifyapi.New(httpClient, spotifyapi.WithRetry(true)))

	if cfg.Breaker.Enabled {
		s := catalog.DefaultBreakerSettings()
		s.MinRequests = cfg.Breaker.MinRequests
		s.FailureRatio = cfg.Breaker.FailureRatio
		s.Timeout = cfg.Breaker.Timeout
		cat = catalog.NewBreaker(cat, s)
	}

	if cfg.Database.URL != "" {
		database, err := db.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		a.db = database

		ttl := cfg.Database.FeatureTTL
		if ttl <= 0 {
			ttl = featurecache.DefaultTTL
		}
		pruned, err := database.Features().DeleteStale(ctx, time.Now().Add(-ttl))
		if err != nil {
			logging.Warn().Err(err).Msg("pruning feature cache failed")
		} else if pruned > 0 {
			logging.Debug().Int64("rows", pruned).Msg("pruned stale audio features")
		}

		cat = featurecache.New(cat, database.Features(), ttl)
	}

	return cat, nil
}
