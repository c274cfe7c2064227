// Package featurecache persists catalog audio features so repeated queries
// do not refetch them.
package featurecache

import (
	"context"
	"fmt"
	"time"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/db"
	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/metrics"
)

// DefaultTTL is the duration after which cached features are considered stale.
const DefaultTTL = 30 * 24 * time.Hour // 30 days

// Store is the persistence the cache reads and writes.
type Store interface {
	GetForTracks(ctx context.Context, trackIDs []string) (map[string]db.TrackFeatures, error)
	UpsertBatch(ctx context.Context, rows []db.TrackFeatures) error
}

// Catalog wraps a catalog.Catalog with a persistent audio feature cache.
// It checks the store first, then falls back to the underlying catalog for
// misses and stale entries, persisting new results. Other methods pass
// through unchanged.
type Catalog struct {
	catalog.Catalog
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New wraps next. A non-positive ttl uses DefaultTTL.
func New(next catalog.Catalog, store Store, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Catalog{Catalog: next, store: store, ttl: ttl, now: time.Now}
}

// AudioFeatures returns cached bundles where fresh and fetches the rest.
// Store failures degrade to a full fetch; they never fail the call.
func (c *Catalog) AudioFeatures(ctx context.Context, ids []string) (map[string]catalog.AudioFeatures, error) {
	result := make(map[string]catalog.AudioFeatures, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	log := logging.Ctx(ctx)

	cached, err := c.store.GetForTracks(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Msg("feature cache read failed")
		cached = nil
	}

	staleThreshold := c.now().Add(-c.ttl)
	var needsFetch []string
	for _, id := range ids {
		row, found := cached[id]
		if !found || row.FetchedAt.Before(staleThreshold) {
			needsFetch = append(needsFetch, id)
			continue
		}
		if !row.Missing {
			result[id] = catalog.AudioFeatures{
				Valence:      row.Valence,
				Energy:       row.Energy,
				Tempo:        row.Tempo,
				Danceability: row.Danceability,
			}
		}
	}

	metrics.FeatureCacheHits.Add(float64(len(ids) - len(needsFetch)))
	metrics.FeatureCacheMisses.Add(float64(len(needsFetch)))

	if len(needsFetch) == 0 {
		return result, nil
	}

	fetched, err := c.Catalog.AudioFeatures(ctx, needsFetch)
	if err != nil {
		if len(result) == 0 || ctx.Err() != nil {
			return nil, fmt.Errorf("fetching uncached features: %w", err)
		}
		log.Warn().Err(err).
			Int("cached", len(result)).
			Int("uncached", len(needsFetch)).
			Msg("feature fetch failed, using cached features only")
		return result, nil
	}

	now := c.now()
	rows := make([]db.TrackFeatures, 0, len(needsFetch))
	for _, id := range needsFetch {
		f, ok := fetched[id]
		if ok {
			result[id] = f
		}
		rows = append(rows, db.TrackFeatures{
			TrackID:      id,
			Valence:      f.Valence,
			Energy:       f.Energy,
			Tempo:        f.Tempo,
			Danceability: f.Danceability,
			Missing:      !ok,
			FetchedAt:    now,
		})
	}

	if err := c.store.UpsertBatch(ctx, rows); err != nil {
		// Log but don't fail - the features were fetched
		log.Warn().Err(err).Int("tracks", len(rows)).Msg("feature cache write failed")
	}

	return result, nil
}
