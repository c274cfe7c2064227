package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FeatureRepository handles audio feature cache operations.
type FeatureRepository struct {
	pool *pgxpool.Pool
}

// UpsertBatch inserts or updates multiple feature rows efficiently.
func (r *FeatureRepository) UpsertBatch(ctx context.Context, rows []TrackFeatures) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO audio_features (track_id, valence, energy, tempo, danceability, missing, fetched_at)
		SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[], $4::float8[], $5::float8[], $6::bool[], $7::timestamptz[])
		ON CONFLICT (track_id) DO UPDATE SET
			valence = EXCLUDED.valence,
			energy = EXCLUDED.energy,
			tempo = EXCLUDED.tempo,
			danceability = EXCLUDED.danceability,
			missing = EXCLUDED.missing,
			fetched_at = EXCLUDED.fetched_at
	`

	ids := make([]string, len(rows))
	valences := make([]float64, len(rows))
	energies := make([]float64, len(rows))
	tempos := make([]float64, len(rows))
	danceabilities := make([]float64, len(rows))
	missing := make([]bool, len(rows))
	fetchedAts := make([]time.Time, len(rows))

	for i, f := range rows {
		ids[i] = f.TrackID
		valences[i] = f.Valence
		energies[i] = f.Energy
		tempos[i] = f.Tempo
		danceabilities[i] = f.Danceability
		missing[i] = f.Missing
		fetchedAts[i] = f.FetchedAt
	}

	_, err := r.pool.Exec(ctx, query, ids, valences, energies, tempos, danceabilities, missing, fetchedAts)
	if err != nil {
		return fmt.Errorf("batch upserting audio features: %w", err)
	}
	return nil
}

// GetForTracks retrieves cached rows for multiple tracks keyed by track ID.
// Tracks never cached are absent.
func (r *FeatureRepository) GetForTracks(ctx context.Context, trackIDs []string) (map[string]TrackFeatures, error) {
	if len(trackIDs) == 0 {
		return make(map[string]TrackFeatures), nil
	}

	query := `
		SELECT track_id, valence, energy, tempo, danceability, missing, fetched_at
		FROM audio_features
		WHERE track_id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, trackIDs)
	if err != nil {
		return nil, fmt.Errorf("querying audio features: %w", err)
	}
	defer rows.Close()

	result := make(map[string]TrackFeatures, len(trackIDs))
	for rows.Next() {
		var f TrackFeatures
		if err := rows.Scan(
			&f.TrackID,
			&f.Valence,
			&f.Energy,
			&f.Tempo,
			&f.Danceability,
			&f.Missing,
			&f.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audio features: %w", err)
		}
		result[f.TrackID] = f
	}
	return result, rows.Err()
}

// DeleteStale removes rows fetched before olderThan and returns how many
// were removed.
func (r *FeatureRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audio_features WHERE fetched_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("deleting stale audio features: %w", err)
	}
	return tag.RowsAffected(), nil
}
