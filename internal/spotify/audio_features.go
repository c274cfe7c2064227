package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/logging"
)

// AudioFeatures retrieves audio features for the given track ids.
// Batches requests to max 100 tracks per request per Spotify API limits.
// Tracks without available audio features are absent from the result.
func (c *Client) AudioFeatures(ctx context.Context, ids []string) (map[string]catalog.AudioFeatures, error) {
	out := make(map[string]catalog.AudioFeatures, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sids := make([]spotify.ID, len(ids))
	for i, id := range ids {
		sids[i] = spotify.ID(id)
	}

	total := len(sids)
	for i := 0; i < total; i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, total)

		features, err := c.api.GetAudioFeatures(ctx, sids[i:end]...)
		if err != nil {
			return nil, fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range features {
			if f == nil {
				continue // Track has no audio features
			}
			out[f.ID.String()] = convertAudioFeatures(f)
		}
	}

	logging.Debug().Int("requested", total).Int("found", len(out)).Msg("fetched audio features")
	return out, nil
}

// convertAudioFeatures copies the matching subset of audio features.
func convertAudioFeatures(f *spotify.AudioFeatures) catalog.AudioFeatures {
	return catalog.AudioFeatures{
		Valence:      float64(f.Valence),
		Energy:       float64(f.Energy),
		Tempo:        float64(f.Tempo),
		Danceability: float64(f.Danceability),
	}
}
