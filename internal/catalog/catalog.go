// Package catalog defines the song catalog the engine retrieves candidates from.
package catalog

import "context"

// Track is a song returned by the catalog.
type Track struct {
	ID      string
	Name    string
	Artists []string
	Album   string
	// Features is nil when the catalog did not include them.
	Features *AudioFeatures
}

// PrimaryArtist returns the first credited artist, or "".
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// AudioFeatures is the subset of audio analysis used for matching.
type AudioFeatures struct {
	Valence      float64
	Energy       float64
	Tempo        float64
	Danceability float64
}

// Targets are the target attributes passed to a recommendation request.
type Targets struct {
	Valence float64
	Energy  float64
	Tempo   float64
}

// Seeds steer a recommendation request. At most five seeds are used in total.
type Seeds struct {
	Genres  []string
	Artists []string
}

// MaxSeeds is the most seeds a single recommendation request accepts.
const MaxSeeds = 5

// Catalog is the song-catalog oracle.
type Catalog interface {
	// Recommend returns tracks near the targets, steered by seeds.
	Recommend(ctx context.Context, targets Targets, seeds Seeds, market string, limit int) ([]Track, error)
	// Search runs a free-text track search.
	Search(ctx context.Context, query, market string, limit int) ([]Track, error)
	// AudioFeatures returns feature bundles keyed by track id. Tracks
	// without analysis are absent from the map.
	AudioFeatures(ctx context.Context, ids []string) (map[string]AudioFeatures, error)
	// GenreSeeds lists the genre names usable as seeds.
	GenreSeeds(ctx context.Context) ([]string, error)
	// FindArtist returns the id of the best match for name, or "" if none.
	FindArtist(ctx context.Context, name string) (string, error)
}
