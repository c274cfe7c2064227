// Package rank scores candidate tracks against a target profile.
//
// Tracks with audio features are scored by weighted distance to the
// profile. When no features are available the ranker falls back to a
// metadata heuristic over titles and artists.
package rank

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/dedup"
	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/metrics"
	"github.com/justestif/moodtunes/internal/profile"
	"github.com/justestif/moodtunes/internal/tables"
)

// Mode is the scoring method a ranking used.
type Mode string

const (
	ModeFeature  Mode = "feature"
	ModeMetadata Mode = "metadata"
)

// MaxRanked caps the ranked list.
const MaxRanked = 20

// Feature weights. Tempo is compared on a 0-180 scale.
const (
	weightValence      = 0.35
	weightEnergy       = 0.35
	weightTempo        = 0.20
	weightDanceability = 0.10
	tempoScale         = 180.0
)

// Metadata heuristic.
const (
	metadataBase    = 0.5
	keywordBonus    = 0.1
	artistBonus     = 0.2
	metadataNoise   = 0.1
	emotionalCutoff = 0.4
	upbeatCutoff    = 0.7
)

// FeatureSource supplies audio features for tracks that lack them.
type FeatureSource interface {
	AudioFeatures(ctx context.Context, ids []string) (map[string]catalog.AudioFeatures, error)
}

// Scored is a track with its match score.
type Scored struct {
	Track catalog.Track
	Score float64
}

// Ranking is the ordered result of a Rank call.
type Ranking struct {
	Tracks []Scored
	Mode   Mode
}

// Ranker orders candidates by how well they match a profile.
type Ranker struct {
	features   FeatureSource
	normalizer *dedup.Normalizer
	keywords   map[string][]string
	emotional  []string
	upbeat     []string
}

// New creates a Ranker. features may be nil, in which case only features
// already attached to tracks are used.
func New(features FeatureSource, t tables.Tables) *Ranker {
	return &Ranker{
		features:   features,
		normalizer: dedup.NewNormalizer(t.FillerTokens),
		keywords:   t.RankKeywords,
		emotional:  t.EmotionalArtists,
		upbeat:     t.UpbeatArtists,
	}
}

// Rank scores candidates against p. It never fails: feature lookup errors
// drop to metadata mode. rng supplies the metadata tie-breaking noise.
func (r *Ranker) Rank(ctx context.Context, candidates []catalog.Track, p profile.Profile, rng profile.Rand) Ranking {
	if len(candidates) == 0 {
		return Ranking{Tracks: []Scored{}, Mode: ModeMetadata}
	}

	scored, ok := r.byFeatures(ctx, candidates, p)
	mode := ModeFeature
	if !ok {
		scored = r.byMetadata(candidates, p, rng)
		mode = ModeMetadata
	}
	metrics.RankingModes.WithLabelValues(string(mode)).Inc()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return Ranking{Tracks: r.unique(scored), Mode: mode}
}

func (r *Ranker) byFeatures(ctx context.Context, candidates []catalog.Track, p profile.Profile) ([]Scored, bool) {
	var missing []string
	for _, t := range candidates {
		if t.Features == nil && t.ID != "" {
			missing = append(missing, t.ID)
		}
	}

	var fetched map[string]catalog.AudioFeatures
	if len(missing) > 0 && r.features != nil {
		var err error
		fetched, err = r.features.AudioFeatures(ctx, missing)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("tracks", len(missing)).Msg("audio features unavailable")
			metrics.RecordOracleError("catalog", "audio_features")
		}
	}

	scored := make([]Scored, 0, len(candidates))
	for _, t := range candidates {
		f := t.Features
		if f == nil {
			af, ok := fetched[t.ID]
			if !ok {
				continue
			}
			f = &af
			t.Features = f
		}
		scored = append(scored, Scored{Track: t, Score: MatchScore(*f, p)})
	}

	return scored, len(scored) > 0
}

// MatchScore is the weighted similarity of f to p, in [0,1].
func MatchScore(f catalog.AudioFeatures, p profile.Profile) float64 {
	score := weightValence*(1-math.Abs(p.Valence-f.Valence)) +
		weightEnergy*(1-math.Abs(p.Energy-f.Energy)) +
		weightTempo*(1-math.Abs(p.Tempo/tempoScale-f.Tempo/tempoScale)) +
		weightDanceability*(1-math.Abs(p.Danceability-f.Danceability))

	return math.Max(0, math.Min(1, score))
}

func (r *Ranker) byMetadata(candidates []catalog.Track, p profile.Profile, rng profile.Rand) []Scored {
	keywords := r.keywords[string(p.Bucket())]

	scored := make([]Scored, 0, len(candidates))
	for _, t := range candidates {
		name := strings.ToLower(t.Name)
		artist := strings.ToLower(t.PrimaryArtist())

		score := metadataBase
		for _, k := range keywords {
			if strings.Contains(name, k) {
				score += keywordBonus
			}
		}

		switch {
		case p.Valence < emotionalCutoff && containsAny(artist, r.emotional):
			score += artistBonus
		case p.Valence > upbeatCutoff && containsAny(artist, r.upbeat):
			score += artistBonus
		}

		score += profile.Uniform(rng, -metadataNoise, metadataNoise)
		scored = append(scored, Scored{Track: t, Score: score})
	}
	return scored
}

// unique keeps the first track per normalized name, up to MaxRanked.
func (r *Ranker) unique(scored []Scored) []Scored {
	seen := make(map[string]bool, len(scored))
	out := make([]Scored, 0, min(len(scored), MaxRanked))
	for _, s := range scored {
		key := r.normalizer.Name(s.Track.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == MaxRanked {
			break
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
