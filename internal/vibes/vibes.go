// Package vibes summarizes a ranked pool by clustering its audio features.
package vibes

import (
	"cmp"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/moodtunes/internal/logging"
	"github.com/justestif/moodtunes/internal/rank"
)

// DefaultClusters is the cluster count used when k is not positive.
const DefaultClusters = 3

// Vibe is one cluster of similar-sounding tracks.
type Vibe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Energy       float64  `json:"energy"`
	Valence      float64  `json:"valence"`
	Danceability float64  `json:"danceability"`
	Tracks       []string `json:"tracks"`
}

// observation adapts a scored track to clusters.Observation.
type observation struct {
	name   string
	coords clusters.Coordinates
}

func (o observation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o observation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Summarize partitions the tracks that carry audio features into at most
// k clusters over energy, valence and danceability. Empty clusters are
// dropped and the rest are ordered largest first. Initial centers come
// from the global random source, so repeated calls may group differently.
func Summarize(tracks []rank.Scored, k int) []Vibe {
	if k <= 0 {
		k = DefaultClusters
	}

	var obs clusters.Observations
	for _, s := range tracks {
		f := s.Track.Features
		if f == nil {
			continue
		}
		obs = append(obs, observation{
			name:   s.Track.Name,
			coords: clusters.Coordinates{f.Energy, f.Valence, f.Danceability},
		})
	}
	if len(obs) == 0 {
		return nil
	}
	k = min(k, len(obs))

	result, err := kmeans.New().Partition(obs, k)
	if err != nil {
		logging.Warn().Err(err).Int("tracks", len(obs)).Msg("vibe clustering failed")
		return nil
	}

	var vibes []Vibe
	for _, c := range result {
		if len(c.Observations) == 0 {
			continue
		}

		names := make([]string, 0, len(c.Observations))
		for _, o := range c.Observations {
			if to, ok := o.(observation); ok {
				names = append(names, to.name)
			}
		}

		energy, valence, dance := c.Center[0], c.Center[1], c.Center[2]
		vibes = append(vibes, Vibe{
			Name:         Name(energy, valence),
			Description:  Describe(energy, valence),
			Energy:       energy,
			Valence:      valence,
			Danceability: dance,
			Tracks:       names,
		})
	}

	slices.SortStableFunc(vibes, func(a, b Vibe) int {
		if n := cmp.Compare(len(b.Tracks), len(a.Tracks)); n != 0 {
			return n
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return vibes
}
