// Package tables holds the static data assets the engine matches against:
// the mood lexicon, base musical profiles, search batteries, and the
// keyword and artist allow-lists used for relevance and ranking.
//
// The compiled-in defaults can be overridden entry by entry from a YAML file.
package tables

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Profile is the base musical profile for a mood category.
type Profile struct {
	Valence      float64 `koanf:"valence" validate:"gte=0,lte=1"`
	Energy       float64 `koanf:"energy" validate:"gte=0,lte=1"`
	Tempo        float64 `koanf:"tempo" validate:"gte=60,lte=180"`
	Danceability float64 `koanf:"danceability" validate:"gte=0,lte=1"`
}

// Tables groups every data table the pipeline reads.
type Tables struct {
	// Lexicon maps a mood synonym to its category name.
	Lexicon map[string]string `koanf:"lexicon"`

	// Profiles maps a category name to its base profile.
	Profiles map[string]Profile `koanf:"profiles"`

	// GenreAllowList is matched against the catalog's available genre seeds, in order.
	GenreAllowList []string `koanf:"genre_allow_list"`
	// FallbackGenres are used when no allow-listed genre is available.
	FallbackGenres []string `koanf:"fallback_genres"`
	// SeedArtists are looked up for artist-seeded recommendations.
	SeedArtists []string `koanf:"seed_artists"`

	// SearchQueries maps a bucket name to its fallback search battery.
	SearchQueries map[string][]string `koanf:"search_queries"`

	// RelevanceKeywords and RelevanceArtists gate search results.
	RelevanceKeywords []string `koanf:"relevance_keywords"`
	RelevanceArtists  []string `koanf:"relevance_artists"`
	// SourcePhrases mark a track as lifted from a film or album.
	SourcePhrases []string `koanf:"source_phrases"`
	// VariantPhrases mark a re-release of a known song.
	VariantPhrases []string `koanf:"variant_phrases"`

	// RankKeywords maps a bucket name to title keywords for metadata ranking.
	RankKeywords map[string][]string `koanf:"rank_keywords"`
	// EmotionalArtists boost low-valence targets; UpbeatArtists boost high-valence ones.
	EmotionalArtists []string `koanf:"emotional_artists"`
	UpbeatArtists    []string `koanf:"upbeat_artists"`

	// FillerTokens are dropped from normalized names when enough remains.
	FillerTokens []string `koanf:"filler_tokens"`
}

// Load returns the default tables with any entries from the YAML file at
// path layered on top. An empty path returns the defaults.
func Load(path string) (Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Tables{}, fmt.Errorf("loading tables file %s: %w", path, err)
	}

	var override Tables
	if err := k.Unmarshal("", &override); err != nil {
		return Tables{}, fmt.Errorf("decoding tables file %s: %w", path, err)
	}

	t.merge(override)

	// Profile rows layer field by field: decoding onto the existing row
	// leaves attributes the file omits at their defaults.
	for _, name := range k.MapKeys("profiles") {
		p := t.Profiles[name]
		if err := k.Unmarshal("profiles."+name, &p); err != nil {
			return Tables{}, fmt.Errorf("decoding profile %q in %s: %w", name, path, err)
		}
		if err := validate.Struct(p); err != nil {
			return Tables{}, fmt.Errorf("invalid profile %q in %s: %w", name, path, err)
		}
		t.Profiles[name] = p
	}
	return t, nil
}

var validate = validator.New()

// merge layers o over t: map entries are added or replaced one key at a
// time, and any list present in o replaces the list in t. Profiles are
// layered by Load.
func (t *Tables) merge(o Tables) {
	for k, v := range o.Lexicon {
		t.Lexicon[k] = v
	}
	for k, v := range o.SearchQueries {
		t.SearchQueries[k] = v
	}
	for k, v := range o.RankKeywords {
		t.RankKeywords[k] = v
	}

	replace(&t.GenreAllowList, o.GenreAllowList)
	replace(&t.FallbackGenres, o.FallbackGenres)
	replace(&t.SeedArtists, o.SeedArtists)
	replace(&t.RelevanceKeywords, o.RelevanceKeywords)
	replace(&t.RelevanceArtists, o.RelevanceArtists)
	replace(&t.SourcePhrases, o.SourcePhrases)
	replace(&t.VariantPhrases, o.VariantPhrases)
	replace(&t.EmotionalArtists, o.EmotionalArtists)
	replace(&t.UpbeatArtists, o.UpbeatArtists)
	replace(&t.FillerTokens, o.FillerTokens)
}

func replace(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}
