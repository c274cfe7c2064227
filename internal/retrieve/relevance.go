package retrieve

import (
	"strings"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/tables"
)

// MinRelevance is the score a search result needs to be kept.
const MinRelevance = 2

// Relevance scores how likely a search result belongs to the target
// catalog segment, using keyword and artist allow-lists.
type Relevance struct {
	keywords []string
	artists  []string
	source   []string
	variant  []string
}

// NewRelevance builds a scorer from the relevance tables.
func NewRelevance(t tables.Tables) *Relevance {
	return &Relevance{
		keywords: t.RelevanceKeywords,
		artists:  t.RelevanceArtists,
		source:   t.SourcePhrases,
		variant:  t.VariantPhrases,
	}
}

// Score adds one per keyword in the name or album, three per curated
// artist, and one each for a film-source phrase and a variant phrase in
// the name.
func (r *Relevance) Score(t catalog.Track) int {
	name := strings.ToLower(t.Name)
	text := name + " " + strings.ToLower(t.Album)

	lowered := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		lowered[i] = strings.ToLower(a)
	}
	artists := strings.Join(lowered, " ")

	score := 0
	for _, k := range r.keywords {
		if strings.Contains(text, k) {
			score++
		}
	}
	for _, a := range r.artists {
		if strings.Contains(artists, a) {
			score += 3
		}
	}
	if containsAny(name, r.source) {
		score++
	}
	if containsAny(name, r.variant) {
		score++
	}
	return score
}

// Filter keeps tracks scoring at least MinRelevance, preserving order.
func (r *Relevance) Filter(tracks []catalog.Track) []catalog.Track {
	out := make([]catalog.Track, 0, len(tracks))
	for _, t := range tracks {
		if r.Score(t) >= MinRelevance {
			out = append(out, t)
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
