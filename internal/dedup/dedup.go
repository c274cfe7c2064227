// Package dedup collapses near-duplicate tracks, such as remixes, live cuts
// and re-releases, onto a normalized song name.
package dedup

import (
	"regexp"
	"strings"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/tables"
)

var (
	parenMarkers = []string{
		"remix", "reprise", "version", "edit", `feat\.`, "featuring", `ft\.`, "with",
		"from", "soundtrack", "original", "instrumental", "acoustic", "live",
		"radio", "clean", "explicit", "lofi", "lo-fi",
	}
	dashMarkers = []string{
		"remix", "version", "edit", "lofi", "lo-fi", "remastered", "slowed", "reverb",
	}

	qualifiers  = compileQualifiers()
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}]`)
	whitespace  = regexp.MustCompile(space + `+`)
)

// RE2's \s is ASCII only; \p{Z} adds no-break and other Unicode spaces.
const space = `[\s\p{Z}]`

func compileQualifiers() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(parenMarkers)+len(dashMarkers))
	for _, m := range parenMarkers {
		res = append(res, regexp.MustCompile(space+`*\(.*`+m+`.*\)`))
	}
	for _, m := range dashMarkers {
		res = append(res, regexp.MustCompile(space+`*-`+space+`*.*`+m+`.*`))
	}
	return res
}

var std = NewNormalizer(tables.Default().FillerTokens)

// NormalizeName normalizes name with the default filler tokens.
func NormalizeName(name string) string {
	return std.Name(name)
}

// Normalizer reduces song titles to a comparable key.
type Normalizer struct {
	filler map[string]bool
}

// NewNormalizer creates a Normalizer that drops the given filler tokens.
func NewNormalizer(filler []string) *Normalizer {
	n := &Normalizer{filler: make(map[string]bool, len(filler))}
	for _, f := range filler {
		n.filler[strings.ToLower(f)] = true
	}
	return n
}

// Name lowercases name, strips remix/version/featuring qualifiers and
// punctuation, and drops filler tokens unless nothing else would remain.
func (n *Normalizer) Name(name string) string {
	s := strings.ToLower(name)
	for _, re := range qualifiers {
		s = re.ReplaceAllString(s, "")
	}
	s = punctuation.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))

	words := strings.Fields(s)
	kept := words[:0:0]
	for _, w := range words {
		if !n.filler[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, " ")
}

// Tracks removes tracks that repeat an earlier id or normalized name.
// The first occurrence is kept and order is preserved.
func (n *Normalizer) Tracks(tracks []catalog.Track) []catalog.Track {
	seenIDs := make(map[string]bool, len(tracks))
	seenNames := make(map[string]bool, len(tracks))

	out := make([]catalog.Track, 0, len(tracks))
	for _, t := range tracks {
		key := n.Name(t.Name)
		if (t.ID != "" && seenIDs[t.ID]) || seenNames[key] {
			continue
		}
		if t.ID != "" {
			seenIDs[t.ID] = true
		}
		seenNames[key] = true
		out = append(out, t)
	}
	return out
}
