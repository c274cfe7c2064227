// Package profile turns a resolved mood into a target musical profile.
package profile

import (
	"math"

	"github.com/justestif/moodtunes/internal/mood"
	"github.com/justestif/moodtunes/internal/tables"
)

// Attribute bounds.
const (
	MinTempo = 60.0
	MaxTempo = 180.0

	minJitter       = 0.05
	jitterScale     = 0.15
	tempoSpread     = 15.0
	attributeSpread = 0.1
)

// Profile is a target point in audio-feature space.
type Profile struct {
	Valence      float64 `json:"target_valence"`
	Energy       float64 `json:"target_energy"`
	Tempo        float64 `json:"target_tempo"`
	Danceability float64 `json:"target_danceability"`
}

// Targets returns the profile keyed by catalog target parameter name.
func (p Profile) Targets() map[string]float64 {
	return map[string]float64{
		"target_valence":      p.Valence,
		"target_energy":       p.Energy,
		"target_tempo":        p.Tempo,
		"target_danceability": p.Danceability,
	}
}

// Bucket classifies the profile by valence and energy.
func (p Profile) Bucket() Bucket {
	return Classify(p.Valence, p.Energy)
}

// Rand is the randomness the generator and ranker draw from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// Uniform returns a value in [lo, hi) drawn from r.
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// JitterFactor is the amount of randomness applied for a given confidence.
// It shrinks as confidence grows but never drops below 0.05.
func JitterFactor(confidence float64) float64 {
	return math.Max(minJitter, jitterScale*(1-confidence))
}

// Generator produces jittered profiles from a base table.
type Generator struct {
	base map[mood.Category]tables.Profile
}

// NewGenerator creates a Generator over the given base profiles.
func NewGenerator(base map[string]tables.Profile) *Generator {
	g := &Generator{base: make(map[mood.Category]tables.Profile, len(base))}
	for name, p := range base {
		g.base[mood.Category(name)] = p
	}
	return g
}

// Generate jitters the base profile for category. Unknown categories use
// the calm profile. Draws happen in the order valence, energy, tempo,
// danceability.
func (g *Generator) Generate(category mood.Category, confidence float64, rng Rand) Profile {
	base, ok := g.base[category]
	if !ok {
		base = g.base[mood.Default]
	}

	jf := JitterFactor(confidence)

	valence := base.Valence + Uniform(rng, -attributeSpread, attributeSpread)*jf
	energy := base.Energy + Uniform(rng, -attributeSpread, attributeSpread)*jf
	tempo := base.Tempo + Uniform(rng, -tempoSpread, tempoSpread)*jf
	dance := base.Danceability + Uniform(rng, -attributeSpread, attributeSpread)*jf

	return Profile{
		Valence:      clamp(valence, 0, 1),
		Energy:       clamp(energy, 0, 1),
		Tempo:        clamp(tempo, MinTempo, MaxTempo),
		Danceability: clamp(dance, 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
