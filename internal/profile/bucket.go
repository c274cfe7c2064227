package profile

// Bucket is a coarse region of valence/energy space. Search batteries and
// metadata keywords are chosen per bucket.
type Bucket string

const (
	HappyEnergetic Bucket = "happy_energetic"
	AngryIntense   Bucket = "angry_intense"
	SadLow         Bucket = "sad_low"
	Dark           Bucket = "dark"
	CalmBucket     Bucket = "calm"
	HighEnergy     Bucket = "high_energy"
	RomanticBucket Bucket = "romantic"
	DefaultBucket  Bucket = "default"
)

// Classify returns the first bucket whose thresholds match.
func Classify(valence, energy float64) Bucket {
	switch {
	case valence > 0.7 && energy > 0.7:
		return HappyEnergetic
	case valence < 0.3 && energy > 0.8:
		return AngryIntense
	case valence < 0.4 && energy < 0.4:
		return SadLow
	case valence < 0.2:
		return Dark
	case energy < 0.4:
		return CalmBucket
	case energy > 0.8:
		return HighEnergy
	case valence > 0.6 && energy < 0.6:
		return RomanticBucket
	default:
		return DefaultBucket
	}
}
