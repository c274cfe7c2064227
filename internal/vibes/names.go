package vibes

// Quadrant thresholds on a cluster center.
const (
	highEnergy  = 0.6
	highValence = 0.5
)

// Name labels a cluster center by its energy/valence quadrant:
//
//   - high energy, high valence: "Upbeat Party"
//   - high energy, low valence:  "Intense & Dark"
//   - low energy, high valence:  "Chill & Happy"
//   - low energy, low valence:   "Reflective & Melancholy"
func Name(energy, valence float64) string {
	switch {
	case energy > highEnergy && valence > highValence:
		return "Upbeat Party"
	case energy > highEnergy:
		return "Intense & Dark"
	case valence > highValence:
		return "Chill & Happy"
	default:
		return "Reflective & Melancholy"
	}
}

// Describe returns a one-line description of the quadrant.
func Describe(energy, valence float64) string {
	switch {
	case energy > highEnergy && valence > highValence:
		return "High-energy, positive vibes for dancing and celebrations"
	case energy > highEnergy:
		return "Intense, driving energy with darker emotional tones"
	case valence > highValence:
		return "Relaxed and uplifting, good for unwinding"
	default:
		return "Contemplative and introspective, for quiet moments"
	}
}
