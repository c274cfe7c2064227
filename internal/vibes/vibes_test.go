package vibes

import (
	"fmt"
	"testing"

	"github.com/justestif/moodtunes/internal/catalog"
	"github.com/justestif/moodtunes/internal/rank"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		energy  float64
		valence float64
		want    string
	}{
		{"high energy high valence", 0.8, 0.7, "Upbeat Party"},
		{"high energy low valence", 0.8, 0.3, "Intense & Dark"},
		{"low energy high valence", 0.4, 0.7, "Chill & Happy"},
		{"low energy low valence", 0.3, 0.3, "Reflective & Melancholy"},
		{"energy threshold is exclusive", 0.6, 0.7, "Chill & Happy"},
		{"valence threshold is exclusive", 0.8, 0.5, "Intense & Dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.energy, tt.valence); got != tt.want {
				t.Errorf("Name(%v, %v) = %q, want %q", tt.energy, tt.valence, got, tt.want)
			}
			if Describe(tt.energy, tt.valence) == "" {
				t.Error("Describe() returned empty description")
			}
		})
	}
}

func scored(name string, f *catalog.AudioFeatures) rank.Scored {
	return rank.Scored{Track: catalog.Track{ID: name, Name: name, Features: f}}
}

func TestSummarize(t *testing.T) {
	t.Run("no features", func(t *testing.T) {
		got := Summarize([]rank.Scored{scored("a", nil), scored("b", nil)}, 3)
		if got != nil {
			t.Errorf("Summarize() = %v, want nil", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Summarize(nil, 3); got != nil {
			t.Errorf("Summarize(nil) = %v, want nil", got)
		}
	})

	t.Run("fewer tracks than clusters", func(t *testing.T) {
		got := Summarize([]rank.Scored{
			scored("only", &catalog.AudioFeatures{Energy: 0.9, Valence: 0.9, Danceability: 0.8}),
		}, 3)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0].Name != "Upbeat Party" {
			t.Errorf("Name = %q, want Upbeat Party", got[0].Name)
		}
	})

	t.Run("all featured tracks are placed once", func(t *testing.T) {
		var tracks []rank.Scored
		for i := 0; i < 6; i++ {
			tracks = append(tracks, scored(fmt.Sprintf("party-%d", i), &catalog.AudioFeatures{Energy: 0.9, Valence: 0.85, Danceability: 0.8}))
			tracks = append(tracks, scored(fmt.Sprintf("sad-%d", i), &catalog.AudioFeatures{Energy: 0.2, Valence: 0.15, Danceability: 0.3}))
		}
		tracks = append(tracks, scored("unknown", nil))

		got := Summarize(tracks, 2)
		if len(got) == 0 || len(got) > 2 {
			t.Fatalf("len = %d, want 1 or 2", len(got))
		}

		seen := map[string]int{}
		for i, v := range got {
			if len(v.Tracks) == 0 {
				t.Errorf("vibe %d is empty", i)
			}
			if i > 0 && len(v.Tracks) > len(got[i-1].Tracks) {
				t.Error("vibes should be ordered largest first")
			}
			for _, name := range v.Tracks {
				seen[name]++
			}
		}
		if len(seen) != 12 {
			t.Errorf("placed %d distinct tracks, want 12", len(seen))
		}
		for name, n := range seen {
			if n != 1 {
				t.Errorf("%s placed %d times", name, n)
			}
		}
		if seen["unknown"] != 0 {
			t.Error("tracks without features should not be clustered")
		}
	})
}
