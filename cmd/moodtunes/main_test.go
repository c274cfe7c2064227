package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/justestif/moodtunes/internal/mood"
	"github.com/justestif/moodtunes/internal/profile"
	"github.com/justestif/moodtunes/internal/rank"
	"github.com/justestif/moodtunes/internal/recommend"
	"github.com/justestif/moodtunes/internal/vibes"
)

func TestRenderResult(t *testing.T) {
	res := recommend.Result{
		Resolution: mood.Resolution{Input: "joyful", Category: mood.Happy, Confidence: 0.82, Method: mood.MethodSemantic},
		Profile:    profile.Profile{Valence: 0.8, Energy: 0.7, Tempo: 120, Danceability: 0.7},
		Mode:       rank.ModeFeature,
		Recommendations: []recommend.Recommendation{
			{Name: "Happy", Artists: []string{"Pharrell Williams"}},
			{Name: "Uptown Funk", Artists: []string{"Mark Ronson", "Bruno Mars"}},
		},
		Explain: []recommend.Explanation{{ID: "a", Name: "Happy", Score: 0.934}},
		Vibes:   []vibes.Vibe{{Name: "Euphoric", Description: "bright and driving", Tracks: []string{"Happy"}}},
	}

	tests := []struct {
		name    string
		explain bool
		want    []string
		absent  []string
	}{
		{
			name:   "plain",
			want:   []string{"happy", "0.82", "semantic", "1. Happy", "2. Uptown Funk", "Mark Ronson, Bruno Mars", "120 bpm", "Euphoric"},
			absent: []string{"0.934"},
		},
		{
			name:    "explain",
			explain: true,
			want:    []string{"ranking:", "feature", "0.934"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderResult(&buf, res, tt.explain)
			out := buf.String()

			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestRenderEmptyResult(t *testing.T) {
	tests := []struct {
		reason recommend.Reason
		want   string
	}{
		{recommend.ReasonOracleUnavailable, "unavailable"},
		{recommend.ReasonNoCandidates, "No songs matched"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			var buf bytes.Buffer
			renderResult(&buf, recommend.Result{Reason: tt.reason}, false)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRootCmdArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"recommend without mood", []string{"recommend"}},
		{"resolve with two words", []string{"resolve", "a", "b"}},
		{"serve with argument", []string{"serve", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("MOODTUNES_CONFIG", "")

			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			if err := cmd.Execute(); err == nil {
				t.Error("Execute() expected argument error")
			}
		})
	}
}

func TestResolveCommandOffline(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MOODTUNES_CONFIG", "")
	t.Setenv("EMBED_PROVIDER", "none")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"resolve", "--log-level", "disabled", "--json", "furious"})
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), `"category":"angry"`) {
		t.Errorf("output = %s, want angry", out.String())
	}
}

func TestRecommendRequiresCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MOODTUNES_CONFIG", "")
	t.Setenv("SPOTIFY_ID", "")
	t.Setenv("SPOTIFY_SECRET", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"recommend", "--log-level", "disabled", "happy"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "SPOTIFY_ID") {
		t.Errorf("Execute() error = %v, want missing credentials", err)
	}
}
