package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/justestif/moodtunes/internal/mood"
	"github.com/justestif/moodtunes/internal/recommend"
)

func renderResolution(w io.Writer, r mood.Resolution) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("mood:"), titleStyle.Render(string(r.Category)))
	fmt.Fprintf(w, "%s %.2f %s\n",
		labelStyle.Render("confidence:"),
		r.Confidence,
		labelStyle.Render("("+string(r.Method)+")"))
}

func renderResult(w io.Writer, res recommend.Result, explain bool) {
	renderResolution(w, res.Resolution)

	p := res.Profile
	fmt.Fprintf(w, "%s valence %.2f, energy %.2f, tempo %.0f bpm, danceability %.2f\n",
		labelStyle.Render("target:"), p.Valence, p.Energy, p.Tempo, p.Danceability)
	fmt.Fprintln(w)

	if len(res.Recommendations) == 0 {
		fmt.Fprintln(w, warnStyle.Render(emptyMessage(res.Reason)))
		return
	}

	for i, rec := range res.Recommendations {
		fmt.Fprintf(w, "%d. %s %s\n", i+1,
			songStyle.Render(rec.Name),
			artistStyle.Render("by "+strings.Join(rec.Artists, ", ")))
	}

	if explain {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("ranking:"), string(res.Mode))
		for _, e := range res.Explain {
			fmt.Fprintf(w, "  %s %s\n", scoreStyle.Render(fmt.Sprintf("%.3f", e.Score)), e.Name)
		}
	}

	if len(res.Vibes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Vibes"))
		for _, v := range res.Vibes {
			block := fmt.Sprintf("%s (%d tracks)\n%s", songStyle.Render(v.Name), len(v.Tracks), artistStyle.Render(v.Description))
			fmt.Fprintln(w, vibeStyle.Render(block))
		}
	}
}

func emptyMessage(reason recommend.Reason) string {
	switch reason {
	case recommend.ReasonOracleUnavailable:
		return "The music catalog is unavailable right now. Try again shortly."
	case recommend.ReasonNoCandidates:
		return "No songs matched this mood."
	default:
		return "No recommendations."
	}
}
