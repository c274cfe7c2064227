package dedup

import (
	"testing"

	"github.com/justestif/moodtunes/internal/catalog"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tum Hi Ho", "tum hi ho"},
		{"Tum Hi Ho (Unplugged Version)", "tum hi ho"},
		{"Kesariya (From \"Brahmastra\")", "kesariya"},
		{"Apna Bana Le - Lofi Flip", "apna bana le"},
		{"Raataan Lambiyan - Slowed + Reverb", "raataan lambiyan"},
		{"Kal Ho Naa Ho (feat. Sonu Nigam)", "kal ho naa ho"},
		{"Chaiyya Chaiyya!!", "chaiyya chaiyya"},
		{"  Ilahi   Official  Song ", "ilahi"},
		{"Official Song", "official song"},
		{"Dil Se Re (Remastered)", "dil se re remastered"},
		{"Kun Faya Kun - Remastered 2011", "kun faya kun"},
		{"Zindagi Naa Milegi Dobara", "zindagi naa milegi dobara"},
		{"Tum Hi\u00a0Ho", "tum hi ho"},
		{"Tum\u2003Hi\u202fHo", "tum hi ho"},
		{"Apna Bana Le\u00a0-\u00a0Lofi Flip", "apna bana le"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	names := []string{
		"Tum Hi Ho (Unplugged Version)",
		"Official Song",
		"Kesariya (From \"Brahmastra\") - Lofi",
		"Chaleya — Hindi",
		"Ae Dil Hai Mushkil (Title Track)",
		"",
	}

	for _, n := range names {
		once := NormalizeName(n)
		if twice := NormalizeName(once); twice != once {
			t.Errorf("NormalizeName not idempotent for %q: %q then %q", n, once, twice)
		}
	}
}

func TestTracks(t *testing.T) {
	n := NewNormalizer([]string{"song"})

	tracks := []catalog.Track{
		{ID: "1", Name: "Tum Hi Ho"},
		{ID: "2", Name: "Tum Hi Ho (Reprise)"},
		{ID: "3", Name: "Channa Mereya"},
		{ID: "1", Name: "Something Else Entirely"},
		{ID: "", Name: "Agar Tum Saath Ho"},
		{ID: "", Name: "Agar Tum Saath Ho Song"},
	}

	got := n.Tracks(tracks)

	wantIDs := []string{"1", "3", ""}
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d, want %d: %+v", len(got), len(wantIDs), got)
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
	if got[0].Name != "Tum Hi Ho" {
		t.Errorf("first occurrence should win, got %q", got[0].Name)
	}
}
