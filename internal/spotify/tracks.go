package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/moodtunes/internal/catalog"
)

// Recommend requests tracks near the target attributes.
func (c *Client) Recommend(ctx context.Context, targets catalog.Targets, seeds catalog.Seeds, market string, limit int) ([]catalog.Track, error) {
	attrs := spotify.NewTrackAttributes().
		TargetValence(targets.Valence).
		TargetEnergy(targets.Energy).
		TargetTempo(targets.Tempo)

	s := spotify.Seeds{Genres: seeds.Genres}
	for _, id := range seeds.Artists {
		s.Artists = append(s.Artists, spotify.ID(id))
	}

	recs, err := c.api.GetRecommendations(ctx, s, attrs, requestOptions(market, limit)...)
	if err != nil {
		return nil, fmt.Errorf("fetching recommendations: %w", err)
	}

	tracks := make([]catalog.Track, 0, len(recs.Tracks))
	for _, st := range recs.Tracks {
		tracks = append(tracks, convertSimpleTrack(st))
	}
	return tracks, nil
}

// Search runs a track search.
func (c *Client) Search(ctx context.Context, query, market string, limit int) ([]catalog.Track, error) {
	res, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, requestOptions(market, limit)...)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	if res.Tracks == nil {
		return nil, nil
	}

	tracks := make([]catalog.Track, 0, len(res.Tracks.Tracks))
	for _, ft := range res.Tracks.Tracks {
		tracks = append(tracks, convertFullTrack(ft))
	}
	return tracks, nil
}

// FindArtist returns the id of the top artist search hit for name.
func (c *Client) FindArtist(ctx context.Context, name string) (string, error) {
	res, err := c.api.Search(ctx, name, spotify.SearchTypeArtist, spotify.Limit(1))
	if err != nil {
		return "", fmt.Errorf("searching artist %q: %w", name, err)
	}
	if res.Artists == nil || len(res.Artists.Artists) == 0 {
		return "", nil
	}
	return res.Artists.Artists[0].ID.String(), nil
}

func requestOptions(market string, limit int) []spotify.RequestOption {
	var opts []spotify.RequestOption
	if limit > 0 {
		opts = append(opts, spotify.Limit(limit))
	}
	if market != "" {
		opts = append(opts, spotify.Market(market))
	}
	return opts
}

// convertSimpleTrack converts a Spotify SimpleTrack to catalog.Track.
func convertSimpleTrack(st spotify.SimpleTrack) catalog.Track {
	return catalog.Track{
		ID:      st.ID.String(),
		Name:    st.Name,
		Artists: artistNames(st.Artists),
		Album:   st.Album.Name,
	}
}

// convertFullTrack converts a Spotify FullTrack to catalog.Track.
func convertFullTrack(ft spotify.FullTrack) catalog.Track {
	t := convertSimpleTrack(ft.SimpleTrack)
	t.Album = ft.Album.Name
	return t
}

func artistNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return names
}
