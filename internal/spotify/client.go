// Package spotify adapts the Spotify Web API to the catalog interface.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/moodtunes/internal/catalog"
)

// maxTracksPerRequest is the audio features batch limit.
const maxTracksPerRequest = 100

// Client wraps the Spotify API client and implements catalog.Catalog.
type Client struct {
	api *spotify.Client
}

var _ catalog.Catalog = (*Client)(nil)

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// GenreSeeds lists the genres Spotify accepts as recommendation seeds.
func (c *Client) GenreSeeds(ctx context.Context) ([]string, error) {
	genres, err := c.api.GetAvailableGenreSeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching genre seeds: %w", err)
	}
	return genres, nil
}
