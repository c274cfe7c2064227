package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/moodtunes/internal/logging"
)

// ErrMissingCredentials is returned when the client id or secret is empty.
var ErrMissingCredentials = errors.New("missing Spotify client id or secret")

// Authenticator obtains app-level Spotify tokens with the client
// credentials grant. No user login is involved; catalog endpoints only
// need an application token.
type Authenticator struct {
	config *clientcredentials.Config
	cache  *TokenCache // nil disables on-disk caching
}

// New creates an Authenticator. cachePath names the token cache file; an
// empty path disables caching.
func New(clientID, clientSecret, cachePath string) (*Authenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	a := &Authenticator{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyauth.TokenURL,
		},
	}
	if cachePath != "" {
		a.cache = NewTokenCache(cachePath)
	}
	return a, nil
}

// TokenSource returns a token source that reuses a valid cached token and
// persists every newly fetched one.
func (a *Authenticator) TokenSource(ctx context.Context) oauth2.TokenSource {
	base := a.config.TokenSource(ctx)
	if a.cache == nil {
		return base
	}

	cached, err := a.cache.Load()
	if err != nil {
		logging.Warn().Err(err).Str("path", a.cache.Path()).Msg("ignoring unreadable token cache")
		cached = nil
	}

	src := &cachingSource{base: base, cache: a.cache}
	if cached != nil {
		src.last = cached.AccessToken
	}
	return oauth2.ReuseTokenSource(cached, src)
}

// Client returns an HTTP client that authorizes every request.
func (a *Authenticator) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, a.TokenSource(ctx))
}

// Logout removes the cached token.
func (a *Authenticator) Logout() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Delete()
}

type cachingSource struct {
	base  oauth2.TokenSource
	cache *TokenCache

	mu   sync.Mutex
	last string
}

func (s *cachingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, fmt.Errorf("fetching client credentials token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.cache.Save(tok); err != nil {
			// auth still succeeded
			logging.Warn().Err(err).Msg("failed to cache token")
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}
