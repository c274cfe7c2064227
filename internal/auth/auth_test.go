package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenCacheLoad(t *testing.T) {
	tests := []struct {
		name    string
		stored  *oauth2.Token
		raw     string
		want    string
		wantErr bool
	}{
		{
			name:   "unexpired app token",
			stored: &oauth2.Token{AccessToken: "app-token", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)},
			want:   "app-token",
		},
		{
			name:   "no expiry recorded",
			stored: &oauth2.Token{AccessToken: "forever", TokenType: "Bearer"},
			want:   "forever",
		},
		{
			name:   "expired token is discarded",
			stored: &oauth2.Token{AccessToken: "stale", TokenType: "Bearer", Expiry: time.Now().Add(-time.Minute)},
		},
		{
			name:   "about to expire counts as expired",
			stored: &oauth2.Token{AccessToken: "edge", TokenType: "Bearer", Expiry: time.Now().Add(2 * time.Second)},
		},
		{
			name: "nothing cached yet",
		},
		{
			name:    "corrupt cache file",
			raw:     "{not json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "spotify", "token.json")
			switch {
			case tt.raw != "":
				if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
					t.Fatal(err)
				}
			case tt.stored != nil:
				if err := NewTokenCache(path).Save(tt.stored); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}

			got, err := NewTokenCache(path).Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}

			switch {
			case tt.want == "" && got != nil:
				t.Errorf("Load() = %q, want no token", got.AccessToken)
			case tt.want != "" && got == nil:
				t.Errorf("Load() = nil, want %q", tt.want)
			case tt.want != "" && got.AccessToken != tt.want:
				t.Errorf("AccessToken = %q, want %q", got.AccessToken, tt.want)
			}
		})
	}
}

func TestTokenCacheSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "token.json")
	c := NewTokenCache(path)
	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}

	if err := c.Save(nil); err == nil {
		t.Error("Save(nil) expected error")
	}

	if err := c.Save(&oauth2.Token{AccessToken: "app-token", TokenType: "Bearer"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("token file mode = %o, want owner-only", perm)
	}
	dir, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if perm := dir.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("cache dir mode = %o, want owner-only", perm)
	}
}

func TestTokenCacheDelete(t *testing.T) {
	tests := []struct {
		name   string
		stored bool
	}{
		{"removes cached token", true},
		{"nothing to remove", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			c := NewTokenCache(path)
			if tt.stored {
				if err := c.Save(&oauth2.Token{AccessToken: "app-token"}); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
			}

			if err := c.Delete(); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("token file still present after Delete(): %v", err)
			}
			if tok, _ := c.Load(); tok != nil {
				t.Errorf("Load() after Delete() = %q, want no token", tok.AccessToken)
			}
		})
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{"both missing", "", ""},
		{"id missing", "", "secret"},
		{"secret missing", "id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.secret, "")
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("New() error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

// tokenServer issues a fresh client credentials token on every request.
func tokenServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":3600}`, n)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAuthenticator(t *testing.T, tokenURL, cachePath string) *Authenticator {
	t.Helper()
	a, err := New("test-client-id", "test-client-secret", cachePath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.config.TokenURL = tokenURL
	return a
}

func TestTokenSource_FetchesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := tokenServer(t, &calls)
	path := filepath.Join(t.TempDir(), "token.json")

	a := newTestAuthenticator(t, srv.URL, path)
	tok, err := a.TokenSource(context.Background()).Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "token-1" {
		t.Errorf("AccessToken = %q, want token-1", tok.AccessToken)
	}

	cached, err := NewTokenCache(path).Load()
	if err != nil || cached == nil {
		t.Fatalf("cache Load() = %v, %v", cached, err)
	}
	if cached.AccessToken != "token-1" {
		t.Errorf("cached AccessToken = %q, want token-1", cached.AccessToken)
	}

	// A second authenticator reuses the cached token.
	b := newTestAuthenticator(t, srv.URL, path)
	tok, err = b.TokenSource(context.Background()).Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "token-1" || calls.Load() != 1 {
		t.Errorf("AccessToken = %q after %d calls, want cached token-1 after 1", tok.AccessToken, calls.Load())
	}
}

func TestTokenSource_NoCache(t *testing.T) {
	var calls atomic.Int32
	srv := tokenServer(t, &calls)

	a := newTestAuthenticator(t, srv.URL, "")
	if _, err := a.TokenSource(context.Background()).Token(); err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if err := a.Logout(); err != nil {
		t.Errorf("Logout() error = %v", err)
	}
}

func TestLogout(t *testing.T) {
	var calls atomic.Int32
	srv := tokenServer(t, &calls)
	path := filepath.Join(t.TempDir(), "token.json")

	a := newTestAuthenticator(t, srv.URL, path)
	if _, err := a.TokenSource(context.Background()).Token(); err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if err := a.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Logout() did not remove token file")
	}
}
