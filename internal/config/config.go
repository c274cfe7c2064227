// Package config loads moodtunes configuration.
//
// Values are layered with koanf: compiled-in defaults, then an optional
// YAML file, then environment variables. The result is checked with
// go-playground/validator struct tags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ErrMissingCredentials is returned when Spotify client credentials are not set.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET")

// PathEnvVar overrides the config file location.
const PathEnvVar = "MOODTUNES_CONFIG"

// DefaultPath is read when present and no other path is given.
const DefaultPath = "moodtunes.yaml"

// Config is the full application configuration.
type Config struct {
	Spotify   SpotifyConfig   `koanf:"spotify"`
	Embed     EmbedConfig     `koanf:"embed"`
	Retrieval RetrievalConfig `koanf:"retrieval"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`

	// Tables is an optional YAML file overriding the built-in data tables.
	Tables string `koanf:"tables"`
	// Vibes is the number of vibe clusters to summarize. Zero disables them.
	Vibes int `koanf:"vibes" validate:"min=0,max=10"`
}

type SpotifyConfig struct {
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	Market       string        `koanf:"market" validate:"len=2,uppercase"`
	TokenCache   string        `koanf:"token_cache"`
	Timeout      time.Duration `koanf:"timeout" validate:"min=0"`
}

// EmbedConfig selects the word-embedding oracle.
type EmbedConfig struct {
	// Provider is ollama, vectors or none. Empty picks vectors when
	// VectorsPath is set and ollama otherwise.
	Provider    string        `koanf:"provider" validate:"omitempty,oneof=ollama vectors none"`
	OllamaURL   string        `koanf:"ollama_url" validate:"omitempty,url"`
	Model       string        `koanf:"model"`
	VectorsPath string        `koanf:"vectors_path"`
	Timeout     time.Duration `koanf:"timeout" validate:"min=0"`
	CacheSize   int           `koanf:"cache_size" validate:"min=0"`
}

// Kind resolves the configured provider.
func (c EmbedConfig) Kind() string {
	if c.Provider != "" {
		return c.Provider
	}
	if c.VectorsPath != "" {
		return "vectors"
	}
	return "ollama"
}

type RetrievalConfig struct {
	ArtistSeeds    bool          `koanf:"artist_seeds"`
	SearchInterval time.Duration `koanf:"search_interval" validate:"min=0"`
}

type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MinRequests  uint32        `koanf:"min_requests" validate:"min=1"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	// URL enables the audio feature cache when set.
	URL        string        `koanf:"url"`
	FeatureTTL time.Duration `koanf:"feature_ttl" validate:"min=0"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
	// RateLimit is the per-IP request budget per minute. Zero disables it.
	RateLimit    int           `koanf:"rate_limit" validate:"min=0"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Spotify: SpotifyConfig{
			Market:     "US",
			TokenCache: ".moodtunes-token.json",
			Timeout:    10 * time.Second,
		},
		Embed: EmbedConfig{
			OllamaURL: "http://localhost:11434",
			Model:     "nomic-embed-text",
			Timeout:   30 * time.Second,
			CacheSize: 4096,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MinRequests:  10,
			FailureRatio: 0.6,
			Timeout:      30 * time.Second,
		},
		Database: DatabaseConfig{
			FeatureTTL: 30 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			RateLimit:    60,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Vibes: 3,
	}
}

// envMappings maps environment variables to config keys. Unlisted
// variables are ignored.
var envMappings = map[string]string{
	"spotify_id":             "spotify.client_id",
	"spotify_secret":         "spotify.client_secret",
	"spotify_market":         "spotify.market",
	"spotify_token_cache":    "spotify.token_cache",
	"embed_provider":         "embed.provider",
	"ollama_url":             "embed.ollama_url",
	"embed_model":            "embed.model",
	"word_vectors":           "embed.vectors_path",
	"database_url":           "database.url",
	"log_level":              "log.level",
	"log_format":             "log.format",
	"moodtunes_addr":         "server.addr",
	"moodtunes_rate_limit":   "server.rate_limit",
	"moodtunes_tables":       "tables",
	"moodtunes_artist_seeds": "retrieval.artist_seeds",
	"moodtunes_vibes":        "vibes",
}

func envKey(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration. path names a YAML file; when empty,
// MOODTUNES_CONFIG is consulted and then DefaultPath if it exists.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path = findFile(path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findFile(path string) string {
	if path != "" {
		return path
	}
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireCatalog returns ErrMissingCredentials unless Spotify client
// credentials are configured.
func (c *Config) RequireCatalog() error {
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}
