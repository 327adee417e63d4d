package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables before they are mapped
// onto config paths: EMOFY_AUTH_JWT_SECRET -> auth.jwt_secret.
const envPrefix = "EMOFY_"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Auth    AuthConfig    `koanf:"auth"`
	Model   ModelConfig   `koanf:"model"`
	Storage StorageConfig `koanf:"storage"`
	Catalog CatalogConfig `koanf:"catalog"`
	Session SessionConfig `koanf:"session"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type AuthConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"`
	TokenTTL        time.Duration `koanf:"token_ttl"`
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

// ModelConfig selects the conversational model backend.
// Backend is one of "gemini" (API key), "vertex" (GCP project) or "mock".
type ModelConfig struct {
	Backend     string `koanf:"backend"`
	Name        string `koanf:"name"`
	APIKey      string `koanf:"api_key"`
	GCPProject  string `koanf:"gcp_project"`
	GCPLocation string `koanf:"gcp_location"`
}

// StorageConfig selects the user store backend: "memory" or "firestore".
type StorageConfig struct {
	Backend    string `koanf:"backend"`
	GCPProject string `koanf:"gcp_project"`
}

type CatalogConfig struct {
	OMDBAPIKey   string        `koanf:"omdb_api_key"`
	OMDBBaseURL  string        `koanf:"omdb_base_url"`
	BooksBaseURL string        `koanf:"books_base_url"`
	Timeout      time.Duration `koanf:"timeout"`
}

type SessionConfig struct {
	// HistoryWindow caps the retained conversation turns per session.
	// 0 disables eviction.
	HistoryWindow int `koanf:"history_window"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Auth: AuthConfig{
			TokenTTL:        time.Hour,
			LoginRateLimit:  5,
			LoginRateWindow: 5 * time.Minute,
		},
		Model: ModelConfig{
			Backend:     "mock",
			Name:        "gemini-1.5-pro",
			GCPLocation: "us-central1",
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
		Catalog: CatalogConfig{
			OMDBBaseURL:  "https://www.omdbapi.com/",
			BooksBaseURL: "https://www.googleapis.com/books/v1",
			Timeout:      10 * time.Second,
		},
		Session: SessionConfig{
			HistoryWindow: 40,
		},
	}
}

// Load layers struct defaults, then EMOFY_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransform maps EMOFY_SECTION_SOME_KEY to section.some_key. The first
// underscore separates the section; the rest of the name stays joined.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (EMOFY_AUTH_JWT_SECRET)")
	}
	switch c.Model.Backend {
	case "mock":
	case "gemini":
		if c.Model.APIKey == "" {
			return fmt.Errorf("model.api_key is required for the gemini backend")
		}
	case "vertex":
		if c.Model.GCPProject == "" {
			return fmt.Errorf("model.gcp_project is required for the vertex backend")
		}
	default:
		return fmt.Errorf("unknown model backend %q", c.Model.Backend)
	}
	switch c.Storage.Backend {
	case "memory":
	case "firestore":
		if c.Storage.GCPProject == "" {
			return fmt.Errorf("storage.gcp_project is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
