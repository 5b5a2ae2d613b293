// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/abhisek/gapfill/internal/llm"
)

// ErrMissingCredential is returned by Load when the selected model backend
// has no credential. It is fatal at startup.
var ErrMissingCredential = errors.New("missing backend credential")

// Config holds the server and pipeline settings.
type Config struct {
	Addr           string        `envconfig:"GAPFILL_ADDR" default:":5000"`
	RequestTimeout time.Duration `envconfig:"GAPFILL_REQUEST_TIMEOUT" default:"180s"`
	MaxBodyBytes   int64         `envconfig:"GAPFILL_MAX_BODY_BYTES" default:"16777216"`
	CORSOrigins    []string      `envconfig:"GAPFILL_CORS_ORIGINS" default:"*"`
	MetricsEnabled bool          `envconfig:"GAPFILL_METRICS_ENABLED" default:"true"`

	// ArtifactDir holds rendered pages. Empty uses the system temp dir.
	ArtifactDir string        `envconfig:"GAPFILL_ARTIFACT_DIR"`
	ArtifactTTL time.Duration `envconfig:"GAPFILL_ARTIFACT_TTL" default:"24h"`

	// RedisURL enables the shared analysis cache. Empty uses an in-process
	// cache.
	RedisURL string        `envconfig:"GAPFILL_REDIS_URL"`
	CacheTTL time.Duration `envconfig:"GAPFILL_CACHE_TTL" default:"1h"`

	LogLevel    string `envconfig:"GAPFILL_LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"GAPFILL_LOG_ENCODING" default:"json"`
	LogOutput   string `envconfig:"GAPFILL_LOG_OUTPUT"`

	LLM llm.Config `ignored:"true"`
}

// Load reads .env (if present) and the environment. The model backend
// credential is checked here so a misconfigured process never starts.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	llmCfg, err := LoadLLM()
	if err != nil {
		return nil, err
	}
	cfg.LLM = llmCfg

	return &cfg, nil
}

// LoadLLM resolves the model backend settings. An explicit
// GAPFILL_LLM_PROVIDER wins; otherwise the standard vendor key variables are
// probed. Errors wrap ErrMissingCredential when a key is absent.
func LoadLLM() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	if os.Getenv("GAPFILL_LLM_PROVIDER") == "" && cfg.Gemini.APIKey == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Retry = cfg.Retry
			discovered.Timeout = cfg.Timeout
			cfg = discovered
		}
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return llm.Config{}, fmt.Errorf("%w for %s provider: %w", ErrMissingCredential, cfg.Provider, err)
		}
		return llm.Config{}, fmt.Errorf("llm config: %w", err)
	}
	return cfg, nil
}
