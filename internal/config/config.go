package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration read from environment variables.
type Config struct {
	// Environment mode: "local" always uses the offline stub client,
	// "prod" routes to Groq when a key is configured.
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Groq (cloud backend, OpenAI-compatible API)
	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	// User-facing label only; intentionally independent of GroqModel.
	GroqDisplayName string `env:"GROQ_DISPLAY_NAME" envDefault:"IBM Granite 3.1 8B"`

	// Ollama (local daemon backend)
	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel   string `env:"OLLAMA_MODEL" envDefault:"granite-code"`

	// Answer cache: "noop" disables caching, "redis" caches persona Q&A
	// answers with CacheTTL seconds to live.
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"noop"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Local reports whether the service runs in development mode.
func (c Config) Local() bool {
	return c.AppEnv == "local"
}
