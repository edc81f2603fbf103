package app

import (
	"log/slog"

	"github.com/joho/godotenv"

	"finchat/internal/cache"
	"finchat/internal/config"
	"finchat/internal/llm"
	"finchat/internal/logger"
)

// Deps bundles common runtime dependencies for the HTTP handlers.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Models *llm.Factory
	Cache  cache.Cache
}

// Build loads env, config, and shared components. A missing .env file
// is fine; environment variables are authoritative either way.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	return Deps{
		Config: cfg,
		Log:    log,
		Models: llm.NewFactory(cfg, log),
		Cache:  buildCache(cfg, log),
	}, nil
}

func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("redis unavailable, answer caching disabled", "err", err)
			return cache.NewNoOpCache()
		}
		log.Info("using redis answer cache", "addr", cfg.RedisAddr)
		return c
	default:
		return cache.NewNoOpCache()
	}
}
