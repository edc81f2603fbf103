package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.AppEnv != "local" {
		t.Errorf("expected AppEnv local, got %q", cfg.AppEnv)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected Port 8080, got %d", cfg.Port)
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected GroqModel %q", cfg.GroqModel)
	}
	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected GroqBaseURL %q", cfg.GroqBaseURL)
	}
	if cfg.GroqDisplayName != "IBM Granite 3.1 8B" {
		t.Errorf("unexpected GroqDisplayName %q", cfg.GroqDisplayName)
	}
	if cfg.CacheProvider != "noop" {
		t.Errorf("expected CacheProvider noop, got %q", cfg.CacheProvider)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("expected CacheTTL 300, got %d", cfg.CacheTTL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("CACHE_PROVIDER", "redis")

	cfg := Load()

	if cfg.AppEnv != "prod" {
		t.Errorf("expected AppEnv prod, got %q", cfg.AppEnv)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected Port 9090, got %d", cfg.Port)
	}
	if cfg.GroqAPIKey != "gsk_test" {
		t.Errorf("unexpected GroqAPIKey %q", cfg.GroqAPIKey)
	}
	if cfg.CacheProvider != "redis" {
		t.Errorf("expected CacheProvider redis, got %q", cfg.CacheProvider)
	}
}

func TestLocal(t *testing.T) {
	if !(Config{AppEnv: "local"}).Local() {
		t.Error("expected local mode")
	}
	if (Config{AppEnv: "prod"}).Local() {
		t.Error("expected non-local mode")
	}
}
