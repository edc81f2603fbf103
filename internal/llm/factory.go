package llm

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"finchat/internal/config"
)

// Purpose labels the intended use of a generation call. In the current
// policy it only affects logging; every purpose maps to the same
// backend choice.
type Purpose string

const (
	PurposeChat     Purpose = "chat"
	PurposeBudget   Purpose = "budget_summary"
	PurposeInsights Purpose = "spending_insights"
	PurposeGeneral  Purpose = "general"
)

// Factory hands out at most one client instance per backend kind for
// the process lifetime. Construction is lazy; a singleflight guard per
// slot keeps concurrent first use from caching divergent instances.
type Factory struct {
	cfg config.Config
	log *slog.Logger

	group  singleflight.Group
	mu     sync.Mutex
	groq   Client
	ollama Client
	stub   Client
}

func NewFactory(cfg config.Config, log *slog.Logger) *Factory {
	return &Factory{cfg: cfg, log: log}
}

// Client returns the backend for a purpose. Local mode always yields
// the offline stub. In prod mode a cached Groq client is reused; when
// the slot is empty, construction is attempted once per call wave and a
// failure degrades to the stub, leaving the slot empty so a later call
// retries. Without a configured key the stub is returned directly.
func (f *Factory) Client(purpose Purpose) Client {
	if f.cfg.Local() {
		return f.stubClient(purpose)
	}

	f.mu.Lock()
	cached := f.groq
	f.mu.Unlock()
	if cached != nil {
		return cached
	}

	if f.cfg.GroqAPIKey == "" {
		f.log.Warn("no groq api key configured, using offline stub", "purpose", string(purpose))
		return f.stubClient(purpose)
	}

	v, err, _ := f.group.Do("groq", func() (any, error) {
		c, err := NewGroqClient(f.cfg.GroqAPIKey, f.cfg.GroqBaseURL, f.cfg.GroqModel, f.cfg.GroqDisplayName)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		f.groq = c
		f.mu.Unlock()
		return c, nil
	})
	if err != nil {
		f.log.Error("groq client construction failed, falling back to offline stub",
			"purpose", string(purpose), "err", err)
		return f.stubClient(purpose)
	}
	f.log.Info("using groq client", "purpose", string(purpose), "model", f.cfg.GroqModel)
	return v.(Client)
}

// Local returns the local-daemon client, constructing it on first use.
// The selection policy never routes here on its own.
func (f *Factory) Local() Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ollama == nil {
		f.ollama = NewOllamaClient(f.cfg.OllamaBaseURL, f.cfg.OllamaModel)
	}
	return f.ollama
}

func (f *Factory) stubClient(purpose Purpose) Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stub == nil {
		f.log.Info("using offline stub client", "purpose", string(purpose))
		f.stub = NewStubClient()
	}
	return f.stub
}

// Reset clears all cached instances so the next call re-evaluates the
// selection policy. Intended for test isolation.
func (f *Factory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groq, f.ollama, f.stub = nil, nil, nil
}
