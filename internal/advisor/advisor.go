// Package advisor answers free-form financial questions, optionally
// tailored to a persona. Unlike the numeric services there is nothing
// to compute without the model, so extraction failures surface the raw
// model text instead of a fallback result.
package advisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"finchat/internal/cache"
	"finchat/internal/extract"
	"finchat/internal/llm"
	"finchat/internal/prompts"
)

const (
	defaultMaxTokens  = 512
	defaultConfidence = 0.8
)

type Service struct {
	llm   llm.Client
	cache cache.Cache
	log   *slog.Logger
	ttl   time.Duration
}

func NewService(client llm.Client, c cache.Cache, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{llm: client, cache: c, log: log, ttl: ttl}
}

// Request is one advice question.
type Request struct {
	Question  string
	Persona   string // empty for generic advice
	Stream    bool
	MaxTokens int
}

// Advice is the answer surfaced to the caller.
type Advice struct {
	Answer string
	Model  string
	Meta   map[string]any
}

// payload mirrors the JSON document the model is asked to emit.
type payload struct {
	Answer         *string  `json:"answer"`
	Confidence     *float64 `json:"confidence"`
	PersonaContext string   `json:"persona_context"`
}

// Advise generates persona-aware advice. A streamed generation is fully
// drained before any processing; no partial result ever surfaces. A
// backend failure is returned as an error; a malformed document is not
// an error, the raw text becomes the answer.
func (s *Service) Advise(ctx context.Context, req Request) (Advice, error) {
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	persona := req.Persona
	if persona == "" {
		persona = "general"
	}

	key := cache.AnswerKey(persona, req.Question)
	if cached, err := s.cache.GetAnswer(ctx, key); err == nil && cached != nil {
		s.log.Info("answer cache hit", "persona", persona)
		meta := map[string]any{
			"persona":    persona,
			"confidence": cached.Confidence,
			"cached":     true,
		}
		if cached.PersonaContext != "" {
			meta["persona_context"] = cached.PersonaContext
		}
		return Advice{Answer: cached.Answer, Model: cached.Model, Meta: meta}, nil
	}

	var prompt string
	if req.Persona != "" {
		prompt = prompts.Persona(req.Question, req.Persona)
	} else {
		prompt = prompts.General(req.Question)
	}

	raw, err := s.generate(ctx, prompt, req.MaxTokens, req.Stream)
	if err != nil {
		return Advice{}, err
	}

	advice := Advice{
		Model: s.llm.ModelName(),
		Meta:  map[string]any{"persona": persona},
	}

	doc, err := extract.Object(raw)
	if err != nil {
		advice.Answer = raw
		return advice, nil
	}
	var p payload
	if err := json.Unmarshal(doc, &p); err != nil {
		advice.Answer = raw
		return advice, nil
	}

	if p.Answer != nil {
		advice.Answer = *p.Answer
	} else {
		advice.Answer = raw
	}
	confidence := defaultConfidence
	if p.Confidence != nil {
		confidence = *p.Confidence
	}
	advice.Meta["confidence"] = confidence
	if p.PersonaContext != "" {
		advice.Meta["persona_context"] = p.PersonaContext
	}

	entry := &cache.Answer{
		Answer:         advice.Answer,
		Model:          advice.Model,
		Confidence:     confidence,
		PersonaContext: p.PersonaContext,
	}
	if err := s.cache.SetAnswer(ctx, key, entry, s.ttl); err != nil {
		s.log.Warn("failed to cache answer", "err", err)
	}
	return advice, nil
}

func (s *Service) generate(ctx context.Context, prompt string, maxTokens int, stream bool) (string, error) {
	if !stream {
		return s.llm.Generate(ctx, prompt, maxTokens)
	}
	ch, err := s.llm.GenerateStream(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	return llm.Collect(ch)
}
