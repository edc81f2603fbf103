// Package cache provides optional caching for persona Q&A answers.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores generated answers keyed by persona and question.
type Cache interface {
	// GetAnswer retrieves a cached answer by key. Returns nil, nil on a
	// cache miss.
	GetAnswer(ctx context.Context, key string) (*Answer, error)

	// SetAnswer stores an answer with a TTL.
	SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error

	// Close releases the cache connection.
	Close() error
}

// Answer is one cached Q&A result.
type Answer struct {
	Answer         string  `json:"answer"`
	Model          string  `json:"model"`
	Confidence     float64 `json:"confidence"`
	PersonaContext string  `json:"persona_context,omitempty"`
}

// AnswerKey derives a stable cache key from persona and question.
func AnswerKey(persona, question string) string {
	h := sha256.Sum256([]byte(persona + "\x00" + question))
	return hex.EncodeToString(h[:])
}
