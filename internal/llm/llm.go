// Package llm provides the text-completion capability behind every
// chatbot operation: a cloud client (Groq), a local daemon client
// (Ollama), and a deterministic offline stub, all behind one interface.
package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrBackendUnavailable wraps any transport, authentication, or backend
// failure from a live client. Calls are never retried; callers fall
// back to a locally computed result instead.
var ErrBackendUnavailable = errors.New("llm backend unavailable")

// generation temperature shared by all live backends
const temperature = 0.7

// Chunk is one fragment of a streamed generation. A chunk with a
// non-nil Err is terminal; the channel is closed after it.
type Chunk struct {
	Text string
	Err  error
}

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	// Generate returns the complete response for a prompt.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// GenerateStream returns a single-pass, forward-only channel of
	// incremental fragments, closed when generation completes. Cancel
	// ctx to abandon the stream and release the underlying connection.
	GenerateStream(ctx context.Context, prompt string, maxTokens int) (<-chan Chunk, error)

	// ModelName is a display label for the active model. The label is
	// cosmetic and need not match the backend model identifier.
	ModelName() string
}

// Collect drains a stream and concatenates the fragments in arrival
// order. The service layer always consumes streams through Collect;
// partial-result consumption is not supported.
func Collect(ch <-chan Chunk) (string, error) {
	var b strings.Builder
	for c := range ch {
		if c.Err != nil {
			return "", c.Err
		}
		b.WriteString(c.Text)
	}
	return b.String(), nil
}
