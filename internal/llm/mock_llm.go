package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

func (m *MockClient) GenerateStream(ctx context.Context, prompt string, maxTokens int) (<-chan Chunk, error) {
	args := m.Called(ctx, prompt, maxTokens)
	if ch := args.Get(0); ch != nil {
		return ch.(<-chan Chunk), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClient) ModelName() string {
	args := m.Called()
	return args.String(0)
}

// StreamOf builds a closed stream carrying the given fragments, for
// wiring into MockClient expectations.
func StreamOf(fragments ...string) <-chan Chunk {
	out := make(chan Chunk, len(fragments))
	for _, f := range fragments {
		out <- Chunk{Text: f}
	}
	close(out)
	return out
}
