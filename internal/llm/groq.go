package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = "You are a helpful personal finance assistant. Always provide accurate, actionable financial advice."

// GroqClient calls Groq's OpenAI-compatible Chat Completions API.
type GroqClient struct {
	client      *openai.Client
	model       string
	displayName string
}

var _ Client = (*GroqClient)(nil)

// NewGroqClient builds the cloud client. A missing API key is a
// construction-time failure so the factory can degrade to the offline
// stub instead of failing requests later.
func NewGroqClient(apiKey, baseURL, model, displayName string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq api key required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(opts...)
	if displayName == "" {
		displayName = model
	}
	return &GroqClient{client: &cli, model: model, displayName: displayName}, nil
}

func (c *GroqClient) params(prompt string, maxTokens int) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    buildMessages(systemPrompt, prompt),
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
	}
}

func (c *GroqClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.params(prompt, maxTokens))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: no choices returned", ErrBackendUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *GroqClient) GenerateStream(ctx context.Context, prompt string, maxTokens int) (<-chan Chunk, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.params(prompt, maxTokens))
	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer stream.Close()
		for stream.Next() {
			ev := stream.Current()
			if len(ev.Choices) == 0 || ev.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case out <- Chunk{Text: ev.Choices[0].Delta.Content}:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil {
			select {
			case out <- Chunk{Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}

func (c *GroqClient) ModelName() string { return c.displayName }

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
