package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ollamaTimeout bounds the whole exchange, streamed or not.
const ollamaTimeout = 60 * time.Second

// OllamaClient talks to a local Ollama daemon over its generate API.
// The default selection policy never routes to it; deployments that run
// a local model reach it through Factory.Local.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ Client = (*OllamaClient)(nil)

func NewOllamaClient(baseURL, model string) *OllamaClient {
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: ollamaTimeout},
	}
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *OllamaClient) post(ctx context.Context, prompt string, maxTokens int, stream bool) (*http.Response, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: stream,
		Options: map[string]any{
			"num_predict": maxTokens,
			"temperature": temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: ollama returned %s", ErrBackendUnavailable, resp.Status)
	}
	return resp, nil
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.post(ctx, prompt, maxTokens, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return out.Response, nil
}

// GenerateStream reads the daemon's newline-delimited JSON stream and
// forwards each fragment. Closing the response body on ctx cancellation
// releases the connection.
func (c *OllamaClient) GenerateStream(ctx context.Context, prompt string, maxTokens int) (<-chan Chunk, error) {
	resp, err := c.post(ctx, prompt, maxTokens, true)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var part ollamaResponse
			if err := json.Unmarshal(line, &part); err != nil {
				select {
				case out <- Chunk{Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}:
				case <-ctx.Done():
				}
				return
			}
			if part.Response != "" {
				select {
				case out <- Chunk{Text: part.Response}:
				case <-ctx.Done():
					return
				}
			}
			if part.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case out <- Chunk{Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}

func (c *OllamaClient) ModelName() string { return c.model }
