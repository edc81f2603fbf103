package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Stream {
			t.Error("expected non-streaming request")
		}
		if req.Model != "granite-code" {
			t.Errorf("unexpected model %q", req.Model)
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: "pay off debt first", Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "granite-code")
	got, err := c.Generate(context.Background(), "what should I do?", 256)
	if err != nil {
		t.Fatal(err)
	}
	if got != "pay off debt first" {
		t.Errorf("unexpected response %q", got)
	}
}

func TestOllamaGenerateStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)
		enc.Encode(ollamaResponse{Response: "save "})
		enc.Encode(ollamaResponse{Response: "more"})
		enc.Encode(ollamaResponse{Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "granite-code")
	ch, err := c.GenerateStream(context.Background(), "tips?", 256)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Collect(ch)
	if err != nil {
		t.Fatal(err)
	}
	if got != "save more" {
		t.Errorf("expected %q, got %q", "save more", got)
	}
}

func TestOllamaServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "granite-code")
	_, err := c.Generate(context.Background(), "hello", 64)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestOllamaUnreachable(t *testing.T) {
	c := NewOllamaClient("http://127.0.0.1:1", "granite-code")
	_, err := c.Generate(context.Background(), "hello", 64)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}
