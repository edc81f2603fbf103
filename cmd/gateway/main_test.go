package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finchat/internal/app"
	"finchat/internal/cache"
	"finchat/internal/config"
	"finchat/internal/llm"
	"finchat/internal/models"
)

// testDeps wires a local-mode factory so every handler runs against the
// offline stub backend.
func testDeps() app.Deps {
	cfg := config.Config{AppEnv: "local", CacheTTL: 300}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.Deps{
		Config: cfg,
		Log:    log,
		Models: llm.NewFactory(cfg, log),
		Cache:  cache.NewNoOpCache(),
	}
}

func post(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestBudgetHandler(t *testing.T) {
	rec := post(t, budgetHandler(testDeps()),
		`{"income": {"Salary": 5000}, "expenses": {"Rent": 1500, "Food": 500}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.BudgetSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got.CategoryPercentages == nil || got.SuggestionList == nil {
		t.Error("expected all summary fields populated")
	}
}

func TestBudgetHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"income":`},
		{"missing income", `{"expenses": {"Rent": 1500}}`},
		{"missing expenses", `{"income": {"Salary": 5000}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, budgetHandler(testDeps()), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestBudgetHandlerAcceptsEmptyMaps(t *testing.T) {
	rec := post(t, budgetHandler(testDeps()), `{"income": {}, "expenses": {}}`)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for present-but-empty maps, got %d", rec.Code)
	}
}

func TestInsightsHandler(t *testing.T) {
	rec := post(t, insightsHandler(testDeps()),
		`{"transactions": [{"category": "Food", "amount": 45.50, "date": "2024-01-15"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.SpendingInsights
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got.TopCategories == nil || got.RedFlags == nil || got.Recommendations == nil {
		t.Error("expected all insight fields populated")
	}
}

func TestInsightsHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing transactions", `{}`},
		{"transaction without category", `{"transactions": [{"amount": 10, "date": "2024-01-15"}]}`},
		{"transaction without date", `{"transactions": [{"category": "Food", "amount": 10}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, insightsHandler(testDeps()), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestInsightsHandlerAcceptsEmptyList(t *testing.T) {
	rec := post(t, insightsHandler(testDeps()), `{"transactions": []}`)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for present-but-empty list, got %d", rec.Code)
	}
}

func TestNLUHandler(t *testing.T) {
	rec := post(t, nluHandler(testDeps()),
		`{"text": "I spent $500 on groceries last week"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.NLUResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	switch got.Sentiment {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		t.Errorf("unexpected sentiment %q", got.Sentiment)
	}
}

func TestNLUHandlerMissingText(t *testing.T) {
	rec := post(t, nluHandler(testDeps()), `{"persona": "student"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGenerateHandler(t *testing.T) {
	rec := post(t, generateHandler(testDeps()),
		`{"prompt": "How should I plan for retirement?", "persona": "salaried"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Answer string         `json:"answer"`
		Model  string         `json:"model"`
		Meta   map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got.Answer == "" || got.Model == "" {
		t.Errorf("expected answer and model populated, got %+v", got)
	}
	if got.Meta["persona"] != "salaried" {
		t.Errorf("expected persona in meta, got %v", got.Meta)
	}
}

func TestGenerateHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing prompt", `{"persona": "student"}`},
		{"max_tokens too large", `{"prompt": "hi", "max_tokens": 5000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, generateHandler(testDeps()), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestGenerateHandlerStreaming(t *testing.T) {
	rec := post(t, generateHandler(testDeps()),
		`{"prompt": "Tips for a student budget", "persona": "student", "stream": true}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got.Answer == "" {
		t.Error("expected streamed answer reassembled")
	}
}

func TestRootHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	rootHandler(testDeps())(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got["message"] != "Personal Finance Chatbot API" {
		t.Errorf("unexpected message %v", got["message"])
	}
	if got["version"] != serviceVersion {
		t.Errorf("unexpected version %v", got["version"])
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler(testDeps())(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got["status"] != "healthy" {
		t.Errorf("unexpected status %v", got["status"])
	}
	if got["model"] == "" {
		t.Error("expected model name in health response")
	}
}
