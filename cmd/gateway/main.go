package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"finchat/internal/advisor"
	"finchat/internal/app"
	"finchat/internal/budget"
	"finchat/internal/httputil"
	"finchat/internal/insights"
	"finchat/internal/llm"
	"finchat/internal/models"
	"finchat/internal/nlu"
)

const serviceVersion = "1.0.0"

type budgetRequest struct {
	Income   *map[string]float64 `json:"income" validate:"required"`
	Expenses *map[string]float64 `json:"expenses" validate:"required"`
}

type insightsRequest struct {
	Transactions *[]transactionInput `json:"transactions" validate:"required,dive"`
}

type transactionInput struct {
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date" validate:"required"`
	Merchant    string  `json:"merchant"`
	Description string  `json:"description"`
}

type nluRequest struct {
	Text    string `json:"text" validate:"required"`
	Persona string `json:"persona"`
}

type generateRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	Persona   string `json:"persona"`
	Stream    bool   `json:"stream"`
	MaxTokens int    `json:"max_tokens" validate:"omitempty,min=1,max=4096"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/budget-summary", budgetHandler(deps))
	r.Post("/api/spending-insights", insightsHandler(deps))
	r.Post("/api/nlu", nluHandler(deps))
	r.Post("/api/generate", generateHandler(deps))
	r.Get("/", rootHandler(deps))
	r.Get("/healthz", healthHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("gateway listening", "addr", addr, "env", deps.Config.AppEnv)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func budgetHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		client := deps.Models.Client(llm.PurposeBudget)
		svc := budget.NewService(client, deps.Log)
		summary := svc.GenerateSummary(r.Context(), *req.Income, *req.Expenses)
		httputil.WriteJSON(w, http.StatusOK, summary)
	}
}

func insightsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req insightsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		transactions := make([]models.Transaction, 0, len(*req.Transactions))
		for _, t := range *req.Transactions {
			transactions = append(transactions, models.Transaction{
				Category:    t.Category,
				Amount:      t.Amount,
				Date:        t.Date,
				Merchant:    t.Merchant,
				Description: t.Description,
			})
		}

		client := deps.Models.Client(llm.PurposeInsights)
		svc := insights.NewService(client, deps.Log)
		result := svc.GenerateInsights(r.Context(), transactions)
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

func nluHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nluRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if req.Persona == "" {
			req.Persona = "general"
		}

		client := deps.Models.Client(llm.PurposeGeneral)
		svc := nlu.NewService(client, deps.Log)
		result := svc.AnalyzeText(r.Context(), req.Text, req.Persona)
		httputil.WriteJSON(w, http.StatusOK, result)
	}
}

func generateHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		client := deps.Models.Client(llm.PurposeChat)
		ttl := time.Duration(deps.Config.CacheTTL) * time.Second
		svc := advisor.NewService(client, deps.Cache, deps.Log, ttl)

		advice, err := svc.Advise(r.Context(), advisor.Request{
			Question:  req.Prompt,
			Persona:   req.Persona,
			Stream:    req.Stream,
			MaxTokens: req.MaxTokens,
		})
		if err != nil {
			httputil.Fail(deps.Log, w, "error generating response", err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"answer": advice.Answer,
			"model":  advice.Model,
			"meta":   advice.Meta,
		})
	}
}

func rootHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message":     "Personal Finance Chatbot API",
			"version":     serviceVersion,
			"environment": deps.Config.AppEnv,
		})
	}
}

func healthHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := deps.Models.Client(llm.PurposeGeneral)
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":      "healthy",
			"environment": deps.Config.AppEnv,
			"model":       client.ModelName(),
		})
	}
}
