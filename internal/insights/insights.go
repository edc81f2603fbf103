// Package insights analyzes spending patterns across transactions,
// model-backed with a deterministic aggregation fallback.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"finchat/internal/extract"
	"finchat/internal/llm"
	"finchat/internal/models"
	"finchat/internal/prompts"
)

const maxTokens = 1000

// fallback thresholds
const (
	topCategoryLimit    = 5
	concentrationPct    = 40
	smallAmount         = 20
	smallShare          = 0.3
	minTxnsForSmallScan = 10
)

type Service struct {
	llm llm.Client
	log *slog.Logger
}

func NewService(client llm.Client, log *slog.Logger) *Service {
	return &Service{llm: client, log: log}
}

type payload struct {
	TopCategories   []models.CategoryInsight `json:"top_categories"`
	RedFlags        []string                 `json:"red_flags"`
	Recommendations []string                 `json:"recommendations"`
}

// GenerateInsights asks the model for spending insights; any failure on
// the model path yields the deterministic fallback instead of an error.
func (s *Service) GenerateInsights(ctx context.Context, transactions []models.Transaction) models.SpendingInsights {
	out, err := s.fromModel(ctx, transactions)
	if err != nil {
		s.log.Error("spending insights generation failed, using fallback", "err", err)
		return Fallback(transactions)
	}
	return out
}

func (s *Service) fromModel(ctx context.Context, transactions []models.Transaction) (models.SpendingInsights, error) {
	raw, err := s.llm.Generate(ctx, prompts.SpendingInsights(transactions), maxTokens)
	if err != nil {
		return models.SpendingInsights{}, err
	}
	doc, err := extract.Object(raw)
	if err != nil {
		return models.SpendingInsights{}, err
	}
	var p payload
	if err := json.Unmarshal(doc, &p); err != nil {
		return models.SpendingInsights{}, fmt.Errorf("%w: %v", extract.ErrMalformedOutput, err)
	}

	out := models.SpendingInsights{
		TopCategories:   p.TopCategories,
		RedFlags:        p.RedFlags,
		Recommendations: p.Recommendations,
	}
	if out.TopCategories == nil {
		out.TopCategories = []models.CategoryInsight{}
	}
	if out.RedFlags == nil {
		out.RedFlags = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out, nil
}

// Fallback aggregates absolute amounts per category and derives the
// top categories, red flags, and recommendations without the model.
func Fallback(transactions []models.Transaction) models.SpendingInsights {
	totals := map[string]float64{}
	for _, txn := range transactions {
		category := txn.Category
		if category == "" {
			category = "Other"
		}
		totals[category] += math.Abs(txn.Amount)
	}

	var total float64
	for _, amount := range totals {
		total += amount
	}

	type categoryTotal struct {
		name   string
		amount float64
	}
	ranked := make([]categoryTotal, 0, len(totals))
	for name, amount := range totals {
		ranked = append(ranked, categoryTotal{name, amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].amount != ranked[j].amount {
			return ranked[i].amount > ranked[j].amount
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}

	top := make([]models.CategoryInsight, 0, len(ranked))
	for _, c := range ranked {
		var pct float64
		if total > 0 {
			pct = c.amount / total * 100
		}
		top = append(top, models.CategoryInsight{Category: c.name, Amount: c.amount, Percentage: pct})
	}

	flags := []string{}
	for _, c := range top {
		if c.Percentage > concentrationPct {
			flags = append(flags, fmt.Sprintf("%s represents %.1f%% of spending - consider if this is sustainable", c.Category, c.Percentage))
		}
	}
	if len(transactions) > minTxnsForSmallScan {
		small := 0
		for _, txn := range transactions {
			if math.Abs(txn.Amount) < smallAmount {
				small++
			}
		}
		if float64(small) > float64(len(transactions))*smallShare {
			flags = append(flags, fmt.Sprintf("Many small transactions detected (%d) - these can add up quickly", small))
		}
	}
	if len(flags) == 0 {
		flags = append(flags, "No major red flags detected - keep monitoring your spending")
	}

	recommendations := []string{
		"Track all expenses for at least one month to identify patterns",
		"Set category budgets based on your spending analysis",
		"Review subscriptions and recurring charges monthly",
	}
	if len(top) > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Focus on optimizing %s spending as it's your largest category", top[0].Category))
	}

	return models.SpendingInsights{
		TopCategories:   top,
		RedFlags:        flags,
		Recommendations: recommendations,
	}
}
