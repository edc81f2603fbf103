// Package budget produces budget summaries: model-backed when the LLM
// path succeeds, deterministically computed otherwise. Either way the
// caller receives a complete BudgetSummary, never an error.
package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finchat/internal/extract"
	"finchat/internal/llm"
	"finchat/internal/models"
	"finchat/internal/prompts"
)

const maxTokens = 800

type Service struct {
	llm llm.Client
	log *slog.Logger
}

func NewService(client llm.Client, log *slog.Logger) *Service {
	return &Service{llm: client, log: log}
}

// payload mirrors the JSON document the model is asked to emit. Pointer
// and nil-able fields distinguish omitted values from zero values.
type payload struct {
	TotalIncome         *float64           `json:"total_income"`
	TotalExpenses       *float64           `json:"total_expenses"`
	SavingsRate         *float64           `json:"savings_rate"`
	CategoryPercentages map[string]float64 `json:"category_percentages"`
	SuggestionList      []string           `json:"suggestion_list"`
}

// GenerateSummary asks the model for a budget summary, repairing any
// missing fields from locally computed totals. Any failure on the model
// path yields the deterministic fallback instead of an error.
func (s *Service) GenerateSummary(ctx context.Context, income, expenses map[string]float64) models.BudgetSummary {
	summary, err := s.fromModel(ctx, income, expenses)
	if err != nil {
		s.log.Error("budget summary generation failed, using fallback", "err", err)
		return Fallback(income, expenses)
	}
	return summary
}

func (s *Service) fromModel(ctx context.Context, income, expenses map[string]float64) (models.BudgetSummary, error) {
	totalIncome := sum(income)
	totalExpenses := sum(expenses)

	raw, err := s.llm.Generate(ctx, prompts.BudgetSummary(income, expenses), maxTokens)
	if err != nil {
		return models.BudgetSummary{}, err
	}
	doc, err := extract.Object(raw)
	if err != nil {
		return models.BudgetSummary{}, err
	}
	var p payload
	if err := json.Unmarshal(doc, &p); err != nil {
		return models.BudgetSummary{}, fmt.Errorf("%w: %v", extract.ErrMalformedOutput, err)
	}

	// Repair omitted fields with locally computed values.
	out := models.BudgetSummary{
		TotalIncome:         totalIncome,
		TotalExpenses:       totalExpenses,
		SavingsRate:         savingsRate(totalIncome, totalExpenses),
		CategoryPercentages: map[string]float64{},
		SuggestionList:      []string{},
	}
	if p.TotalIncome != nil {
		out.TotalIncome = *p.TotalIncome
	}
	if p.TotalExpenses != nil {
		out.TotalExpenses = *p.TotalExpenses
	}
	if p.SavingsRate != nil {
		out.SavingsRate = *p.SavingsRate
	}
	if p.CategoryPercentages != nil {
		out.CategoryPercentages = p.CategoryPercentages
	}
	if p.SuggestionList != nil {
		out.SuggestionList = p.SuggestionList
	}
	return out, nil
}

// Fallback computes the full summary without the model. Totals are
// exact sums, the savings rate follows the same formula the model is
// instructed to use, and the suggestions are tiered on that rate.
func Fallback(income, expenses map[string]float64) models.BudgetSummary {
	totalIncome := sum(income)
	totalExpenses := sum(expenses)
	rate := savingsRate(totalIncome, totalExpenses)

	percentages := map[string]float64{}
	if totalExpenses > 0 {
		for category, amount := range expenses {
			percentages[category] = amount / totalExpenses * 100
		}
	}

	suggestions := []string{}
	switch {
	case rate >= 20:
		suggestions = append(suggestions, fmt.Sprintf("Excellent! Your savings rate of %.1f%% is above the recommended 20%%.", rate))
	case rate >= 10:
		suggestions = append(suggestions, fmt.Sprintf("Good job! Your savings rate of %.1f%% is healthy. Try to reach 20%% if possible.", rate))
	default:
		suggestions = append(suggestions, fmt.Sprintf("Your savings rate of %.1f%% could be improved. Aim for at least 10-20%%.", rate))
	}
	if len(expenses) > 0 {
		category, amount := largestExpense(expenses)
		suggestions = append(suggestions, fmt.Sprintf("%s is your largest expense at $%.2f. Review if this can be optimized.", category, amount))
	}

	return models.BudgetSummary{
		TotalIncome:         totalIncome,
		TotalExpenses:       totalExpenses,
		SavingsRate:         rate,
		CategoryPercentages: percentages,
		SuggestionList:      suggestions,
	}
}

func savingsRate(totalIncome, totalExpenses float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return (totalIncome - totalExpenses) / totalIncome * 100
}

func sum(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

func largestExpense(expenses map[string]float64) (string, float64) {
	var name string
	var max float64
	first := true
	for category, amount := range expenses {
		if first || amount > max || (amount == max && category < name) {
			name, max = category, amount
			first = false
		}
	}
	return name, max
}
