// Package models holds the request and response value objects shared by
// the services and the HTTP layer. All of them are request-scoped; no
// instance outlives the call that created it.
package models

// Transaction is one spending record supplied by the caller. The amount
// sign is ignored for aggregation.
type Transaction struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Merchant    string  `json:"merchant,omitempty"`
	Description string  `json:"description,omitempty"`
}

// BudgetSummary is the fixed response shape of the budget operation.
// CategoryPercentages should sum to roughly 100 when TotalExpenses is
// positive, but that is best effort and never enforced.
type BudgetSummary struct {
	TotalIncome         float64            `json:"total_income"`
	TotalExpenses       float64            `json:"total_expenses"`
	SavingsRate         float64            `json:"savings_rate"`
	CategoryPercentages map[string]float64 `json:"category_percentages"`
	SuggestionList      []string           `json:"suggestion_list"`
}

// CategoryInsight is one aggregated spending category, largest first in
// SpendingInsights.TopCategories.
type CategoryInsight struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// SpendingInsights is the fixed response shape of the insights operation.
type SpendingInsights struct {
	TopCategories   []CategoryInsight `json:"top_categories"`
	RedFlags        []string          `json:"red_flags"`
	Recommendations []string          `json:"recommendations"`
}

// Entity is one financial entity recognized in free text.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Text  string `json:"text"`
}

// NLUResult is the fixed response shape of the NLU operation. Sentiment
// is always one of "positive", "negative", or "neutral".
type NLUResult struct {
	Sentiment string   `json:"sentiment"`
	Entities  []Entity `json:"entities"`
	Keywords  []string `json:"keywords"`
}

// Valid sentiment labels for NLUResult.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)
