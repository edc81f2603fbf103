package llm

import (
	"context"
	"strings"
)

// StubClient is the deterministic offline client used in local mode and
// whenever no live backend can be constructed. It inspects the
// lowercased prompt for fixed keyword sets and answers with canned JSON
// documents, so the extraction and validation paths run exactly as they
// do against production output. It never fails.
type StubClient struct{}

var _ Client = (*StubClient)(nil)

func NewStubClient() *StubClient { return &StubClient{} }

const stubChunkSize = 20

func (s *StubClient) Generate(_ context.Context, prompt string, _ int) (string, error) {
	return s.respond(prompt), nil
}

// GenerateStream slices the canned document into fixed-size fragments;
// the last fragment may be shorter.
func (s *StubClient) GenerateStream(ctx context.Context, prompt string, _ int) (<-chan Chunk, error) {
	text := s.respond(prompt)
	out := make(chan Chunk)
	go func() {
		defer close(out)
		for i := 0; i < len(text); i += stubChunkSize {
			end := i + stubChunkSize
			if end > len(text) {
				end = len(text)
			}
			select {
			case out <- Chunk{Text: text[i:end]}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *StubClient) ModelName() string { return "mock-local" }

// respond picks a canned document by keyword, first match wins.
func (s *StubClient) respond(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "budget"), strings.Contains(p, "income"), strings.Contains(p, "expenses"):
		return stubBudgetDoc
	case strings.Contains(p, "spending"), strings.Contains(p, "insights"), strings.Contains(p, "red flag"):
		return stubInsightsDoc
	case strings.Contains(p, "sentiment"), strings.Contains(p, "entities"), strings.Contains(p, "nlu"):
		return stubNLUDoc
	case strings.Contains(p, "student"):
		return stubStudentDoc
	case strings.Contains(p, "parent"):
		return stubParentDoc
	case strings.Contains(p, "salaried"):
		return stubSalariedDoc
	default:
		return stubGeneralDoc
	}
}

const stubBudgetDoc = `{
  "total_income": 5000.0,
  "total_expenses": 3500.0,
  "savings_rate": 30.0,
  "category_percentages": {
    "Housing": 35.0,
    "Food": 20.0,
    "Transportation": 15.0,
    "Entertainment": 10.0,
    "Utilities": 10.0,
    "Other": 10.0
  },
  "suggestion_list": [
    "Your savings rate of 30% is excellent! Keep it up.",
    "Consider reducing entertainment expenses to increase savings.",
    "Housing takes up 35% of expenses - this is within recommended limits."
  ]
}`

const stubInsightsDoc = `{
  "top_categories": [
    {"category": "Housing", "amount": 1225.0, "percentage": 35.0},
    {"category": "Food", "amount": 700.0, "percentage": 20.0},
    {"category": "Transportation", "amount": 525.0, "percentage": 15.0}
  ],
  "red_flags": [
    "Entertainment spending increased 40% compared to last month",
    "Multiple late-night food delivery charges detected"
  ],
  "recommendations": [
    "Set a monthly budget cap for entertainment at $300",
    "Meal prep on weekends to reduce food delivery costs",
    "Consider carpooling or public transit to reduce transportation costs"
  ]
}`

const stubNLUDoc = `{
  "sentiment": "neutral",
  "entities": [
    {"type": "MONEY", "value": "500", "text": "$500"},
    {"type": "CATEGORY", "value": "groceries", "text": "groceries"}
  ],
  "keywords": ["spent", "groceries", "money"]
}`

const stubStudentDoc = `{
  "answer": "As a student, focus on building good financial habits early. Consider these tips: 1) Use student discounts whenever possible, 2) Cook meals instead of eating out, 3) Buy used textbooks or use library resources, 4) Start a small emergency fund even if it's just $20/month, 5) Avoid credit card debt - only spend what you have.",
  "persona_context": "student",
  "confidence": 0.95
}`

const stubParentDoc = `{
  "answer": "As a parent, balancing family expenses with savings is crucial. Key strategies: 1) Set up a 529 college savings plan for your children, 2) Build a 6-month emergency fund for family security, 3) Take advantage of tax credits like Child Tax Credit, 4) Buy in bulk for household essentials, 5) Consider term life insurance to protect your family's future.",
  "persona_context": "parent",
  "confidence": 0.95
}`

const stubSalariedDoc = `{
  "answer": "With a steady salary, you can build strong financial foundations. Recommendations: 1) Maximize your 401(k) employer match - it's free money, 2) Follow the 50/30/20 rule: 50% needs, 30% wants, 20% savings, 3) Build an emergency fund covering 3-6 months of expenses, 4) Consider investing in index funds for long-term growth, 5) Review and negotiate your salary annually.",
  "persona_context": "salaried",
  "confidence": 0.95
}`

const stubGeneralDoc = `{
  "answer": "Here are some general personal finance tips: 1) Track all your expenses to understand spending patterns, 2) Create and stick to a monthly budget, 3) Build an emergency fund with 3-6 months of expenses, 4) Pay off high-interest debt first, 5) Start investing early to benefit from compound interest, 6) Review your financial goals quarterly and adjust as needed.",
  "confidence": 0.85
}`
