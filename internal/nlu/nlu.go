// Package nlu performs lightweight natural-language understanding of
// financial text: sentiment, entity extraction, and keywords. The
// model path is backed by a word-list and regex fallback.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"finchat/internal/extract"
	"finchat/internal/llm"
	"finchat/internal/models"
	"finchat/internal/prompts"
)

const maxTokens = 500

var positiveWords = []string{"save", "saved", "profit", "gain", "earned", "bonus", "raise", "good", "great"}

var negativeWords = []string{"spent", "loss", "debt", "owe", "expensive", "broke", "problem", "worry"}

var categoryNames = []string{
	"groceries", "rent", "food", "gas", "entertainment", "utilities",
	"shopping", "dining", "transport", "healthcare", "education",
}

var stopWords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "the": {}, "a": {}, "an": {}, "and": {},
	"or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
}

// optional $, digit groups with optional thousands separators, optional
// 2-decimal fraction
var moneyPattern = regexp.MustCompile(`\$?\d+(?:,\d{3})*(?:\.\d{2})?`)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

const maxKeywords = 7

type Service struct {
	llm llm.Client
	log *slog.Logger
}

func NewService(client llm.Client, log *slog.Logger) *Service {
	return &Service{llm: client, log: log}
}

type payload struct {
	Sentiment string          `json:"sentiment"`
	Entities  []models.Entity `json:"entities"`
	Keywords  []string        `json:"keywords"`
}

// AnalyzeText asks the model to analyze text; any failure on the model
// path yields the deterministic fallback instead of an error. Persona
// is carried for logging only.
func (s *Service) AnalyzeText(ctx context.Context, text, persona string) models.NLUResult {
	out, err := s.fromModel(ctx, text)
	if err != nil {
		s.log.Error("nlu analysis failed, using fallback", "persona", persona, "err", err)
		return Fallback(text)
	}
	return out
}

func (s *Service) fromModel(ctx context.Context, text string) (models.NLUResult, error) {
	raw, err := s.llm.Generate(ctx, prompts.NLU(text), maxTokens)
	if err != nil {
		return models.NLUResult{}, err
	}
	doc, err := extract.Object(raw)
	if err != nil {
		return models.NLUResult{}, err
	}
	var p payload
	if err := json.Unmarshal(doc, &p); err != nil {
		return models.NLUResult{}, fmt.Errorf("%w: %v", extract.ErrMalformedOutput, err)
	}

	out := models.NLUResult{
		Sentiment: clampSentiment(p.Sentiment),
		Entities:  p.Entities,
		Keywords:  p.Keywords,
	}
	if out.Entities == nil {
		out.Entities = []models.Entity{}
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return out, nil
}

func clampSentiment(s string) string {
	switch s {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		return s
	default:
		return models.SentimentNeutral
	}
}

// Fallback analyzes the text without the model: word-list sentiment,
// regex money extraction, fixed category list, and simple keyword
// tokenization.
func Fallback(text string) models.NLUResult {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	sentiment := models.SentimentNeutral
	if pos > neg {
		sentiment = models.SentimentPositive
	} else if neg > pos {
		sentiment = models.SentimentNegative
	}

	entities := []models.Entity{}
	stripper := strings.NewReplacer("$", "", ",", "")
	for _, match := range moneyPattern.FindAllString(text, -1) {
		entities = append(entities, models.Entity{
			Type:  "MONEY",
			Value: stripper.Replace(match),
			Text:  match,
		})
	}
	for _, category := range categoryNames {
		if strings.Contains(lower, category) {
			entities = append(entities, models.Entity{
				Type:  "CATEGORY",
				Value: category,
				Text:  category,
			})
		}
	}

	keywords := []string{}
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		if len(word) <= 3 {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return models.NLUResult{Sentiment: sentiment, Entities: entities, Keywords: keywords}
}
