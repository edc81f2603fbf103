package extract

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestObjectPlainJSON(t *testing.T) {
	raw := `{"answer": "save more", "confidence": 0.9}`
	got, err := Object(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != raw {
		t.Errorf("expected unchanged document, got %q", got)
	}
}

func TestObjectFenceRoundTrip(t *testing.T) {
	inner := `{"total_income": 5000.0, "suggestion_list": ["a", "b"]}`

	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + inner + "\n```"},
		{"bare fence", "```\n" + inner + "\n```"},
		{"leading whitespace", "\n\n  " + inner + "  \n"},
		{"fence no trailing", "```json\n" + inner},
	}

	var want map[string]any
	if err := json.Unmarshal([]byte(inner), &want); err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Object(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(doc, &got); err != nil {
				t.Fatalf("recovered document is not valid JSON: %v", err)
			}
			if len(got) != len(want) {
				t.Errorf("expected %d keys, got %d", len(want), len(got))
			}
		})
	}
}

func TestObjectProseWrapped(t *testing.T) {
	raw := "Sure! Here is your summary:\n{\"savings_rate\": 30.0}\nLet me know if you need more."
	doc, err := Object(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]float64
	if err := json.Unmarshal(doc, &got); err != nil {
		t.Fatal(err)
	}
	if got["savings_rate"] != 30.0 {
		t.Errorf("expected savings_rate 30.0, got %v", got["savings_rate"])
	}
}

func TestObjectNoBraces(t *testing.T) {
	_, err := Object("I could not produce any structured output, sorry.")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestObjectInvalidBetweenBraces(t *testing.T) {
	// Stage two must not mask genuinely broken JSON as a success.
	_, err := Object("result: {not valid json at all}")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("expected ErrMalformedOutput, got %v", err)
	}
}

func TestObjectRejectsNonObject(t *testing.T) {
	_, err := Object(`["just", "an", "array"]`)
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("expected ErrMalformedOutput for non-object, got %v", err)
	}
}

func TestObjectEmptyInput(t *testing.T) {
	_, err := Object("   \n  ")
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("expected ErrMalformedOutput, got %v", err)
	}
}
