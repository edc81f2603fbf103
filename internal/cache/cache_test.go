package cache

import (
	"context"
	"testing"
	"time"
)

func TestAnswerKeyDeterministic(t *testing.T) {
	a := AnswerKey("student", "How do I budget?")
	b := AnswerKey("student", "How do I budget?")
	if a != b {
		t.Error("expected identical keys for identical input")
	}
	if len(a) != 64 {
		t.Errorf("expected a 64-char hex digest, got %d chars", len(a))
	}
}

func TestAnswerKeyDistinguishesInputs(t *testing.T) {
	base := AnswerKey("student", "How do I budget?")
	if AnswerKey("parent", "How do I budget?") == base {
		t.Error("expected different key for different persona")
	}
	if AnswerKey("student", "How do I save?") == base {
		t.Error("expected different key for different question")
	}
	// The separator keeps persona/question boundaries unambiguous.
	if AnswerKey("ab", "c") == AnswerKey("a", "bc") {
		t.Error("expected boundary-shifted inputs to differ")
	}
}

func TestNoOpCacheAlwaysMisses(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	if err := c.SetAnswer(ctx, "k", &Answer{Answer: "a"}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := c.GetAnswer(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss, got %v", got)
	}
	if err := c.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
