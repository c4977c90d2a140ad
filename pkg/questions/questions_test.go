package questions

import (
	"context"
	"testing"
)

func TestStaticBankDraws(t *testing.T) {
	bank := NewStaticBank(nil, 1)

	qs, err := bank.Questions(context.Background(), "maze", 5)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("want 5 questions, got %d", len(qs))
	}

	seen := make(map[string]bool)
	for _, q := range qs {
		if seen[q.Prompt] {
			t.Errorf("question drawn twice: %q", q.Prompt)
		}
		seen[q.Prompt] = true
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			t.Errorf("answer index out of range for %q", q.Prompt)
		}
	}
}

func TestStaticBankSeedDeterminism(t *testing.T) {
	a, _ := NewStaticBank(nil, 7).Questions(context.Background(), "maze", 4)
	b, _ := NewStaticBank(nil, 7).Questions(context.Background(), "maze", 4)

	for i := range a {
		if a[i].Prompt != b[i].Prompt {
			t.Fatalf("same seed should draw the same questions; %q != %q", a[i].Prompt, b[i].Prompt)
		}
	}
}

func TestStaticBankOverdraw(t *testing.T) {
	pool := []Question{{Prompt: "only", Options: []string{"x", "y"}, Answer: 0}}
	bank := NewStaticBank(pool, 1)

	qs, err := bank.Questions(context.Background(), "maze", 10)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("overdraw should return the whole pool, got %d", len(qs))
	}
}

func TestStaticBankRejectsNonPositiveCount(t *testing.T) {
	if _, err := NewStaticBank(nil, 1).Questions(context.Background(), "maze", 0); err == nil {
		t.Fatal("zero count should error")
	}
}

func TestOpenAIProviderModelSelection(t *testing.T) {
	if got := NewOpenAIProvider("key", "").model; got != defaultContestModel {
		t.Errorf("empty model should fall back to %q, got %q", defaultContestModel, got)
	}
	if got := NewOpenAIProvider("key", "custom-model").model; got != "custom-model" {
		t.Errorf("explicit model should stick, got %q", got)
	}
}
