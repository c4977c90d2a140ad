// Package questions supplies the question sets that drive knowledge-contest
// resolutions. The static bank is the default source; an OpenAI-backed
// provider can generate themed questions when an API key is available.
package questions

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Question is one multiple-choice contest question.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	// Answer is the index of the correct option.
	Answer int `json:"answer"`
}

// Provider returns up to n questions for a topic.
type Provider interface {
	Questions(ctx context.Context, topic string, n int) ([]Question, error)
}

// StaticBank serves questions from a fixed in-memory pool, shuffled with a
// seeded RNG so contests are reproducible in tests.
type StaticBank struct {
	mu   sync.Mutex
	pool []Question
	rng  *rand.Rand
}

// NewStaticBank creates a bank over the given pool. A nil pool falls back
// to a small built-in set.
func NewStaticBank(pool []Question, seed int64) *StaticBank {
	if len(pool) == 0 {
		pool = defaultPool
	}
	return &StaticBank{pool: pool, rng: rand.New(rand.NewSource(seed))}
}

// Questions returns n questions drawn from the pool without replacement;
// fewer if the pool is smaller.
func (b *StaticBank) Questions(_ context.Context, _ string, n int) ([]Question, error) {
	if n <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", n)
	}
	b.mu.Lock()
	idx := b.rng.Perm(len(b.pool))
	b.mu.Unlock()
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Question, 0, n)
	for _, i := range idx[:n] {
		out = append(out, b.pool[i])
	}
	return out, nil
}

var defaultPool = []Question{
	{Prompt: "Which direction does a compass needle point?", Options: []string{"North", "South", "East", "West"}, Answer: 0},
	{Prompt: "How many degrees are in a full turn?", Options: []string{"180", "270", "360", "90"}, Answer: 2},
	{Prompt: "What shape has exactly three sides?", Options: []string{"Square", "Triangle", "Hexagon", "Circle"}, Answer: 1},
	{Prompt: "Which of these is a prime number?", Options: []string{"9", "15", "21", "17"}, Answer: 3},
	{Prompt: "What is the square root of 64?", Options: []string{"6", "7", "8", "9"}, Answer: 2},
	{Prompt: "Which planet is closest to the sun?", Options: []string{"Venus", "Mercury", "Mars", "Earth"}, Answer: 1},
	{Prompt: "How many minutes are in two hours?", Options: []string{"90", "100", "110", "120"}, Answer: 3},
	{Prompt: "Which of these animals is a mammal?", Options: []string{"Shark", "Dolphin", "Trout", "Octopus"}, Answer: 1},
}
