package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// defaultContestModel is the chat model used when none is configured.
const defaultContestModel = "gpt-4o-mini"

// OpenAIProvider generates themed contest questions through the OpenAI
// chat API. Generated sets are cached per topic so repeated contests on
// the same theme do not re-query the model.
type OpenAIProvider struct {
	client *openai.Client
	model  string

	mu    sync.RWMutex
	cache map[string][]Question
}

// NewOpenAIProvider creates a provider using the given API key and model.
// An empty model falls back to GPT-4o mini.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = defaultContestModel
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		cache:  make(map[string][]Question),
	}
}

// Questions returns n questions for the topic, generating them on first
// use and serving the cached set afterwards.
func (p *OpenAIProvider) Questions(ctx context.Context, topic string, n int) ([]Question, error) {
	if n <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", n)
	}

	p.mu.RLock()
	cached, ok := p.cache[topic]
	p.mu.RUnlock()
	if ok && len(cached) >= n {
		return cached[:n], nil
	}

	qs, err := p.generate(ctx, topic, n)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[topic] = qs
	p.mu.Unlock()
	return qs, nil
}

func (p *OpenAIProvider) generate(ctx context.Context, topic string, n int) ([]Question, error) {
	prompt := fmt.Sprintf(
		`Generate %d multiple-choice quiz questions about %q. Respond with a JSON array only; each element has "prompt", "options" (four strings) and "answer" (index of the correct option).`,
		n, topic,
	)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	var qs []Question
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &qs); err != nil {
		return nil, fmt.Errorf("failed to parse generated questions: %w", err)
	}
	for i, q := range qs {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("question %d has answer index out of range", i)
		}
	}
	return qs, nil
}
