package autorouter

import (
	"context"
	"errors"
	"strings"

	"github.com/nulzo/autorouter/internal/config"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/nulzo/autorouter/internal/httpclient"
	"github.com/nulzo/autorouter/internal/llm"
	"github.com/nulzo/autorouter/pkg/api"
)

const defaultMaxTokens = 10

const classifierInstruction = `You are a prompt classifier. Read the user's prompt and reply with exactly one of these labels and nothing else:
coding - writing, reviewing, explaining or debugging code
math_reasoning - mathematics, logic puzzles, multi-step quantitative reasoning
quick - short factual questions, greetings, one-line answers
general - everything else`

// LLMClassifier asks a chat model for the task category of a prompt.
type LLMClassifier struct {
	provider  llm.Provider
	model     string
	maxTokens int
	apiKey    string
}

var _ ports.Classifier = (*LLMClassifier)(nil)

func NewLLMClassifier(provider llm.Provider, cfg config.ProviderConfig) *LLMClassifier {
	model := cfg.Model
	if model == "" {
		model = provider.Model()
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &LLMClassifier{
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
		apiKey:    cfg.APIKey,
	}
}

// Ready reports a ConfigError when the classifier has no credential.
func (c *LLMClassifier) Ready() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return domain.ConfigError("Classifier API key is not configured")
	}
	if c.model == "" {
		return domain.ConfigError("Classifier model is not configured")
	}
	return nil
}

// Classify issues a single chat completion. It never retries.
func (c *LLMClassifier) Classify(ctx context.Context, prompt string) (*ports.Classification, error) {
	temperature := 0.0
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.ChatMessage{
			{Role: "system", Content: classifierInstruction},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: &temperature,
	}

	resp, err := c.provider.Chat(ctx, req)
	if err != nil {
		msg := "Classifier request failed"
		if httpclient.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			msg = "Classifier request timed out"
		}
		return nil, domain.ClassificationError(msg, err)
	}

	content, ok := resp.FirstContent()
	if !ok {
		return nil, domain.ClassificationError("Classifier returned no choices", nil)
	}

	category, err := domain.ParseTaskCategory(content)
	if err != nil {
		return nil, domain.ClassificationError("Classifier returned an unknown category", err)
	}

	out := &ports.Classification{Category: category, Model: resp.Model}
	if out.Model == "" {
		out.Model = c.model
	}
	if resp.Usage != nil {
		out.Usage = domain.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		}
	}
	return out, nil
}
