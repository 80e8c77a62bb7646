// Package llm holds the registry of chat providers the classifier can talk to.
package llm

import (
	"context"

	"github.com/nulzo/autorouter/pkg/api"
)

type ProviderName string

const (
	OpenAI ProviderName = "openai"
)

type Provider interface {
	Name() string
	Type() string // e.g., "openai"
	// Model is the default model requests are sent to.
	Model() string
	Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)
}
