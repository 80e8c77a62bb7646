// Package openrouter is the marketplace client: it lists the models the
// OpenRouter API can serve and validates them into domain descriptors.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nulzo/autorouter/internal/adapters/upstream"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/nulzo/autorouter/internal/httpclient"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	sourceName     = "marketplace"
)

// Config for the marketplace client. APIKey is optional.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	config Config
	client httpclient.HTTPClient
}

var _ ports.MarketplaceClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		config: cfg,
		client: httpclient.New(cfg.Timeout),
	}
}

// ListModels fetches and validates the marketplace listing.
func (c *Client) ListModels(ctx context.Context) ([]domain.MarketplaceModel, error) {
	headers := map[string]string{}
	if c.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.config.APIKey
	}

	url := fmt.Sprintf("%s/models", strings.TrimRight(c.config.BaseURL, "/"))

	var raw json.RawMessage
	if err := httpclient.SendRequest(ctx, c.client, http.MethodGet, url, headers, nil, &raw); err != nil {
		return nil, upstream.MapError(sourceName, err)
	}

	models, err := decodeListing(raw)
	if err != nil {
		return nil, upstream.SchemaError(sourceName, err)
	}

	out := make([]domain.MarketplaceModel, 0, len(models))
	for i, m := range models {
		parsed, err := parseModel(m)
		if err != nil {
			return nil, upstream.SchemaError(sourceName, fmt.Errorf("entry %d: %w", i, err))
		}
		out = append(out, parsed)
	}
	return out, nil
}

// decodeListing accepts both a bare array and the {"data": [...]} envelope.
func decodeListing(raw json.RawMessage) ([]Model, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	if trimmed[0] == '[' {
		var models []Model
		if err := json.Unmarshal(trimmed, &models); err != nil {
			return nil, err
		}
		return models, nil
	}

	var resp listResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("missing data array")
	}
	return resp.Data, nil
}

func parseModel(m Model) (domain.MarketplaceModel, error) {
	id := strings.TrimSpace(m.ID)
	if id == "" {
		return domain.MarketplaceModel{}, fmt.Errorf("model without id")
	}

	provider := strings.TrimSpace(m.Provider)
	if provider == "" {
		if i := strings.Index(id, "/"); i > 0 {
			provider = id[:i]
		}
	}
	if provider == "" {
		return domain.MarketplaceModel{}, fmt.Errorf("model %s has no provider", id)
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = id
	}

	contextLength := m.ContextLength
	if contextLength == 0 {
		contextLength = m.TopProvider.ContextLength
	}

	return domain.MarketplaceModel{
		ID:              id,
		Name:            name,
		Provider:        provider,
		Description:     m.Description,
		ContextLength:   contextLength,
		PromptPrice:     float64(m.Pricing.Prompt),
		CompletionPrice: float64(m.Pricing.Completion),
	}, nil
}
