// Package benchmark fetches the model leaderboard used to rank the
// marketplace catalog.
package benchmark

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
	DefaultBaseURL = "https://artificialanalysis.ai/api/v2"
	sourceName     = "benchmark feed"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	config Config
	client httpclient.HTTPClient
}

var _ ports.BenchmarkClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		config: cfg,
		client: httpclient.New(cfg.Timeout),
	}
}

// ListBenchmarks fetches and validates the leaderboard. The feed requires
// an API key; a missing key is a configuration error, not an upstream one.
func (c *Client) ListBenchmarks(ctx context.Context) ([]domain.BenchmarkModel, error) {
	if c.config.APIKey == "" {
		return nil, domain.ConfigError("benchmark API key is not configured")
	}

	headers := map[string]string{"x-api-key": c.config.APIKey}
	url := fmt.Sprintf("%s/data/llms/models", strings.TrimRight(c.config.BaseURL, "/"))

	var raw json.RawMessage
	if err := httpclient.SendRequest(ctx, c.client, http.MethodGet, url, headers, nil, &raw); err != nil {
		return nil, upstream.MapError(sourceName, err)
	}

	entries, err := decodeFeed(raw)
	if err != nil {
		return nil, upstream.SchemaError(sourceName, err)
	}

	out := make([]domain.BenchmarkModel, 0, len(entries))
	for i, e := range entries {
		parsed, err := parseModel(e)
		if err != nil {
			return nil, upstream.SchemaError(sourceName, fmt.Errorf("entry %d: %w", i, err))
		}
		out = append(out, parsed)
	}
	return out, nil
}

func decodeFeed(raw json.RawMessage) ([]Model, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	if trimmed[0] == '[' {
		var entries []Model
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		return entries, nil
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

func parseModel(m Model) (domain.BenchmarkModel, error) {
	name := strings.TrimSpace(m.Name)
	slug := strings.TrimSpace(m.Slug)
	if name == "" && slug == "" {
		return domain.BenchmarkModel{}, fmt.Errorf("entry without name or slug")
	}
	if name == "" {
		name = slug
	}

	provider := strings.TrimSpace(m.Provider)
	if provider == "" && m.Creator != nil {
		provider = m.Creator.Slug
		if provider == "" {
			provider = m.Creator.Name
		}
	}

	out := domain.BenchmarkModel{
		Name:              name,
		Slug:              slug,
		Provider:          provider,
		IntelligenceIndex: m.IntelligenceIndex,
		CodingIndex:       m.CodingIndex,
		MathIndex:         m.MathIndex,
	}
	if m.Evaluations != nil {
		if out.IntelligenceIndex == nil {
			out.IntelligenceIndex = m.Evaluations.IntelligenceIndex
		}
		if out.CodingIndex == nil {
			out.CodingIndex = m.Evaluations.CodingIndex
		}
		if out.MathIndex == nil {
			out.MathIndex = m.Evaluations.MathIndex
		}
	}

	// non-positive ranks are treated as absent
	if m.Rank != nil && *m.Rank > 0 {
		r := *m.Rank
		out.Rank = &r
	}
	return out, nil
}
