package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nulzo/autorouter/internal/config"
	"github.com/nulzo/autorouter/internal/httpclient"
	"github.com/nulzo/autorouter/internal/llm"
	"github.com/nulzo/autorouter/pkg/api"
)

const DefaultBaseURL = "https://api.openai.com/v1"

func init() {
	llm.Register(string(llm.OpenAI), NewAdapter)
}

// Adapter talks to any OpenAI-compatible chat completions endpoint,
// OpenRouter included.
type Adapter struct {
	config config.ProviderConfig
	client httpclient.HTTPClient
}

func NewAdapter(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Adapter{
		config: cfg,
		client: httpclient.New(cfg.Timeout),
	}, nil
}

func (a *Adapter) Name() string {
	return a.config.ID
}

func (a *Adapter) Type() string {
	return string(llm.OpenAI)
}

func (a *Adapter) Model() string {
	return a.config.Model
}

// upstreamErrorResponse mirrors the standard OpenAI error shape
type upstreamErrorResponse struct {
	Error struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// APIError is a non-success reply from the chat endpoint.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat completion failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (a *Adapter) handleUpstreamError(err error) error {
	var upstreamErr *httpclient.UpstreamError
	if !errors.As(err, &upstreamErr) {
		return err
	}

	apiErr := &APIError{StatusCode: upstreamErr.StatusCode, Err: err}

	var body upstreamErrorResponse
	if jsonErr := json.Unmarshal(upstreamErr.Body, &body); jsonErr == nil {
		apiErr.Message = body.Error.Message
		apiErr.Type = body.Error.Type
	}
	return apiErr
}

func (a *Adapter) Chat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if req.Model == "" {
		req.Model = a.config.Model
	}
	// ensure stream is false for this method
	req.Stream = false

	headers := map[string]string{}
	if a.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + a.config.APIKey
	}
	for k, v := range a.config.Headers {
		headers[k] = v
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(a.config.BaseURL, "/"))

	var resp api.ChatResponse
	if err := httpclient.SendRequest(ctx, a.client, http.MethodPost, url, headers, req, &resp); err != nil {
		return nil, a.handleUpstreamError(err)
	}

	return &resp, nil
}
