package openrouter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/autorouter/internal/adapters/openrouter"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/models", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestListModels_Envelope(t *testing.T) {
	server := newServer(t, http.StatusOK, `{"data": [
		{
			"id": "openai/gpt-4o",
			"name": "OpenAI: GPT-4o",
			"description": "Omni model",
			"context_length": 128000,
			"pricing": {"prompt": "0.0000025", "completion": "0.00001"}
		},
		{
			"id": "meta-llama/llama-3.1-8b-instruct:free",
			"name": "Meta: Llama 3.1 8B Instruct (free)",
			"pricing": {"prompt": "0", "completion": "0"},
			"top_provider": {"context_length": 8192}
		}
	]}`)

	client := openrouter.NewClient(openrouter.Config{BaseURL: server.URL + "/api/v1"})
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "openai/gpt-4o", models[0].ID)
	assert.Equal(t, "openai", models[0].Provider)
	assert.Equal(t, "OpenAI: GPT-4o", models[0].Name)
	assert.Equal(t, 128000, models[0].ContextLength)
	assert.InDelta(t, 0.0000025, models[0].PromptPrice, 1e-12)

	assert.Equal(t, "meta-llama", models[1].Provider)
	assert.Equal(t, 8192, models[1].ContextLength)
}

func TestListModels_BareArrayWithAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"x","name":"X","provider":"acme","pricing":{"prompt":0.1,"completion":0.2}}]`))
	}))
	defer server.Close()

	client := openrouter.NewClient(openrouter.Config{BaseURL: server.URL, APIKey: "or-key"})
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "acme", models[0].Provider)
	assert.InDelta(t, 0.2, models[0].CompletionPrice, 1e-9)
}

func TestListModels_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		cause  domain.UpstreamCause
	}{
		{"auth", http.StatusUnauthorized, `{"error":"no"}`, domain.CauseAuth},
		{"rate limited", http.StatusTooManyRequests, `{}`, domain.CauseRateLimited},
		{"server", http.StatusInternalServerError, `{}`, domain.CauseUpstream},
		{"not json", http.StatusOK, `<html>`, domain.CauseUpstream},
		{"missing data", http.StatusOK, `{"models": []}`, domain.CauseUpstream},
		{"missing id", http.StatusOK, `{"data": [{"name": "ghost"}]}`, domain.CauseUpstream},
		{"missing provider", http.StatusOK, `{"data": [{"id": "ghost"}]}`, domain.CauseUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := newServer(t, tc.status, tc.body)
			client := openrouter.NewClient(openrouter.Config{BaseURL: server.URL + "/api/v1"})

			_, err := client.ListModels(context.Background())
			e, ok := domain.AsError(err)
			require.True(t, ok, "expected domain error, got %v", err)
			assert.Equal(t, domain.KindUpstreamUnavailable, e.Kind)
			assert.Equal(t, tc.cause, e.Cause)
		})
	}
}
