package catalog

import (
	"testing"

	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformOpenRouterModel_RoundTrip(t *testing.T) {
	raw := domain.MarketplaceModel{
		ID:              "anthropic/claude-3.5-sonnet",
		Name:            "Anthropic: Claude 3.5 Sonnet",
		Provider:        "anthropic",
		ContextLength:   200000,
		PromptPrice:     0.000003,
		CompletionPrice: 0.000015,
	}
	match := domain.MatchEntry{
		Rank:              intPtr(4),
		IntelligenceIndex: floatPtr(57.1),
		CodingIndex:       floatPtr(49.8),
		MathIndex:         floatPtr(39.2),
		Flagship:          true,
	}

	record, err := TransformOpenRouterModel(raw, &match)
	require.NoError(t, err)

	assert.Equal(t, raw.ID, record.ID)
	assert.Equal(t, "Claude 3.5 Sonnet", record.Name)
	assert.Equal(t, "anthropic", record.Provider)
	assert.Equal(t, 200000, record.ContextLength)
	assert.Equal(t, *match.Rank, *record.Rank)
	assert.Equal(t, *match.IntelligenceIndex, *record.IntelligenceIndex)
	assert.Equal(t, *match.CodingIndex, *record.CodingIndex)
	assert.Equal(t, *match.MathIndex, *record.MathIndex)
	assert.Equal(t, match.Flagship, record.Flagship)
	assert.False(t, record.Fast)
}

func TestTransformOpenRouterModel_Unmatched(t *testing.T) {
	record, err := TransformOpenRouterModel(domain.MarketplaceModel{ID: "openai/gpt-4o-mini", Name: "GPT-4o mini", Provider: "openai"}, nil)
	require.NoError(t, err)
	assert.Nil(t, record.Rank)
	assert.Nil(t, record.CodingIndex)
	assert.False(t, record.Flagship)
	assert.True(t, record.Fast)
	assert.False(t, record.Ranked())
}

func TestTransformOpenRouterModel_CheapIsFast(t *testing.T) {
	record, err := TransformOpenRouterModel(domain.MarketplaceModel{ID: "x/y", Provider: "x", PromptPrice: 0.0000001}, nil)
	require.NoError(t, err)
	assert.True(t, record.Fast)
	assert.Equal(t, "x/y", record.Name)
}

func TestTransformOpenRouterModel_FastMarkersAreWholeTokens(t *testing.T) {
	cases := map[string]bool{
		"google/gemini-2.5-pro":        false,
		"google/gemini-2.0-flash-lite": true,
		"openai/gpt-4o-mini":           true,
		"anthropic/claude-3-haiku":     true,
		"acme/elite-fastidious":        false,
		"openai/gpt-3.5-turbo":         true,
	}
	for id, want := range cases {
		record, err := TransformOpenRouterModel(domain.MarketplaceModel{ID: id, Provider: "p", PromptPrice: 1.25e-6}, nil)
		require.NoError(t, err)
		assert.Equal(t, want, record.Fast, id)
	}

	record, err := TransformOpenRouterModel(domain.MarketplaceModel{
		ID: "google/gemini-2.5-pro", Name: "Google: Gemini 2.5 Pro", Provider: "google", PromptPrice: 1.25e-6,
	}, nil)
	require.NoError(t, err)
	assert.False(t, record.Fast)
}

func TestTransformOpenRouterModel_Invalid(t *testing.T) {
	_, err := TransformOpenRouterModel(domain.MarketplaceModel{Provider: "x"}, nil)
	assert.Error(t, err)
	_, err = TransformOpenRouterModel(domain.MarketplaceModel{ID: "x"}, nil)
	assert.Error(t, err)
}
