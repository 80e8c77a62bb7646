package catalog

import (
	"testing"

	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func marketplaceFixture() []domain.MarketplaceModel {
	return []domain.MarketplaceModel{
		{ID: "openai/gpt-4o", Name: "OpenAI: GPT-4o", Provider: "openai"},
		{ID: "anthropic/claude-3.5-sonnet", Name: "Anthropic: Claude 3.5 Sonnet", Provider: "anthropic"},
		{ID: "mistralai/mistral-large-2", Name: "Mistral: Mistral Large 2", Provider: "mistralai"},
		{ID: "acme/unknown", Name: "Acme: Unknown", Provider: "acme"},
		{ID: "openai/gpt-4o-mini", Name: "OpenAI: GPT-4o-mini", Provider: "openai"},
		{ID: "other/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", Provider: "other"},
	}
}

func benchmarkFixture() []domain.BenchmarkModel {
	return []domain.BenchmarkModel{
		{Name: "GPT-4o (Nov '24)", Slug: "gpt-4o", Provider: "openai", Rank: intPtr(2), CodingIndex: floatPtr(40)},
		{Name: "Claude 3.5 Sonnet (Oct '24)", Slug: "claude-35-sonnet", Provider: "anthropic", Rank: intPtr(1), Flagship: true, MathIndex: floatPtr(39)},
		{Name: "Mistral Large v2 (Jul '24)", Slug: "mistral-large-v2", Provider: "mistral", Rank: intPtr(5)},
	}
}

func TestMatchFlagshipModels(t *testing.T) {
	matches := MatchFlagshipModels(marketplaceFixture(), benchmarkFixture())

	require.Len(t, matches, 3)

	gpt := matches["openai/gpt-4o"]
	require.NotNil(t, gpt.Rank)
	assert.Equal(t, 2, *gpt.Rank)
	require.NotNil(t, gpt.CodingIndex)
	assert.Equal(t, 40.0, *gpt.CodingIndex)

	claude := matches["anthropic/claude-3.5-sonnet"]
	assert.True(t, claude.Flagship)
	assert.Equal(t, 1, *claude.Rank)

	// fuzzy: "mistrallarge2" vs "mistrallargev2"
	mistral, ok := matches["mistralai/mistral-large-2"]
	require.True(t, ok)
	assert.Equal(t, 5, *mistral.Rank)

	assert.NotContains(t, matches, "acme/unknown")
	assert.NotContains(t, matches, "openai/gpt-4o-mini")
	// same name, different provider family
	assert.NotContains(t, matches, "other/claude-3.5-sonnet")
}

func TestMatchFlagshipModels_Deterministic(t *testing.T) {
	market, bench := marketplaceFixture(), benchmarkFixture()

	first := MatchFlagshipModels(market, bench)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MatchFlagshipModels(market, bench))
	}

	ids := make(map[string]bool)
	for _, m := range market {
		ids[m.ID] = true
	}
	for id := range first {
		assert.True(t, ids[id], "unexpected key %s", id)
	}
}

func TestMatchFlagshipModels_FirstMatchWins(t *testing.T) {
	market := []domain.MarketplaceModel{{ID: "openai/gpt-4o", Name: "GPT-4o", Provider: "openai"}}
	bench := []domain.BenchmarkModel{
		{Name: "GPT-4o (May '24)", Provider: "openai", Rank: intPtr(7)},
		{Name: "GPT-4o (Nov '24)", Provider: "openai", Rank: intPtr(3)},
	}

	matches := MatchFlagshipModels(market, bench)
	require.Contains(t, matches, "openai/gpt-4o")
	assert.Equal(t, 7, *matches["openai/gpt-4o"].Rank)
}

func TestMatchFlagshipModels_FuzzyKeepsVersions(t *testing.T) {
	market := []domain.MarketplaceModel{
		{ID: "google/gemini-1.5-pro", Name: "Google: Gemini 1.5 Pro", Provider: "google"},
		{ID: "anthropic/claude-3.7-sonnet", Name: "Anthropic: Claude 3.7 Sonnet", Provider: "anthropic"},
		{ID: "mistralai/mistral-large-2407", Name: "Mistral Large 2407", Provider: "mistralai"},
	}
	bench := []domain.BenchmarkModel{
		{Name: "Gemini 2.5 Pro", Provider: "google", Rank: intPtr(1), Flagship: true},
		{Name: "Claude 3.5 Sonnet", Provider: "anthropic", Rank: intPtr(2), Flagship: true},
		{Name: "Mistral Large 2", Provider: "mistral", Rank: intPtr(5)},
	}

	assert.Empty(t, MatchFlagshipModels(market, bench))
}

func TestMatchFlagshipModels_ExactClaimBlocksFuzzy(t *testing.T) {
	market := []domain.MarketplaceModel{
		{ID: "mistralai/mistral-large-2", Name: "Mistral Large 2", Provider: "mistralai"},
		{ID: "mistralai/mistral-large-v2", Name: "Mistral Large v2", Provider: "mistralai"},
		{ID: "mistralai/mistral-larg-2", Name: "Mistral Larg 2", Provider: "mistralai"},
	}
	bench := []domain.BenchmarkModel{
		{Name: "Mistral Large 2", Provider: "mistral", Rank: intPtr(5)},
	}

	matches := MatchFlagshipModels(market, bench)
	require.Contains(t, matches, "mistralai/mistral-large-2")
	assert.Equal(t, 5, *matches["mistralai/mistral-large-2"].Rank)
	assert.NotContains(t, matches, "mistralai/mistral-large-v2")
	assert.NotContains(t, matches, "mistralai/mistral-larg-2")
}

func TestMatchFlagshipModels_EmptyInputs(t *testing.T) {
	assert.Empty(t, MatchFlagshipModels(nil, nil))
	assert.Empty(t, MatchFlagshipModels(marketplaceFixture(), nil))
	assert.Empty(t, MatchFlagshipModels(nil, benchmarkFixture()))
	assert.NotNil(t, MatchFlagshipModels(nil, nil))
}
