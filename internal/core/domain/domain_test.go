package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParseTaskCategory(t *testing.T) {
	cases := map[string]TaskCategory{
		"coding":                     CategoryCoding,
		"  Coding.\n":                CategoryCoding,
		"\"math_reasoning\"":         CategoryMathReasoning,
		"math-reasoning":             CategoryMathReasoning,
		"Category: general":          CategoryGeneral,
		"quick":                      CategoryQuick,
		"This is a reasoning prompt": CategoryMathReasoning,
	}
	for in, want := range cases {
		got, err := ParseTaskCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTaskCategory("")
	assert.Error(t, err)
	_, err = ParseTaskCategory("I cannot help with that")
	assert.Error(t, err)

	// more than one category named
	_, err = ParseTaskCategory("not coding, general")
	assert.Error(t, err)
	got, err := ParseTaskCategory("math reasoning")
	require.NoError(t, err)
	assert.Equal(t, CategoryMathReasoning, got)
}

func TestOrdering_Compare(t *testing.T) {
	o := NewOrdering()

	flag := OrderKey{Flagship: true, Provider: "z", Name: "z"}
	ranked := OrderKey{Rank: intPtr(1), Provider: "a", Name: "a"}
	assert.Negative(t, o.Compare(flag, ranked))
	assert.Positive(t, o.Compare(ranked, flag))

	unranked := OrderKey{Provider: "a", Name: "a"}
	assert.Negative(t, o.Compare(ranked, unranked))

	r2 := OrderKey{Rank: intPtr(2), Provider: "a", Name: "a"}
	assert.Negative(t, o.Compare(ranked, r2))

	// equal rank falls through to provider, then name, ignoring case
	a := OrderKey{Rank: intPtr(1), Provider: "anthropic", Name: "Claude"}
	b := OrderKey{Rank: intPtr(1), Provider: "OpenAI", Name: "GPT"}
	assert.Negative(t, o.Compare(a, b))
	c := OrderKey{Rank: intPtr(1), Provider: "openai", Name: "gpt-4o mini"}
	assert.Negative(t, o.Compare(b, c))
	assert.Zero(t, o.Compare(a, a))
}

func TestRankedModels_FiltersUnranked(t *testing.T) {
	coding := 0.9
	records := []ModelRecord{
		{ID: "a", Provider: "p", Rank: intPtr(3)},
		{ID: "b", Provider: "p"},
		{ID: "c", Provider: "p", Flagship: true},
		{ID: "d", Provider: "p", CodingIndex: &coding},
	}
	ranked := RankedModels(records)
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "c", ranked[1].ID)
	assert.Equal(t, "d", ranked[2].ID)
	assert.Equal(t, 0.9, *ranked[2].CodingIndex)
}

func TestErrors(t *testing.T) {
	cause := errors.New("boom")

	err := fmt.Errorf("fetch: %w", UpstreamStatusError(http.StatusTooManyRequests, "slow down", cause))
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstreamUnavailable, e.Kind)
	assert.Equal(t, CauseRateLimited, e.Cause)
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, CauseAuth, UpstreamStatusError(http.StatusUnauthorized, "", nil).Cause)
	assert.Equal(t, CauseUpstream, UpstreamStatusError(http.StatusBadGateway, "", nil).Cause)

	assert.True(t, IsKind(NoEligibleModelError("none"), KindNoEligibleModel))
	assert.False(t, IsKind(cause, KindNoEligibleModel))
}
