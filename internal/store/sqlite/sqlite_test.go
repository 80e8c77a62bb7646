package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/autorouter/internal/store"
	"github.com/nulzo/autorouter/internal/store/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	repo, err := NewSQLiteStorage(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAPIKeys(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	key := &model.APIKey{ID: uuid.NewString(), Name: "ci", KeyHash: "abc123", KeyPrefix: "sk-ar-ab", IsActive: true}
	require.NoError(t, repo.APIKeys().Create(ctx, key))

	got, err := repo.APIKeys().GetByHash(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.False(t, got.LastUsedAt.Valid)

	require.NoError(t, repo.APIKeys().UpdateUsage(ctx, key.ID))
	got, err = repo.APIKeys().GetByHash(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, got.LastUsedAt.Valid)

	require.NoError(t, repo.APIKeys().Revoke(ctx, key.ID))
	_, err = repo.APIKeys().GetByHash(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.APIKeys().Revoke(ctx, "missing"), ErrNotFound)
}

func routingLog(category, modelID string, status int, at time.Time) *model.RoutingLog {
	return &model.RoutingLog{
		ID:               uuid.NewString(),
		Category:         category,
		SelectedModelID:  modelID,
		Confidence:       0.8,
		PromptTokens:     100,
		CompletionTokens: 2,
		LatencyMS:        40,
		StatusCode:       status,
		CreatedAt:        at,
	}
}

func TestRouting_LogAndAggregate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	now := time.Now().UTC()

	logs := []*model.RoutingLog{
		routingLog("coding", "openai/gpt-4o", 200, now),
		routingLog("coding", "openai/gpt-4o", 200, now),
		routingLog("general", "anthropic/claude-3.5-sonnet", 200, now),
		routingLog("", "", 500, now),
		routingLog("coding", "old/model", 200, now.AddDate(0, 0, -30)),
	}
	for _, l := range logs {
		require.NoError(t, repo.Routing().Log(ctx, l))
	}

	got, err := repo.Routing().GetByID(ctx, logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o", got.SelectedModelID)

	_, err = repo.Routing().GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	daily, err := repo.Routing().GetDailyStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 4, daily[0].TotalRequests)
	assert.Equal(t, 1, daily[0].ErrorRequests)
	assert.Equal(t, 400, daily[0].PromptTokens)
	assert.InDelta(t, 40.0, daily[0].AverageLatency, 0.001)

	categories, err := repo.Routing().GetCategoryStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "coding", categories[0].Category)
	assert.Equal(t, 2, categories[0].TotalRequests)
	assert.InDelta(t, 0.8, categories[0].AvgConfidence, 0.001)

	top, err := repo.Routing().GetTopModels(ctx, 7, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "openai/gpt-4o", top[0].ModelID)
	assert.Equal(t, 2, top[0].TotalRequests)
}

func TestWithTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	log := routingLog("quick", "m", 200, time.Now().UTC())

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx store.Repository) error {
		require.NoError(t, tx.Routing().Log(ctx, log))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.Routing().GetByID(ctx, log.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
