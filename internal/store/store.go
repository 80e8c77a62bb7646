package store

import (
	"context"

	"github.com/nulzo/autorouter/internal/store/model"
)

type contextKey string

const (
	ContextKeyAPIKey    contextKey = "api_key"
	ContextKeyAppName   contextKey = "app_name"
	ContextKeyRequestID contextKey = "request_id"
)

// Repository is the main contract for the data layer.
type Repository interface {
	APIKeys() APIKeyRepository
	Routing() RoutingRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

type APIKeyRepository interface {
	// GetByHash retrieves an active key by its hashed value (for auth).
	GetByHash(ctx context.Context, hash string) (*model.APIKey, error)
	// Create issues a new API key.
	Create(ctx context.Context, key *model.APIKey) error
	// UpdateUsage stamps the key's last use.
	UpdateUsage(ctx context.Context, id string) error
	// Revoke deactivates a key.
	Revoke(ctx context.Context, id string) error
}

type RoutingRepository interface {
	// Log stores one routing decision.
	Log(ctx context.Context, log *model.RoutingLog) error
	// GetByID returns a single routing log.
	GetByID(ctx context.Context, id string) (*model.RoutingLog, error)
	// GetDailyStats returns aggregated stats grouped by day, newest first.
	GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error)
	// GetCategoryStats returns request counts per task category.
	GetCategoryStats(ctx context.Context, days int) ([]model.CategoryStats, error)
	// GetTopModels returns the most selected models.
	GetTopModels(ctx context.Context, days, limit int) ([]model.ModelStats, error)
}
