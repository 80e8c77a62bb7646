package ports

import (
	"context"

	"github.com/nulzo/autorouter/internal/core/domain"
)

// MarketplaceClient lists the models a marketplace can serve.
type MarketplaceClient interface {
	ListModels(ctx context.Context) ([]domain.MarketplaceModel, error)
}

// BenchmarkClient lists benchmark leaderboard entries.
type BenchmarkClient interface {
	ListBenchmarks(ctx context.Context) ([]domain.BenchmarkModel, error)
}

// Classification is the parsed reply of a classifier call.
type Classification struct {
	Category domain.TaskCategory
	Model    string
	Usage    domain.TokenUsage
}

// Classifier assigns a task category to a prompt.
type Classifier interface {
	// Ready returns a ConfigError when a required setting is missing.
	Ready() error
	Classify(ctx context.Context, prompt string) (*Classification, error)
}
