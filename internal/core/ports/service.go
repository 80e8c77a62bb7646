package ports

import (
	"context"

	"github.com/nulzo/autorouter/internal/core/domain"
)

// ModelFilter narrows a catalog listing.
type ModelFilter struct {
	Provider     string
	FlagshipOnly bool
}

// CatalogSource yields the current sorted catalog.
type CatalogSource interface {
	Catalog(ctx context.Context) ([]domain.ModelRecord, error)
}

// ModelCatalog is the read side of the catalog exposed over HTTP.
type ModelCatalog interface {
	CatalogSource
	Models(ctx context.Context, filter ModelFilter) ([]domain.ModelRecord, error)
	// Refresh drops the cached catalog so the next read refetches it.
	Refresh(ctx context.Context) error
}

// Autorouter picks a model for a prompt.
type Autorouter interface {
	SelectOptimalModel(ctx context.Context, prompt string) (*domain.AutorouteResult, error)
}
