package catalog

import (
	"slices"

	"github.com/nulzo/autorouter/internal/core/domain"
)

// SortModels returns a sorted copy of models: flagships first, then ranked
// before unranked, ascending rank, provider and finally name. Provider and
// name comparisons are case-insensitive and locale aware. Fully equal keys
// keep their input order.
func SortModels(models []domain.ModelRecord) []domain.ModelRecord {
	out := slices.Clone(models)
	order := domain.NewOrdering()
	slices.SortStableFunc(out, func(a, b domain.ModelRecord) int {
		return order.Compare(a.OrderKey(), b.OrderKey())
	})
	return out
}
