package analytics

import (
	"context"

	"github.com/nulzo/autorouter/internal/store"
	"github.com/nulzo/autorouter/internal/store/model"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDays = 7
	maxDays     = 365
	topModels   = 10
)

// Overview is the routing activity over a window of days.
type Overview struct {
	Days       int
	Daily      []model.DailyStats
	Categories []model.CategoryStats
	TopModels  []model.ModelStats
}

type Service interface {
	GetUsageOverview(ctx context.Context, days int) (*Overview, error)
}

type service struct {
	repo store.Repository
}

func NewService(repo store.Repository) Service {
	return &service{
		repo: repo,
	}
}

// GetUsageOverview clamps days to [1, 365], defaulting to a week.
func (s *service) GetUsageOverview(ctx context.Context, days int) (*Overview, error) {
	if days <= 0 {
		days = defaultDays
	}
	days = min(days, maxDays)

	out := &Overview{Days: days}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Daily, err = s.repo.Routing().GetDailyStats(gctx, days)
		return err
	})
	g.Go(func() error {
		var err error
		out.Categories, err = s.repo.Routing().GetCategoryStats(gctx, days)
		return err
	})
	g.Go(func() error {
		var err error
		out.TopModels, err = s.repo.Routing().GetTopModels(gctx, days, topModels)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
