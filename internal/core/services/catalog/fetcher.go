// Package catalog builds the ranked model catalog from the marketplace
// listing and the benchmark feed.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/nulzo/autorouter/internal/adapters/cache"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/internal/core/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	catalogCacheKey   = "catalog:models"
	benchmarkCacheKey = "catalog:benchmarks"

	DefaultCatalogTTL   = time.Hour
	DefaultBenchmarkTTL = 24 * time.Hour
)

type Config struct {
	CatalogTTL   time.Duration
	BenchmarkTTL time.Duration
	// FlagshipsPerProvider defaults to 1; a negative value disables flagships.
	FlagshipsPerProvider int
}

// Fetcher owns the catalog cache entries. Consumers only read them.
type Fetcher struct {
	marketplace ports.MarketplaceClient
	benchmarks  ports.BenchmarkClient
	memo        *cache.Memo
	config      Config
	logger      *zap.Logger
	tracer      trace.Tracer
}

var _ ports.ModelCatalog = (*Fetcher)(nil)

func NewFetcher(marketplace ports.MarketplaceClient, benchmarks ports.BenchmarkClient, memo *cache.Memo, cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.CatalogTTL <= 0 {
		cfg.CatalogTTL = DefaultCatalogTTL
	}
	if cfg.BenchmarkTTL <= 0 {
		cfg.BenchmarkTTL = DefaultBenchmarkTTL
	}
	if cfg.FlagshipsPerProvider == 0 {
		cfg.FlagshipsPerProvider = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		marketplace: marketplace,
		benchmarks:  benchmarks,
		memo:        memo,
		config:      cfg,
		logger:      logger,
		tracer:      otel.Tracer("github.com/nulzo/autorouter/catalog"),
	}
}

// Catalog returns the cached catalog, refreshing it at most once per TTL.
func (f *Fetcher) Catalog(ctx context.Context) ([]domain.ModelRecord, error) {
	return cache.GetOrRefresh(ctx, f.memo, catalogCacheKey, f.config.CatalogTTL, f.FetchCatalog)
}

// Models returns the cached catalog narrowed by filter.
func (f *Fetcher) Models(ctx context.Context, filter ports.ModelFilter) ([]domain.ModelRecord, error) {
	records, err := f.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ModelRecord, 0, len(records))
	for _, r := range records {
		if filter.FlagshipOnly && !r.Flagship {
			continue
		}
		if filter.Provider != "" && !strings.EqualFold(filter.Provider, r.Provider) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Refresh drops the cached catalog. The benchmark feed keeps its own TTL.
func (f *Fetcher) Refresh(ctx context.Context) error {
	return f.memo.Invalidate(ctx, catalogCacheKey)
}

// FetchCatalog builds a fresh catalog. The marketplace listing and the
// benchmark feed are fetched concurrently; the first failure aborts both.
func (f *Fetcher) FetchCatalog(ctx context.Context) ([]domain.ModelRecord, error) {
	ctx, span := f.tracer.Start(ctx, "catalog.FetchCatalog")
	defer span.End()

	start := time.Now()

	var (
		listing []domain.MarketplaceModel
		ranked  []domain.BenchmarkModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listing, err = f.marketplace.ListModels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ranked, err = f.rankings(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog fetch failed")
		f.logger.Error("Catalog refresh failed", zap.Error(err))
		return nil, err
	}

	matches := MatchFlagshipModels(listing, ranked)

	records := make([]domain.ModelRecord, 0, len(listing))
	for _, m := range listing {
		var match *domain.MatchEntry
		if e, ok := matches[m.ID]; ok {
			match = &e
		}
		record, err := TransformOpenRouterModel(m, match)
		if err != nil {
			span.RecordError(err)
			return nil, domain.UpstreamUnavailableError(domain.CauseUpstream, "marketplace returned an invalid model", err)
		}
		records = append(records, record)
	}

	sorted := SortModels(records)

	span.SetAttributes(
		attribute.Int("catalog.models", len(sorted)),
		attribute.Int("catalog.matched", len(matches)),
	)
	f.logger.Info("Catalog refreshed",
		zap.Int("models", len(sorted)),
		zap.Int("benchmarks", len(ranked)),
		zap.Int("matched", len(matches)),
		zap.Duration("took", time.Since(start)),
	)

	return sorted, nil
}

func (f *Fetcher) rankings(ctx context.Context) ([]domain.BenchmarkModel, error) {
	return cache.GetOrRefresh(ctx, f.memo, benchmarkCacheKey, f.config.BenchmarkTTL, func(ctx context.Context) ([]domain.BenchmarkModel, error) {
		entries, err := f.benchmarks.ListBenchmarks(ctx)
		if err != nil {
			return nil, err
		}
		return RankBenchmarks(entries, f.config.FlagshipsPerProvider), nil
	})
}
