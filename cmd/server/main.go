package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nulzo/autorouter/cmd"
	"github.com/nulzo/autorouter/internal/adapters/benchmark"
	"github.com/nulzo/autorouter/internal/adapters/cache"
	"github.com/nulzo/autorouter/internal/adapters/cache/memory"
	"github.com/nulzo/autorouter/internal/adapters/cache/redis"
	"github.com/nulzo/autorouter/internal/adapters/openrouter"
	"github.com/nulzo/autorouter/internal/analytics"
	"github.com/nulzo/autorouter/internal/cli"
	"github.com/nulzo/autorouter/internal/config"
	"github.com/nulzo/autorouter/internal/core/ports"
	"github.com/nulzo/autorouter/internal/core/services/autorouter"
	"github.com/nulzo/autorouter/internal/core/services/catalog"
	"github.com/nulzo/autorouter/internal/llm"
	"github.com/nulzo/autorouter/internal/platform/logger"
	"github.com/nulzo/autorouter/internal/platform/otel"
	"github.com/nulzo/autorouter/internal/server"
	"github.com/nulzo/autorouter/internal/store/sqlite"
	"go.uber.org/zap"

	// registers the openai provider type
	_ "github.com/nulzo/autorouter/internal/llm/openai"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load config: %v\n", cli.CrossMark(), err)
		os.Exit(1)
	}

	log := logger.New(logger.FromConfig(cfg.Log))
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	fmt.Println(cli.Gradient("autorouter "+cmd.AppVersion, cli.BrandBlue, cli.BrandPurple))
	go cmd.CheckForUpdates(ctx, log)

	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer(cfg.Tracing.ServiceName, cmd.AppVersion, log, os.Stdout)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	store, err := newCacheStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	fetcher := catalog.NewFetcher(
		openrouter.NewClient(openrouter.Config{
			BaseURL: cfg.Marketplace.BaseURL,
			APIKey:  cfg.Marketplace.APIKey,
			Timeout: cfg.Marketplace.Timeout,
		}),
		benchmark.NewClient(benchmark.Config{
			BaseURL: cfg.Benchmark.BaseURL,
			APIKey:  cfg.Benchmark.APIKey,
			Timeout: cfg.Benchmark.Timeout,
		}),
		cache.NewMemo(store, log),
		catalog.Config{
			CatalogTTL:           cfg.Catalog.TTL,
			BenchmarkTTL:         cfg.Catalog.BenchmarkTTL,
			FlagshipsPerProvider: cfg.Catalog.FlagshipsPerProvider,
		},
		log,
	)

	provider, err := llm.NewProvider(cfg.Classifier)
	if err != nil {
		return fmt.Errorf("classifier provider: %w", err)
	}
	classifier := autorouter.NewLLMClassifier(provider, cfg.Classifier)
	if err := classifier.Ready(); err != nil {
		log.Warn("classifier is not configured, /v1/autoroute will fail", zap.Error(err))
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.Database.Path, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = repo.Close() }()

	deps := server.Dependencies{
		Autorouter: autorouter.NewService(fetcher, classifier, log),
		Catalog:    fetcher,
		Repo:       repo,
		Version:    cmd.AppVersion,
	}

	if cfg.Analytics.Enabled {
		ingestor := analytics.NewIngestor(log, repo, analytics.IngestorConfig{
			BufferSize:    cfg.Analytics.BufferSize,
			BatchSize:     cfg.Analytics.BatchSize,
			FlushInterval: cfg.Analytics.FlushInterval,
		})
		ingestor.Start(context.Background())
		defer ingestor.Stop()

		deps.Ingestor = ingestor
		deps.Analytics = analytics.NewService(repo)
	}

	return server.New(cfg, log, deps).Run(ctx)
}

// newCacheStore picks the shared Redis cache when enabled and falls back
// to process memory when it is unreachable.
func newCacheStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (ports.CacheService, error) {
	if !cfg.Redis.Enabled {
		return memory.NewMemoryCache(), nil
	}

	rc, err := redis.New(ctx, redis.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})
	if err != nil {
		log.Warn("redis unavailable, using in-memory catalog cache", zap.Error(err))
		return memory.NewMemoryCache(), nil
	}
	log.Info("catalog cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	return rc, nil
}
