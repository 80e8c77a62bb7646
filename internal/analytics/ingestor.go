package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/nulzo/autorouter/internal/store"
	"github.com/nulzo/autorouter/internal/store/model"
	"go.uber.org/zap"
)

// Ingestor handles the asynchronous persistence of routing logs.
type Ingestor interface {
	Log(log *model.RoutingLog)
	Start(ctx context.Context)
	Stop()
}

type IngestorConfig struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	logChan   chan *model.RoutingLog
	batchSize int
	flushTime time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

func NewIngestor(logger *zap.Logger, repo store.Repository, cfg IngestorConfig) Ingestor {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	return &ingestor{
		logger:    logger,
		repo:      repo,
		logChan:   make(chan *model.RoutingLog, cfg.BufferSize),
		batchSize: cfg.BatchSize,
		flushTime: cfg.FlushInterval,
		done:      make(chan struct{}),
	}
}

// Log never blocks the request path; when the buffer is full the log is dropped.
func (i *ingestor) Log(log *model.RoutingLog) {
	select {
	case i.logChan <- log:
	default:
		i.logger.Warn("Analytics buffer full, dropping log", zap.String("request_id", log.ID))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	go i.worker(ctx)
}

// Stop flushes what is buffered and waits for the worker to exit.
// Log must not be called after Stop.
func (i *ingestor) Stop() {
	i.stopOnce.Do(func() {
		close(i.logChan)
	})
	<-i.done
}

func (i *ingestor) worker(ctx context.Context) {
	defer close(i.done)

	batch := make([]*model.RoutingLog, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		err := i.repo.WithTx(context.Background(), func(tx store.Repository) error {
			for _, log := range batch {
				if err := tx.Routing().Log(context.Background(), log); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			i.logger.Error("Failed to persist routing logs", zap.Int("count", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case log, ok := <-i.logChan:
			if !ok {
				flush()
				return
			}
			batch = append(batch, log)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			// drain whatever is already buffered
			for {
				select {
				case log, ok := <-i.logChan:
					if !ok {
						flush()
						return
					}
					batch = append(batch, log)
				default:
					flush()
					return
				}
			}
		}
	}
}
