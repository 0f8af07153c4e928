package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/talenthub/jobboard-be/internal/worker/domain"
	"github.com/talenthub/jobboard-be/internal/worker/storage"
	"github.com/talenthub/jobboard-be/shared/postgresql"
	"github.com/talenthub/jobboard-be/shared/rabbitmq"
)

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
	QueueName     string
}

// Worker consumes domain events and materialises notification rows.
type Worker struct {
	logger        *slog.Logger
	storage       *storage.Storage
	rabbitClient  *rabbitmq.Client
	concurrency   int
	prefetchCount int
	queueName     string
	workerID      string
	eventsChan    chan *domain.EventMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		storage:       storage.NewStorage(cfg.DBClient),
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		queueName:     cfg.QueueName,
		workerID:      fmt.Sprintf("notification-worker-%s", uuid.NewString()[:8]),
		eventsChan:    make(chan *domain.EventMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start subscribes to the event queue, spawns the pool and blocks until
// the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
