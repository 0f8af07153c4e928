package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talenthub/jobboard-be/internal/worker/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency
// configuration.
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop is the main processing loop for each worker goroutine.
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Info("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Info("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-w.eventsChan:
			if !ok {
				return
			}

			err := w.processEvent(ctx, msg)

			channel := w.rabbitClient.GetChannel()
			if channel == nil {
				w.logger.Error("Failed to get RabbitMQ channel for ACK/NACK",
					slog.String("worker_name", workerName),
					slog.String("routing_key", msg.RoutingKey),
				)
				continue
			}

			if err != nil {
				requeue := w.shouldRequeue(err)
				w.logger.Error("Event processing failed",
					slog.String("worker_name", workerName),
					slog.String("routing_key", msg.RoutingKey),
					slog.Bool("requeue", requeue),
					slog.String("error", err.Error()),
				)
				if nackErr := channel.Nack(msg.DeliveryTag, false, requeue); nackErr != nil {
					w.logger.Error("Failed to NACK event",
						slog.String("worker_name", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := channel.Ack(msg.DeliveryTag, false); ackErr != nil {
				w.logger.Error("Failed to ACK event",
					slog.String("worker_name", workerName),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}

// shouldRequeue decides the NACK requeue flag. Malformed and unknown
// events can never succeed; storage hiccups can.
func (w *Worker) shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrMalformedEvent) || errors.Is(err, domain.ErrUnknownEventType) {
		return false
	}

	var retryable *domain.RetryableError
	return errors.As(err, &retryable)
}
