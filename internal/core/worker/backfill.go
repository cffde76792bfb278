package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
)

var ErrQueueFull = errors.New("backfill queue is full")

// Backfiller pushes a stored receipt to the adapters again.
type Backfiller interface {
	Backfill(ctx context.Context, id uuid.UUID) error
}

// BackfillWorker re-pushes receipts in the background, one at a time.
// Each job runs once: a failed push is logged and dropped.
type BackfillWorker struct {
	svc  Backfiller
	jobs chan uuid.UUID
	wg   sync.WaitGroup
}

func NewBackfillWorker(svc Backfiller, queueSize int) *BackfillWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &BackfillWorker{svc: svc, jobs: make(chan uuid.UUID, queueSize)}
}

// Start processes jobs until ctx is cancelled. Jobs still queued at that
// point are discarded.
func (w *BackfillWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		logx.Info().Int("queue_size", cap(w.jobs)).Msg("👷 Backfill Worker started")
		for {
			select {
			case <-ctx.Done():
				logx.Info().Int("dropped", len(w.jobs)).Msg("Backfill Worker stopped")
				return
			case id := <-w.jobs:
				w.process(ctx, id)
			}
		}
	}()
}

// Wait blocks until the worker goroutine has returned.
func (w *BackfillWorker) Wait() {
	w.wg.Wait()
}

// Enqueue queues ids without blocking and returns how many were accepted.
func (w *BackfillWorker) Enqueue(ids ...uuid.UUID) (int, error) {
	for i, id := range ids {
		select {
		case w.jobs <- id:
		default:
			logx.Warn().Int("accepted", i).Int("rejected", len(ids)-i).Msg("Backfill queue is full")
			return i, ErrQueueFull
		}
	}
	return len(ids), nil
}

func (w *BackfillWorker) process(ctx context.Context, id uuid.UUID) {
	logx.Info().Str("receipt_id", id.String()).Msg("Worker: Backfilling receipt")
	if err := w.svc.Backfill(context.WithoutCancel(ctx), id); err != nil {
		logx.Error().Err(err).Str("receipt_id", id.String()).Msg("Worker: Backfill failed")
		return
	}
	logx.Info().Str("receipt_id", id.String()).Msg("✅ Worker: Receipt pushed")
}
