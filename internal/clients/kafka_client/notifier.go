package kafka_client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/utils"
)

// Publisher sends a batch of issue entries downstream.
type Publisher interface {
	PublishBatch(entries []models.IssueLogEntry) error
}

// Notifier buffers issue entries and publishes them when the buffer fills
// or the flush interval elapses. Notify never blocks on the broker.
type Notifier struct {
	publisher Publisher
	buffer    *utils.BatchBuffer[models.IssueLogEntry]
	interval  time.Duration
	full      chan struct{}
	wg        sync.WaitGroup
}

func NewNotifier(p Publisher, batchSize int, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = BATCH_TIMEOUT
	}
	return &Notifier{
		publisher: p,
		buffer:    utils.NewBatchBuffer[models.IssueLogEntry](batchSize),
		interval:  interval,
		full:      make(chan struct{}, 1),
	}
}

func (n *Notifier) Notify(entry models.IssueLogEntry) {
	if n.buffer.Add(entry) {
		select {
		case n.full <- struct{}{}:
		default:
		}
	}
}

// Start runs the flush loop until ctx is cancelled, then drains what is left.
func (n *Notifier) Start(ctx context.Context) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				n.flush()
				slog.Info("[Notifier] Stopped")
				return
			case <-ticker.C:
				n.flush()
			case <-n.full:
				n.flush()
			}
		}
	}()
}

// Wait blocks until the flush loop has exited.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) flush() {
	batch := n.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}
	if err := n.publisher.PublishBatch(batch); err != nil {
		slog.Warn("[Notifier] Failed to publish issue batch",
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()))
		return
	}
	slog.Info("[Notifier] Published issue batch",
		slog.Int("batch_size", len(batch)))
}
