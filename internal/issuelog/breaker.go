package issuelog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"github.com/spacesedan/reviewlens/internal/models"
)

// BreakerBackend fails fast once a remote backend keeps erroring, so a dead
// store does not add a network timeout to every review.
type BreakerBackend struct {
	Backend
	cb *gobreaker.CircuitBreaker
}

func NewBreakerBackend(inner Backend, openFor time.Duration) *BreakerBackend {
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	settings := gobreaker.Settings{
		Name:        "issuelog-" + inner.Name(),
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("[CircuitBreaker] State changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	return &BreakerBackend{Backend: inner, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *BreakerBackend) Put(ctx context.Context, entry models.IssueLogEntry) (models.IssueLogEntry, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.Backend.Put(ctx, entry)
	})
	if err != nil {
		return entry, err
	}
	return out.(models.IssueLogEntry), nil
}

func (b *BreakerBackend) List(ctx context.Context) ([]models.IssueLogEntry, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.Backend.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.IssueLogEntry), nil
}

// State exposes the breaker state for health reporting.
func (b *BreakerBackend) State() gobreaker.State {
	return b.cb.State()
}
