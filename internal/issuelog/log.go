// Package issuelog is the append-only record of reviews that triggered at
// least one issue tag.
package issuelog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/reviewlens/internal/models"
)

// Backend persists entries. Put may assign Seq and must keep List in
// insertion order.
type Backend interface {
	Name() string
	Put(ctx context.Context, entry models.IssueLogEntry) (models.IssueLogEntry, error)
	List(ctx context.Context) ([]models.IssueLogEntry, error)
	Ping(ctx context.Context) error
	Close() error
}

// Log serializes every append behind one write lock, so read-modify-write
// backends never lose updates to concurrent requests.
type Log struct {
	backend Backend
	mu      sync.Mutex
	now     func() time.Time
}

func New(backend Backend) *Log {
	return &Log{backend: backend, now: time.Now}
}

func (l *Log) Backend() string {
	return l.backend.Name()
}

// Append stores review with its tags. It is a no-op returning nil when
// issues is empty.
func (l *Log) Append(ctx context.Context, review string, issues []models.IssueTag) (*models.IssueLogEntry, error) {
	if len(issues) == 0 {
		return nil, nil
	}

	entry := models.IssueLogEntry{
		ID:        uuid.NewString(),
		Review:    review,
		Issues:    append([]models.IssueTag(nil), issues...),
		CreatedAt: l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	saved, err := l.backend.Put(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("[IssueLog] %s append failed: %w: %w", l.backend.Name(), models.ErrPersistence, err)
	}

	slog.Debug("[IssueLog] Appended entry",
		slog.String("backend", l.backend.Name()),
		slog.String("id", saved.ID),
		slog.Int64("seq", saved.Seq))
	return &saved, nil
}

// ReadAll returns every entry in insertion order.
func (l *Log) ReadAll(ctx context.Context) ([]models.IssueLogEntry, error) {
	entries, err := l.backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("[IssueLog] %s read failed: %w: %w", l.backend.Name(), models.ErrPersistence, err)
	}
	if entries == nil {
		entries = []models.IssueLogEntry{}
	}
	return entries, nil
}

// BreakerState names the circuit breaker state of a remote backend, or
// returns "" when the backend has no breaker.
func (l *Log) BreakerState() string {
	if b, ok := l.backend.(*BreakerBackend); ok {
		return b.State().String()
	}
	return ""
}

func (l *Log) Ping(ctx context.Context) error {
	return l.backend.Ping(ctx)
}

func (l *Log) Close() error {
	return l.backend.Close()
}
