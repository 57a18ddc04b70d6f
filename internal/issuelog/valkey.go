package issuelog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spacesedan/reviewlens/internal/models"
)

// ListStore is the list API the Valkey backend needs. *clients.ValkeyClient
// implements it.
type ListStore interface {
	RPush(ctx context.Context, key string, value string) (int64, error)
	LRangeAll(ctx context.Context, key string) ([]string, error)
	Ping(ctx context.Context) error
}

// ValkeyBackend keeps entries as JSON strings in a single list. RPUSH is
// atomic on the server and the new list length is the entry's Seq.
type ValkeyBackend struct {
	client ListStore
	key    string
	close  func()
}

func NewValkeyBackend(client ListStore, key string, closeFn func()) *ValkeyBackend {
	if closeFn == nil {
		closeFn = func() {}
	}
	return &ValkeyBackend{client: client, key: key, close: closeFn}
}

func (v *ValkeyBackend) Name() string { return "valkey" }

func (v *ValkeyBackend) Put(ctx context.Context, entry models.IssueLogEntry) (models.IssueLogEntry, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return entry, fmt.Errorf("[ValkeyBackend] failed to marshal entry: %w", err)
	}
	length, err := v.client.RPush(ctx, v.key, string(data))
	if err != nil {
		return entry, fmt.Errorf("[ValkeyBackend] rpush failed: %w", err)
	}
	entry.Seq = length
	return entry, nil
}

func (v *ValkeyBackend) List(ctx context.Context) ([]models.IssueLogEntry, error) {
	raw, err := v.client.LRangeAll(ctx, v.key)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyBackend] lrange failed: %w", err)
	}

	entries := make([]models.IssueLogEntry, 0, len(raw))
	for i, item := range raw {
		var entry models.IssueLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("[ValkeyBackend] corrupt entry at index %d: %w", i, err)
		}
		entry.Seq = int64(i + 1)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (v *ValkeyBackend) Ping(ctx context.Context) error {
	return v.client.Ping(ctx)
}

func (v *ValkeyBackend) Close() error {
	v.close()
	return nil
}
