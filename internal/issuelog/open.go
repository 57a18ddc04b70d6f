package issuelog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/clients"
)

// Open builds the Log for the backend named in cfg. Remote backends are
// wrapped in a circuit breaker.
func Open(ctx context.Context, cfg config.Config) (*Log, error) {
	var backend Backend

	switch cfg.IssueLogBackend {
	case config.BackendFile:
		fb, err := NewFileBackend(cfg.IssueLogPath)
		if err != nil {
			return nil, err
		}
		backend = fb
	case config.BackendSQLite:
		sb, err := NewSQLiteBackend(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		backend = sb
	case config.BackendDynamoDB:
		client, err := clients.GetDynamoDBClient(ctx, cfg.AWSRegion, cfg.AWSEndpoint)
		if err != nil {
			return nil, err
		}
		backend = NewBreakerBackend(NewDynamoDBBackend(client, cfg.IssueLogTable), 0)
	case config.BackendValkey:
		vc, err := clients.InitValkey()
		if err != nil {
			return nil, err
		}
		backend = NewBreakerBackend(NewValkeyBackend(vc, cfg.IssueLogKey, clients.CloseValkey), 0)
	default:
		return nil, fmt.Errorf("[IssueLog] unknown backend %q", cfg.IssueLogBackend)
	}

	slog.Info("[IssueLog] Opened issue log",
		slog.String("backend", backend.Name()))
	return New(backend), nil
}
