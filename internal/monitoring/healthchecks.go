package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15

// Pinger is anything with a cheap liveness probe, such as *issuelog.Log.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorIssueLogHealth probes target every interval and stores the result
// in healthy. It checks once immediately.
func MonitorIssueLogHealth(ctx context.Context, target Pinger, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second * HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		err := target.Ping(pingCtx)
		wasHealthy := healthy.Swap(err == nil)
		if err != nil && wasHealthy {
			slog.Warn("[HealthCheck] Issue log is unhealthy",
				slog.String("error", err.Error()))
		} else if err == nil && !wasHealthy {
			slog.Info("[HealthCheck] Issue log recovered")
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
