package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/podlift/podlift/internal/api"
	"github.com/podlift/podlift/internal/logging"
)

// Monitor tracks server reachability. The CLI switches between online and
// read-only offline mode based on it.
type Monitor struct {
	client api.Client
	log    logging.Logger
	online atomic.Bool

	// OnChange, when set before Watch, runs on every connectivity flip.
	OnChange func(online bool)
}

func NewMonitor(client api.Client, log logging.Logger) *Monitor {
	m := &Monitor{client: client, log: log}
	m.online.Store(true)
	return m
}

func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Check pings the server once and records the result.
func (m *Monitor) Check(ctx context.Context) bool {
	online := m.client.Ping(ctx) == nil
	if m.online.Swap(online) != online {
		if online {
			m.log.Info(ctx, "server reachable, back online")
		} else {
			m.log.Warn(ctx, "server unreachable, switching to offline mode")
		}
		if m.OnChange != nil {
			m.OnChange(online)
		}
	}
	return online
}

// Watch re-checks connectivity every interval until ctx is done.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
