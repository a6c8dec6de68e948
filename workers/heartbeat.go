package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"courtside/contract"
	"courtside/registry"
)

// HeartbeatWorker periodically re-fetches every registered participant's
// agent card and logs reachability together with the host's own resource
// usage. It observes only: the registry stays exactly as discovery left it.
type HeartbeatWorker struct {
	log      *slog.Logger
	registry *registry.Registry
	resolver contract.CardResolver
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, reg *registry.Registry,
	resolver contract.CardResolver, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, registry: reg, resolver: resolver, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting participant heartbeat worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.checkParticipants(ctx)
			w.logSelfStats(proc)
		}
	}
}

func (w *HeartbeatWorker) checkParticipants(ctx context.Context) {
	for _, conn := range w.registry.Connections() {
		if _, err := w.resolver.Resolve(ctx, conn.Endpoint); err != nil {
			w.log.Warn("Participant unreachable", "name", conn.Card.Name, "endpoint", conn.Endpoint, "error", err)
			continue
		}
		w.log.Debug("Participant reachable", "name", conn.Card.Name, "endpoint", conn.Endpoint)
	}
}

func (w *HeartbeatWorker) logSelfStats(proc *process.Process) {
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		w.log.Warn("Failed to collect self stats", "error", err)
		return
	}
	cpu, err := proc.CPUPercent()
	if err != nil {
		w.log.Warn("Failed to collect self stats", "error", err)
		return
	}
	w.log.Debug("Host self stats", "ram_bytes", memInfo.RSS, "cpu_percent", cpu,
		"participants", w.registry.Len())
}
