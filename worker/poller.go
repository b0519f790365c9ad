package worker

import (
	"context"
	"log/slog"
	"time"

	"newswatch/internal/processor"
)

// Poller drives the feed runner: one full pass immediately, then on a
// fixed interval until shutdown.
type Poller struct {
	Runner   *processor.Runner
	Interval time.Duration
}

func (w *Poller) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Poller) runOnce(ctx context.Context) {
	started := time.Now()
	w.Runner.RunAll(ctx)
	slog.Info("poller: pass complete", "feeds", len(w.Runner.Feeds), "took", time.Since(started).Round(time.Millisecond))
}
