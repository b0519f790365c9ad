package processor

import (
	"context"
	"log/slog"
)

// Runner executes the pipeline for every configured feed, one feed at
// a time. Feeds share nothing but the scorer's admission gate, so they
// could run concurrently without changing any contract; sequential
// keeps one feed's burst from starving another's scoring budget.
type Runner struct {
	Processor *Processor
	Feeds     []Feed
}

// RunAll processes each feed to completion. A feed's failure is
// contained by Processor.Run; cancellation stops between feeds.
func (r *Runner) RunAll(ctx context.Context) {
	for _, f := range r.Feeds {
		select {
		case <-ctx.Done():
			slog.Info("run cancelled", "remaining", f.Name)
			return
		default:
		}
		r.Processor.Run(ctx, f)
	}
}
