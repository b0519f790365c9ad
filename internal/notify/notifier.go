// Package notify delivers run notifications. Delivery failures are the
// caller's to log; they never crash a run.
package notify

import "context"

// Notifier sends one message. Implementations are synchronous from the
// caller's perspective.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}
