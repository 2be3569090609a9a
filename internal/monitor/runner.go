// internal/monitor/runner.go
package monitor

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits a Result per interval on out.
// One goroutine per drive. No overlap. No retries.
// Cancellation is only observed between cycles.
func (m *Monitor) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := m.ReadOnce()
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
