// internal/monitor/types.go
package monitor

import (
	"time"

	"github.com/tamzrod/drivecfg/internal/status"
)

// Result is the outcome of one monitor cycle.
type Result struct {
	DriveID string
	At      time.Time

	// Reading carries the per-feature values; ErrorCode is left for the
	// consumer to fill from Err.
	Reading status.Reading

	Err error // first feature error other than not supported
}
