// internal/status/tracker.go
package status

// Tracker owns one drive's snapshot between monitor readings.
// It is not safe for concurrent use; one orchestrator goroutine owns it.
type Tracker struct {
	snap Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{snap: NewSnapshot()}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }

// Observe folds one reading into the snapshot and reports whether anything changed.
// Recovery clears the error code and seconds in error; seconds only advance on Tick.
func (t *Tracker) Observe(r Reading) bool {
	next := t.snap
	next.Class = r.Class
	next.Features = r.Features
	next.Unsupported = r.Unsupported
	next.Failed = r.Failed

	if r.ErrorCode == 0 {
		next.Health = HealthOK
		next.LastErrorCode = 0
		next.SecondsInError = 0
	} else {
		next.Health = HealthError
		next.LastErrorCode = r.ErrorCode
	}

	changed := next != t.snap
	t.snap = next
	return changed
}

// Disable marks the drive as not monitored, with code explaining why.
func (t *Tracker) Disable(code uint16) bool {
	next := t.snap
	next.Health = HealthDisabled
	next.LastErrorCode = code

	changed := next != t.snap
	t.snap = next
	return changed
}

// Tick advances seconds in error at 1 Hz while the drive is unhealthy.
// The counter saturates and never wraps.
func (t *Tracker) Tick() bool {
	if t.snap.Health == HealthOK || t.snap.Health == HealthDisabled {
		return false
	}
	if t.snap.SecondsInError == 0xFFFF {
		return false
	}
	t.snap.SecondsInError++
	return true
}
