// internal/status/snapshot.go
package status

// Snapshot is exactly what the publisher is allowed to deliver.
// It carries no history beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Class       uint16
	Features    [FeatureCount]uint16
	Unsupported uint16
	Failed      uint16
}

// NewSnapshot is the boot state: health unknown, nothing read.
func NewSnapshot() Snapshot {
	s := Snapshot{Health: HealthUnknown}
	for i := range s.Features {
		s.Features[i] = ValueUnread
	}
	return s
}

// Reading is the outcome of one monitor cycle.
// ErrorCode 0 means the cycle was healthy.
type Reading struct {
	Class       uint16
	Features    [FeatureCount]uint16
	Unsupported uint16
	Failed      uint16
	ErrorCode   uint16
}
