// internal/trace/event.go
package trace

import "time"

// Kind is the drive command an event records.
type Kind uint8

const (
	KindModeSense Kind = iota + 1
	KindModeSelect
	KindSCTWrite
	KindSetFeatures
	KindIdentify
)

func (k Kind) String() string {
	switch k {
	case KindModeSense:
		return "mode-sense"
	case KindModeSelect:
		return "mode-select"
	case KindSCTWrite:
		return "sct-write"
	case KindSetFeatures:
		return "set-features"
	case KindIdentify:
		return "identify"
	default:
		return "unknown"
	}
}

// Event is one command issued to a drive.
// CBOR encoding uses integer keys.
type Event struct {
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one process run against one drive (UUID).
	SessionID string `cbor:"2,keyasint"`
	Seq       uint64 `cbor:"3,keyasint"`
	Device    string `cbor:"4,keyasint,omitempty"`
	Kind      Kind   `cbor:"5,keyasint"`

	// Mode page commands.
	Variant string `cbor:"6,keyasint,omitempty"`
	Page    uint8  `cbor:"7,keyasint,omitempty"`
	Subpage uint8  `cbor:"8,keyasint,omitempty"`
	Control uint8  `cbor:"9,keyasint,omitempty"`
	Save    bool   `cbor:"10,keyasint,omitempty"`

	// Len is the transfer length.
	Len int `cbor:"11,keyasint,omitempty"`
	// Out holds outbound data, In inbound data.
	Out []byte `cbor:"12,keyasint,omitempty"`
	In  []byte `cbor:"13,keyasint,omitempty"`

	Duration time.Duration `cbor:"14,keyasint,omitempty"`
	Err      string        `cbor:"15,keyasint,omitempty"`
}
