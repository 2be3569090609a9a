// internal/status/decode.go
package status

import (
	"fmt"
	"strings"
)

// Decode reads a full status block back into a Snapshot and device name.
func Decode(regs []uint16) (Snapshot, string, error) {
	if len(regs) < SlotsPerDevice {
		return Snapshot{}, "", fmt.Errorf("status: block has %d registers, want %d", len(regs), SlotsPerDevice)
	}

	s := Snapshot{
		Health:         regs[SlotHealthCode],
		LastErrorCode:  regs[SlotLastErrorCode],
		SecondsInError: regs[SlotSecondsInError],
		Class:          regs[SlotClass],
		Unsupported:    regs[SlotUnsupportedMask],
		Failed:         regs[SlotFailedMask],
	}
	for f := 0; f < FeatureCount; f++ {
		s.Features[f] = regs[Feature(f).Slot()]
	}

	var b strings.Builder
	for _, r := range regs[SlotDeviceNameStart : SlotDeviceNameEnd+1] {
		for _, c := range []byte{byte(r >> 8), byte(r)} {
			if c == 0 {
				return s, b.String(), nil
			}
			b.WriteByte(c)
		}
	}
	return s, b.String(), nil
}

// HealthString names a health code.
func HealthString(h uint16) string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthStale:
		return "stale"
	case HealthDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("health(%d)", h)
	}
}
