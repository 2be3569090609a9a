// internal/status/encode.go
package status

// Encode converts a Snapshot into the live part of a status block
// (slots 0 through SlotLive-1). The device name is added by the publisher.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotLive)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError
	regs[SlotClass] = s.Class
	for f := 0; f < FeatureCount; f++ {
		regs[Feature(f).Slot()] = s.Features[f]
	}
	regs[SlotUnsupportedMask] = s.Unsupported
	regs[SlotFailedMask] = s.Failed

	return regs
}

// EncodeClass packs a class and family into the class slot.
func EncodeClass(class, family uint8) uint16 {
	return uint16(class)<<8 | uint16(family)
}
