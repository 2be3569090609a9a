// internal/device/identify.go
package device

import "encoding/binary"

// IdentifyLen is the size of an ATA IDENTIFY DEVICE block.
const IdentifyLen = 512

// IDENTIFY words consulted by this module.
const (
	WordCapabilities     = 49
	WordSATACapabilities = 76
	WordSATAAdditional   = 77
	WordCommandSet2      = 84
	WordCommandSet2En    = 87
	WordPowerBalance     = 149
	WordSpinUp           = 155
	WordSCTTransport     = 206
	WordRotationRate     = 217
)

// IdentifyWord returns IDENTIFY word n, or 0 when buf is too short.
// Words are little-endian.
func IdentifyWord(buf []byte, n int) uint16 {
	off := n * 2
	if off+2 > len(buf) {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

// CapsFromIdentify derives the capability bitmap from an IDENTIFY block.
func CapsFromIdentify(buf []byte) Caps {
	var c Caps

	sct := IdentifyWord(buf, WordSCTTransport)
	if sct&(1<<7) != 0 {
		c |= CapSCTPhySpeed
	}
	if sct&(1<<4) != 0 {
		c |= CapSCTFeatureControl
	}

	pb := IdentifyWord(buf, WordPowerBalance)
	if pb&(1<<8) != 0 {
		c |= CapPowerBalanceLegacy
	}
	if pb&(1<<10) != 0 {
		c |= CapPowerBalance
	}

	if IdentifyWord(buf, WordCommandSet2)&(1<<5) != 0 ||
		IdentifyWord(buf, WordCommandSet2En)&(1<<5) != 0 {
		c |= CapGPL
	}
	if IdentifyWord(buf, WordCapabilities)&(1<<8) != 0 {
		c |= CapDMA
	}

	return c
}

// SolidStateFromIdentify reports a non-rotating medium (word 217 == 1).
func SolidStateFromIdentify(buf []byte) bool {
	return IdentifyWord(buf, WordRotationRate) == 1
}
