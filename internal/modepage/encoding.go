// internal/modepage/encoding.go
package modepage

import (
	"errors"
	"fmt"
)

// ErrBadValue is returned for an enumeration value with no encoding.
var ErrBadValue = errors.New("modepage: value out of range")

// SAS link rate codes.
const (
	SASRate1_5  = 0x8
	SASRate3    = 0x9
	SASRate6    = 0xA
	SASRate12   = 0xB
	SASRate22_5 = 0xC
)

// MaxSASGeneration is the highest settable SAS link generation.
const MaxSASGeneration = 5

// EncodeSASLinkRate returns the link-rate byte for gen with the hardware
// maximum hw kept in the low nibble. gen 0 programs the hardware maximum.
func EncodeSASLinkRate(gen, hw uint8) (byte, error) {
	hw &= 0x0F
	if gen == 0 {
		return hw<<4 | hw, nil
	}
	if gen > MaxSASGeneration {
		return 0, fmt.Errorf("%w: sas generation %d", ErrBadValue, gen)
	}
	return (SASRate1_5+gen-1)<<4 | hw, nil
}

// DecodeSASLinkRate maps a rate code back to its generation.
func DecodeSASLinkRate(code uint8) (uint8, bool) {
	if code < SASRate1_5 || code > SASRate22_5 {
		return 0, false
	}
	return code - SASRate1_5 + 1, true
}

// SASRateString names a SAS rate code.
func SASRateString(code uint8) string {
	switch code {
	case 0:
		return "unknown"
	case SASRate1_5:
		return "1.5 Gb/s"
	case SASRate3:
		return "3.0 Gb/s"
	case SASRate6:
		return "6.0 Gb/s"
	case SASRate12:
		return "12.0 Gb/s"
	case SASRate22_5:
		return "22.5 Gb/s"
	default:
		return fmt.Sprintf("code %Xh", code)
	}
}

// JIT byte layout: levels in bits 0..3, reserved bits 4..6, bit 7 set
// when variable JIT is disabled.
const (
	JITFieldMask = 0x8F

	jitVJITBit = 0x80
)

// MaxJITMode is the highest JIT level.
const MaxJITMode = 3

// JITState is the decoded JIT byte.
type JITState struct {
	VJITDisabled bool
	Mode         uint8
	Levels       [MaxJITMode + 1]bool
}

// JITBits encodes the JIT field for WriteBits with JITFieldMask.
// Level N sets bits 0..N.
func JITBits(disableVJIT bool, mode uint8) (byte, error) {
	if mode > MaxJITMode {
		return 0, fmt.Errorf("%w: jit mode %d", ErrBadValue, mode)
	}
	var v byte
	if disableVJIT {
		v |= jitVJITBit
	}
	v |= byte(1)<<(mode+1) - 1
	return v, nil
}

// DecodeJIT reads the JIT byte. Mode is the highest level bit set.
func DecodeJIT(b byte) JITState {
	s := JITState{VJITDisabled: b&jitVJITBit != 0}
	for i := 0; i <= MaxJITMode; i++ {
		if b&(1<<i) != 0 {
			s.Levels[i] = true
			s.Mode = uint8(i)
		}
	}
	return s
}
