// internal/modepage/codec.go
package modepage

import "math/bits"

// ReadBit reports bit (0 = LSB) of buf[off].
func ReadBit(buf []byte, off int, bit uint) bool {
	return buf[off]&(1<<bit) != 0
}

// WriteBits clears exactly the mask bits of buf[off] and ORs in value
// shifted to the mask's lowest set bit. Bits outside mask are never touched.
func WriteBits(buf []byte, off int, mask, value byte) {
	if mask == 0 {
		return
	}
	shift := bits.TrailingZeros8(mask)
	buf[off] = buf[off]&^mask | (value<<shift)&mask
}

// HighNibble returns bits 7:4 of b.
func HighNibble(b byte) byte { return b >> 4 }

// LowNibble returns bits 3:0 of b.
func LowNibble(b byte) byte { return b & 0x0F }
