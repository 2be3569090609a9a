// internal/modepage/codec_test.go
package modepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBits_NeverTouchesBitsOutsideMask(t *testing.T) {
	buf := make([]byte, 1)
	for mask := 0; mask < 256; mask++ {
		for orig := 0; orig < 256; orig++ {
			for value := 0; value < 256; value += 7 {
				buf[0] = byte(orig)
				WriteBits(buf, 0, byte(mask), byte(value))
				if byte(orig)&^byte(mask) != buf[0]&^byte(mask) {
					t.Fatalf("mask=%#x orig=%#x value=%#x result=%#x", mask, orig, value, buf[0])
				}
			}
		}
	}
}

func TestWriteBits_ShiftsIntoMask(t *testing.T) {
	buf := []byte{0x0B}
	WriteBits(buf, 0, 0xF0, 0x9)
	assert.Equal(t, byte(0x9B), buf[0])

	WriteBits(buf, 0, 0x30, 0x2)
	assert.Equal(t, byte(0xAB), buf[0])
}

func TestReadBit(t *testing.T) {
	buf := []byte{0x00, 0x81}
	assert.True(t, ReadBit(buf, 1, 0))
	assert.True(t, ReadBit(buf, 1, 7))
	assert.False(t, ReadBit(buf, 1, 3))
	assert.False(t, ReadBit(buf, 0, 0))
}

func TestSASLinkRate_RevertMatchesHardwareMax(t *testing.T) {
	for hw := uint8(0); hw < 16; hw++ {
		b, err := EncodeSASLinkRate(0, hw)
		require.NoError(t, err)
		assert.Equal(t, hw, HighNibble(b), "hw=%d", hw)
		assert.Equal(t, hw, LowNibble(b), "hw=%d", hw)
	}
}

func TestSASLinkRate_RoundTrip(t *testing.T) {
	for gen := uint8(1); gen <= MaxSASGeneration; gen++ {
		b, err := EncodeSASLinkRate(gen, 0xB)
		require.NoError(t, err)
		assert.Equal(t, uint8(0xB), LowNibble(b))

		got, ok := DecodeSASLinkRate(HighNibble(b))
		require.True(t, ok)
		assert.Equal(t, gen, got)
	}

	_, err := EncodeSASLinkRate(MaxSASGeneration+1, 0xB)
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestJIT_LevelsAreCumulative(t *testing.T) {
	for mode := uint8(0); mode <= MaxJITMode; mode++ {
		v, err := JITBits(false, mode)
		require.NoError(t, err)
		for bit := uint8(0); bit <= mode; bit++ {
			assert.NotZero(t, v&(1<<bit), "mode %d bit %d", mode, bit)
		}
	}
}

func TestJIT_RoundTripAndReservedBits(t *testing.T) {
	for _, disable := range []bool{false, true} {
		for mode := uint8(0); mode <= MaxJITMode; mode++ {
			buf := []byte{0x70}
			v, err := JITBits(disable, mode)
			require.NoError(t, err)
			WriteBits(buf, 0, JITFieldMask, v)

			assert.Equal(t, byte(0x70), buf[0]&0x70, "reserved bits kept")
			s := DecodeJIT(buf[0])
			assert.Equal(t, disable, s.VJITDisabled)
			assert.Equal(t, mode, s.Mode)
		}
	}

	_, err := JITBits(false, MaxJITMode+1)
	assert.ErrorIs(t, err, ErrBadValue)
}
