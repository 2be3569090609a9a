// internal/cmdbuf/cmdbuf_test.go
package cmdbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LittleEndianByteForByte(t *testing.T) {
	buf, err := Build(12, 0xAA,
		U16(0, 0xBEEF),
		U32(4, 0x01020304),
		U8(10, 0x7F),
	)
	require.NoError(t, err)

	want := []byte{
		0xEF, 0xBE, 0xAA, 0xAA,
		0x04, 0x03, 0x02, 0x01,
		0xAA, 0xAA, 0x7F, 0xAA,
	}
	assert.Equal(t, want, buf)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(0, Reserved)
	assert.ErrorIs(t, err, ErrAlloc)

	_, err = Build(MaxSize+1, Reserved)
	assert.ErrorIs(t, err, ErrAlloc)

	_, err = Build(4, Reserved, U32(1, 1))
	assert.ErrorIs(t, err, ErrField)

	_, err = Build(4, Reserved, Field{Offset: 0, Width: 0})
	assert.ErrorIs(t, err, ErrField)
}

func TestSCTPhySpeedLayout(t *testing.T) {
	buf, err := SCTPhySpeed(2)
	require.NoError(t, err)
	require.Len(t, buf, SCTBlockLen)

	assert.Equal(t, []byte{0xBE, 0x00}, buf[0:2])
	assert.Equal(t, []byte{0x03, 0x00}, buf[2:4])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, buf[4:8])
	assert.Equal(t, []byte{0x01, 0x00}, buf[8:10])
	assert.Equal(t, []byte{0x02, 0x00}, buf[28:30])

	for i := 10; i < 28; i++ {
		assert.Zero(t, buf[i], "byte %d", i)
	}
	for i := 30; i < SCTBlockLen; i++ {
		if buf[i] != 0 {
			t.Fatalf("byte %d not reserved: %#x", i, buf[i])
		}
	}
}

func TestSCTFeatureControlLayout(t *testing.T) {
	buf, err := SCTFeatureControl(SCTFunctionSetState, 0xD001, 0x0002, SCTOptionPreserve)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x04, 0x00, 0x01, 0x00, 0x01, 0xD0, 0x02, 0x00, 0x01, 0x00}, buf[0:10])
}

func TestModeSenseCDBs(t *testing.T) {
	assert.Equal(t,
		[]byte{0x5A, 0x18, 0x19, 0x01, 0, 0, 0, 0x00, 0x70, 0},
		ModeSense10(0x19, 0x01, 0, true, true, 112),
	)
	assert.Equal(t,
		[]byte{0x1A, 0x08, 0x80, 0x00, 16, 0},
		ModeSense6(0x00, 0x00, 2, true, 16),
	)
}

func TestModeSelectCDBs(t *testing.T) {
	assert.Equal(t, []byte{0x55, 0x11, 0, 0, 0, 0, 0, 0x00, 0x14, 0}, ModeSelect10(true, 20))
	assert.Equal(t, []byte{0x15, 0x10, 0, 0, 16, 0}, ModeSelect6(false, 16))
}

func TestATAPassThrough16(t *testing.T) {
	cdb := ATAPassThrough16(ATATaskfile{
		Command:  ATASmart,
		Feature:  SmartWriteLog,
		Count:    1,
		LBA:      0xC24F00 | SCTLogAddress,
		Protocol: ATAProtoPIOOut,
		Blocks:   1,
	})

	assert.Equal(t, byte(OpATAPassThrough16), cdb[0])
	assert.Equal(t, byte(ATAProtoPIOOut<<1|1), cdb[1])
	assert.Equal(t, byte(0x06), cdb[2])
	assert.Equal(t, byte(SmartWriteLog), cdb[4])
	assert.Equal(t, byte(1), cdb[6])
	assert.Equal(t, byte(SCTLogAddress), cdb[8])
	assert.Equal(t, byte(0x4F), cdb[10])
	assert.Equal(t, byte(0xC2), cdb[12])
	assert.Equal(t, byte(ATASmart), cdb[14])
}
