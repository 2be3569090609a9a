// internal/cmdbuf/cmdbuf.go
package cmdbuf

import (
	"errors"
	"fmt"
)

// Reserved is the value written to every byte no field claims.
const Reserved byte = 0x00

// MaxSize is the allocation ceiling for one command buffer.
const MaxSize = 1 << 16

var (
	// ErrAlloc means the buffer could not be allocated at the requested size.
	ErrAlloc = errors.New("cmdbuf: allocation failed")
	// ErrField means a field does not fit inside the buffer.
	ErrField = errors.New("cmdbuf: field out of range")
)

// Field is one numeric value placed at a fixed offset.
// Width is in bytes (1, 2, 4 or 8); wider values are little-endian.
type Field struct {
	Offset int
	Width  int
	Value  uint64
}

// U8 is a one-byte field.
func U8(off int, v uint8) Field { return Field{Offset: off, Width: 1, Value: uint64(v)} }

// U16 is a two-byte little-endian field.
func U16(off int, v uint16) Field { return Field{Offset: off, Width: 2, Value: uint64(v)} }

// U32 is a four-byte little-endian field.
func U32(off int, v uint32) Field { return Field{Offset: off, Width: 4, Value: uint64(v)} }

// Build allocates size bytes set to reserved and writes every field.
// Either the whole buffer is populated or an error is returned.
func Build(size int, reserved byte, fields ...Field) ([]byte, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: size %d", ErrAlloc, size)
	}

	buf := make([]byte, size)
	if reserved != 0 {
		for i := range buf {
			buf[i] = reserved
		}
	}

	for _, f := range fields {
		if f.Width <= 0 || f.Width > 8 || f.Offset < 0 || f.Offset+f.Width > size {
			return nil, fmt.Errorf("%w: offset=%d width=%d size=%d", ErrField, f.Offset, f.Width, size)
		}
		// one byte at a time, least significant first
		for i := 0; i < f.Width; i++ {
			buf[f.Offset+i] = byte(f.Value >> (8 * i))
		}
	}

	return buf, nil
}
