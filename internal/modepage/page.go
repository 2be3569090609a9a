// internal/modepage/page.go
package modepage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tamzrod/drivecfg/internal/device"
)

// ErrOutOfRange is returned for a field access past the validated page.
var ErrOutOfRange = errors.New("modepage: offset outside page")

// Spec identifies one mode page and how to ask for it.
type Spec struct {
	Name    string
	Code    uint8
	Subpage uint8

	// SubpageFormat is true for pages with SPF set (4-byte page header).
	SubpageFormat bool

	DisableBlockDescriptors bool
	LongLBA                 bool
}

// pageHeaderLen is the size of the page's own header (code, subpage, length).
func (s Spec) pageHeaderLen() int {
	if s.SubpageFormat {
		return 4
	}
	return 2
}

func (s Spec) request(pc device.PageControl) device.ModeSenseRequest {
	return device.ModeSenseRequest{
		Page:                    s.Code,
		Subpage:                 s.Subpage,
		Control:                 pc,
		DisableBlockDescriptors: s.DisableBlockDescriptors,
		LongLBA:                 s.LongLBA,
	}
}

func (s Spec) String() string {
	if s.Name != "" {
		return s.Name
	}
	if s.SubpageFormat {
		return fmt.Sprintf("page %02Xh/%02Xh", s.Code, s.Subpage)
	}
	return fmt.Sprintf("page %02Xh", s.Code)
}

// Page is one fetched and validated mode page with its parameter header.
// Only Fetch creates a Page; every accessor is body-relative and bounded
// by the validated length.
type Page struct {
	Variant device.Variant
	Spec    Spec

	buf      []byte
	valid    int
	bdLen    int
	pageLen  int
	fetchLen int
}

// body is the buffer offset of the page's first byte.
func (p *Page) body() int { return p.Variant.HeaderLen() + p.bdLen }

// Len is the total page size including the page header.
func (p *Page) Len() int { return p.pageLen + p.Spec.pageHeaderLen() }

// BlockDescriptorLen is the block descriptor length declared in the header.
func (p *Page) BlockDescriptorLen() int { return p.bdLen }

// FetchLen is the buffer size of the read that produced this page.
func (p *Page) FetchLen() int { return p.fetchLen }

func (p *Page) index(off int) (int, error) {
	i := p.body() + off
	if off < 0 || i >= p.valid {
		return 0, fmt.Errorf("%w: %s offset %d (len %d)", ErrOutOfRange, p.Spec, off, p.Len())
	}
	return i, nil
}

// Byte returns the body byte at off.
func (p *Page) Byte(off int) (byte, error) {
	i, err := p.index(off)
	if err != nil {
		return 0, err
	}
	return p.buf[i], nil
}

// ReadBit returns bit of the body byte at off.
func (p *Page) ReadBit(off int, bit uint) (bool, error) {
	i, err := p.index(off)
	if err != nil {
		return false, err
	}
	return ReadBit(p.buf, i, bit), nil
}

// WriteBits replaces the mask bits of the body byte at off.
func (p *Page) WriteBits(off int, mask, value byte) error {
	i, err := p.index(off)
	if err != nil {
		return err
	}
	WriteBits(p.buf, i, mask, value)
	return nil
}

// SelectData returns the parameter list to send back with MODE SELECT.
// The mode data length and PS bit are reserved on select and are cleared.
func (p *Page) SelectData() []byte {
	out := make([]byte, p.valid)
	copy(out, p.buf[:p.valid])

	switch p.Variant {
	case device.Long:
		binary.BigEndian.PutUint16(out[0:2], 0)
	case device.Short:
		out[0] = 0
	}
	out[p.body()] &^= 0x80
	return out
}
