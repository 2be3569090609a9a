// internal/device/devicetest/fake.go
package devicetest

import (
	"encoding/binary"
	"errors"

	"github.com/tamzrod/drivecfg/internal/device"
)

// PageKey addresses one stored mode page.
type PageKey struct {
	Page    uint8
	Subpage uint8
	Control device.PageControl
}

// SenseCall is one recorded MODE SENSE.
type SenseCall struct {
	Variant device.Variant
	Req     device.ModeSenseRequest
	Len     int
}

// SelectCall is one recorded MODE SELECT.
type SelectCall struct {
	Variant device.Variant
	Data    []byte
	Save    bool
}

// Fake is a scripted in-memory drive.
// Pages hold page bodies (page header included, parameter header excluded).
type Fake struct {
	Pages map[PageKey][]byte

	// BlockDescriptor is returned between the header and the page when set.
	BlockDescriptor []byte

	LongFails  bool
	ShortFails bool
	// FailSenseAfter makes every MODE SENSE after the first N fail (0 = never).
	FailSenseAfter int
	SelectErr      error

	// SCTState holds SCT feature control state per feature code.
	SCTState map[uint16]uint16
	SCTErr   error

	SetFeaturesErr error

	IdentifyData []byte
	IdentifyErr  error

	Senses      []SenseCall
	Selects     []SelectCall
	SCTWrites   [][]byte
	FeatureCmds []device.SetFeatures
	Identifies  int
}

// ErrScripted is returned by scripted failures.
var ErrScripted = errors.New("devicetest: scripted failure")

// New returns an empty fake drive.
func New() *Fake {
	return &Fake{
		Pages:    make(map[PageKey][]byte),
		SCTState: make(map[uint16]uint16),
	}
}

// SetPage stores a page body for a page control.
func (f *Fake) SetPage(page, subpage uint8, pc device.PageControl, body []byte) {
	f.Pages[PageKey{Page: page, Subpage: subpage, Control: pc}] = append([]byte(nil), body...)
}

// Page returns a stored page body.
func (f *Fake) Page(page, subpage uint8, pc device.PageControl) []byte {
	return f.Pages[PageKey{Page: page, Subpage: subpage, Control: pc}]
}

// Calls reports how many device commands have been issued in total.
func (f *Fake) Calls() int {
	return len(f.Senses) + len(f.Selects) + len(f.SCTWrites) + len(f.FeatureCmds) + f.Identifies
}

func (f *Fake) ModeSense(v device.Variant, req device.ModeSenseRequest, buf []byte) error {
	f.Senses = append(f.Senses, SenseCall{Variant: v, Req: req, Len: len(buf)})

	if f.FailSenseAfter > 0 && len(f.Senses) > f.FailSenseAfter {
		return ErrScripted
	}
	if v == device.Long && f.LongFails {
		return ErrScripted
	}
	if v == device.Short && f.ShortFails {
		return ErrScripted
	}

	body, ok := f.Pages[PageKey{Page: req.Page, Subpage: req.Subpage, Control: req.Control}]
	if !ok {
		return ErrScripted
	}

	resp := f.response(v, body)
	for i := range buf {
		buf[i] = 0
	}
	copy(buf, resp)
	return nil
}

func (f *Fake) response(v device.Variant, body []byte) []byte {
	hl := v.HeaderLen()
	total := hl + len(f.BlockDescriptor) + len(body)
	resp := make([]byte, total)

	switch v {
	case device.Long:
		binary.BigEndian.PutUint16(resp[0:2], uint16(total-2))
		binary.BigEndian.PutUint16(resp[6:8], uint16(len(f.BlockDescriptor)))
	case device.Short:
		resp[0] = byte(total - 1)
		resp[3] = byte(len(f.BlockDescriptor))
	}
	copy(resp[hl:], f.BlockDescriptor)
	copy(resp[hl+len(f.BlockDescriptor):], body)
	return resp
}

// ModeSelect records the write and applies it to the current page.
func (f *Fake) ModeSelect(v device.Variant, data []byte, save bool) error {
	f.Selects = append(f.Selects, SelectCall{Variant: v, Data: append([]byte(nil), data...), Save: save})
	if f.SelectErr != nil {
		return f.SelectErr
	}

	hl := v.HeaderLen()
	var bd int
	if v == device.Long {
		bd = int(binary.BigEndian.Uint16(data[6:8]))
	} else {
		bd = int(data[3])
	}
	body := data[hl+bd:]
	if len(body) < 2 {
		return ErrScripted
	}

	page := body[0] & 0x3F
	var sub uint8
	if body[0]&0x40 != 0 {
		sub = body[1]
	}
	f.SetPage(page, sub, device.PageCurrent, body)
	return nil
}

// SCTWrite interprets SCT feature control (action 4) and records everything else.
func (f *Fake) SCTWrite(buf []byte) (device.SCTStatus, error) {
	f.SCTWrites = append(f.SCTWrites, append([]byte(nil), buf...))
	if f.SCTErr != nil {
		return device.SCTStatus{}, f.SCTErr
	}

	action := binary.LittleEndian.Uint16(buf[0:2])
	if action != 0x0004 {
		return device.SCTStatus{}, nil
	}

	function := binary.LittleEndian.Uint16(buf[2:4])
	feature := binary.LittleEndian.Uint16(buf[4:6])
	switch function {
	case 0x0001:
		f.SCTState[feature] = binary.LittleEndian.Uint16(buf[6:8])
		return device.SCTStatus{}, nil
	case 0x0002:
		return device.SCTStatus{State: f.SCTState[feature]}, nil
	default:
		return device.SCTStatus{}, nil
	}
}

func (f *Fake) SetFeatures(req device.SetFeatures) error {
	f.FeatureCmds = append(f.FeatureCmds, req)
	return f.SetFeaturesErr
}

func (f *Fake) Identify(buf []byte) error {
	f.Identifies++
	if f.IdentifyErr != nil {
		return f.IdentifyErr
	}
	copy(buf, f.IdentifyData)
	return nil
}

// IdentifyWithWords builds an IDENTIFY block with the given words set.
func IdentifyWithWords(words map[int]uint16) []byte {
	buf := make([]byte, device.IdentifyLen)
	for n, w := range words {
		binary.LittleEndian.PutUint16(buf[n*2:], w)
	}
	return buf
}

var _ device.Transport = (*Fake)(nil)
