// internal/modepage/fetch.go
package modepage

import (
	"encoding/binary"
	"errors"

	"github.com/tamzrod/drivecfg/internal/cmdbuf"
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/result"
)

// Allocation lengths the two CDB variants can carry.
const (
	maxLongAlloc  = 0xFFFF
	maxShortAlloc = 0xFF
)

// growSlack is added on top of the declared length when refetching.
const growSlack = 8

// Fetch reads one mode page, trying the long variant first and the short
// variant second. requested is the expected page size without the mode
// parameter header. When the page declares more data than the first read
// held, the buffer is grown once and the page is read again with the same
// variant; no field is interpreted before that read completes.
func Fetch(t device.Transport, spec Spec, requested int, pc device.PageControl) (*Page, error) {
	const op = "mode page fetch"

	if requested <= 0 {
		return nil, result.Errorf(result.BadParameter, op, "%s: requested length %d", spec, requested)
	}

	req := spec.request(pc)

	v := device.Long
	buf, err := allocFor(v, requested+v.HeaderLen())
	if err != nil {
		return nil, result.New(result.MemoryFailure, op, err)
	}
	if err := t.ModeSense(v, req, buf); err != nil {
		v = device.Short
		buf, err = allocFor(v, requested+v.HeaderLen())
		if err != nil {
			return nil, result.New(result.MemoryFailure, op, err)
		}
		if err := t.ModeSense(v, req, buf); err != nil {
			return nil, result.Errorf(result.Failure, op, "%s: long and short reads failed: %w", spec, err)
		}
	}

	p, need, err := parse(v, spec, buf, requested)
	if err != nil {
		return nil, result.New(result.Failure, op, err)
	}
	if need == 0 {
		return p, nil
	}

	if limit := maxAlloc(v); need > limit {
		return nil, result.Errorf(result.MemoryFailure, op, "%s: page needs %d bytes, %s reads carry at most %d", spec, need, v, limit)
	}
	buf, err = allocFor(v, need)
	if err != nil {
		return nil, result.New(result.MemoryFailure, op, err)
	}
	if err := t.ModeSense(v, req, buf); err != nil {
		return nil, result.Errorf(result.Failure, op, "%s: refetch of %d bytes failed: %w", spec, len(buf), err)
	}

	p, need, err = parse(v, spec, buf, len(buf))
	if err != nil {
		return nil, result.New(result.Failure, op, err)
	}
	if need != 0 {
		return nil, result.Errorf(result.Failure, op, "%s: still truncated after refetch (%d of %d bytes)", spec, len(buf), need)
	}
	return p, nil
}

// Store writes a page back with the variant that fetched it.
func Store(t device.Transport, p *Page, save bool) error {
	if err := t.ModeSelect(p.Variant, p.SelectData(), save); err != nil {
		return result.Errorf(result.Failure, "mode select", "%s: %w", p.Spec, err)
	}
	return nil
}

func maxAlloc(v device.Variant) int {
	if v == device.Short {
		return maxShortAlloc
	}
	return maxLongAlloc
}

// allocFor clamps the first read of a variant to its allocation limit.
func allocFor(v device.Variant, n int) ([]byte, error) {
	if limit := maxAlloc(v); n > limit {
		n = limit
	}
	return cmdbuf.Build(n, cmdbuf.Reserved)
}

var (
	errShortHeader = errors.New("modepage: mode data shorter than page header")
	errWrongPage   = errors.New("modepage: unexpected page")
)

// parse validates the page in buf. A non-zero need is the buffer size the
// page requires; the returned page is nil in that case.
func parse(v device.Variant, spec Spec, buf []byte, limit int) (*Page, int, error) {
	hl := v.HeaderLen()
	if len(buf) < hl {
		return nil, 0, errShortHeader
	}

	var avail, bdLen int
	switch v {
	case device.Long:
		avail = int(binary.BigEndian.Uint16(buf[0:2])) + 2
		bdLen = int(binary.BigEndian.Uint16(buf[6:8]))
	default:
		avail = int(buf[0]) + 1
		bdLen = int(buf[3])
	}

	held := len(buf)
	if avail < held {
		held = avail
	}

	body := hl + bdLen
	ph := spec.pageHeaderLen()
	if body+ph > held {
		// the page header itself was cut off; size from the mode data length
		if avail > len(buf) {
			return nil, avail + growSlack, nil
		}
		return nil, 0, errShortHeader
	}

	b0 := buf[body]
	if b0&0x3F != spec.Code {
		return nil, 0, errWrongPage
	}
	spf := b0&0x40 != 0

	var pageLen int
	if spec.SubpageFormat {
		if !spf || buf[body+1] != spec.Subpage {
			return nil, 0, errWrongPage
		}
		pageLen = int(binary.BigEndian.Uint16(buf[body+2 : body+4]))
	} else {
		if spf {
			return nil, 0, errWrongPage
		}
		pageLen = int(buf[body+1])
	}

	if body+ph+pageLen > held || pageLen > limit {
		return nil, pageLen + hl + bdLen + growSlack, nil
	}

	return &Page{
		Variant:  v,
		Spec:     spec,
		buf:      buf,
		valid:    body + ph + pageLen,
		bdLen:    bdLen,
		pageLen:  pageLen,
		fetchLen: len(buf),
	}, 0, nil
}
