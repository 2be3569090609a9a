// internal/trace/transport.go
package trace

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/drivecfg/internal/device"
)

// Transport records every command passing through to the wrapped transport.
type Transport struct {
	next    device.Transport
	rec     Recorder
	device  string
	session string
	seq     atomic.Uint64
	now     func() time.Time
}

// Wrap decorates next. Each Wrap starts a new session.
func Wrap(next device.Transport, rec Recorder, devicePath string) *Transport {
	return &Transport{
		next:    next,
		rec:     rec,
		device:  devicePath,
		session: uuid.New().String(),
		now:     time.Now,
	}
}

// SessionID identifies the events of this transport.
func (t *Transport) SessionID() string { return t.session }

func (t *Transport) event(k Kind) Event {
	return Event{
		Timestamp: t.now(),
		SessionID: t.session,
		Seq:       t.seq.Add(1),
		Device:    t.device,
		Kind:      k,
	}
}

func (t *Transport) finish(e Event, err error) {
	e.Duration = t.now().Sub(e.Timestamp)
	if err != nil {
		e.Err = err.Error()
	}
	t.rec.Record(e)
}

func (t *Transport) ModeSense(v device.Variant, req device.ModeSenseRequest, buf []byte) error {
	e := t.event(KindModeSense)
	e.Variant = v.String()
	e.Page, e.Subpage, e.Control = req.Page, req.Subpage, uint8(req.Control)
	e.Len = len(buf)

	err := t.next.ModeSense(v, req, buf)
	if err == nil {
		e.In = append([]byte(nil), buf...)
	}
	t.finish(e, err)
	return err
}

func (t *Transport) ModeSelect(v device.Variant, data []byte, save bool) error {
	e := t.event(KindModeSelect)
	e.Variant = v.String()
	e.Save = save
	e.Len = len(data)
	e.Out = append([]byte(nil), data...)

	err := t.next.ModeSelect(v, data, save)
	t.finish(e, err)
	return err
}

func (t *Transport) SCTWrite(buf []byte) (device.SCTStatus, error) {
	e := t.event(KindSCTWrite)
	e.Len = len(buf)
	e.Out = append([]byte(nil), buf...)

	st, err := t.next.SCTWrite(buf)
	t.finish(e, err)
	return st, err
}

func (t *Transport) SetFeatures(req device.SetFeatures) error {
	e := t.event(KindSetFeatures)
	e.Out = []byte{
		req.Subcommand,
		byte(req.Count), byte(req.Count >> 8),
		req.LBALow, req.LBAMid,
		byte(req.LBAHigh), byte(req.LBAHigh >> 8),
	}

	err := t.next.SetFeatures(req)
	t.finish(e, err)
	return err
}

func (t *Transport) Identify(buf []byte) error {
	e := t.event(KindIdentify)
	e.Len = len(buf)

	err := t.next.Identify(buf)
	if err == nil {
		e.In = append([]byte(nil), buf...)
	}
	t.finish(e, err)
	return err
}

var _ device.Transport = (*Transport)(nil)
