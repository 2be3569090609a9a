// internal/trace/trace_test.go
package trace

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/device/devicetest"
)

type memRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (m *memRecorder) Record(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

func TestEventCBORRoundTrip(t *testing.T) {
	in := Event{
		Timestamp: time.Date(2026, 3, 2, 9, 30, 0, 123456789, time.UTC),
		SessionID: "6f1c1f6e-34a4-4f77-9a2e-6c1b9d7f0a11",
		Seq:       7,
		Device:    "/dev/sdb",
		Kind:      KindModeSelect,
		Variant:   "long",
		Page:      0x19,
		Subpage:   0x01,
		Save:      true,
		Len:       112,
		Out:       []byte{0x00, 0x00, 0x59, 0x01},
		Duration:  3 * time.Millisecond,
		Err:       "sgio: check condition",
	}

	data, err := EncodeEvent(in)
	require.NoError(t, err)

	out, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
	out.Timestamp = in.Timestamp
	assert.Equal(t, in, out)
}

func TestTransportRecordsEveryCall(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x00, 0, device.PageCurrent, []byte{0x00, 0x02, 0xAA, 0xBB})
	f.SCTErr = devicetest.ErrScripted

	rec := &memRecorder{}
	tr := Wrap(f, rec, "/dev/sdc")

	buf := make([]byte, 12)
	require.NoError(t, tr.ModeSense(device.Long, device.ModeSenseRequest{Page: 0x00, Control: device.PageCurrent}, buf))
	require.NoError(t, tr.ModeSelect(device.Long, buf, true))
	_, err := tr.SCTWrite(make([]byte, 512))
	assert.Error(t, err)
	require.NoError(t, tr.SetFeatures(device.SetFeatures{Subcommand: 0x5C, LBALow: 1, LBAHigh: 0x00B5}))
	require.NoError(t, tr.Identify(make([]byte, device.IdentifyLen)))

	require.Len(t, rec.events, 5)
	kinds := []Kind{KindModeSense, KindModeSelect, KindSCTWrite, KindSetFeatures, KindIdentify}
	for i, e := range rec.events {
		assert.Equal(t, kinds[i], e.Kind)
		assert.Equal(t, uint64(i+1), e.Seq)
		assert.Equal(t, tr.SessionID(), e.SessionID)
		assert.Equal(t, "/dev/sdc", e.Device)
	}

	assert.Equal(t, buf, rec.events[0].In)
	assert.True(t, rec.events[1].Save)
	assert.Equal(t, devicetest.ErrScripted.Error(), rec.events[2].Err)
	assert.Equal(t, []byte{0x5C, 0, 0, 1, 0, 0xB5, 0}, rec.events[3].Out)

	assert.Equal(t, 5, f.Calls())
}

func TestFileRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.trace")

	r, err := NewFileRecorder(path)
	require.NoError(t, err)

	r.Record(Event{SessionID: "a", Seq: 1, Kind: KindIdentify})
	r.Record(Event{SessionID: "a", Seq: 2, Kind: KindSCTWrite, Out: []byte{4, 0}})
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	r.Record(Event{SessionID: "a", Seq: 3})

	events, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, KindSCTWrite, events[1].Kind)
	assert.Equal(t, []byte{4, 0}, events[1].Out)
}
