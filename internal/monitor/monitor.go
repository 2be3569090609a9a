// internal/monitor/monitor.go
package monitor

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/drivecfg/internal/feature"
	"github.com/tamzrod/drivecfg/internal/result"
	"github.com/tamzrod/drivecfg/internal/status"
)

// Config is the minimal runtime config the monitor needs.
type Config struct {
	DriveID  string
	Interval time.Duration
	Features []status.Feature
}

// Monitor is a clock-driven reader of one drive's feature state.
// It only issues Get operations; it never writes to the drive.
type Monitor struct {
	cfg Config
	env feature.Env
	log logrus.FieldLogger
	now func() time.Time
}

// New creates a monitor with immutable config.
func New(cfg Config, env feature.Env) (*Monitor, error) {
	if cfg.DriveID == "" {
		return nil, errors.New("monitor: drive id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	if len(cfg.Features) == 0 {
		return nil, errors.New("monitor: at least one feature required")
	}
	if env.Transport == nil {
		return nil, errors.New("monitor: transport required")
	}

	log := env.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Monitor{
		cfg: cfg,
		env: env,
		log: log.WithField("drive", cfg.DriveID),
		now: time.Now,
	}, nil
}

// ReadOnce performs exactly one cycle.
// A feature the drive does not support is flagged and skipped; any other
// failure is flagged and reported, and the remaining features are still read.
func (m *Monitor) ReadOnce() Result {
	res := Result{
		DriveID: m.cfg.DriveID,
		At:      m.now(),
	}

	r := &res.Reading
	r.Class = status.EncodeClass(uint8(m.env.Device.Class), uint8(m.env.Device.Family))
	for i := range r.Features {
		r.Features[i] = status.ValueUnread
	}

	for _, f := range m.cfg.Features {
		v, err := read(m.env, f)
		switch {
		case err == nil:
			r.Features[f] = v
		case result.CodeOf(err) == result.NotSupported:
			r.Unsupported |= f.Bit()
		default:
			r.Failed |= f.Bit()
			if res.Err == nil {
				res.Err = err
			}
		}
	}

	m.log.WithField("failed", r.Failed).
		WithField("unsupported", r.Unsupported).
		Trace("monitor cycle")

	return res
}
