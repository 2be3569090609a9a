// internal/feature/env.go
package feature

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/result"
)

// Verbosity gates diagnostic output.
type Verbosity int

const (
	VerbosityQuiet Verbosity = iota
	VerbosityMinimal
	VerbosityNormal
	VerbosityVerbose
	VerbosityDebug
)

// Env carries what one operation needs.
// Operations never retain it and never mutate Device.
type Env struct {
	Transport device.Transport
	Device    device.Info
	Verbosity Verbosity
	Log       logrus.FieldLogger
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (e Env) logger() logrus.FieldLogger {
	if e.Log == nil {
		return discard
	}
	return e.Log.WithField("device", e.Device.Path)
}

// diagf reports a caller input error or a family refusal.
func (e Env) diagf(format string, args ...any) {
	if e.Verbosity > VerbosityQuiet {
		e.logger().Warnf(format, args...)
	}
}

// identify reads a fresh IDENTIFY block.
func (e Env) identify(op string) ([]byte, error) {
	buf := make([]byte, device.IdentifyLen)
	if err := e.Transport.Identify(buf); err != nil {
		return nil, result.Errorf(result.Failure, op, "identify: %w", err)
	}
	return buf, nil
}

func (e Env) requireClass(op string, c device.Class) error {
	if e.Device.Class != c {
		return result.Errorf(result.NotSupported, op, "%s drive", e.Device.Class)
	}
	return nil
}

// requireFamily refuses drives outside families.
func (e Env) requireFamily(op string, families ...device.Family) error {
	for _, f := range families {
		if e.Device.Family == f {
			return nil
		}
	}
	e.diagf("%s: not supported on %s drives", op, e.Device.Family)
	return result.Errorf(result.NotSupported, op, "%s drive", e.Device.Family)
}

func (e Env) requireCaps(op string, c device.Caps) error {
	if !e.Device.Caps.Has(c) {
		return result.Errorf(result.NotSupported, op, "capability not advertised")
	}
	return nil
}
