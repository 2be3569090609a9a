// internal/transport/sgio/sgio.go
package sgio

import (
	"errors"
	"fmt"

	"github.com/tamzrod/drivecfg/internal/device"
)

// direction is the SG_IO data transfer direction.
type direction int32

const (
	dirNone    direction = -1
	dirToDev   direction = -2
	dirFromDev direction = -3
)

// defaultTimeoutMs matches the common SG_IO default of 20 seconds.
const defaultTimeoutMs = 20000

const senseLen = 32

// SCSI status codes.
const (
	statusGood           = 0x00
	statusCheckCondition = 0x02
)

var (
	// ErrUnsupported is returned where SG_IO does not exist.
	ErrUnsupported = errors.New("sgio: not supported on this platform")
	// ErrNoRegisters means the device did not return ATA registers.
	ErrNoRegisters = errors.New("sgio: no ata status return descriptor")
)

// Error is a command the device or the host rejected.
type Error struct {
	Op           string
	Status       uint8
	HostStatus   uint16
	DriverStatus uint16
	Sense        Sense
}

func (e *Error) Error() string {
	return fmt.Sprintf("sgio: %s: scsi status %#02x host %#02x driver %#02x sense %s",
		e.Op, e.Status, e.HostStatus, e.DriverStatus, e.Sense)
}

// reply is what one executed command reports.
type reply struct {
	status       uint8
	hostStatus   uint16
	driverStatus uint16
	sense        []byte
}

// executor runs one CDB. The Linux implementation issues SG_IO.
type executor interface {
	exec(cdb []byte, dir direction, data []byte) (reply, error)
	close() error
}

// Device is an SG_IO transport to one drive.
// It is not safe for concurrent use.
type Device struct {
	path string
	x    executor
	caps device.Caps
}

// Path is the device node.
func (d *Device) Path() string { return d.path }

// UseCaps selects the ATA log command flavour (GPL, DMA) for SCT commands.
func (d *Device) UseCaps(c device.Caps) { d.caps = c }

// Close releases the device node.
func (d *Device) Close() error { return d.x.close() }

// run executes cdb and turns every non-good completion into an *Error.
// A check condition carrying ATA registers with a recovered error is good.
func (d *Device) run(op string, cdb []byte, dir direction, data []byte) (Sense, error) {
	r, err := d.x.exec(cdb, dir, data)
	if err != nil {
		return Sense{}, fmt.Errorf("sgio: %s: %w", op, err)
	}
	s := ParseSense(r.sense)

	if r.hostStatus != 0 || r.driverStatus&^driverSense != 0 {
		return s, &Error{Op: op, Status: r.status, HostStatus: r.hostStatus, DriverStatus: r.driverStatus, Sense: s}
	}
	switch r.status {
	case statusGood:
		return s, nil
	case statusCheckCondition:
		if s.Key == senseKeyRecovered || (s.Key == senseKeyNoSense && s.ATA != nil) {
			return s, nil
		}
	}
	return s, &Error{Op: op, Status: r.status, HostStatus: r.hostStatus, DriverStatus: r.driverStatus, Sense: s}
}
