// internal/transport/sgio/sgio_linux.go
//go:build linux

package sgio

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const sgIO = 0x2285

const (
	sgInfoOKMask = 0x1
	sgInfoOK     = 0x0
)

// sg_io_hdr (v3)
type sgIoHdr struct {
	interfaceID    int32
	dxferDirection int32
	cmdLen         uint8
	mxSbLen        uint8
	iovecCount     uint16
	dxferLen       uint32
	dxferp         uintptr
	cmdp           uintptr
	sbp            uintptr
	timeout        uint32
	flags          uint32
	packID         int32
	usrPtr         uintptr
	status         uint8
	maskedStatus   uint8
	msgStatus      uint8
	sbLenWr        uint8
	hostStatus     uint16
	driverStatus   uint16
	resid          int32
	duration       uint32
	info           uint32
}

type fdExecutor struct {
	fd int
}

// Open opens a block or sg device node for SG_IO.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return &Device{path: path, x: &fdExecutor{fd: fd}}, nil
}

func (e *fdExecutor) exec(cdb []byte, dir direction, data []byte) (reply, error) {
	sense := make([]byte, senseLen)

	hdr := sgIoHdr{
		interfaceID:    'S',
		dxferDirection: int32(dir),
		cmdLen:         uint8(len(cdb)),
		mxSbLen:        uint8(len(sense)),
		dxferLen:       uint32(len(data)),
		cmdp:           uintptr(unsafe.Pointer(&cdb[0])),
		sbp:            uintptr(unsafe.Pointer(&sense[0])),
		timeout:        defaultTimeoutMs,
	}
	if len(data) > 0 {
		hdr.dxferp = uintptr(unsafe.Pointer(&data[0]))
	} else {
		hdr.dxferDirection = int32(dirNone)
	}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(e.fd), sgIO, uintptr(unsafe.Pointer(&hdr))); errno != 0 {
		return reply{}, errno
	}

	r := reply{
		status:       hdr.status,
		hostStatus:   hdr.hostStatus,
		driverStatus: hdr.driverStatus,
		sense:        sense[:hdr.sbLenWr],
	}
	if hdr.info&sgInfoOKMask == sgInfoOK {
		r.status, r.hostStatus, r.driverStatus = statusGood, 0, 0
	}
	return r, nil
}

func (e *fdExecutor) close() error { return unix.Close(e.fd) }
