// internal/transport/sgio/sense.go
package sgio

import "fmt"

// Sense keys.
const (
	senseKeyNoSense   = 0x0
	senseKeyRecovered = 0x1
)

// driverSense is the DRIVER_SENSE bit of driver_status.
const driverSense = 0x08

// ATA status return sense descriptor.
const (
	descATAStatusReturn = 0x09
	descATALen          = 14
)

// ATARegisters is the register image returned by an ATA pass-through command.
type ATARegisters struct {
	Error  uint8
	Count  uint16
	LBA    uint64
	Device uint8
	Status uint8
}

// Sense is decoded sense data.
type Sense struct {
	Key  uint8
	ASC  uint8
	ASCQ uint8
	ATA  *ATARegisters
}

func (s Sense) String() string {
	return fmt.Sprintf("%X/%02X/%02X", s.Key, s.ASC, s.ASCQ)
}

// ParseSense decodes fixed (70h/71h) and descriptor (72h/73h) sense data.
func ParseSense(b []byte) Sense {
	if len(b) < 2 {
		return Sense{}
	}

	switch b[0] & 0x7F {
	case 0x70, 0x71:
		var s Sense
		if len(b) > 2 {
			s.Key = b[2] & 0x0F
		}
		if len(b) > 13 {
			s.ASC, s.ASCQ = b[12], b[13]
		}
		return s

	case 0x72, 0x73:
		if len(b) < 8 {
			return Sense{}
		}
		s := Sense{Key: b[1] & 0x0F, ASC: b[2], ASCQ: b[3]}

		end := 8 + int(b[7])
		if end > len(b) {
			end = len(b)
		}
		for off := 8; off+2 <= end; {
			n := 2 + int(b[off+1])
			if b[off] == descATAStatusReturn && off+descATALen <= end {
				s.ATA = parseATADescriptor(b[off : off+descATALen])
			}
			off += n
		}
		return s
	}
	return Sense{}
}

func parseATADescriptor(d []byte) *ATARegisters {
	r := &ATARegisters{
		Error:  d[3],
		Count:  uint16(d[5]),
		LBA:    uint64(d[7]) | uint64(d[9])<<8 | uint64(d[11])<<16,
		Device: d[12],
		Status: d[13],
	}
	if d[2]&0x01 != 0 {
		r.Count |= uint16(d[4]) << 8
		r.LBA |= uint64(d[6])<<24 | uint64(d[8])<<32 | uint64(d[10])<<40
	}
	return r
}
