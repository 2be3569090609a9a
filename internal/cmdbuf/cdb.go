// internal/cmdbuf/cdb.go
package cmdbuf

import "encoding/binary"

// SCSI operation codes.
const (
	OpInquiry          = 0x12
	OpModeSelect6      = 0x15
	OpModeSense6       = 0x1A
	OpModeSelect10     = 0x55
	OpModeSense10      = 0x5A
	OpATAPassThrough16 = 0x85
)

// ATA commands issued through pass-through.
const (
	ATAIdentifyDevice = 0xEC
	ATASetFeatures    = 0xEF
	ATASmart          = 0xB0
	ATAWriteLogExt    = 0x3F
	ATAWriteLogDMAExt = 0x57

	SmartWriteLog = 0xD6
	SCTLogAddress = 0xE0
)

// ModeSense10 builds a MODE SENSE(10) CDB. SCSI fields are big-endian.
func ModeSense10(page, subpage, pc uint8, dbd, llbaa bool, alloc uint16) []byte {
	cdb := make([]byte, 10)
	cdb[0] = OpModeSense10
	if llbaa {
		cdb[1] |= 1 << 4
	}
	if dbd {
		cdb[1] |= 1 << 3
	}
	cdb[2] = pc<<6 | page&0x3F
	cdb[3] = subpage
	binary.BigEndian.PutUint16(cdb[7:9], alloc)
	return cdb
}

// ModeSense6 builds a MODE SENSE(6) CDB.
func ModeSense6(page, subpage, pc uint8, dbd bool, alloc uint8) []byte {
	cdb := make([]byte, 6)
	cdb[0] = OpModeSense6
	if dbd {
		cdb[1] |= 1 << 3
	}
	cdb[2] = pc<<6 | page&0x3F
	cdb[3] = subpage
	cdb[4] = alloc
	return cdb
}

// ModeSelect10 builds a MODE SELECT(10) CDB with PF set.
func ModeSelect10(save bool, length uint16) []byte {
	cdb := make([]byte, 10)
	cdb[0] = OpModeSelect10
	cdb[1] = 1 << 4
	if save {
		cdb[1] |= 1
	}
	binary.BigEndian.PutUint16(cdb[7:9], length)
	return cdb
}

// ModeSelect6 builds a MODE SELECT(6) CDB with PF set.
func ModeSelect6(save bool, length uint8) []byte {
	cdb := make([]byte, 6)
	cdb[0] = OpModeSelect6
	cdb[1] = 1 << 4
	if save {
		cdb[1] |= 1
	}
	cdb[4] = length
	return cdb
}

// InquiryVPD builds an INQUIRY CDB for a VPD page.
func InquiryVPD(page uint8, alloc uint16) []byte {
	cdb := make([]byte, 6)
	cdb[0] = OpInquiry
	cdb[1] = 1
	cdb[2] = page
	binary.BigEndian.PutUint16(cdb[3:5], alloc)
	return cdb
}

// ATA pass-through protocols.
const (
	ATAProtoNonData = 3
	ATAProtoPIOIn   = 4
	ATAProtoPIOOut  = 5
	ATAProtoDMA     = 6
)

// ATATaskfile holds the 48-bit register image of one ATA command.
type ATATaskfile struct {
	Command  uint8
	Feature  uint16
	Count    uint16
	LBA      uint64
	Device   uint8
	Protocol uint8
	// DataIn is true for reads from the device.
	DataIn bool
	// Blocks is the number of 512-byte blocks transferred (0 for non-data).
	Blocks int
	// CheckCondition asks the device to return the register image in sense data.
	CheckCondition bool
}

// ATAPassThrough16 builds an ATA PASS-THROUGH(16) CDB.
func ATAPassThrough16(tf ATATaskfile) []byte {
	cdb := make([]byte, 16)
	cdb[0] = OpATAPassThrough16
	cdb[1] = tf.Protocol<<1 | 1 // EXTEND

	var b2 byte
	if tf.CheckCondition {
		b2 |= 1 << 5
	}
	if tf.Blocks > 0 {
		if tf.DataIn {
			b2 |= 1 << 3 // T_DIR
		}
		b2 |= 1 << 2 // BYT_BLOK
		b2 |= 0x2    // T_LENGTH in sector count
	}
	cdb[2] = b2

	cdb[3] = byte(tf.Feature >> 8)
	cdb[4] = byte(tf.Feature)
	cdb[5] = byte(tf.Count >> 8)
	cdb[6] = byte(tf.Count)
	cdb[7] = byte(tf.LBA >> 24)
	cdb[8] = byte(tf.LBA)
	cdb[9] = byte(tf.LBA >> 32)
	cdb[10] = byte(tf.LBA >> 8)
	cdb[11] = byte(tf.LBA >> 40)
	cdb[12] = byte(tf.LBA >> 16)
	cdb[13] = tf.Device
	cdb[14] = tf.Command
	return cdb
}
