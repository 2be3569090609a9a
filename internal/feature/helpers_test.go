// internal/feature/helpers_test.go
package feature

import (
	"encoding/binary"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/device/devicetest"
)

func ataEnv(f *devicetest.Fake, caps device.Caps) Env {
	return Env{
		Transport: f,
		Device: device.Info{
			Path:   "/dev/sda",
			Class:  device.ClassATA,
			Family: device.FamilySeagate,
			Caps:   caps,
			Model:  "ST4000NM0035",
		},
		Verbosity: VerbosityNormal,
	}
}

func scsiEnv(f *devicetest.Fake) Env {
	return Env{
		Transport: f,
		Device: device.Info{
			Path:   "/dev/sdb",
			Class:  device.ClassSCSI,
			Family: device.FamilySeagate,
			Vendor: "SEAGATE",
			Model:  "ST8000NM0075",
		},
		Verbosity: VerbosityNormal,
	}
}

// phyPage builds a SAS phy control page body. rates holds the link-rate
// byte of each phy; phy identifiers are 0..n-1.
func phyPage(rates ...byte) []byte {
	b := make([]byte, 8+len(rates)*48)
	b[0] = 0x40 | 0x19
	b[1] = 0x01
	binary.BigEndian.PutUint16(b[2:4], uint16(len(b)-4))
	b[5] = 6
	b[7] = byte(len(rates))
	for i, r := range rates {
		base := 8 + i*48
		b[base+1] = byte(i)
		b[base+5] = 0x0A
		b[base+33] = r
	}
	return b
}

func phyRate(body []byte, i int) byte { return body[8+i*48+33] }

// unitAttentionPage builds vendor page 00h of n bytes.
func unitAttentionPage(n int, jit byte) []byte {
	b := make([]byte, n)
	b[1] = byte(n - 2)
	b[4] = jit
	return b
}

// powerPage builds the power consumption subpage.
func powerPage(level, ident byte) []byte {
	b := make([]byte, 16)
	b[0] = 0x40 | 0x1A
	b[1] = 0x01
	binary.BigEndian.PutUint16(b[2:4], uint16(len(b)-4))
	b[6] = 0xF8 | level
	b[7] = ident
	return b
}
