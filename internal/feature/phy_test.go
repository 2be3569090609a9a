// internal/feature/phy_test.go
package feature

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/device/devicetest"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/result"
)

var allPhys = modepage.PhySelector{All: true}

func TestSetPhySpeed_SATAGenerationOutOfRange(t *testing.T) {
	for _, gen := range []uint8{4, 6, 255} {
		f := devicetest.New()
		err := SetPhySpeed(ataEnv(f, device.CapSCTPhySpeed), gen, allPhys)

		assert.Equal(t, result.BadParameter, result.CodeOf(err), "gen %d", gen)
		assert.Zero(t, f.Calls(), "no device command for gen %d", gen)
	}
}

func TestSetPhySpeed_SATAGates(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Env)
	}{
		{"non seagate", func(e *Env) { e.Device.Family = device.FamilyNonSeagate }},
		{"maxtor", func(e *Env) { e.Device.Family = device.FamilyMaxtor }},
		{"solid state", func(e *Env) { e.Device.SolidState = true }},
		{"no sct phy speed", func(e *Env) { e.Device.Caps = device.CapSCTFeatureControl }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := devicetest.New()
			env := ataEnv(f, device.CapSCTPhySpeed)
			tc.edit(&env)

			err := SetPhySpeed(env, 2, allPhys)
			assert.Equal(t, result.NotSupported, result.CodeOf(err))
			assert.Zero(t, f.Calls())
		})
	}
}

func TestSetPhySpeed_SATAWritesSCTBlock(t *testing.T) {
	f := devicetest.New()
	require.NoError(t, SetPhySpeed(ataEnv(f, device.CapSCTPhySpeed), 2, allPhys))

	require.Len(t, f.SCTWrites, 1)
	buf := f.SCTWrites[0]
	assert.Len(t, buf, 512)
	assert.Equal(t, uint16(0x00BE), binary.LittleEndian.Uint16(buf[0:2]))
	assert.Equal(t, uint16(0x0003), binary.LittleEndian.Uint16(buf[2:4]))
	assert.Equal(t, uint16(0x0001), binary.LittleEndian.Uint16(buf[8:10]))
	assert.Equal(t, byte(2), buf[28])
}

func TestSetPhySpeed_SATATransportFailure(t *testing.T) {
	f := devicetest.New()
	f.SCTErr = devicetest.ErrScripted

	err := SetPhySpeed(ataEnv(f, device.CapSCTPhySpeed), 1, allPhys)
	assert.Equal(t, result.Failure, result.CodeOf(err))
	assert.ErrorIs(t, err, devicetest.ErrScripted)
}

func TestGetPhySpeed_SATA(t *testing.T) {
	f := devicetest.New()
	f.IdentifyData = devicetest.IdentifyWithWords(map[int]uint16{
		device.WordSATACapabilities: 0x000E,
		device.WordSATAAdditional:   2 << 1,
	})

	ls, err := GetPhySpeed(ataEnv(f, 0))
	require.NoError(t, err)
	assert.Equal(t, device.ClassATA, ls.Class)
	assert.Equal(t, []uint8{1, 2, 3}, ls.SATASupported)
	assert.Equal(t, uint8(2), ls.SATANegotiated)
	assert.Equal(t, 1, f.Identifies)
}

func TestGetPhySpeed_SATANoCapabilities(t *testing.T) {
	f := devicetest.New()
	f.IdentifyData = devicetest.IdentifyWithWords(nil)

	_, err := GetPhySpeed(ataEnv(f, 0))
	assert.Equal(t, result.NotSupported, result.CodeOf(err))
}

func TestSetPhySpeed_SASAllPhys(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0xBB, 0xAB))

	require.NoError(t, SetPhySpeed(scsiEnv(f), 2, allPhys))

	require.Len(t, f.Selects, 1)
	assert.True(t, f.Selects[0].Save)

	body := f.Page(0x19, 0x01, device.PageCurrent)
	assert.Equal(t, byte(0x9B), phyRate(body, 0))
	assert.Equal(t, byte(0x9B), phyRate(body, 1))
}

func TestSetPhySpeed_SASSinglePhy(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0xBB, 0xBB, 0xBB))

	require.NoError(t, SetPhySpeed(scsiEnv(f), 5, modepage.PhySelector{ID: 1}))

	body := f.Page(0x19, 0x01, device.PageCurrent)
	assert.Equal(t, byte(0xBB), phyRate(body, 0))
	assert.Equal(t, byte(0xCB), phyRate(body, 1))
	assert.Equal(t, byte(0xBB), phyRate(body, 2))
}

func TestSetPhySpeed_SASRevertUsesHardwareMax(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0x8B, 0x9A))

	require.NoError(t, SetPhySpeed(scsiEnv(f), 0, allPhys))

	body := f.Page(0x19, 0x01, device.PageCurrent)
	assert.Equal(t, byte(0xBB), phyRate(body, 0))
	assert.Equal(t, byte(0xAA), phyRate(body, 1))
}

func TestSetPhySpeed_SASManyPhysRefetch(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0xBB, 0xBB, 0xBB, 0xBB))

	require.NoError(t, SetPhySpeed(scsiEnv(f), 1, allPhys))
	assert.Len(t, f.Senses, 2)

	body := f.Page(0x19, 0x01, device.PageCurrent)
	assert.Equal(t, byte(0x8B), phyRate(body, 3))
}

func TestSetPhySpeed_SASErrors(t *testing.T) {
	t.Run("generation", func(t *testing.T) {
		f := devicetest.New()
		err := SetPhySpeed(scsiEnv(f), 6, allPhys)
		assert.Equal(t, result.BadParameter, result.CodeOf(err))
		assert.Zero(t, f.Calls())
	})

	t.Run("not sas", func(t *testing.T) {
		f := devicetest.New()
		body := phyPage(0xBB)
		body[5] = 0x01
		f.SetPage(0x19, 0x01, device.PageCurrent, body)

		err := SetPhySpeed(scsiEnv(f), 2, allPhys)
		assert.Equal(t, result.NotSupported, result.CodeOf(err))
		assert.Empty(t, f.Selects)
	})

	t.Run("missing phy", func(t *testing.T) {
		f := devicetest.New()
		f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0xBB, 0xBB))

		err := SetPhySpeed(scsiEnv(f), 2, modepage.PhySelector{ID: 7})
		assert.Equal(t, result.BadParameter, result.CodeOf(err))
		assert.Empty(t, f.Selects)
	})

	t.Run("page unreadable", func(t *testing.T) {
		f := devicetest.New()
		err := SetPhySpeed(scsiEnv(f), 2, allPhys)
		assert.Equal(t, result.Failure, result.CodeOf(err))
	})

	t.Run("write rejected", func(t *testing.T) {
		f := devicetest.New()
		f.SelectErr = devicetest.ErrScripted
		f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0xBB))

		err := SetPhySpeed(scsiEnv(f), 2, allPhys)
		assert.Equal(t, result.Failure, result.CodeOf(err))
	})
}

func TestGetPhySpeed_SAS(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x19, 0x01, device.PageCurrent, phyPage(0x9B, 0xBB))

	ls, err := GetPhySpeed(scsiEnv(f))
	require.NoError(t, err)
	assert.Equal(t, device.ClassSCSI, ls.Class)
	assert.Equal(t, []PhyLink{
		{ID: 0, Programmed: 0x9, Hardware: 0xB, Negotiated: 0xA},
		{ID: 1, Programmed: 0xB, Hardware: 0xB, Negotiated: 0xA},
	}, ls.Phys)
}

func TestPhySpeed_UnknownClass(t *testing.T) {
	f := devicetest.New()
	env := Env{Transport: f}

	assert.Equal(t, result.NotSupported, result.CodeOf(SetPhySpeed(env, 1, allPhys)))
	_, err := GetPhySpeed(env)
	assert.Equal(t, result.NotSupported, result.CodeOf(err))
	assert.Zero(t, f.Calls())
}
