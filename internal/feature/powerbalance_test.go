// internal/feature/powerbalance_test.go
package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/device/devicetest"
	"github.com/tamzrod/drivecfg/internal/result"
)

func TestGetPowerBalance_ATA(t *testing.T) {
	f := devicetest.New()
	f.IdentifyData = devicetest.IdentifyWithWords(map[int]uint16{
		device.WordPowerBalance: 1<<10 | 1<<11,
	})

	pb, err := GetPowerBalance(ataEnv(f, device.CapPowerBalance))
	require.NoError(t, err)
	assert.Equal(t, PowerBalance{Supported: true, Enabled: true}, pb)
}

func TestGetPowerBalance_ATALegacyBits(t *testing.T) {
	f := devicetest.New()
	f.IdentifyData = devicetest.IdentifyWithWords(map[int]uint16{
		device.WordPowerBalance: 1<<8 | 1<<11,
	})

	pb, err := GetPowerBalance(ataEnv(f, device.CapPowerBalanceLegacy))
	require.NoError(t, err)
	assert.True(t, pb.Supported)
	assert.False(t, pb.Enabled)
}

func TestGetPowerBalance_ATAUnsupported(t *testing.T) {
	f := devicetest.New()

	pb, err := GetPowerBalance(ataEnv(f, 0))
	require.NoError(t, err)
	assert.Equal(t, PowerBalance{}, pb)
	assert.Zero(t, f.Calls())
}

func TestSetPowerBalance_ATA(t *testing.T) {
	f := devicetest.New()
	env := ataEnv(f, device.CapPowerBalance)

	require.NoError(t, SetPowerBalance(env, true))
	require.NoError(t, SetPowerBalance(env, false))

	require.Len(t, f.FeatureCmds, 2)
	assert.Equal(t, device.SetFeatures{Subcommand: 0x5C, LBALow: 1}, f.FeatureCmds[0])
	assert.Equal(t, device.SetFeatures{Subcommand: 0x5C, LBALow: 2}, f.FeatureCmds[1])
}

func TestSetPowerBalance_ATAGates(t *testing.T) {
	f := devicetest.New()
	assert.Equal(t, result.NotSupported, result.CodeOf(SetPowerBalance(ataEnv(f, 0), true)))

	env := ataEnv(f, device.CapPowerBalance)
	env.Device.Family = device.FamilyMaxtor
	assert.Equal(t, result.NotSupported, result.CodeOf(SetPowerBalance(env, true)))
	assert.Zero(t, f.Calls())

	f.SetFeaturesErr = devicetest.ErrScripted
	assert.Equal(t, result.Failure, result.CodeOf(SetPowerBalance(ataEnv(f, device.CapPowerBalance), true)))
}

func TestGetPowerBalance_SAS(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x1A, 0x01, device.PageCurrent, powerPage(3, 0))

	pb, err := GetPowerBalance(scsiEnv(f))
	require.NoError(t, err)
	assert.Equal(t, PowerBalance{Supported: true, Enabled: true}, pb)

	f.SetPage(0x1A, 0x01, device.PageCurrent, powerPage(1, 0))
	pb, err = GetPowerBalance(scsiEnv(f))
	require.NoError(t, err)
	assert.False(t, pb.Enabled)
}

func TestGetPowerBalance_SASPageMissing(t *testing.T) {
	f := devicetest.New()

	_, err := GetPowerBalance(scsiEnv(f))
	assert.Equal(t, result.NotSupported, result.CodeOf(err))
}

func TestSetPowerBalance_SASEnable(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x1A, 0x01, device.PageCurrent, powerPage(1, 0x10))

	require.NoError(t, SetPowerBalance(scsiEnv(f), true))

	require.Len(t, f.Senses, 1)
	require.Len(t, f.Selects, 1)
	assert.True(t, f.Selects[0].Save)

	body := f.Page(0x1A, 0x01, device.PageCurrent)
	assert.Equal(t, byte(0xFB), body[6])
	assert.Equal(t, byte(0x10), body[7])
}

func TestSetPowerBalance_SASDisableRestoresDefaults(t *testing.T) {
	f := devicetest.New()
	f.SetPage(0x1A, 0x01, device.PageDefault, powerPage(0, 0x22))
	f.SetPage(0x1A, 0x01, device.PageCurrent, powerPage(3, 0x05))

	require.NoError(t, SetPowerBalance(scsiEnv(f), false))

	require.Len(t, f.Senses, 2)
	assert.Equal(t, device.PageDefault, f.Senses[0].Req.Control)
	assert.Equal(t, device.PageCurrent, f.Senses[1].Req.Control)

	body := f.Page(0x1A, 0x01, device.PageCurrent)
	assert.Equal(t, byte(0xF8), body[6])
	assert.Equal(t, byte(0x22), body[7])
}
