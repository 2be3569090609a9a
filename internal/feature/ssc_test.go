// internal/feature/ssc_test.go
package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/device/devicetest"
	"github.com/tamzrod/drivecfg/internal/result"
)

func TestSetSSC_BadStateBeforeIO(t *testing.T) {
	f := devicetest.New()
	err := SetSSC(ataEnv(f, device.CapSCTFeatureControl), SSCState(3))

	assert.Equal(t, result.BadParameter, result.CodeOf(err))
	assert.Zero(t, f.Calls())
}

func TestSetSSC_RequiresFeatureControl(t *testing.T) {
	f := devicetest.New()
	err := SetSSC(ataEnv(f, device.CapSCTPhySpeed), SSCEnabled)

	assert.Equal(t, result.NotSupported, result.CodeOf(err))
	assert.Zero(t, f.Calls())
}

func TestSSC_RoundTrip(t *testing.T) {
	f := devicetest.New()
	env := ataEnv(f, device.CapSCTFeatureControl)

	for _, s := range []SSCState{SSCEnabled, SSCDisabled, SSCDefault} {
		require.NoError(t, SetSSC(env, s))
		got, err := GetSSC(env)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestSetSSC_NoFallback(t *testing.T) {
	f := devicetest.New()
	f.SCTErr = devicetest.ErrScripted

	err := SetSSC(ataEnv(f, device.CapSCTFeatureControl), SSCDisabled)
	assert.Equal(t, result.Failure, result.CodeOf(err))
	assert.Empty(t, f.FeatureCmds)
}

func TestParseSSCState(t *testing.T) {
	s, err := ParseSSCState("off")
	require.NoError(t, err)
	assert.Equal(t, SSCDisabled, s)
	assert.Equal(t, "disabled", s.String())

	_, err = ParseSSCState("fast")
	assert.Equal(t, result.BadParameter, result.CodeOf(err))
}
