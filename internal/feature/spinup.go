// internal/feature/spinup.go
package feature

import (
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/result"
)

// SCT feature control states for low current spin-up.
const (
	spinUpSCTEnabled  uint16 = 1
	spinUpSCTDisabled uint16 = 2
)

// Legacy SET FEATURES encoding.
const (
	setFeaturesSpinUp  = 0x5B
	spinUpLBAMid       = 0xED
	spinUpLBAHigh      = 0x00B5
	spinUpWordEnabled  = 1 << 1
	spinUpLBALowEnable = 1
)

// SetLowCurrentSpinUp turns low current spin-up on or off.
// SCT feature control is tried first when advertised; SET FEATURES is the
// fallback and its outcome is the one reported.
func SetLowCurrentSpinUp(env Env, enable bool) error {
	const op = "set low current spin-up"

	if err := spinUpGate(env, op); err != nil {
		return err
	}

	if env.Device.Caps.Has(device.CapSCTFeatureControl) {
		state := spinUpSCTDisabled
		if enable {
			state = spinUpSCTEnabled
		}
		err := sctSetState(env, op, sctFeatureLowCurrentSpinUp, state)
		if err == nil {
			return nil
		}
		if result.CodeOf(err) == result.MemoryFailure {
			return err
		}
		env.logger().WithError(err).Debug("sct spin-up failed, using set features")
	}

	req := device.SetFeatures{
		Subcommand: setFeaturesSpinUp,
		LBAMid:     spinUpLBAMid,
		LBAHigh:    spinUpLBAHigh,
	}
	if enable {
		req.LBALow = spinUpLBALowEnable
	}
	if err := env.Transport.SetFeatures(req); err != nil {
		return result.Errorf(result.Failure, op, "set features %02Xh: %w", req.Subcommand, err)
	}
	return nil
}

// GetLowCurrentSpinUp reports whether low current spin-up is enabled.
func GetLowCurrentSpinUp(env Env) (bool, error) {
	const op = "get low current spin-up"

	if err := spinUpGate(env, op); err != nil {
		return false, err
	}

	if env.Device.Caps.Has(device.CapSCTFeatureControl) {
		state, err := sctGetState(env, op, sctFeatureLowCurrentSpinUp)
		switch {
		case err == nil && (state == spinUpSCTEnabled || state == spinUpSCTDisabled):
			return state == spinUpSCTEnabled, nil
		case err == nil:
			env.logger().WithField("state", state).Debug("sct spin-up state unknown, using identify")
		case result.CodeOf(err) == result.MemoryFailure:
			return false, err
		default:
			env.logger().WithError(err).Debug("sct spin-up state failed, using identify")
		}
	}

	id, err := env.identify(op)
	if err != nil {
		return false, err
	}
	return device.IdentifyWord(id, device.WordSpinUp)&spinUpWordEnabled != 0, nil
}

func spinUpGate(env Env, op string) error {
	if err := env.requireClass(op, device.ClassATA); err != nil {
		return err
	}
	return env.requireFamily(op, device.FamilySeagate)
}
