// internal/feature/ssc.go
package feature

import (
	"fmt"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/result"
)

// SSCState is the spread spectrum clocking setting.
type SSCState uint16

const (
	SSCDefault SSCState = iota
	SSCEnabled
	SSCDisabled
)

func (s SSCState) String() string {
	switch s {
	case SSCDefault:
		return "default"
	case SSCEnabled:
		return "enabled"
	case SSCDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("state %d", uint16(s))
	}
}

// ParseSSCState maps a name to a state.
func ParseSSCState(s string) (SSCState, error) {
	switch s {
	case "default":
		return SSCDefault, nil
	case "enabled", "enable", "on":
		return SSCEnabled, nil
	case "disabled", "disable", "off":
		return SSCDisabled, nil
	}
	return 0, result.Errorf(result.BadParameter, "parse ssc state", "unknown state %q", s)
}

// SetSSC programs spread spectrum clocking. There is no fallback.
func SetSSC(env Env, state SSCState) error {
	const op = "set ssc"

	if state > SSCDisabled {
		env.diagf("%s: unknown state %d", op, uint16(state))
		return result.Errorf(result.BadParameter, op, "state %d", uint16(state))
	}
	if err := sscGate(env, op); err != nil {
		return err
	}
	return sctSetState(env, op, sctFeatureSSC, uint16(state))
}

// GetSSC reads the spread spectrum clocking setting.
func GetSSC(env Env) (SSCState, error) {
	const op = "get ssc"

	if err := sscGate(env, op); err != nil {
		return 0, err
	}
	st, err := sctGetState(env, op, sctFeatureSSC)
	if err != nil {
		return 0, err
	}
	return SSCState(st), nil
}

func sscGate(env Env, op string) error {
	if err := env.requireClass(op, device.ClassATA); err != nil {
		return err
	}
	if err := env.requireFamily(op, device.FamilySeagate); err != nil {
		return err
	}
	return env.requireCaps(op, device.CapSCTFeatureControl)
}
