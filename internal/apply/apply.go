// internal/apply/apply.go
package apply

import (
	"errors"
	"fmt"

	"github.com/tamzrod/drivecfg/internal/config"
	"github.com/tamzrod/drivecfg/internal/feature"
	"github.com/tamzrod/drivecfg/internal/modepage"
)

// Drive writes the desired state in a to one drive.
// Every requested setting is attempted in a fixed order; failures are
// collected and returned together.
func Drive(env feature.Env, a config.ApplyConfig) error {
	var errs []error

	step := func(name string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if a.PhySpeed != nil {
		sel := modepage.PhySelector{All: true}
		if a.PhyID != nil {
			sel = modepage.PhySelector{ID: *a.PhyID}
		}
		step("phy-speed", feature.SetPhySpeed(env, *a.PhySpeed, sel))
	}

	if a.LowCurrentSpinUp != nil {
		step("spinup", feature.SetLowCurrentSpinUp(env, *a.LowCurrentSpinUp))
	}

	if a.SSC != nil {
		st, err := feature.ParseSSCState(*a.SSC)
		if err == nil {
			err = feature.SetSSC(env, st)
		}
		step("ssc", err)
	}

	if j := a.JIT; j != nil {
		step("jit", feature.SetJIT(env, feature.JITRequest{
			DisableVJIT: j.DisableVJIT,
			Mode:        j.Mode,
			Revert:      j.Revert,
			NonVolatile: j.NonVolatile,
		}))
	}

	if a.PowerBalance != nil {
		step("power-balance", feature.SetPowerBalance(env, *a.PowerBalance))
	}

	return errors.Join(errs...)
}
