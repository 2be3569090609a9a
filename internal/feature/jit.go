// internal/feature/jit.go
package feature

import (
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/result"
)

// JITRequest is one JIT mode change.
type JITRequest struct {
	DisableVJIT bool
	Mode        uint8
	// Revert restores the drive defaults; DisableVJIT and Mode are ignored.
	Revert bool
	// NonVolatile saves the change across power cycles.
	NonVolatile bool
}

// SetJIT programs the just-in-time seek modes of a SAS drive.
func SetJIT(env Env, req JITRequest) error {
	const op = "set jit"

	if !req.Revert && req.Mode > modepage.MaxJITMode {
		env.diagf("%s: mode %d out of range 0..%d", op, req.Mode, modepage.MaxJITMode)
		return result.Errorf(result.BadParameter, op, "mode %d", req.Mode)
	}
	if err := jitGate(env, op); err != nil {
		return err
	}

	var bits byte
	if req.Revert {
		def, err := modepage.Fetch(env.Transport, modepage.UnitAttention, modepage.UnitAttentionRequested, device.PageDefault)
		if err != nil {
			return err
		}
		b, err := def.Byte(modepage.JITOffset)
		if err != nil {
			return result.New(result.Failure, op, err)
		}
		bits = b & modepage.JITFieldMask
	} else {
		b, err := modepage.JITBits(req.DisableVJIT, req.Mode)
		if err != nil {
			return result.New(result.BadParameter, op, err)
		}
		bits = b
	}

	cur, err := modepage.Fetch(env.Transport, modepage.UnitAttention, modepage.UnitAttentionRequested, device.PageCurrent)
	if err != nil {
		return err
	}
	if err := cur.WriteBits(modepage.JITOffset, modepage.JITFieldMask, bits); err != nil {
		return result.New(result.Failure, op, err)
	}
	if err := modepage.Store(env.Transport, cur, req.NonVolatile); err != nil {
		return err
	}

	env.logger().WithField("jit", modepage.DecodeJIT(bits)).Debug("jit modes programmed")
	return nil
}

// GetJIT reads the current JIT modes.
func GetJIT(env Env) (modepage.JITState, error) {
	const op = "get jit"

	if err := jitGate(env, op); err != nil {
		return modepage.JITState{}, err
	}
	p, err := modepage.Fetch(env.Transport, modepage.UnitAttention, modepage.UnitAttentionRequested, device.PageCurrent)
	if err != nil {
		return modepage.JITState{}, err
	}
	b, err := p.Byte(modepage.JITOffset)
	if err != nil {
		return modepage.JITState{}, result.New(result.Failure, op, err)
	}
	return modepage.DecodeJIT(b), nil
}

func jitGate(env Env, op string) error {
	if err := env.requireClass(op, device.ClassSCSI); err != nil {
		return err
	}
	if err := env.requireFamily(op, device.FamilySeagate, device.FamilySeagateVendorA); err != nil {
		return err
	}
	if env.Device.SolidState {
		return result.Errorf(result.NotSupported, op, "solid state drive")
	}
	return nil
}
