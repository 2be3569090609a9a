// internal/feature/phy_sata.go
package feature

import (
	"github.com/tamzrod/drivecfg/internal/cmdbuf"
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/result"
)

// MaxSATAGeneration is the highest generation SCT phy speed accepts.
const MaxSATAGeneration = 3

func setSATAPhySpeed(env Env, gen uint8) error {
	const op = opSetPhySpeed

	if gen > MaxSATAGeneration {
		env.diagf("%s: sata generation %d out of range 0..%d", op, gen, MaxSATAGeneration)
		return result.Errorf(result.BadParameter, op, "sata generation %d", gen)
	}
	if err := env.requireFamily(op, device.FamilySeagate); err != nil {
		return err
	}
	if env.Device.SolidState {
		return result.Errorf(result.NotSupported, op, "solid state drive")
	}
	if err := env.requireCaps(op, device.CapSCTPhySpeed); err != nil {
		return err
	}

	buf, err := cmdbuf.SCTPhySpeed(gen)
	if err != nil {
		return result.New(result.MemoryFailure, op, err)
	}
	if _, err := env.Transport.SCTWrite(buf); err != nil {
		return result.Errorf(result.Failure, op, "sct phy speed: %w", err)
	}

	env.logger().WithField("generation", gen).Debug("sata phy speed programmed")
	return nil
}

func getSATAPhySpeed(env Env) (LinkSpeed, error) {
	const op = opGetPhySpeed

	id, err := env.identify(op)
	if err != nil {
		return LinkSpeed{}, err
	}

	caps := device.IdentifyWord(id, device.WordSATACapabilities)
	if caps == 0 || caps == 0xFFFF {
		return LinkSpeed{}, result.Errorf(result.NotSupported, op, "no sata capabilities reported")
	}

	out := LinkSpeed{Class: device.ClassATA}
	for g := uint8(1); g <= MaxSATAGeneration; g++ {
		if caps&(1<<g) != 0 {
			out.SATASupported = append(out.SATASupported, g)
		}
	}
	out.SATANegotiated = uint8(device.IdentifyWord(id, device.WordSATAAdditional)>>1) & 0x07
	return out, nil
}
