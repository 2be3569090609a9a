// internal/feature/phy_sas.go
package feature

import (
	"errors"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/result"
)

func setSASPhySpeed(env Env, gen uint8, sel modepage.PhySelector) error {
	const op = opSetPhySpeed

	if gen > modepage.MaxSASGeneration {
		env.diagf("%s: sas generation %d out of range 0..%d", op, gen, modepage.MaxSASGeneration)
		return result.Errorf(result.BadParameter, op, "sas generation %d", gen)
	}

	p, err := modepage.Fetch(env.Transport, modepage.PhyControl, modepage.PhyControlRequested, device.PageCurrent)
	if err != nil {
		return err
	}

	n, err := modepage.ForEachPhy(p, sel, func(d modepage.PhyDescriptor) error {
		return d.SetProgrammedMax(gen)
	})
	switch {
	case errors.Is(err, modepage.ErrNotSAS):
		return result.New(result.NotSupported, op, err)
	case err != nil:
		return result.New(result.Failure, op, err)
	case n == 0:
		env.diagf("%s: phy %d not present", op, sel.ID)
		return result.Errorf(result.BadParameter, op, "phy %d not present", sel.ID)
	}

	if err := modepage.Store(env.Transport, p, true); err != nil {
		return err
	}

	env.logger().WithField("generation", gen).WithField("phys", n).Debug("sas phy speed programmed")
	return nil
}

func getSASPhySpeed(env Env) (LinkSpeed, error) {
	const op = opGetPhySpeed

	p, err := modepage.Fetch(env.Transport, modepage.PhyControl, modepage.PhyControlRequested, device.PageCurrent)
	if err != nil {
		return LinkSpeed{}, err
	}

	out := LinkSpeed{Class: device.ClassSCSI}
	_, err = modepage.ForEachPhy(p, modepage.PhySelector{All: true}, func(d modepage.PhyDescriptor) error {
		var l PhyLink
		var err error
		if l.ID, err = d.Identifier(); err != nil {
			return err
		}
		if l.Programmed, l.Hardware, err = d.LinkRates(); err != nil {
			return err
		}
		if l.Negotiated, err = d.NegotiatedRate(); err != nil {
			return err
		}
		out.Phys = append(out.Phys, l)
		return nil
	})
	switch {
	case errors.Is(err, modepage.ErrNotSAS):
		return LinkSpeed{}, result.New(result.NotSupported, op, err)
	case err != nil:
		return LinkSpeed{}, result.New(result.Failure, op, err)
	}
	return out, nil
}
