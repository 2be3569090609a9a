// internal/monitor/values.go
package monitor

import (
	"fmt"

	"github.com/tamzrod/drivecfg/internal/feature"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/status"
)

// read runs f's Get operation and packs the outcome into one register.
func read(env feature.Env, f status.Feature) (uint16, error) {
	switch f {
	case status.FeaturePhySpeed:
		ls, err := feature.GetPhySpeed(env)
		if err != nil {
			return 0, err
		}
		return PhySpeedValue(ls), nil

	case status.FeatureSpinUp:
		on, err := feature.GetLowCurrentSpinUp(env)
		if err != nil {
			return 0, err
		}
		return boolValue(on), nil

	case status.FeatureSSC:
		s, err := feature.GetSSC(env)
		if err != nil {
			return 0, err
		}
		return uint16(s), nil

	case status.FeatureJIT:
		j, err := feature.GetJIT(env)
		if err != nil {
			return 0, err
		}
		return JITValue(j), nil

	case status.FeaturePowerBalance:
		pb, err := feature.GetPowerBalance(env)
		if err != nil {
			return 0, err
		}
		return PowerBalanceValue(pb), nil
	}
	return 0, fmt.Errorf("monitor: no reader for %s", f)
}

// PhySpeedValue is the negotiated generation in the low byte and the
// programmed maximum in the high byte. For SAS drives the first phy is used.
func PhySpeedValue(ls feature.LinkSpeed) uint16 {
	if len(ls.Phys) > 0 {
		p := ls.Phys[0]
		neg, _ := modepage.DecodeSASLinkRate(p.Negotiated)
		prog, _ := modepage.DecodeSASLinkRate(p.Programmed)
		return uint16(prog)<<8 | uint16(neg)
	}

	var top uint8
	for _, g := range ls.SATASupported {
		if g > top {
			top = g
		}
	}
	return uint16(top)<<8 | uint16(ls.SATANegotiated)
}

// JITValue is the mode in the low byte and bit 8 set while VJIT is disabled.
func JITValue(j modepage.JITState) uint16 {
	v := uint16(j.Mode)
	if j.VJITDisabled {
		v |= 1 << 8
	}
	return v
}

// PowerBalanceValue is bit 0 supported, bit 1 enabled.
func PowerBalanceValue(pb feature.PowerBalance) uint16 {
	var v uint16
	if pb.Supported {
		v |= 1
	}
	if pb.Enabled {
		v |= 2
	}
	return v
}

func boolValue(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
