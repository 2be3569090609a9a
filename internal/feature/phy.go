// internal/feature/phy.go
package feature

import (
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/result"
)

const (
	opSetPhySpeed = "set phy speed"
	opGetPhySpeed = "get phy speed"
)

// LinkSpeed is the link state of a drive.
// ATA drives fill the SATA fields, SCSI drives fill Phys.
type LinkSpeed struct {
	Class device.Class

	// SATASupported lists supported generations (1..3).
	SATASupported []uint8
	// SATANegotiated is the current generation, 0 when unknown.
	SATANegotiated uint8

	Phys []PhyLink
}

// PhyLink holds the SAS rate codes of one phy.
type PhyLink struct {
	ID         uint8
	Programmed uint8
	Hardware   uint8
	Negotiated uint8
}

// SetPhySpeed programs the maximum link generation. gen 0 restores the
// drive's own maximum. sel is only used by SAS drives.
// The change is saved and takes effect after a power cycle or link reset.
func SetPhySpeed(env Env, gen uint8, sel modepage.PhySelector) error {
	switch env.Device.Class {
	case device.ClassATA:
		return setSATAPhySpeed(env, gen)
	case device.ClassSCSI:
		return setSASPhySpeed(env, gen, sel)
	default:
		return result.Errorf(result.NotSupported, opSetPhySpeed, "%s drive", env.Device.Class)
	}
}

// GetPhySpeed reads the link state.
func GetPhySpeed(env Env) (LinkSpeed, error) {
	switch env.Device.Class {
	case device.ClassATA:
		return getSATAPhySpeed(env)
	case device.ClassSCSI:
		return getSASPhySpeed(env)
	default:
		return LinkSpeed{}, result.Errorf(result.NotSupported, opGetPhySpeed, "%s drive", env.Device.Class)
	}
}
