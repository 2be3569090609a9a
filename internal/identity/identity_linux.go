// internal/identity/identity_linux.go
//go:build linux

package identity

import (
	"fmt"

	smart "github.com/anatol/smart.go"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/transport/sgio"
)

// Classify collects the device handle of the drive at path.
func Classify(path string) (device.Info, error) {
	dev, err := smart.Open(path)
	if err != nil {
		return device.Info{}, fmt.Errorf("identity: open %s: %w", path, err)
	}
	kind := dev.Type()
	dev.Close()

	switch kind {
	case "sata":
		return classifySATA(path)
	case "scsi":
		return classifySCSI(path)
	default:
		return device.Info{Path: path, Class: device.ClassUnknown}, nil
	}
}

func classifySATA(path string) (device.Info, error) {
	sd, err := smart.OpenSata(path)
	if err != nil {
		return device.Info{}, fmt.Errorf("identity: open sata %s: %w", path, err)
	}
	defer sd.Close()

	id, err := sd.Identify()
	if err != nil {
		return device.Info{}, fmt.Errorf("identity: identify %s: %w", path, err)
	}

	// smart.go decodes only part of IDENTIFY; the capability words come from the raw block
	raw := make([]byte, device.IdentifyLen)
	d, err := sgio.Open(path)
	if err != nil {
		return device.Info{}, fmt.Errorf("identity: open %s: %w", path, err)
	}
	defer d.Close()
	if err := d.Identify(raw); err != nil {
		return device.Info{}, fmt.Errorf("identity: identify %s: %w", path, err)
	}

	return FromATA(path, id.ModelNumber(), raw), nil
}

func classifySCSI(path string) (device.Info, error) {
	sd, err := smart.OpenScsi(path)
	if err != nil {
		return device.Info{}, fmt.Errorf("identity: open scsi %s: %w", path, err)
	}
	defer sd.Close()

	inq, err := sd.Inquiry()
	if err != nil {
		return device.Info{}, fmt.Errorf("identity: inquiry %s: %w", path, err)
	}

	var vpd []byte
	if d, err := sgio.Open(path); err == nil {
		buf := make([]byte, vpdBlockCharacteristicsLen)
		if d.InquiryVPD(vpdBlockCharacteristics, buf) == nil {
			vpd = buf
		}
		d.Close()
	}

	return FromSCSI(path, string(inq.VendorIdent[:]), string(inq.ProductIdent[:]), vpd), nil
}
