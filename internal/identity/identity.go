// internal/identity/identity.go
package identity

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"

	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/transport/sgio"
)

// VPD block device characteristics page.
const (
	vpdBlockCharacteristics    = 0xB1
	vpdBlockCharacteristicsLen = 64
	rotationNonRotating        = 0x0001
)

// vendorA lists model prefixes of drives built for Seagate's OEM line.
var vendorA = []string{
	"SAMSUNG HN-M",
	"SAMSUNG HM",
	"HN-M",
}

// ATAFamily classifies an ATA model string.
func ATAFamily(model string) device.Family {
	model = strings.TrimSpace(model)
	upper := strings.ToUpper(model)

	for _, p := range vendorA {
		if strings.HasPrefix(upper, p) {
			return device.FamilySeagateVendorA
		}
	}
	switch {
	case strings.HasPrefix(upper, "MAXTOR"):
		return device.FamilyMaxtor
	case strings.HasPrefix(upper, "SEAGATE"):
		return device.FamilySeagate
	case len(model) > 2 && strings.HasPrefix(model, "ST") && unicode.IsDigit(rune(model[2])):
		return device.FamilySeagate
	}
	return device.FamilyNonSeagate
}

// SCSIFamily classifies INQUIRY vendor and product strings.
func SCSIFamily(vendor, product string) device.Family {
	vendor = strings.ToUpper(strings.TrimSpace(vendor))
	product = strings.TrimSpace(product)

	switch vendor {
	case "SEAGATE":
		return device.FamilySeagate
	case "MAXTOR":
		return device.FamilyMaxtor
	case "ATA":
		return ATAFamily(product)
	}
	for _, p := range vendorA {
		if strings.HasPrefix(strings.ToUpper(product), p) {
			return device.FamilySeagateVendorA
		}
	}
	return device.FamilyNonSeagate
}

// FromATA builds the handle of an ATA drive from its raw IDENTIFY block.
func FromATA(path, model string, identify []byte) device.Info {
	return device.Info{
		Path:       path,
		Class:      device.ClassATA,
		Family:     ATAFamily(model),
		SolidState: device.SolidStateFromIdentify(identify),
		Caps:       device.CapsFromIdentify(identify),
		Vendor:     "ATA",
		Model:      strings.TrimSpace(model),
	}
}

// FromSCSI builds the handle of a SCSI drive. vpdB1 may be nil.
func FromSCSI(path, vendor, product string, vpdB1 []byte) device.Info {
	return device.Info{
		Path:       path,
		Class:      device.ClassSCSI,
		Family:     SCSIFamily(vendor, product),
		SolidState: rotationRate(vpdB1) == rotationNonRotating,
		Vendor:     strings.TrimSpace(vendor),
		Model:      strings.TrimSpace(product),
	}
}

func rotationRate(vpdB1 []byte) uint16 {
	if len(vpdB1) < 6 || vpdB1[1] != vpdBlockCharacteristics {
		return 0
	}
	return binary.BigEndian.Uint16(vpdB1[4:6])
}

// Open classifies path and opens an SG_IO transport configured for it.
func Open(path string) (device.Info, *sgio.Device, error) {
	info, err := Classify(path)
	if err != nil {
		return device.Info{}, nil, err
	}
	d, err := sgio.Open(path)
	if err != nil {
		return device.Info{}, nil, fmt.Errorf("identity: open %s: %w", path, err)
	}
	d.UseCaps(info.Caps)
	return info, d, nil
}
