// internal/device/device.go
package device

// Class is the command-set family a drive speaks.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassATA
	ClassSCSI
)

func (c Class) String() string {
	switch c {
	case ClassATA:
		return "ata"
	case ClassSCSI:
		return "scsi"
	default:
		return "unknown"
	}
}

// Family is the vendor family classification used by feature gates.
type Family uint8

const (
	FamilyNonSeagate Family = iota
	FamilySeagate
	FamilySeagateVendorA
	FamilyMaxtor
)

func (f Family) String() string {
	switch f {
	case FamilySeagate:
		return "seagate"
	case FamilySeagateVendorA:
		return "seagate-vendor-a"
	case FamilyMaxtor:
		return "maxtor"
	default:
		return "non-seagate"
	}
}

// Caps is the bitmap of optional features a drive advertises.
type Caps uint32

const (
	CapSCTPhySpeed Caps = 1 << iota
	CapSCTFeatureControl
	CapPowerBalanceLegacy
	CapPowerBalance
	CapGPL
	CapDMA
)

// Has reports whether every bit in c is advertised.
func (cs Caps) Has(c Caps) bool { return cs&c == c }

// Any reports whether at least one bit in c is advertised.
func (cs Caps) Any(c Caps) bool { return cs&c != 0 }

// Info is the read-only device handle.
// It is produced by identity collection and never mutated by feature code.
type Info struct {
	Path       string
	Class      Class
	Family     Family
	SolidState bool
	Caps       Caps

	Vendor string
	Model  string
}

// IsSeagate reports the plain Seagate family (no OEM variants).
func (i Info) IsSeagate() bool { return i.Family == FamilySeagate }
