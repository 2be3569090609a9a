// internal/device/transport.go
package device

// Variant selects the mode parameter header layout.
// Long is MODE SENSE/SELECT(10), Short is MODE SENSE/SELECT(6).
type Variant uint8

const (
	Long Variant = iota
	Short
)

// Mode parameter header lengths.
const (
	LongHeaderLen  = 8
	ShortHeaderLen = 4
)

// HeaderLen returns the fixed mode parameter header length of v.
func (v Variant) HeaderLen() int {
	if v == Short {
		return ShortHeaderLen
	}
	return LongHeaderLen
}

func (v Variant) String() string {
	if v == Short {
		return "short"
	}
	return "long"
}

// PageControl is the MODE SENSE PC field.
type PageControl uint8

const (
	PageCurrent PageControl = iota
	PageChangeable
	PageDefault
	PageSaved
)

// ModeSenseRequest describes one mode page read.
type ModeSenseRequest struct {
	Page    uint8
	Subpage uint8
	Control PageControl

	// DisableBlockDescriptors sets DBD.
	DisableBlockDescriptors bool
	// LongLBA sets LLBAA (long variant only).
	LongLBA bool
}

// SCTStatus is the status returned by an SCT command.
type SCTStatus struct {
	// State is the feature state reported by SCT feature control.
	State uint16
	// Options is the option flags word reported by SCT feature control.
	Options uint16
}

// SetFeatures is one ATA SET FEATURES command.
type SetFeatures struct {
	Subcommand uint8
	Count      uint16
	LBALow     uint8
	LBAMid     uint8
	LBAHigh    uint16
}

// Transport moves command blocks to and from one drive.
// Implementations are not required to be safe for concurrent use.
type Transport interface {
	// ModeSense fills buf with up to len(buf) bytes of a mode page.
	ModeSense(v Variant, req ModeSenseRequest, buf []byte) error
	// ModeSelect writes mode parameter data back to the drive.
	ModeSelect(v Variant, data []byte, save bool) error
	// SCTWrite issues a 512-byte SCT command block.
	SCTWrite(buf []byte) (SCTStatus, error)
	// SetFeatures issues an ATA SET FEATURES command.
	SetFeatures(req SetFeatures) error
	// Identify reads a fresh 512-byte IDENTIFY DEVICE block into buf.
	Identify(buf []byte) error
}
