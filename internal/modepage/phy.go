// internal/modepage/phy.go
package modepage

import (
	"errors"
	"fmt"
)

// SAS phy control and discover mode subpage.
var PhyControl = Spec{
	Name:                    "phy control and discover",
	Code:                    0x19,
	Subpage:                 0x01,
	SubpageFormat:           true,
	DisableBlockDescriptors: true,
	LongLBA:                 true,
}

// PhyControlRequested covers the page header plus two descriptors.
// Drives with more phys are picked up by the refetch.
const PhyControlRequested = 8 + 2*PhyDescriptorLen

// ProtocolSAS is the protocol identifier of a SAS port page.
const ProtocolSAS = 6

// PhyDescriptorLen is the stride of the phy descriptor table.
const PhyDescriptorLen = 48

// Body offsets.
const (
	phyOffProtocol   = 5
	phyOffCount      = 7
	phyTableStart    = 8
	phyOffIdentifier = 1
	phyOffNegotiated = 5
	phyOffLinkRate   = 33
)

// ErrNotSAS means the port page belongs to another protocol.
var ErrNotSAS = errors.New("modepage: port page is not SAS")

// PhySelector picks the descriptors a change applies to.
type PhySelector struct {
	All bool
	ID  uint8
}

func (s PhySelector) match(id uint8) bool { return s.All || s.ID == id }

// PhyDescriptor is one entry of the phy descriptor table.
type PhyDescriptor struct {
	page *Page
	base int
}

// Identifier is the phy identifier.
func (d PhyDescriptor) Identifier() (uint8, error) {
	return d.page.Byte(d.base + phyOffIdentifier)
}

// LinkRates returns the programmed maximum and hardware maximum rate codes.
func (d PhyDescriptor) LinkRates() (programmed, hardware uint8, err error) {
	b, err := d.page.Byte(d.base + phyOffLinkRate)
	if err != nil {
		return 0, 0, err
	}
	return HighNibble(b), LowNibble(b), nil
}

// NegotiatedRate is the negotiated logical link rate code.
func (d PhyDescriptor) NegotiatedRate() (uint8, error) {
	b, err := d.page.Byte(d.base + phyOffNegotiated)
	if err != nil {
		return 0, err
	}
	return LowNibble(b), nil
}

// SetProgrammedMax writes the programmed maximum rate for gen.
// gen 0 restores the hardware maximum.
func (d PhyDescriptor) SetProgrammedMax(gen uint8) error {
	_, hw, err := d.LinkRates()
	if err != nil {
		return err
	}
	code, err := EncodeSASLinkRate(gen, hw)
	if err != nil {
		return err
	}
	return d.page.WriteBits(d.base+phyOffLinkRate, 0xF0, code)
}

// PhyDescriptors checks the page is a SAS port page and returns its table.
func PhyDescriptors(p *Page) ([]PhyDescriptor, error) {
	proto, err := p.Byte(phyOffProtocol)
	if err != nil {
		return nil, err
	}
	if LowNibble(proto) != ProtocolSAS {
		return nil, fmt.Errorf("%w: protocol %d", ErrNotSAS, LowNibble(proto))
	}

	count, err := p.Byte(phyOffCount)
	if err != nil {
		return nil, err
	}

	end := phyTableStart + int(count)*PhyDescriptorLen
	if end > p.Len() {
		return nil, fmt.Errorf("%w: %d phys need %d bytes, page has %d", ErrOutOfRange, count, end, p.Len())
	}

	out := make([]PhyDescriptor, 0, count)
	for i := 0; i < int(count); i++ {
		out = append(out, PhyDescriptor{page: p, base: phyTableStart + i*PhyDescriptorLen})
	}
	return out, nil
}

// ForEachPhy calls fn for every descriptor sel matches and returns how many matched.
func ForEachPhy(p *Page, sel PhySelector, fn func(PhyDescriptor) error) (int, error) {
	descs, err := PhyDescriptors(p)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, d := range descs {
		id, err := d.Identifier()
		if err != nil {
			return n, err
		}
		if !sel.match(id) {
			continue
		}
		if err := fn(d); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
