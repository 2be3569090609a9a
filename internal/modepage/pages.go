// internal/modepage/pages.go
package modepage

// Vendor unit attention parameters page (page 00h). Carries the JIT byte.
var UnitAttention = Spec{
	Name:                    "unit attention parameters",
	Code:                    0x00,
	DisableBlockDescriptors: true,
}

const (
	UnitAttentionRequested = 12
	JITOffset              = 4
)

// Power consumption mode subpage.
var PowerConsumption = Spec{
	Name:                    "power consumption",
	Code:                    0x1A,
	Subpage:                 0x01,
	SubpageFormat:           true,
	DisableBlockDescriptors: true,
}

const (
	PowerConsumptionRequested = 16

	PowerActiveLevelOffset = 6
	PowerActiveLevelMask   = 0x07
	PowerIdentifierOffset  = 7
)

// Active levels of the power consumption page.
const (
	PowerLevelByIdentifier = 0
	PowerLevelHighest      = 1
	PowerLevelIntermediate = 2
	PowerLevelLowest       = 3
)
