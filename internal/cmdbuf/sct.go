// internal/cmdbuf/sct.go
package cmdbuf

// SCT command block geometry.
const SCTBlockLen = 512

// SCT action codes.
const (
	SCTActionFeatureControl uint16 = 0x0004
	SCTActionSpeedControl   uint16 = 0x00BE // vendor unique
)

// SCT function codes.
const (
	SCTFunctionSetState    uint16 = 0x0001
	SCTFunctionReturnState uint16 = 0x0002
	SCTFunctionSetPhySpeed uint16 = 0x0003
)

// SCT feature control option flags.
const SCTOptionPreserve uint16 = 0x0001

// SCT layout offsets.
const (
	sctOffAction   = 0
	sctOffFunction = 2
	sctOffFeature  = 4
	sctOffState    = 6
	sctOffOptions  = 8
	sctOffPhySpeed = 28
)

// SCTPhySpeed builds the vendor SCT block that programs the SATA link generation.
// The setting is always saved; it takes effect after a power cycle.
func SCTPhySpeed(gen uint8) ([]byte, error) {
	return Build(SCTBlockLen, Reserved,
		U16(sctOffAction, SCTActionSpeedControl),
		U16(sctOffFunction, SCTFunctionSetPhySpeed),
		U16(sctOffOptions, SCTOptionPreserve),
		U16(sctOffPhySpeed, uint16(gen)),
	)
}

// SCTFeatureControl builds an SCT feature control block.
func SCTFeatureControl(function, feature, state, options uint16) ([]byte, error) {
	return Build(SCTBlockLen, Reserved,
		U16(sctOffAction, SCTActionFeatureControl),
		U16(sctOffFunction, function),
		U16(sctOffFeature, feature),
		U16(sctOffState, state),
		U16(sctOffOptions, options),
	)
}
