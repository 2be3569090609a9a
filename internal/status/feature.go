// internal/status/feature.go
package status

import "fmt"

// Feature indexes the per-feature value slots.
type Feature uint8

const (
	FeaturePhySpeed Feature = iota
	FeatureSpinUp
	FeatureSSC
	FeatureJIT
	FeaturePowerBalance

	FeatureCount = 5
)

var featureNames = [FeatureCount]string{
	FeaturePhySpeed:     "phy-speed",
	FeatureSpinUp:       "spinup",
	FeatureSSC:          "ssc",
	FeatureJIT:          "jit",
	FeaturePowerBalance: "power-balance",
}

func (f Feature) String() string {
	if int(f) < FeatureCount {
		return featureNames[f]
	}
	return fmt.Sprintf("feature(%d)", uint8(f))
}

// Slot is the block slot that carries f's value.
func (f Feature) Slot() int { return SlotFeatureStart + int(f) }

// Bit is f's bit in the unsupported and failed masks.
func (f Feature) Bit() uint16 { return 1 << f }

// ParseFeature maps a configuration name to a Feature.
func ParseFeature(name string) (Feature, error) {
	for i, n := range featureNames {
		if n == name {
			return Feature(i), nil
		}
	}
	return 0, fmt.Errorf("status: unknown feature %q", name)
}
