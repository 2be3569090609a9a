// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/drivecfg/internal/status"
)

const maxVerbosity = 4

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil configuration")
	}
	dc := cfg.Drivecfg

	if dc.Verbosity < 0 || dc.Verbosity > maxVerbosity {
		return fmt.Errorf("config: verbosity %d out of range 0..%d", dc.Verbosity, maxVerbosity)
	}

	if m := dc.StatusMemory; m != nil {
		if m.Endpoint == "" {
			return fmt.Errorf("config: status_memory.endpoint is required")
		}
		if m.TimeoutMs < 0 {
			return fmt.Errorf("config: status_memory.timeout_ms must be >= 0")
		}
	}

	ids := make(map[string]bool)
	paths := make(map[string]string)
	// slot -> drive id
	slotOwner := make(map[uint16]string)

	for _, d := range dc.Drives {
		if d.ID == "" {
			return fmt.Errorf("config: drive with path %q has no id", d.Path)
		}
		if ids[d.ID] {
			return fmt.Errorf("config: duplicate drive id %q", d.ID)
		}
		ids[d.ID] = true

		if d.Path == "" {
			return fmt.Errorf("drive %q: path is required", d.ID)
		}
		if prev, ok := paths[d.Path]; ok {
			return fmt.Errorf(
				"drive %q: path %s already used by drive %q",
				d.ID,
				d.Path,
				prev,
			)
		}
		paths[d.Path] = d.ID

		if d.Poll.IntervalMs < 0 {
			return fmt.Errorf("drive %q: poll.interval_ms must be >= 0", d.ID)
		}

		seen := make(map[string]bool)
		for _, name := range d.Features {
			if _, err := status.ParseFeature(name); err != nil {
				return fmt.Errorf("drive %q: %w", d.ID, err)
			}
			if seen[name] {
				return fmt.Errorf("drive %q: feature %q listed twice", d.ID, name)
			}
			seen[name] = true
		}

		// device_name sanity (ASCII only)
		for i := 0; i < len(d.DeviceName); i++ {
			if d.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"drive %q: device_name must contain ASCII characters only",
					d.ID,
				)
			}
		}

		if err := validateApply(d); err != nil {
			return err
		}

		// status is opt-in
		if d.StatusSlot == nil {
			continue
		}

		if dc.StatusMemory == nil {
			return fmt.Errorf(
				"drive %q: status_slot is set but status_memory is not configured",
				d.ID,
			)
		}

		slot := *d.StatusSlot
		if int(slot)*status.SlotsPerDevice+status.SlotsPerDevice > 0x10000 {
			return fmt.Errorf("drive %q: status_slot %d exceeds the register space", d.ID, slot)
		}

		if prev, exists := slotOwner[slot]; exists {
			return fmt.Errorf(
				"status_slot collision: endpoint=%s unit_id=%d slot=%d used by drives %q and %q",
				dc.StatusMemory.Endpoint,
				dc.StatusMemory.UnitID,
				slot,
				prev,
				d.ID,
			)
		}
		slotOwner[slot] = d.ID
	}

	return nil
}

// Value ranges mirrored from the drive encodings.
const (
	maxPhyGeneration = 5
	maxJITMode       = 3
)

func validateApply(d DriveConfig) error {
	a := d.Apply
	if a == nil {
		return nil
	}

	if a.PhySpeed != nil && *a.PhySpeed > maxPhyGeneration {
		return fmt.Errorf("drive %q: apply.phy_speed %d out of range 0..%d", d.ID, *a.PhySpeed, maxPhyGeneration)
	}
	if a.PhyID != nil && a.PhySpeed == nil {
		return fmt.Errorf("drive %q: apply.phy_id requires apply.phy_speed", d.ID)
	}
	if a.SSC != nil {
		switch *a.SSC {
		case "default", "enabled", "disabled":
		default:
			return fmt.Errorf("drive %q: apply.ssc %q must be default, enabled or disabled", d.ID, *a.SSC)
		}
	}
	if j := a.JIT; j != nil && !j.Revert && j.Mode > maxJITMode {
		return fmt.Errorf("drive %q: apply.jit.mode %d out of range 0..%d", d.ID, j.Mode, maxJITMode)
	}
	return nil
}
