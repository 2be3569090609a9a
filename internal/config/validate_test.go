// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

func slot(v uint16) *uint16 { return &v }

// helper to build a drive quickly
func drive(id, path string, s *uint16, features ...string) DriveConfig {
	return DriveConfig{
		ID:         id,
		Path:       path,
		Features:   features,
		StatusSlot: s,
	}
}

func withStatus(drives ...DriveConfig) *Config {
	return &Config{
		Drivecfg: DrivecfgConfig{
			StatusMemory: &StatusMemoryConfig{Endpoint: "127.0.0.1:502", UnitID: 1},
			Drives:       drives,
		},
	}
}

// ---- tests ----

func TestValidate_OK(t *testing.T) {
	cfg := withStatus(
		drive("d0", "/dev/sg0", slot(0), "phy-speed", "jit"),
		drive("d1", "/dev/sg1", slot(1), "spinup", "ssc", "power-balance"),
	)

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SlotCollision(t *testing.T) {
	cfg := withStatus(
		drive("d0", "/dev/sg0", slot(3)),
		drive("d1", "/dev/sg1", slot(3)),
	)

	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected slot collision")
	}
	if !strings.Contains(err.Error(), "status_slot collision") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StatusSlotNeedsMemory(t *testing.T) {
	cfg := &Config{Drivecfg: DrivecfgConfig{
		Drives: []DriveConfig{drive("d0", "/dev/sg0", slot(0))},
	}}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for status_slot without status_memory")
	}
}

func TestValidate_UnknownFeature(t *testing.T) {
	cfg := withStatus(drive("d0", "/dev/sg0", nil, "write-cache"))

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown feature error")
	}
}

func TestValidate_DuplicateFeature(t *testing.T) {
	cfg := withStatus(drive("d0", "/dev/sg0", nil, "jit", "jit"))

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate feature error")
	}
}

func TestValidate_DuplicateIDAndPath(t *testing.T) {
	if err := Validate(withStatus(
		drive("d0", "/dev/sg0", nil),
		drive("d0", "/dev/sg1", nil),
	)); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	if err := Validate(withStatus(
		drive("d0", "/dev/sg0", nil),
		drive("d1", "/dev/sg0", nil),
	)); err == nil {
		t.Fatalf("expected duplicate path error")
	}
}

func TestValidate_NonASCIIName(t *testing.T) {
	d := drive("d0", "/dev/sg0", slot(0))
	d.DeviceName = "BAY-é"

	if err := Validate(withStatus(d)); err == nil {
		t.Fatalf("expected ASCII error")
	}
}

func TestValidate_Verbosity(t *testing.T) {
	cfg := withStatus()
	cfg.Drivecfg.Verbosity = 5

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected verbosity error")
	}
}

func TestValidate_Apply(t *testing.T) {
	gen := uint8(6)
	bad := "on"
	phy := uint8(1)

	cases := map[string]*ApplyConfig{
		"phy speed":    {PhySpeed: &gen},
		"phy id alone": {PhyID: &phy},
		"ssc value":    {SSC: &bad},
		"jit mode":     {JIT: &JITConfig{Mode: 4}},
	}

	for name, a := range cases {
		d := drive("d0", "/dev/sg0", nil)
		d.Apply = a
		if err := Validate(withStatus(d)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	// revert ignores the mode
	d := drive("d0", "/dev/sg0", nil)
	d.Apply = &ApplyConfig{JIT: &JITConfig{Mode: 9, Revert: true}}
	if err := Validate(withStatus(d)); err != nil {
		t.Fatalf("revert: unexpected error: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	cfg := withStatus(
		drive("d0", "/dev/sg0", slot(0)),
		drive("d1", "/dev/sg1", slot(1)),
		drive("d2", "/dev/sg2", nil),
	)
	cfg.Drivecfg.Drives[1].DeviceName = "A-VERY-LONG-DEVICE-NAME"
	cfg.Drivecfg.Drives[2].Poll.IntervalMs = 250

	Normalize(cfg)

	d := cfg.Drivecfg.Drives
	if d[0].DeviceName != "d0" {
		t.Fatalf("device_name default: got %q", d[0].DeviceName)
	}
	if d[1].DeviceName != "A-VERY-LONG-DEVI" {
		t.Fatalf("device_name truncation: got %q", d[1].DeviceName)
	}
	if d[2].DeviceName != "" {
		t.Fatalf("drive without status_slot must keep its name: got %q", d[2].DeviceName)
	}
	if d[0].Poll.IntervalMs != DefaultIntervalMs || d[2].Poll.IntervalMs != 250 {
		t.Fatalf("interval defaults: got %d and %d", d[0].Poll.IntervalMs, d[2].Poll.IntervalMs)
	}
	if cfg.Drivecfg.StatusMemory.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("timeout default: got %d", cfg.Drivecfg.StatusMemory.TimeoutMs)
	}
}
