// internal/config/config.go
package config

type Config struct {
	Drivecfg DrivecfgConfig `yaml:"drivecfg"`
}

type DrivecfgConfig struct {
	// Verbosity 0 (quiet) .. 4 (debug).
	Verbosity    int                 `yaml:"verbosity"`
	Trace        TraceConfig         `yaml:"trace"`
	StatusMemory *StatusMemoryConfig `yaml:"status_memory"`
	Drives       []DriveConfig       `yaml:"drives"`
}

// ---- TRACE ----

type TraceConfig struct {
	// Path of the CBOR command trace; empty disables tracing.
	Path string `yaml:"path"`
}

// ---- STATUS MEMORY ----

type StatusMemoryConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- DRIVE ----

type DriveConfig struct {
	ID       string     `yaml:"id"`
	Path     string     `yaml:"path"`
	Features []string   `yaml:"features"`
	Poll     PollConfig `yaml:"poll"`

	// Drive status block (optional, opt-in)
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`

	Apply *ApplyConfig `yaml:"apply"`
}

// ---- APPLY ----

// ApplyConfig is the desired state written by `drivecfg apply`.
// Unset fields are left alone.
type ApplyConfig struct {
	PhySpeed         *uint8     `yaml:"phy_speed"`
	PhyID            *uint8     `yaml:"phy_id"`
	LowCurrentSpinUp *bool      `yaml:"low_current_spinup"`
	SSC              *string    `yaml:"ssc"`
	JIT              *JITConfig `yaml:"jit"`
	PowerBalance     *bool      `yaml:"power_balance"`
}

type JITConfig struct {
	Mode        uint8 `yaml:"mode"`
	DisableVJIT bool  `yaml:"disable_vjit"`
	Revert      bool  `yaml:"revert"`
	NonVolatile bool  `yaml:"nonvolatile"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}
