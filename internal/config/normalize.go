// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultIntervalMs = 1000
	DefaultTimeoutMs  = 1000
)

const maxDeviceNameChars = 16

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if m := cfg.Drivecfg.StatusMemory; m != nil && m.TimeoutMs == 0 {
		m.TimeoutMs = DefaultTimeoutMs
	}

	for i := range cfg.Drivecfg.Drives {
		d := &cfg.Drivecfg.Drives[i]

		if d.Poll.IntervalMs == 0 {
			d.Poll.IntervalMs = DefaultIntervalMs
		}

		// status block naming only matters for drives that opted in
		if d.StatusSlot == nil {
			continue
		}

		if d.DeviceName == "" {
			d.DeviceName = d.ID
		}
		// ASCII already validated, so byte truncation is safe
		if len(d.DeviceName) > maxDeviceNameChars {
			d.DeviceName = d.DeviceName[:maxDeviceNameChars]
		}
	}
}
