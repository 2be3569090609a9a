// internal/monitor/builder.go
package monitor

import (
	"fmt"
	"time"

	"github.com/tamzrod/drivecfg/internal/config"
	"github.com/tamzrod/drivecfg/internal/feature"
	"github.com/tamzrod/drivecfg/internal/status"
)

// Opener classifies and opens one drive, returning the environment its
// operations run in and a closer for the underlying handle.
type Opener func(path string) (feature.Env, func() error, error)

// Build constructs a Monitor for one configured drive.
// The drive is opened once at startup (fail fast); the returned closer
// releases it.
func Build(d config.DriveConfig, open Opener) (*Monitor, func() error, error) {
	features := make([]status.Feature, 0, len(d.Features))
	for _, name := range d.Features {
		f, err := status.ParseFeature(name)
		if err != nil {
			return nil, nil, fmt.Errorf("monitor: drive %q: %w", d.ID, err)
		}
		features = append(features, f)
	}

	env, closeDrive, err := open(d.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("monitor: drive %q: %w", d.ID, err)
	}

	m, err := New(
		Config{
			DriveID:  d.ID,
			Interval: time.Duration(d.Poll.IntervalMs) * time.Millisecond,
			Features: features,
		},
		env,
	)
	if err != nil {
		_ = closeDrive()
		return nil, nil, err
	}

	return m, closeDrive, nil
}
