// internal/publish/builder.go
package publish

import (
	"errors"
	"time"

	"github.com/tamzrod/drivecfg/internal/config"
	pmodbus "github.com/tamzrod/drivecfg/internal/publish/modbus"
)

// BuildPlan converts one drive config into a publish Plan.
// Assumes config has already passed validation.
func BuildPlan(d config.DriveConfig, mem *config.StatusMemoryConfig) (Plan, error) {
	if d.ID == "" {
		return Plan{}, errors.New("publish: drive.id required")
	}

	plan := Plan{DriveID: d.ID}
	if d.StatusSlot == nil {
		return plan, nil
	}
	if mem == nil {
		return Plan{}, errors.New("publish: status_slot set without status_memory")
	}

	plan.Status = &StatusPlan{
		Endpoint:   mem.Endpoint,
		UnitID:     mem.UnitID,
		BaseSlot:   *d.StatusSlot,
		DeviceName: d.DeviceName,
	}
	return plan, nil
}

// BuildEndpointClient connects to the status memory endpoint.
func BuildEndpointClient(mem config.StatusMemoryConfig) (*pmodbus.EndpointClient, func() error, error) {
	c, err := pmodbus.NewEndpointClient(pmodbus.Config{
		Endpoint: mem.Endpoint,
		Timeout:  time.Duration(mem.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}
