// internal/identity/identity_other.go
//go:build !linux

package identity

import (
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/transport/sgio"
)

// Classify is only available on Linux.
func Classify(path string) (device.Info, error) {
	return device.Info{}, sgio.ErrUnsupported
}
