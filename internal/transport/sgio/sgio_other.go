// internal/transport/sgio/sgio_other.go
//go:build !linux

package sgio

// Open always fails outside Linux.
func Open(path string) (*Device, error) {
	return nil, ErrUnsupported
}
