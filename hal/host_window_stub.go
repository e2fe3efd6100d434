//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow is unavailable without cgo; use -headless or -tui.
func RunWindow(_ HostOptions, _ func(h HAL) func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1), try -tui")
}
