//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !darwin && !windows

package desktop

import (
	"errors"
	"fmt"
	"runtime"
)

type unsupportedSetter struct{}

// New returns a setter that fails on every call.
func New() Setter {
	return unsupportedSetter{}
}

func (unsupportedSetter) SetWallpaper(string) error {
	return fmt.Errorf("wallpaper on %s: %w", runtime.GOOS, errors.ErrUnsupported)
}

func (unsupportedSetter) SetMode(Mode) error {
	return errors.ErrUnsupported
}
