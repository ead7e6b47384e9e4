//go:build darwin

package desktop

import (
	"errors"
	"strings"
)

type macSetter struct{}

// New returns the macOS setter, which drives System Events via osascript.
func New() Setter {
	return macSetter{}
}

func (macSetter) SetWallpaper(path string) error {
	p, err := absPath(path)
	if err != nil {
		return err
	}
	script := `tell application "System Events" to tell every desktop to set picture to ` + appleScriptString(p)
	return runCommand("osascript", "-e", script)
}

// SetMode is not scriptable on macOS; the system picks the fit.
func (macSetter) SetMode(Mode) error {
	return errors.ErrUnsupported
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
