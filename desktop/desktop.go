// Package desktop applies an image file as the desktop background through
// whatever facility the host OS provides.
package desktop

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"bingpaper/domain"
)

// Mode is how the wallpaper is fitted to the screen.
type Mode int

const (
	// ModeCrop scales the image to cover the screen, cropping the overflow.
	ModeCrop Mode = iota
)

func (m Mode) String() string {
	switch m {
	case ModeCrop:
		return "crop"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Setter is the OS wallpaper facility.
type Setter interface {
	SetWallpaper(path string) error
	SetMode(m Mode) error
}

// absPath makes path absolute and rejects paths the OS calls cannot carry.
func absPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", domain.ErrPathEncoding)
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: %q contains a NUL byte", domain.ErrPathEncoding, path)
	}
	p, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPathEncoding, err)
	}
	return p, nil
}

// runCommand runs an external helper; overridden in tests.
var runCommand = func(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
