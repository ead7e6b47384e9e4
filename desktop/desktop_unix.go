//go:build linux || freebsd || openbsd || netbsd || dragonfly

package desktop

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
)

const gnomeSchema = "org.gnome.desktop.background"

// Desktops that read the GNOME background schema.
var gnomeFamily = map[string]bool{
	"gnome":    true,
	"unity":    true,
	"budgie":   true,
	"pantheon": true,
}

type xdgSetter struct {
	desktop string
}

// New returns the setter for the running desktop session, chosen from
// XDG_CURRENT_DESKTOP.
func New() Setter {
	return &xdgSetter{desktop: os.Getenv("XDG_CURRENT_DESKTOP")}
}

func (s *xdgSetter) gnome() bool {
	for _, name := range strings.Split(s.desktop, ":") {
		if gnomeFamily[strings.ToLower(strings.TrimSpace(name))] {
			return true
		}
	}
	return false
}

func (s *xdgSetter) SetWallpaper(path string) error {
	p, err := absPath(path)
	if err != nil {
		return err
	}
	if !s.gnome() {
		return runCommand("feh", "--bg-fill", p)
	}

	uri := (&url.URL{Scheme: "file", Path: p}).String()
	if err := runCommand("gsettings", "set", gnomeSchema, "picture-uri", uri); err != nil {
		return err
	}
	// Only GNOME 42 and later have the dark variant key.
	if err := runCommand("gsettings", "set", gnomeSchema, "picture-uri-dark", uri); err != nil {
		log.Printf("Warning: failed to set dark wallpaper: %v", err)
	}
	return nil
}

func (s *xdgSetter) SetMode(m Mode) error {
	if m != ModeCrop {
		return fmt.Errorf("unsupported wallpaper mode %s", m)
	}
	if !s.gnome() {
		// feh --bg-fill already crops.
		return nil
	}
	return runCommand("gsettings", "set", gnomeSchema, "picture-options", "zoom")
}
