//go:build windows

package desktop

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"bingpaper/domain"
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

type winSetter struct {
	// last is re-applied after a mode change so the new style takes effect.
	last string
}

// New returns the Windows setter.
func New() Setter {
	return &winSetter{}
}

func (s *winSetter) SetWallpaper(path string) error {
	p, err := absPath(path)
	if err != nil {
		return err
	}
	if err := setDeskWallpaper(p); err != nil {
		return err
	}
	s.last = p
	return nil
}

func (s *winSetter) SetMode(m Mode) error {
	if m != ModeCrop {
		return fmt.Errorf("unsupported wallpaper mode %s", m)
	}
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open desktop registry key: %w", err)
	}
	defer k.Close()

	// Style 10 is "Fill".
	if err := k.SetStringValue("WallpaperStyle", "10"); err != nil {
		return fmt.Errorf("set WallpaperStyle: %w", err)
	}
	if err := k.SetStringValue("TileWallpaper", "0"); err != nil {
		return fmt.Errorf("set TileWallpaper: %w", err)
	}
	if s.last == "" {
		return nil
	}
	return setDeskWallpaper(s.last)
}

func setDeskWallpaper(path string) error {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPathEncoding, err)
	}
	r, _, callErr := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(ptr)),
		spifUpdateIniFile|spifSendChange,
	)
	if r == 0 {
		return fmt.Errorf("SystemParametersInfoW: %w", callErr)
	}
	return nil
}
