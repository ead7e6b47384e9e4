//go:build !windows

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

const picturesKey = "XDG_PICTURES_DIR"

// pictureDir follows the XDG user-dirs convention on Unix and the fixed
// ~/Pictures location on macOS.
func pictureDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if dir := strings.TrimSpace(os.Getenv(picturesKey)); dir != "" {
		return expandUserDir(dir, home)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Pictures"), nil
	}

	configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	return userDirsEntry(filepath.Join(configHome, "user-dirs.dirs"), picturesKey, home)
}

// userDirsEntry reads key from a user-dirs.dirs file. The file is a list of
// shell assignments, which ini parses as keys of the default section.
func userDirsEntry(path, key, home string) (string, error) {
	f, err := ini.Load(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	value := strings.TrimSpace(f.Section("").Key(key).String())
	if value == "" {
		return "", fmt.Errorf("%s not set in %s", key, path)
	}
	return expandUserDir(value, home)
}

// expandUserDir resolves $HOME and rejects relative or disabled entries.
// xdg-user-dirs marks a disabled directory by pointing it at $HOME itself.
func expandUserDir(value, home string) (string, error) {
	if value == "$HOME" || strings.HasPrefix(value, "$HOME/") {
		value = home + strings.TrimPrefix(value, "$HOME")
	}
	if !filepath.IsAbs(value) {
		return "", fmt.Errorf("user dir %q is not absolute", value)
	}
	value = filepath.Clean(value)
	if value == filepath.Clean(home) {
		return "", fmt.Errorf("user dir is disabled")
	}
	return value, nil
}
