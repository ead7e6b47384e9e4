package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"bingpaper/domain"
)

// Overridable in tests.
var (
	userPictureDir = pictureDir
	userHomeDir    = os.UserHomeDir
)

// ResolveCacheDir returns the wallpaper cache directory, creating it if
// needed. A non-empty override is used as-is; otherwise the directory is
// <pictures>/<name>, falling back to <home>/<name> when the platform has no
// picture directory.
func ResolveCacheDir(override, name string) (string, error) {
	dir := override
	if dir == "" {
		base, err := baseDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrDirectoryCreateFailed, dir, err)
	}
	// MkdirAll succeeds on an existing path only if it is a directory, but a
	// symlink to a file slips through on some platforms.
	fi, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrDirectoryCreateFailed, dir, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", domain.ErrDirectoryCreateFailed, dir)
	}
	return dir, nil
}

func baseDir() (string, error) {
	if dir, err := userPictureDir(); err == nil && dir != "" {
		return dir, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}
	if home == "" {
		return "", domain.ErrDirectoryUnavailable
	}
	return home, nil
}
