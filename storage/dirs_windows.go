//go:build windows

package storage

import "golang.org/x/sys/windows"

// pictureDir returns the user's Pictures known folder.
func pictureDir() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_Pictures, windows.KF_FLAG_DEFAULT)
}
