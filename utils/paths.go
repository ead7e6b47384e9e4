package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFileComponent checks that name can be used as a single filename
// inside a directory: no separators, no parent references, no NUL bytes.
func ValidateFileComponent(name string) error {
	if name == "" {
		return fmt.Errorf("empty file name")
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("file name %q contains a NUL byte", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("file name %q contains a path separator", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("file name %q is a directory reference", name)
	}
	// Reject drive-relative names on Windows ("C:foo").
	if filepath.VolumeName(name) != "" {
		return fmt.Errorf("file name %q has a volume prefix", name)
	}
	return nil
}

// ContainedPath joins name onto baseDir and ensures the result stays directly
// inside baseDir. It returns the absolute joined path.
func ContainedPath(baseDir, name string) (string, error) {
	if err := ValidateFileComponent(name); err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base dir: %w", err)
	}
	absPath := filepath.Join(absBase, name)
	if filepath.Dir(absPath) != absBase {
		return "", fmt.Errorf("path traversal detected: %s escapes %s", name, baseDir)
	}
	return absPath, nil
}
