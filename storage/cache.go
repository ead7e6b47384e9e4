package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"bingpaper/config"
	"bingpaper/domain"
	"bingpaper/fetch"
	"bingpaper/utils"
)

// Cache is the directory of dated wallpaper images.
type Cache struct {
	Dir     string
	Naming  config.Naming
	Fetcher fetch.Fetcher

	// Check, when set, vets downloaded bytes before they are written.
	Check func(data []byte) error
}

func NewCache(dir string, naming config.Naming, f fetch.Fetcher) *Cache {
	return &Cache{Dir: dir, Naming: naming, Fetcher: f}
}

// Path returns the target path of the image for dateKey.
func (c *Cache) Path(dateKey string) (string, error) {
	p, err := utils.ContainedPath(c.Dir, c.Naming.FileName(dateKey))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPathEncoding, err)
	}
	return p, nil
}

// Has reports whether the image for dateKey is already cached.
func (c *Cache) Has(dateKey string) bool {
	p, err := c.Path(dateKey)
	if err != nil {
		return false
	}
	return isRegularFile(p)
}

// EnsureImage returns the cached image for dateKey, downloading remoteURL
// only when no file for that date exists yet. The file is either written in
// full or not at all.
func (c *Cache) EnsureImage(ctx context.Context, dateKey, remoteURL string) (string, error) {
	path, err := c.Path(dateKey)
	if err != nil {
		return "", err
	}
	if isRegularFile(path) {
		return path, nil
	}

	data, err := c.Fetcher.Fetch(ctx, remoteURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}
	if c.Check != nil {
		if err := c.Check(data); err != nil {
			return "", fmt.Errorf("%w: invalid image from %s: %w", domain.ErrDownloadFailed, remoteURL, err)
		}
	}

	if err := atomicWrite(path, data); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
	}
	log.Printf("Downloaded: %s (%s)", filepath.Base(path), humanize.Bytes(uint64(len(data))))
	return path, nil
}

// PreviewPath returns the preview location for dateKey.
func (c *Cache) PreviewPath(dateKey string) (string, error) {
	name := c.Naming.Prefix + dateKey + ".webp"
	p, err := utils.ContainedPath(filepath.Join(c.Dir, config.PreviewDirName), name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrPathEncoding, err)
	}
	return p, nil
}

// WritePreview stores an encoded preview for dateKey.
func (c *Cache) WritePreview(dateKey string, data []byte) (string, error) {
	path, err := c.PreviewPath(dateKey)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}
	if err := atomicWrite(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeTemp writes data into the temp file; overridden in tests.
var writeTemp = func(f *os.File, data []byte) error {
	_, err := f.Write(data)
	return err
}

// atomicWrite writes data to path via a temp file + rename, so path never
// holds a partial file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeTemp(tmp, data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		log.Printf("Warning: failed to chmod %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func isRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
