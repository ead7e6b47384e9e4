// Package app runs one wallpaper update: resolve the cache, make sure today's
// image is on disk, apply it, and prune old copies.
package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"

	"bingpaper/bing"
	"bingpaper/config"
	"bingpaper/desktop"
	"bingpaper/domain"
	"bingpaper/fetch"
	"bingpaper/imaging"
	"bingpaper/storage"
)

// Options carries the collaborators of a run. Nil fields get the real
// implementation.
type Options struct {
	Config  config.Config
	Fetcher fetch.Fetcher
	Setter  desktop.Setter
	Clock   clock.Clock
}

func (o *Options) setDefaults() {
	if o.Fetcher == nil {
		o.Fetcher = fetch.NewHTTPFetcher(fetch.OptionsFromConfig(o.Config))
	}
	if o.Setter == nil {
		o.Setter = desktop.New()
	}
	if o.Clock == nil {
		o.Clock = clock.WallClock
	}
}

// Run performs a single update. Any returned error is fatal; preview, display
// mode and pruning problems are only logged.
func Run(ctx context.Context, opts Options) error {
	opts.setDefaults()
	cfg := opts.Config

	dir, err := storage.ResolveCacheDir(cfg.CacheDir, cfg.DirName)
	if err != nil {
		return err
	}

	cache := storage.NewCache(dir, cfg.Naming, opts.Fetcher)
	cache.Check = imaging.Validate
	dateKey := cfg.Naming.DateKey(opts.Clock.Now())

	path, err := todaysImage(ctx, cache, bing.NewClient(opts.Fetcher, cfg), dateKey)
	if err != nil {
		return err
	}

	if cfg.Previews {
		writePreview(cache, dateKey, path)
	}

	if err := opts.Setter.SetWallpaper(path); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWallpaperSetFailed, path, err)
	}
	if err := opts.Setter.SetMode(desktop.ModeCrop); err != nil {
		log.Printf("Warning: failed to set wallpaper mode: %v", err)
	}
	log.Printf("Wallpaper set: %s", path)

	if n := storage.Prune(dir, cfg.KeepCount); n > 0 {
		log.Printf("Pruned %d old wallpaper(s)", n)
	}
	storage.CleanStalePreviews(dir, cfg.Naming)
	return nil
}

// todaysImage returns the cached file for dateKey, asking the image service
// for metadata only when the file is not there yet.
func todaysImage(ctx context.Context, cache *storage.Cache, client *bing.Client, dateKey string) (string, error) {
	if cache.Has(dateKey) {
		log.Printf("Using cached wallpaper for %s", dateKey)
		return cache.Path(dateKey)
	}

	img, err := client.Latest(ctx)
	if err != nil {
		return "", err
	}
	remote, err := client.ImageURL(img)
	if err != nil {
		return "", err
	}
	if img.Title != "" {
		log.Printf("Today's image: %s", img.Title)
	}
	return cache.EnsureImage(ctx, dateKey, remote)
}

func writePreview(cache *storage.Cache, dateKey, path string) {
	if dst, err := cache.PreviewPath(dateKey); err == nil {
		if _, err := os.Stat(dst); err == nil {
			return
		}
	}
	data, err := imaging.PreviewFile(path)
	if err != nil {
		log.Printf("Warning: failed to render preview for %s: %v", dateKey, err)
		return
	}
	dst, err := cache.WritePreview(dateKey, data)
	if err != nil {
		log.Printf("Warning: failed to write preview for %s: %v", dateKey, err)
		return
	}
	log.Printf("Preview written: %s (%s)", dst, humanize.Bytes(uint64(len(data))))
}
