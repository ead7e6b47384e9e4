package domain

import "errors"

// Failure kinds for a single run. Every one of them is fatal; callers wrap
// the underlying cause with fmt.Errorf("%w: ...: %w", kind, cause).
var (
	// ErrDirectoryUnavailable means neither a picture nor a home directory
	// could be determined.
	ErrDirectoryUnavailable = errors.New("no picture or home directory available")

	// ErrDirectoryCreateFailed means the cache directory could not be created.
	ErrDirectoryCreateFailed = errors.New("failed to create wallpaper directory")

	// ErrMetadataFetchFailed means the image-of-the-day metadata could not be
	// fetched or decoded.
	ErrMetadataFetchFailed = errors.New("failed to fetch image metadata")

	// ErrNoImageData means the metadata document listed no images.
	ErrNoImageData = errors.New("no image data in metadata response")

	// ErrDownloadFailed means the image bytes could not be downloaded or were
	// not a usable image.
	ErrDownloadFailed = errors.New("failed to download image")

	// ErrWriteFailed means the downloaded image could not be written to disk.
	ErrWriteFailed = errors.New("failed to write image file")

	// ErrPathEncoding means a path could not be represented for the target API.
	ErrPathEncoding = errors.New("path conversion failed")

	// ErrWallpaperSetFailed means the OS rejected the new wallpaper.
	ErrWallpaperSetFailed = errors.New("failed to set wallpaper")
)
