package storage

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bingpaper/config"
)

// fileInfo reads an entry's metadata; overridden in tests.
var fileInfo = func(path string, e os.DirEntry) (os.FileInfo, error) {
	if e.Type()&os.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return e.Info()
}

type pruneCandidate struct {
	path    string
	modTime time.Time
}

// Prune keeps the keep most recently modified regular files directly inside
// dir and removes the rest. Files whose modification time cannot be read sort
// as oldest. Prune never fails: listing and delete errors are logged and the
// number of files actually removed is returned.
func Prune(dir string, keep int) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Error listing %s for pruning: %v", dir, err)
		return 0
	}

	var candidates []pruneCandidate
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !isPrunable(path, e) {
			continue
		}
		var modTime time.Time
		if info, err := fileInfo(path, e); err == nil {
			modTime = info.ModTime()
		} else {
			log.Printf("Warning: cannot read modification time of %s: %v", path, err)
		}
		candidates = append(candidates, pruneCandidate{path: path, modTime: modTime})
	}

	if keep < 0 {
		keep = 0
	}
	if len(candidates) <= keep {
		return 0
	}

	// Stable over ReadDir's name order so equal times break ties the same way.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	removed := 0
	for _, c := range candidates[keep:] {
		log.Printf("Pruning old wallpaper: %s", filepath.Base(c.path))
		if err := os.Remove(c.path); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("Error pruning %s: %v", c.path, err)
			}
			continue
		}
		removed++
	}
	return removed
}

// isPrunable reports whether e is a regular file, following symlinks.
func isPrunable(path string, e os.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink != 0 {
		return isRegularFile(path)
	}
	return false
}

// CleanStalePreviews removes previews whose dated image is gone.
func CleanStalePreviews(dir string, n config.Naming) int {
	previewDir := filepath.Join(dir, config.PreviewDirName)
	entries, err := os.ReadDir(previewDir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".webp" {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".webp")
		if isRegularFile(filepath.Join(dir, base+n.Ext)) {
			continue
		}
		path := filepath.Join(previewDir, e.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("CleanStalePreviews: remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}
