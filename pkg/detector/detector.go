// Package detector finds candidate files for an ingestion run.
package detector

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions is the set of file types the pipeline knows how
// to describe.
var supportedExtensions = map[string]struct{}{
	".csv":     {},
	".tsv":     {},
	".xlsx":    {},
	".xls":     {},
	".json":    {},
	".parquet": {},
	".txt":     {},
}

// DefaultWatchDirectory is scanned when no directories are configured.
const DefaultWatchDirectory = "data/incoming"

// Detector scans an ordered list of watch directories for supported
// files. It only reads filesystem metadata and has no side effects.
type Detector struct {
	dirs []string
	log  *slog.Logger
}

// New creates a Detector over the given directories, falling back to
// DefaultWatchDirectory when none are configured.
func New(dirs []string, log *slog.Logger) *Detector {
	if len(dirs) == 0 {
		dirs = []string{DefaultWatchDirectory}
	}
	return &Detector{dirs: dirs, log: log}
}

// Detect returns the regular files with a supported extension found in
// the watch directories, top-level only unless recursive is set.
// Missing or non-directory entries are skipped with a warning. The same
// resolved path is never reported twice even if watch directories
// overlap.
func (d *Detector) Detect(recursive bool) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, dir := range d.dirs {
		info, err := os.Stat(dir)
		if err != nil {
			d.log.Warn("directory does not exist", "directory", dir)
			continue
		}
		if !info.IsDir() {
			d.log.Warn("path is not a directory", "path", dir)
			continue
		}

		// Resolve the directory itself so a symlinked watch directory
		// is walked, and so aliases of the same directory collapse to
		// one set of paths.
		root := dir
		if resolved, rerr := filepath.EvalSymlinks(dir); rerr == nil {
			root = resolved
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				d.log.Warn("skipping unreadable entry", "path", path, "error", err)
				return nil
			}
			if entry.IsDir() {
				if !recursive && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
			resolved, rerr := filepath.EvalSymlinks(path)
			if rerr != nil {
				resolved = path
			}
			if abs, aerr := filepath.Abs(resolved); aerr == nil {
				resolved = abs
			}
			if _, dup := seen[resolved]; dup {
				return nil
			}
			seen[resolved] = struct{}{}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	d.log.Info("detected files", "count", len(files))
	return files, nil
}
