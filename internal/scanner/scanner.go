package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Options controls file selection.
type Options struct {
	// Extensions are matched case-insensitively and include the leading dot.
	Extensions []string
	Recursive  bool
}

// Scan returns the matching regular files below dir in lexicographic order of
// their path relative to dir. Hidden files and directories are skipped.
func Scan(dir string, opts Options) ([]string, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if isHidden(entry.Name()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Shoots lists the non-hidden immediate sub-directories of parent in sorted order.
func Shoots(parent string) ([]string, error) {
	if err := ensureDir(parent); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, fmt.Errorf("list shoots in %s: %w", parent, err)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		dirs = append(dirs, filepath.Join(parent, entry.Name()))
	}
	return dirs, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan %s: %w", dir, ErrNotDirectory)
	}
	return nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
