// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by FindFirst when no file matches.
var ErrNotFound = errors.New("no matching file found")

// FindFirst returns the path of the lexicographically first regular file in
// dir whose name ends with extension. The match is case-sensitive and does
// not descend into subdirectories.
func FindFirst(dir, extension string) (string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), extension) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		// Stat follows symlinks, so a link to a regular file counts.
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", ErrNotFound
}
