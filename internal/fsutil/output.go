package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputExtension is the extension given to converted files.
const OutputExtension = ".csv"

// UniqueOutputPath returns a path next to input with its extension replaced
// by ".csv". When that file exists, "_1", "_2", ... is appended to the stem
// until a free name is found. Existing files are never overwritten.
func UniqueOutputPath(input string) (string, error) {
	ext := filepath.Ext(input)
	if ext == filepath.Base(input) {
		// Dotfiles such as ".vcf" have no extension to replace.
		ext = ""
	}
	base := strings.TrimSuffix(input, ext)

	candidate := base + OutputExtension
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check output path %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", base, i, OutputExtension)
	}
}
