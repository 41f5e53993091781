package vcard

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// EstimateCount counts lines that read BEGIN:VCARD. It is a cheap pre-scan
// for the confirmation prompt and ignores card structure entirely, so the
// number can differ from what Parse returns.
func EstimateCount(r io.Reader) (int, error) {
	scanner := newLineScanner(NewReader(r))

	count := 0
	for scanner.Scan() {
		if strings.ToUpper(strings.TrimSpace(scanner.Text())) == beginCard {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("scan vcard: %w", err)
	}
	return count, nil
}

// EstimateFileCount opens path and runs EstimateCount on it.
func EstimateFileCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open vcard file: %w", err)
	}
	defer f.Close()

	return EstimateCount(f)
}
