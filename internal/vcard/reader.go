package vcard

// reader.go prepares raw vCard bytes for line-at-a-time parsing.
//
//   - BOMSkippingReader: removes a UTF-8 BOM written by Windows exporters
//   - NewReader: BOM skipping plus ill-formed UTF-8 replacement
//   - newLineScanner: splits on "\n", "\r\n" and lone "\r"

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// MaxLineSize is the longest physical line the scanner accepts. Inline
// PHOTO values are the usual reason for very long lines.
var MaxLineSize = 64 * 1024 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	reader  *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		// A short or failed peek means there is no BOM; the data (or the
		// error) comes back through the normal read below.
		if head, err := r.reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := r.reader.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return r.reader.Read(p)
}

// NewReader wraps r for parsing: the BOM is dropped first, then every
// ill-formed UTF-8 sequence becomes U+FFFD.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(NewBOMSkippingReader(r), runes.ReplaceIllFormed())
}

// newLineScanner returns a scanner yielding physical lines without their
// terminators.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	scanner.Split(scanUniversalLines)
	return scanner
}

// scanUniversalLines is a bufio.SplitFunc that accepts "\n", "\r\n" and "\r"
// as line terminators.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// Lone '\r' or "\r\n": we need one more byte to tell them apart.
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
