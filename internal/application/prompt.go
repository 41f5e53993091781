// Package application holds the interactive terminal layer: presenting the
// file that was found and asking the user whether to convert it.
package application

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

/* ----------------------------------------
	SIZE FORMATTING
---------------------------------------- */

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with 1024 based units. Bytes are shown as
// an integer, larger units with one decimal. TB is the largest unit.
func FormatSize(n int64) string {
	size := float64(n)
	for i, unit := range sizeUnits {
		last := i == len(sizeUnits)-1
		if size < 1024 || last {
			if unit == "B" {
				return strconv.FormatInt(int64(size), 10) + " " + unit
			}
			return strconv.FormatFloat(size, 'f', 1, 64) + " " + unit
		}
		size /= 1024
	}
	return strconv.FormatInt(n, 10) + " B"
}

/* ----------------------------------------
	CONFIRMATION PROMPT
---------------------------------------- */

// Candidate is the input file offered to the user.
type Candidate struct {
	Path      string
	Size      int64
	Estimated int
}

// Prompt returns the question shown for c.
func (c Candidate) Prompt() string {
	return fmt.Sprintf(
		"Found %s. Size: %d bytes (%s). Estimated vCards: %d. Process this file? (y/n) [y]: ",
		filepath.Base(c.Path), c.Size, FormatSize(c.Size), c.Estimated,
	)
}

// Confirm writes the prompt for c to out and reads one answer line from in.
// "y", "yes" and an empty answer accept, in any case and with surrounding
// whitespace ignored. End of input is treated as an empty answer.
func Confirm(in io.Reader, out io.Writer, c Candidate) (bool, error) {
	if _, err := io.WriteString(out, c.Prompt()); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	return Accepts(answer), nil
}

// Accepts reports whether answer is an affirmative response.
func Accepts(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}
