package vcard

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	beginCard = "BEGIN:VCARD"
	endCard   = "END:VCARD"
)

// Skip reasons recorded in Result.Skips.
const (
	ReasonReopened     = "BEGIN:VCARD before END:VCARD"
	ReasonUnopened     = "END:VCARD without BEGIN:VCARD"
	ReasonUnterminated = "missing END:VCARD at end of input"
)

// Skip describes one dropped card.
type Skip struct {
	Line   int    // 1-based physical line where the problem was detected
	Reason string // one of the Reason* constants
}

// Result is the outcome of a parse: the contacts in input order and the
// number of malformed cards that were dropped.
type Result struct {
	Contacts []Contact
	Skipped  int
	Skips    []Skip
}

// state is the card boundary state of the parser.
type state int

const (
	stateOutside state = iota
	stateInside
)

func (s state) String() string {
	switch s {
	case stateOutside:
		return "outside"
	case stateInside:
		return "inside"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// parser holds the per-call state. Nothing here outlives a Parse call.
type parser struct {
	state  state
	lines  []string // unfolded property lines of the open card
	result Result
}

// Parse reads vCard text from r and returns every well-formed card. r is
// wrapped with NewReader, so callers can pass a raw file.
func Parse(r io.Reader) (Result, error) {
	p := &parser{result: Result{Contacts: []Contact{}}}

	scanner := newLineScanner(NewReader(r))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		p.feed(lineNum, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read vcard line %d: %w", lineNum+1, err)
	}

	p.finish(lineNum)
	return p.result, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open vcard file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// feed handles one physical line.
func (p *parser) feed(lineNum int, line string) {
	if line == "" {
		return
	}

	if line[0] == ' ' || line[0] == '\t' {
		p.unfold(strings.TrimLeft(line, " \t"))
		return
	}

	switch strings.ToUpper(strings.TrimSpace(line)) {
	case beginCard:
		if p.state == stateInside {
			p.skip(lineNum, ReasonReopened)
		}
		p.lines = p.lines[:0]
		p.state = stateInside

	case endCard:
		if p.state == stateInside {
			p.result.Contacts = append(p.result.Contacts, extractContact(p.lines))
		} else {
			p.skip(lineNum, ReasonUnopened)
		}
		p.lines = p.lines[:0]
		p.state = stateOutside

	default:
		if p.state == stateInside {
			p.lines = append(p.lines, line)
		}
	}
}

// unfold appends a continuation to the last accumulated line, or starts a
// new one when nothing has been accumulated yet.
func (p *parser) unfold(rest string) {
	if n := len(p.lines); n > 0 {
		p.lines[n-1] += rest
		return
	}
	p.lines = append(p.lines, rest)
}

// finish closes the parse; an open card at end of input is dropped.
func (p *parser) finish(lastLine int) {
	if p.state == stateInside {
		p.skip(lastLine, ReasonUnterminated)
	}
	p.lines = nil
	p.state = stateOutside
}

func (p *parser) skip(lineNum int, reason string) {
	p.result.Skipped++
	p.result.Skips = append(p.result.Skips, Skip{Line: lineNum, Reason: reason})
}
