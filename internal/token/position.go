package token

import "fmt"

// Position represents a position in source code.
type Position struct {
	// Line number (1-indexed).
	Line int
	// Column is the character offset on the line (1-indexed).
	Column int
	// Offset is the character offset from the start of source (0-indexed).
	// It is the authoritative index; Line and Column are derived from it.
	Offset int
}

// StartPos is the position of the first character of any source.
var StartPos = Position{Line: 1, Column: 1, Offset: 0}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}

// String returns a string representation of the position.
// Format: "line:column", or "-" for an invalid position.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position is valid (line and column > 0).
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before returns true if p is before other in the source.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After returns true if p is after other in the source.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// advance moves past a character that is not a newline.
func (p *Position) advance() {
	p.Column++
	p.Offset++
}

// newLine moves past a newline character.
func (p *Position) newLine() {
	p.Line++
	p.Column = 1
	p.Offset++
}

// Advance returns the position after consuming ch.
func (p Position) Advance(ch rune) Position {
	if ch == '\n' {
		p.newLine()
	} else {
		p.advance()
	}
	return p
}

// Section represents a half-open range [Start, End) in source code.
type Section struct {
	Start Position
	End   Position
}

// String returns a string representation of the section.
func (s Section) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start.String(), s.End.String())
}

// Len returns the number of characters covered by the section.
func (s Section) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains returns true if the section contains the given position.
// The end is exclusive, except for an empty section which contains its start.
func (s Section) Contains(p Position) bool {
	if s.Len() == 0 {
		return p.Offset == s.Start.Offset
	}
	return !p.Before(s.Start) && p.Before(s.End)
}

// Within returns true if s lies inside [0, n) character offsets.
func (s Section) Within(n int) bool {
	return s.Start.Offset >= 0 && s.Start.Offset <= s.End.Offset && s.End.Offset <= n
}

// NoSection is the zero Section.
var NoSection = Section{}
