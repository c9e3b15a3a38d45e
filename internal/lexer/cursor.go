package lexer

import "github.com/kolkov/ulox/internal/token"

// Cursor is a read head over a character sequence.
// It tracks the line, column and offset of the current character and
// a bookmarked section start used to slice lexemes.
//
// Every advancing method is a no-op at end of input.
type Cursor struct {
	text []rune

	sectionStart token.Position
	pos          token.Position
}

// NewCursor creates a Cursor at 1:1 over text.
func NewCursor(text string) *Cursor {
	return &Cursor{
		text:         []rune(text),
		sectionStart: token.StartPos,
		pos:          token.StartPos,
	}
}

// Position returns the position of the current character.
func (c *Cursor) Position() token.Position {
	return c.pos
}

// Len returns the number of characters in the underlying text.
func (c *Cursor) Len() int {
	return len(c.text)
}

// NewSection bookmarks the current position as a section start.
func (c *Cursor) NewSection() {
	c.sectionStart = c.pos
}

// Current returns the character at the current offset without consuming it.
// ok is false at end of input.
func (c *Cursor) Current() (ch rune, ok bool) {
	if c.pos.Offset >= len(c.text) {
		return 0, false
	}
	return c.text[c.pos.Offset], true
}

// Next returns the current character and advances past it.
func (c *Cursor) Next() (rune, bool) {
	ch, ok := c.Current()
	c.Consume()
	return ch, ok
}

// Consume advances one character.
func (c *Cursor) Consume() {
	if ch, ok := c.Current(); ok {
		c.pos = c.pos.Advance(ch)
	}
}

// IsDone reports whether the input is exhausted.
func (c *Cursor) IsDone() bool {
	_, ok := c.Current()
	return !ok
}

// Section returns the span from the bookmark to the current position.
func (c *Cursor) Section() token.Section {
	return token.Section{Start: c.sectionStart, End: c.pos}
}

// SectionSlice returns the characters of the current section.
func (c *Cursor) SectionSlice() []rune {
	return c.text[c.sectionStart.Offset:c.pos.Offset]
}

// SectionString returns the current section as a string.
func (c *Cursor) SectionString() string {
	return string(c.SectionSlice())
}

// MatchNext reports whether the current character is ch.
func (c *Cursor) MatchNext(ch rune) bool {
	cur, ok := c.Current()
	return ok && cur == ch
}

// ConsumeUntilMatch advances until the current character is ch or input
// is exhausted. The matching character is left unconsumed.
func (c *Cursor) ConsumeUntilMatch(ch rune) {
	for {
		cur, ok := c.Current()
		if !ok || cur == ch {
			return
		}
		c.Consume()
	}
}

// ConsumeWhile advances while pred holds for the current character.
func (c *Cursor) ConsumeWhile(pred func(rune) bool) {
	for {
		cur, ok := c.Current()
		if !ok || !pred(cur) {
			return
		}
		c.Consume()
	}
}
