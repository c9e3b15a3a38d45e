// Package diag provides located diagnostics shared by every pipeline stage.
//
// Scanning accumulates diagnostics into an ErrorList and keeps going;
// parsing and evaluation stop at the first one. Every Error carries the
// Section of source it refers to.
package diag

import (
	"fmt"
	"io"

	"github.com/kolkov/ulox/internal/token"
)

// Error is a diagnostic anchored at a section of source.
type Error struct {
	Section  token.Section // Source span the diagnostic refers to
	Location string        // Optional context, e.g. " at end"
	Message  string        // Human-readable description
}

// New creates an Error at section with a formatted message.
func New(section token.Section, format string, args ...any) *Error {
	return &Error{
		Section: section,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error returns the message followed by the start line and column.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at line: %d, column: %d",
		e.Message, e.Section.Start.Line, e.Section.Start.Column)
}

// Pos returns the start of the error's section.
func (e *Error) Pos() token.Position {
	return e.Section.Start
}

// Builder accumulates the optional parts of an Error.
// The section is fixed when the builder is created.
type Builder struct {
	section  token.Section
	location string
	message  string
}

// NewBuilder starts an Error anchored at section.
func NewBuilder(section token.Section) *Builder {
	return &Builder{section: section}
}

// Location sets the error's location context.
func (b *Builder) Location(location string) *Builder {
	b.location = location
	return b
}

// Message sets the error's message.
func (b *Builder) Message(message string) *Builder {
	b.message = message
	return b
}

// Messagef sets the error's message from a format string.
func (b *Builder) Messagef(format string, args ...any) *Builder {
	b.message = fmt.Sprintf(format, args...)
	return b
}

// Build finalizes the Error.
func (b *Builder) Build() *Error {
	return &Error{
		Section:  b.section,
		Location: b.location,
		Message:  b.message,
	}
}

// ErrorList is an insertion-ordered list of diagnostics.
type ErrorList []*Error

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	*el = append(*el, err)
}

// Addf appends a formatted error at section.
func (el *ErrorList) Addf(section token.Section, format string, args ...any) {
	el.Add(New(section, format, args...))
}

// Len returns the number of errors.
func (el ErrorList) Len() int {
	return len(el)
}

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Print writes one line per error to w:
//
//	[line:col] Error <location>: <message>
func (el ErrorList) Print(w io.Writer) error {
	for _, e := range el {
		if _, err := fmt.Fprintf(w, "[%s] Error%s: %s\n", e.Section.Start, e.Location, e.Message); err != nil {
			return err
		}
	}
	return nil
}
