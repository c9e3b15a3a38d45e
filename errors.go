package ulox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kolkov/ulox/internal/diag"
	"github.com/kolkov/ulox/internal/interp"
)

// Diagnostic is one located lexical error.
type Diagnostic struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// ScanError holds every lexical error found in a source unit.
type ScanError struct {
	Errors []Diagnostic
}

func (e *ScanError) Error() string {
	if len(e.Errors) == 1 {
		return "scan error at " + e.Errors[0].String()
	}
	parts := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%d scan errors: %s", len(e.Errors), strings.Join(parts, "; "))
}

// ParseError represents a syntax error in ulox source code.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// RuntimeError represents a fault during evaluation, located at the
// operator that caused it.
type RuntimeError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Column, e.Message)
}

func newScanError(list diag.ErrorList) *ScanError {
	se := &ScanError{Errors: make([]Diagnostic, len(list))}
	for i, d := range list {
		se.Errors[i] = Diagnostic{
			Line:    d.Section.Start.Line,
			Column:  d.Section.Start.Column,
			Message: d.Message,
		}
	}
	return se
}

// convertError maps internal error types to the public ones.
func convertError(err error) error {
	var list diag.ErrorList
	if errors.As(err, &list) {
		return newScanError(list)
	}
	var de *diag.Error
	if errors.As(err, &de) {
		return &ParseError{
			Line:    de.Section.Start.Line,
			Column:  de.Section.Start.Column,
			Message: de.Message,
		}
	}
	var re *interp.RuntimeError
	if errors.As(err, &re) {
		return &RuntimeError{
			Line:    re.Section.Start.Line,
			Column:  re.Section.Start.Column,
			Message: re.Message,
		}
	}
	return err
}
