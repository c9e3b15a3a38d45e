// Package parser provides a recursive descent parser for ulox expressions.
package parser

import (
	"github.com/kolkov/ulox/internal/diag"
	"github.com/kolkov/ulox/internal/token"
)

// expectedError reports that want was required where got was found.
// At end of input the error is anchored right after the last consumed
// token rather than after any trailing whitespace.
func expectedError(want token.Kind, got token.Token, prev *token.Token) *diag.Error {
	sec := got.Section
	if got.Kind == token.EOF && prev != nil {
		sec = token.Section{Start: prev.Section.End, End: prev.Section.End}
	}
	return diag.New(sec, "Expecting to find '%s' found '%s' instead", want, got.Lexeme)
}

// unexpectedError reports a token that cannot start or continue an
// expression.
func unexpectedError(got token.Token) *diag.Error {
	return diag.New(got.Section, "Unexpected token '%s'", got.Lexeme)
}
