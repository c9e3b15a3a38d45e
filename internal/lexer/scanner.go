// Package lexer provides source tokenization for the expression language.
//
// The Scanner never aborts: every invalid construct is recorded in the
// ScanResult's error list and scanning resumes at the next character.
package lexer

import (
	"strconv"

	"github.com/kolkov/ulox/internal/diag"
	"github.com/kolkov/ulox/internal/token"
)

// Scanner tokenizes one source unit.
type Scanner struct {
	cursor *Cursor
}

// ScanResult holds every token that could be recognized and every lexical
// error found. Tokens always ends with an EOF token.
type ScanResult struct {
	Tokens []token.Token
	Errors diag.ErrorList
}

// NewScanner creates a Scanner over source.
func NewScanner(source string) *Scanner {
	return &Scanner{cursor: NewCursor(source)}
}

// Scan is a convenience wrapper that scans source in one call.
func Scan(source string) ScanResult {
	return NewScanner(source).ScanTokens()
}

// ScanTokens drains the source and returns the tokens and errors.
func (s *Scanner) ScanTokens() ScanResult {
	var res ScanResult

	for !s.cursor.IsDone() {
		s.cursor.NewSection()

		tok, err := s.scan()
		switch {
		case err != nil:
			res.Errors.Add(err.Build())
		case tok.Kind != token.Skip:
			res.Tokens = append(res.Tokens, tok)
		}
	}

	end := s.cursor.Position()
	res.Tokens = append(res.Tokens, token.Token{
		Kind:    token.EOF,
		Section: token.Section{Start: end, End: end},
	})
	return res
}

// scan reads one token starting at the current section.
// A returned builder is already anchored at the section scanned so far.
func (s *Scanner) scan() (token.Token, *diag.Builder) {
	c, _ := s.cursor.Next()

	switch c {
	case '(':
		return s.emit(token.LeftParen), nil
	case ')':
		return s.emit(token.RightParen), nil
	case '{':
		return s.emit(token.LeftBrace), nil
	case '}':
		return s.emit(token.RightBrace), nil
	case ',':
		return s.emit(token.Comma), nil
	case '.':
		return s.emit(token.Dot), nil
	case '-':
		return s.emit(token.Minus), nil
	case '+':
		return s.emit(token.Plus), nil
	case ';':
		return s.emit(token.Semicolon), nil
	case '*':
		return s.emit(token.Star), nil

	case '!':
		return s.emit(s.checkForEqual(token.Bang)), nil
	case '=':
		return s.emit(s.checkForEqual(token.Equal)), nil
	case '<':
		return s.emit(s.checkForEqual(token.Less)), nil
	case '>':
		return s.emit(s.checkForEqual(token.Greater)), nil

	case '/':
		return s.scanSlashOrComment()

	case ' ', '\r', '\t', '\n':
		return token.Token{Kind: token.Skip}, nil

	case '"':
		return s.scanString()

	default:
		switch {
		case isDigit(c):
			return s.scanNumber(), nil
		case isAlpha(c):
			return s.scanIdentOrKeyword(), nil
		}
		return token.Token{}, s.errorf("Unexpected character '%c'", c)
	}
}

// emit stamps kind with the current section's lexeme and location.
func (s *Scanner) emit(kind token.Kind) token.Token {
	return token.Token{
		Kind:    kind,
		Lexeme:  s.cursor.SectionString(),
		Section: s.cursor.Section(),
	}
}

func (s *Scanner) errorf(format string, args ...any) *diag.Builder {
	return diag.NewBuilder(s.cursor.Section()).Messagef(format, args...)
}

// consumeWhenMatch consumes the current character if it is c.
func (s *Scanner) consumeWhenMatch(c rune) bool {
	if s.cursor.MatchNext(c) {
		s.cursor.Consume()
		return true
	}
	return false
}

func (s *Scanner) checkForEqual(kind token.Kind) token.Kind {
	if s.consumeWhenMatch('=') {
		return kind.WithEqual()
	}
	return kind
}

func (s *Scanner) scanSlashOrComment() (token.Token, *diag.Builder) {
	switch {
	case s.consumeWhenMatch('/'):
		s.cursor.ConsumeUntilMatch('\n')
		return token.Token{Kind: token.Skip}, nil

	case s.consumeWhenMatch('*'):
		// Block comments do not nest: the first "*/" closes.
		for {
			s.cursor.ConsumeUntilMatch('*')
			if s.cursor.IsDone() {
				return token.Token{}, s.errorf("Unterminated comment.")
			}
			s.cursor.Consume()
			if s.consumeWhenMatch('/') {
				return token.Token{Kind: token.Skip}, nil
			}
		}

	default:
		return s.emit(token.Slash), nil
	}
}

func (s *Scanner) scanString() (token.Token, *diag.Builder) {
	s.cursor.ConsumeUntilMatch('"')
	if s.cursor.IsDone() {
		return token.Token{}, s.errorf("Unterminated string.")
	}

	// skip the opening quote
	text := string(s.cursor.SectionSlice()[1:])
	s.cursor.Consume() // closing quote

	tok := s.emit(token.String)
	tok.Text = text
	return tok, nil
}

func (s *Scanner) scanNumber() token.Token {
	s.cursor.ConsumeWhile(isDigit)
	if s.consumeWhenMatch('.') {
		s.cursor.ConsumeWhile(isDigit)
	}

	tok := s.emit(token.Number)
	// The digit scan already validated the text.
	tok.Number, _ = strconv.ParseFloat(tok.Lexeme, 64)
	return tok
}

func (s *Scanner) scanIdentOrKeyword() token.Token {
	s.cursor.ConsumeWhile(isAlphaNumeric)

	tok := s.emit(token.Identifier)
	tok.Kind = token.LookupIdent(tok.Lexeme)
	if tok.Kind == token.Identifier {
		tok.Text = tok.Lexeme
	}
	return tok
}

// Helper functions

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
