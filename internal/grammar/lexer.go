package grammar

import (
	"unicode/utf8"

	"github.com/coregx/coregex"

	"github.com/kolkov/ulox/internal/token"
)

type tokKind uint8

const (
	tokEOF     tokKind = iota
	tokWord            // identifier or type expression
	tokArrow           // =>
	tokColon           // :
	tokComma           // ,
	tokPipe            // |
	tokSemi            // ;
	tokAt              // @
	tokComment         // // ...
	tokIllegal
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokWord:
		return "name"
	case tokArrow:
		return "'=>'"
	case tokColon:
		return "':'"
	case tokComma:
		return "','"
	case tokPipe:
		return "'|'"
	case tokSemi:
		return "';'"
	case tokAt:
		return "'@'"
	case tokComment:
		return "comment"
	default:
		return "illegal"
	}
}

type dslToken struct {
	kind    tokKind
	text    string
	section token.Section
}

// pattern is one entry of the tokenizer table. Patterns are anchored and
// tried in order; the first match wins.
type pattern struct {
	re   *coregex.Regexp
	kind tokKind
}

var (
	identRe = mustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	space   = mustCompile(`^[ \t\r\n]+`)

	patterns = []pattern{
		{mustCompile(`^//[^\n]*`), tokComment},
		{mustCompile(`^=>`), tokArrow},
		{mustCompile(`^:`), tokColon},
		{mustCompile(`^,`), tokComma},
		{mustCompile(`^\|`), tokPipe},
		{mustCompile(`^;`), tokSemi},
		{mustCompile(`^@`), tokAt},
		{mustCompile(`^(?:\[\]|\*)*[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?`), tokWord},
	}
)

func mustCompile(expr string) *coregex.Regexp {
	re, err := coregex.Compile(expr)
	if err != nil {
		panic("grammar: bad pattern " + expr + ": " + err.Error())
	}
	return re
}

// isIdent reports whether s is a plain Go-style identifier.
func isIdent(s string) bool {
	return identRe.MatchString(s)
}

// tokenize splits src into DSL tokens. Whitespace is dropped; unknown
// characters become tokIllegal tokens so the parser can report them.
func tokenize(src string) []dslToken {
	var (
		toks []dslToken
		pos  = token.StartPos
		rest = src
	)

	advance := func(text string) token.Section {
		start := pos
		for _, ch := range text {
			pos = pos.Advance(ch)
		}
		return token.Section{Start: start, End: pos}
	}

	for rest != "" {
		if loc := space.FindStringIndex(rest); loc != nil && loc[0] == 0 {
			advance(rest[:loc[1]])
			rest = rest[loc[1]:]
			continue
		}

		matched := false
		for _, p := range patterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 || loc[1] == 0 {
				continue
			}
			text := rest[:loc[1]]
			toks = append(toks, dslToken{kind: p.kind, text: text, section: advance(text)})
			rest = rest[loc[1]:]
			matched = true
			break
		}
		if matched {
			continue
		}

		// one rune of garbage
		_, size := utf8.DecodeRuneInString(rest)
		text := rest[:size]
		toks = append(toks, dslToken{kind: tokIllegal, text: text, section: advance(text)})
		rest = rest[len(text):]
	}

	toks = append(toks, dslToken{kind: tokEOF, section: token.Section{Start: pos, End: pos}})
	return toks
}
