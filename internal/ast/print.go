package ast

import (
	"math"
	"strings"

	"github.com/kolkov/ulox/internal/token"
)

// PrefixPrinter renders expressions in a Lisp-like prefix form used for
// debugging: -123 * (45.67) prints as (* (- 123) (grouping 45.67)).
type PrefixPrinter struct {
	sb strings.Builder
}

// NewPrefixPrinter returns a ready to use PrefixPrinter.
func NewPrefixPrinter() *PrefixPrinter {
	return &PrefixPrinter{}
}

// Print returns the prefix form of e.
func (p *PrefixPrinter) Print(e Expression) string {
	p.sb.Reset()
	p.print(e)
	return p.sb.String()
}

func (p *PrefixPrinter) print(e Expression) {
	if e == nil {
		p.sb.WriteString("<nil>")
		return
	}
	Accept[struct{}](e, p)
}

func (p *PrefixPrinter) VisitGrouping(n *Grouping) struct{} {
	p.sb.WriteString("(grouping ")
	p.print(n.Expression)
	p.sb.WriteByte(')')
	return struct{}{}
}

func (p *PrefixPrinter) VisitBinary(n *Binary) struct{} {
	p.sb.WriteByte('(')
	p.sb.WriteString(n.Operator.Lexeme)
	p.sb.WriteByte(' ')
	p.print(n.Left)
	p.sb.WriteByte(' ')
	p.print(n.Right)
	p.sb.WriteByte(')')
	return struct{}{}
}

func (p *PrefixPrinter) VisitLiteral(n *Literal) struct{} {
	p.sb.WriteString(LiteralText(n))
	return struct{}{}
}

func (p *PrefixPrinter) VisitUnary(n *Unary) struct{} {
	p.sb.WriteByte('(')
	p.sb.WriteString(n.Operator.Lexeme)
	p.sb.WriteByte(' ')
	p.print(n.Expression)
	p.sb.WriteByte(')')
	return struct{}{}
}

// LiteralText returns the display text of a literal: numbers in their
// shortest decimal form, strings without quotes, and the keyword otherwise.
func LiteralText(n *Literal) string {
	switch n.Kind {
	case LiteralNumber:
		return token.FormatNumber(n.Number)
	case LiteralString:
		return n.String
	case LiteralTrue:
		return "true"
	case LiteralFalse:
		return "false"
	case LiteralNil:
		return "nil"
	default:
		return "<invalid literal>"
	}
}

// Parenthesize renders e as source text with every operation wrapped in
// parentheses, so precedence and associativity are explicit:
// 8 - 3 - 2 renders as ((8 - 3) - 2). The result parses back to an
// expression with the same value.
func Parenthesize(e Expression) string {
	var sb strings.Builder
	writeInfix(&sb, e)
	return sb.String()
}

func writeInfix(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Binary:
		sb.WriteByte('(')
		writeInfix(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(n.Operator.Lexeme)
		sb.WriteByte(' ')
		writeInfix(sb, n.Right)
		sb.WriteByte(')')
	case *Unary:
		sb.WriteByte('(')
		sb.WriteString(n.Operator.Lexeme)
		writeInfix(sb, n.Expression)
		sb.WriteByte(')')
	case *Grouping:
		sb.WriteByte('(')
		writeInfix(sb, n.Expression)
		sb.WriteByte(')')
	case *Literal:
		switch {
		case n.Kind == LiteralString:
			sb.WriteString(`"` + n.String + `"`)
		case n.Kind == LiteralNumber && math.IsInf(n.Number, 1):
			// digits too large for float64
			sb.WriteString("(1 / 0)")
		default:
			sb.WriteString(LiteralText(n))
		}
	case nil:
		sb.WriteString("nil")
	}
}
