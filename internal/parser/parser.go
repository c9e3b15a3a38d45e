package parser

import (
	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/diag"
	"github.com/kolkov/ulox/internal/lexer"
	"github.com/kolkov/ulox/internal/token"
)

// Parser is a recursive descent parser over a scanned token stream.
//
// Grammar, loosest binding first:
//
//	expression -> equality
//	equality   -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       -> factor ( ( "-" | "+" ) factor )*
//	factor     -> unary ( ( "/" | "*" ) unary )*
//	unary      -> ( "!" | "-" ) unary | primary
//	primary    -> NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
//
// Parsing stops at the first error.
type Parser struct {
	tokens []token.Token
	pos    int         // Index of the current token
	err    *diag.Error // First error, if any
}

// New creates a parser over tokens. The stream must end with an EOF token,
// as every stream produced by the scanner does; New panics otherwise.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		panic("parser: token stream does not end with EOF")
	}
	return &Parser{tokens: tokens}
}

// ParseExpr scans and parses src. If scanning reports errors, the
// scanner's diag.ErrorList is returned and parsing is skipped.
func ParseExpr(src string) (ast.Expression, error) {
	res := lexer.Scan(src)
	if err := res.Errors.Err(); err != nil {
		return nil, err
	}
	return New(res.Tokens).Parse()
}

// Parse parses one expression starting at the current token. The whole
// remaining stream must be consumed. On failure the error is a *diag.Error.
func (p *Parser) Parse() (ast.Expression, error) {
	p.err = nil

	expr := p.parseExpression()
	if p.err == nil && !p.isDone() {
		p.error(unexpectedError(p.peek()))
	}
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

// Synchronize skips tokens until one that can begin a statement, or EOF.
// It lets a caller resume after an error.
func (p *Parser) Synchronize() {
	for !p.isDone() && !p.atSyncPoint() {
		p.advance()
	}
}

// Peek returns the current token without consuming it.
func (p *Parser) Peek() token.Token {
	return p.peek()
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// previous returns the last consumed token, or nil before the first one.
func (p *Parser) previous() *token.Token {
	if p.pos == 0 {
		return nil
	}
	return &p.tokens[p.pos-1]
}

func (p *Parser) isDone() bool {
	return p.peek().Kind == token.EOF
}

// advance consumes the current token and returns it. EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.isDone() {
		p.pos++
	}
	return tok
}

// match returns true if the current token is one of kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// consume advances past a token of the given kind or records an error.
func (p *Parser) consume(kind token.Kind) (token.Token, bool) {
	if !p.match(kind) {
		p.error(expectedError(kind, p.peek(), p.previous()))
		return token.Token{}, false
	}
	return p.advance(), true
}

// error records the first parse error.
func (p *Parser) error(err *diag.Error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) atSyncPoint() bool {
	return p.match(token.Class, token.For, token.Fun, token.If,
		token.Print, token.Return, token.Var, token.While)
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (p *Parser) parseExpression() ast.Expression {
	return p.parseEquality()
}

// parseEquality parses == and != expressions.
func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinaryLeft(p.parseComparison, token.BangEqual, token.EqualEqual)
}

// parseComparison parses >, >=, < and <= expressions.
func (p *Parser) parseComparison() ast.Expression {
	return p.parseBinaryLeft(p.parseTerm,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

// parseTerm parses + and - expressions.
func (p *Parser) parseTerm() ast.Expression {
	return p.parseBinaryLeft(p.parseFactor, token.Minus, token.Plus)
}

// parseFactor parses / and * expressions.
func (p *Parser) parseFactor() ast.Expression {
	return p.parseBinaryLeft(p.parseUnary, token.Slash, token.Star)
}

// parseUnary parses ! and - prefix expressions (right-associative).
func (p *Parser) parseUnary() ast.Expression {
	if !p.match(token.Bang, token.Minus) {
		return p.parsePrimary()
	}
	op := p.advance()
	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return &ast.Unary{
		BaseNode:   ast.BaseNode{Section: token.Section{Start: op.Section.Start, End: operand.End()}},
		Operator:   op,
		Expression: operand,
	}
}

// parsePrimary parses literals and parenthesized expressions.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	lit := &ast.Literal{BaseNode: ast.BaseNode{Section: tok.Section}}

	switch tok.Kind {
	case token.False:
		lit.Kind = ast.LiteralFalse
	case token.True:
		lit.Kind = ast.LiteralTrue
	case token.Nil:
		lit.Kind = ast.LiteralNil
	case token.Number:
		lit.Kind = ast.LiteralNumber
		lit.Number = tok.Number
	case token.String:
		lit.Kind = ast.LiteralString
		lit.String = tok.Text
	case token.LeftParen:
		return p.parseGrouping()
	default:
		p.error(unexpectedError(tok))
		return nil
	}
	p.advance()
	return lit
}

// parseGrouping parses "(" expression ")".
func (p *Parser) parseGrouping() ast.Expression {
	open := p.advance()
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	closing, ok := p.consume(token.RightParen)
	if !ok {
		return nil
	}
	return &ast.Grouping{
		BaseNode:   ast.BaseNode{Section: token.Section{Start: open.Section.Start, End: closing.Section.End}},
		Expression: inner,
	}
}

// -----------------------------------------------------------------------------
// Helper functions
// -----------------------------------------------------------------------------

// parseBinaryLeft parses left-associative binary operators.
func (p *Parser) parseBinaryLeft(higher func() ast.Expression, ops ...token.Kind) ast.Expression {
	expr := higher()
	if expr == nil {
		return nil
	}

	for p.match(ops...) {
		op := p.advance()
		right := higher()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{
			BaseNode: ast.BaseNode{Section: token.Section{Start: expr.Pos(), End: right.End()}},
			Left:     expr,
			Operator: op,
			Right:    right,
		}
	}
	return expr
}
