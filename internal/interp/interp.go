// Package interp evaluates ulox expression trees.
//
// The Evaluator walks an ast.Expression with the generated visitor and
// produces a types.Value. The first runtime fault stops evaluation and is
// returned as a *RuntimeError anchored at the offending operator.
package interp

import (
	"fmt"
	"strings"

	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/parser"
	"github.com/kolkov/ulox/internal/token"
	"github.com/kolkov/ulox/internal/types"
)

// RuntimeError is an operand or operator fault found during evaluation.
type RuntimeError struct {
	Section token.Section // Operator the error refers to
	Message string
}

// Error returns the message followed by the start line and column.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at line: %d, column: %d",
		e.Message, e.Section.Start.Line, e.Section.Start.Column)
}

// Evaluator is a tree-walking evaluator. It holds no state between calls
// and may be reused.
type Evaluator struct{}

// New creates an Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Eval evaluates expr. Left operands are evaluated before right ones.
func Eval(expr ast.Expression) (types.Value, error) {
	return New().Eval(expr)
}

// EvalSource scans, parses and evaluates src. The error is a
// diag.ErrorList for lexical faults, a *diag.Error for a syntax error, or
// a *RuntimeError.
func EvalSource(src string) (types.Value, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return types.Nil(), err
	}
	return Eval(expr)
}

// Eval evaluates expr and returns its value or the first runtime error.
func (e *Evaluator) Eval(expr ast.Expression) (val types.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			val, err = types.Nil(), rerr
		}
	}()
	return ast.Accept[types.Value](expr, e), nil
}

// fail aborts evaluation with a RuntimeError at op. It is recovered by Eval.
func (e *Evaluator) fail(op token.Token, format string, args ...any) {
	panic(&RuntimeError{
		Section: op.Section,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *Evaluator) VisitGrouping(n *ast.Grouping) types.Value {
	return ast.Accept[types.Value](n.Expression, e)
}

func (e *Evaluator) VisitLiteral(n *ast.Literal) types.Value {
	switch n.Kind {
	case ast.LiteralNumber:
		return types.Num(n.Number)
	case ast.LiteralString:
		return types.Str(n.String)
	case ast.LiteralTrue:
		return types.Bool(true)
	case ast.LiteralFalse:
		return types.Bool(false)
	default:
		return types.Nil()
	}
}

func (e *Evaluator) VisitUnary(n *ast.Unary) types.Value {
	operand := ast.Accept[types.Value](n.Expression, e)
	op := n.Operator

	switch op.Kind {
	case token.Minus:
		if !operand.IsNum() {
			e.fail(op, "Unary operator '-' expects a number, instead got: '%s'", operand.Describe())
		}
		return types.Num(-operand.AsNum())
	case token.Bang:
		return types.Bool(!operand.Truthy())
	default:
		e.fail(op, "Unary operator %s not supported", op.Lexeme)
		return types.Nil()
	}
}

func (e *Evaluator) VisitBinary(n *ast.Binary) types.Value {
	left := ast.Accept[types.Value](n.Left, e)
	right := ast.Accept[types.Value](n.Right, e)
	op := n.Operator

	switch op.Kind {
	case token.Minus, token.Slash, token.Star:
		if !left.IsNum() || !right.IsNum() {
			e.fail(op, "Binary operator '%s' expects two numbers, instead got: left='%s' right='%s'",
				op.Lexeme, left.Describe(), right.Describe())
		}
		l, r := left.AsNum(), right.AsNum()
		switch op.Kind {
		case token.Minus:
			return types.Num(l - r)
		case token.Slash:
			// IEEE 754: 1/0 is +Inf, 0/0 is NaN
			return types.Num(l / r)
		default:
			return types.Num(l * r)
		}

	case token.Plus:
		switch {
		case left.IsNum() && right.IsNum():
			return types.Num(left.AsNum() + right.AsNum())
		case left.IsStr() && right.IsStr():
			return types.Str(left.AsStr() + right.AsStr())
		}
		e.fail(op, "Binary operator '+' expects two numbers or two strings, instead got: left='%s' right='%s'",
			left.Describe(), right.Describe())

	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		switch {
		case left.IsNum() && right.IsNum():
			return types.Bool(compareNum(op.Kind, left.AsNum(), right.AsNum()))
		case left.IsStr() && right.IsStr():
			c := strings.Compare(left.AsStr(), right.AsStr())
			return types.Bool(compareNum(op.Kind, float64(c), 0))
		}
		e.fail(op, "Binary operator '%s' expects two numbers or two strings, instead got: left='%s' right='%s'",
			op.Lexeme, left.Describe(), right.Describe())

	case token.EqualEqual:
		return types.Bool(types.Equal(left, right))

	case token.BangEqual:
		return types.Bool(!types.Equal(left, right))

	default:
		e.fail(op, "Binary operator %s not supported", op.Lexeme)
	}
	return types.Nil()
}

// compareNum applies a comparison operator. NaN compares false with
// everything.
func compareNum(kind token.Kind, l, r float64) bool {
	switch kind {
	case token.Greater:
		return l > r
	case token.GreaterEqual:
		return l >= r
	case token.Less:
		return l < r
	default:
		return l <= r
	}
}
