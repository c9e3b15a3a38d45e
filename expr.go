package ulox

import (
	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/interp"
	"github.com/kolkov/ulox/internal/types"
)

// Expr is a parsed expression, ready for evaluation.
// An Expr is safe for concurrent use; each Eval uses its own evaluator.
type Expr struct {
	node   ast.Expression
	source string
}

// Eval evaluates the expression and returns the rendered value.
//
// Example:
//
//	expr := ulox.MustParse(`!nil`)
//	out, _ := expr.Eval()
//	// out: "true"
func (e *Expr) Eval() (string, error) {
	v, err := e.value()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (e *Expr) value() (types.Value, error) {
	v, err := interp.New().Eval(e.node)
	if err != nil {
		return types.Nil(), convertError(err)
	}
	return v, nil
}

// Prefix returns the tree in prefix form, such as
// "(* (- 123) (grouping 45.67))".
func (e *Expr) Prefix() string {
	return ast.NewPrefixPrinter().Print(e.node)
}

// Parenthesized returns the expression in infix form with every operation
// wrapped in parentheses. Parsing the result yields a tree with the same
// value.
func (e *Expr) Parenthesized() string {
	return ast.Parenthesize(e.node)
}

// Depth returns the height of the tree; a single literal has depth 1.
func (e *Expr) Depth() int {
	return ast.Depth(e.node)
}

// Source returns the original source text.
func (e *Expr) Source() string {
	return e.source
}
