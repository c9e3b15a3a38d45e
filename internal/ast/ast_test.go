package ast_test

import (
	"math"
	"testing"

	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/token"
)

func op(kind token.Kind, lexeme string) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme}
}

func num(f float64) *ast.Literal {
	return &ast.Literal{Kind: ast.LiteralNumber, Number: f}
}

func str(s string) *ast.Literal {
	return &ast.Literal{Kind: ast.LiteralString, String: s}
}

// -123 * (45.67)
func sample() ast.Expression {
	return &ast.Binary{
		Left: &ast.Unary{
			Operator:   op(token.Minus, "-"),
			Expression: num(123),
		},
		Operator: op(token.Star, "*"),
		Right:    &ast.Grouping{Expression: num(45.67)},
	}
}

// TestNodeInterface verifies all node types report their section.
func TestNodeInterface(t *testing.T) {
	sec := token.Section{
		Start: token.Position{Line: 1, Column: 1, Offset: 0},
		End:   token.Position{Line: 1, Column: 10, Offset: 9},
	}

	tests := []struct {
		name string
		node ast.Expression
	}{
		{"Binary", &ast.Binary{BaseNode: ast.BaseNode{Section: sec}}},
		{"Unary", &ast.Unary{BaseNode: ast.BaseNode{Section: sec}}},
		{"Grouping", &ast.Grouping{BaseNode: ast.BaseNode{Section: sec}}},
		{"Literal", &ast.Literal{BaseNode: ast.BaseNode{Section: sec}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.Pos() != sec.Start || tt.node.End() != sec.End {
				t.Errorf("Pos/End = %v/%v, want %v/%v", tt.node.Pos(), tt.node.End(), sec.Start, sec.End)
			}
			if got := ast.SectionOf(tt.node); got != sec {
				t.Errorf("SectionOf() = %v, want %v", got, sec)
			}
		})
	}

	if got := ast.SectionOf(nil); got != token.NoSection {
		t.Errorf("SectionOf(nil) = %v", got)
	}
}

// TestWalk verifies AST walking visits every node once.
func TestWalk(t *testing.T) {
	var literals, total int
	ast.Walk(sample(), func(n ast.Node) bool {
		total++
		if _, ok := n.(*ast.Literal); ok {
			literals++
		}
		return true
	})
	if total != 5 {
		t.Errorf("visited %d nodes, want 5", total)
	}
	if literals != 2 {
		t.Errorf("visited %d literals, want 2", literals)
	}

	// returning false prunes children
	total = 0
	ast.Walk(sample(), func(n ast.Node) bool {
		total++
		_, isBinary := n.(*ast.Binary)
		return isBinary
	})
	if total != 3 {
		t.Errorf("pruned walk visited %d nodes, want 3", total)
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want int
	}{
		{"nil", nil, 0},
		{"literal", num(1), 1},
		{"sample", sample(), 3},
		{"nested unary", &ast.Unary{Operator: op(token.Bang, "!"), Expression: &ast.Unary{Operator: op(token.Bang, "!"), Expression: num(1)}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.Depth(tt.expr); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrefixPrinter(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"sample", sample(), "(* (- 123) (grouping 45.67))"},
		{"string", str("hi"), "hi"},
		{"true", &ast.Literal{Kind: ast.LiteralTrue}, "true"},
		{"false", &ast.Literal{Kind: ast.LiteralFalse}, "false"},
		{"nil", &ast.Literal{Kind: ast.LiteralNil}, "nil"},
		{"inf", num(math.Inf(1)), "inf"},
		{"not", &ast.Unary{Operator: op(token.Bang, "!"), Expression: &ast.Literal{Kind: ast.LiteralNil}}, "(! nil)"},
	}

	p := ast.NewPrefixPrinter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Print(tt.expr); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParenthesize(t *testing.T) {
	sub := func(l, r ast.Expression) ast.Expression {
		return &ast.Binary{Left: l, Operator: op(token.Minus, "-"), Right: r}
	}

	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"sample", sample(), "((-123) * (45.67))"},
		{"left assoc", sub(sub(num(8), num(3)), num(2)), "((8 - 3) - 2)"},
		{"string", &ast.Binary{Left: str("a"), Operator: op(token.Plus, "+"), Right: str("b")}, `("a" + "b")`},
		{"huge", num(math.Inf(1)), "(1 / 0)"},
		{"keywords", &ast.Binary{Left: &ast.Literal{Kind: ast.LiteralTrue}, Operator: op(token.EqualEqual, "=="), Right: &ast.Literal{Kind: ast.LiteralNil}}, "(true == nil)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.Parenthesize(tt.expr); got != tt.want {
				t.Errorf("Parenthesize() = %q, want %q", got, tt.want)
			}
		})
	}
}

type countVisitor struct {
	calls map[string]int
}

func (v *countVisitor) VisitGrouping(n *ast.Grouping) int {
	v.calls["Grouping"]++
	return 1 + ast.Accept[int](n.Expression, v)
}

func (v *countVisitor) VisitBinary(n *ast.Binary) int {
	v.calls["Binary"]++
	return 1 + ast.Accept[int](n.Left, v) + ast.Accept[int](n.Right, v)
}

func (v *countVisitor) VisitLiteral(*ast.Literal) int {
	v.calls["Literal"]++
	return 1
}

func (v *countVisitor) VisitUnary(n *ast.Unary) int {
	v.calls["Unary"]++
	return 1 + ast.Accept[int](n.Expression, v)
}

// TestAccept verifies dispatch reaches the method for each node type.
func TestAccept(t *testing.T) {
	v := &countVisitor{calls: make(map[string]int)}
	if got := ast.Accept[int](sample(), v); got != 5 {
		t.Errorf("Accept() = %d, want 5", got)
	}
	want := map[string]int{"Binary": 1, "Unary": 1, "Grouping": 1, "Literal": 2}
	for name, n := range want {
		if v.calls[name] != n {
			t.Errorf("Visit%s called %d times, want %d", name, v.calls[name], n)
		}
	}
}

func TestAcceptUnknownNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Accept on an unknown node type should panic")
		}
	}()
	ast.Accept[int](&ast.BaseNode{}, &countVisitor{calls: make(map[string]int)})
}
