// Package ast defines the syntax tree of ulox expressions.
//
// The expression node types, the Visitor interface and Accept are generated
// from grammar.ast by cmd/astgen. This file holds the hand-written part that
// every node shares: the Node interface and source sections.
//
// Node hierarchy:
//
//	Node (interface)
//	└── Expression (interface)
//	    ├── Binary   - left operator right
//	    ├── Unary    - operator expression
//	    ├── Grouping - ( expression )
//	    └── Literal  - number, string, true, false, nil
package ast

//go:generate go run ../../cmd/astgen --grammar grammar.ast --out expr_gen.go --package ast

import "github.com/kolkov/ulox/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// BaseNode records the source section a node was parsed from.
// It is embedded in every generated node type.
type BaseNode struct {
	Section token.Section
}

func (b *BaseNode) Pos() token.Position { return b.Section.Start }
func (b *BaseNode) End() token.Position { return b.Section.End }

// SectionOf returns the source section covered by n.
func SectionOf(n Node) token.Section {
	if n == nil {
		return token.NoSection
	}
	return token.Section{Start: n.Pos(), End: n.End()}
}
