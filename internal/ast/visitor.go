package ast

// Walk traverses an expression tree in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: count all literals
//
//	count := 0
//	ast.Walk(expr, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Literal); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Binary:
		walkExpr(n.Left, fn)
		walkExpr(n.Right, fn)

	case *Unary:
		walkExpr(n.Expression, fn)

	case *Grouping:
		walkExpr(n.Expression, fn)

	case *Literal:
		// no children
	}
}

// walkExpr keeps a nil Expression from reaching Walk as a non-nil Node.
func walkExpr(e Expression, fn func(Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

// Depth returns the height of the tree rooted at e. A literal has depth 1.
func Depth(e Expression) int {
	depth := 0
	var visit func(n Node, d int)
	visit = func(n Node, d int) {
		if d > depth {
			depth = d
		}
		switch n := n.(type) {
		case *Binary:
			visit(n.Left, d+1)
			visit(n.Right, d+1)
		case *Unary:
			visit(n.Expression, d+1)
		case *Grouping:
			visit(n.Expression, d+1)
		}
	}
	if e != nil {
		visit(e, 1)
	}
	return depth
}
