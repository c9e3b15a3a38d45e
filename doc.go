// Package ulox scans, parses and evaluates expressions of a small
// Lox-style language.
//
// The language has numbers, strings, true, false and nil, the unary
// operators - and !, the binary arithmetic operators - + / *, comparisons
// and equality, and parenthesized grouping.
//
// # Quick Start
//
// For one-off evaluation:
//
//	out, err := ulox.Eval(`(1 + 2) * 3`)
//	// out: "9"
//
// # Parsed Expressions
//
// An expression can be parsed once and evaluated many times:
//
//	expr, err := ulox.Parse(`"a" + "b"`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(expr.Prefix()) // (+ a b)
//	v, err := expr.Eval()
//
// # Error Handling
//
// Errors are returned as specific types, all carrying 1-based positions:
//   - [ScanError]: lexical errors; every error in the source is reported
//   - [ParseError]: the first syntax error
//   - [RuntimeError]: the first evaluation fault
//
// # Thread Safety
//
// A parsed [Expr] is never modified and may be evaluated from several
// goroutines at once.
package ulox
