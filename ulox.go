package ulox

import (
	"time"

	"github.com/kolkov/ulox/internal/lexer"
	"github.com/kolkov/ulox/internal/parser"
)

// Version is the ulox version string.
const Version = "0.1.0"

// Token is one lexical token of a source unit.
type Token struct {
	Kind   string // Operator spelling, keyword, "identifier", "string", "number" or "EOF"
	Lexeme string // Source text the token was scanned from
	Line   int    // 1-based line of the first character
	Column int    // 1-based column of the first character
}

// Scan tokenizes src. The returned slice always ends with an EOF token.
// If src contains lexical errors they are all returned in a *ScanError,
// together with the tokens that could be recognized.
//
// Example:
//
//	toks, err := ulox.Scan(`1 + 2`)
//	// toks: number "1", "+", number "2", EOF
func Scan(src string) ([]Token, error) {
	res := lexer.Scan(src)
	toks := make([]Token, len(res.Tokens))
	for i, t := range res.Tokens {
		toks[i] = Token{
			Kind:   t.Kind.String(),
			Lexeme: t.Lexeme,
			Line:   t.Section.Start.Line,
			Column: t.Section.Start.Column,
		}
	}
	if len(res.Errors) > 0 {
		return toks, newScanError(res.Errors)
	}
	return toks, nil
}

// Parse scans and parses src into an expression that can be printed or
// evaluated any number of times.
//
// Example:
//
//	expr, err := ulox.Parse(`-123 * (45.67)`)
//	// expr.Prefix(): "(* (- 123) (grouping 45.67))"
func Parse(src string) (*Expr, error) {
	e, err := parser.ParseExpr(src)
	if err != nil {
		return nil, convertError(err)
	}
	return &Expr{node: e, source: src}, nil
}

// MustParse is like Parse but panics if src cannot be parsed.
// It simplifies initialization of global expression variables.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval scans, parses and evaluates src and returns the rendered value.
//
// Example:
//
//	out, err := ulox.Eval(`8 - 3 - 2`)
//	// out: "3"
func Eval(src string) (string, error) {
	res, err := Run(src, nil)
	if err != nil {
		return "", err
	}
	return res.Value, nil
}

// Result is the outcome of Run.
type Result struct {
	Value string // Rendered value, as printed by the REPL
	Kind  string // "nil", "bool", "number" or "string"
	AST   string // Prefix rendering of the tree; set when Config.PrintAST is true

	ScanTime  time.Duration
	ParseTime time.Duration
	EvalTime  time.Duration
}

// Run executes src with the given configuration (nil for defaults),
// recording how long each stage took.
func Run(src string, config *Config) (Result, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	log := cfg.Logger

	var res Result

	start := time.Now()
	scanned := lexer.Scan(src)
	res.ScanTime = time.Since(start)
	log.Debug("scanned", "tokens", len(scanned.Tokens), "errors", len(scanned.Errors), "elapsed", res.ScanTime)
	if len(scanned.Errors) > 0 {
		return res, newScanError(scanned.Errors)
	}

	start = time.Now()
	node, err := parser.New(scanned.Tokens).Parse()
	res.ParseTime = time.Since(start)
	log.Debug("parsed", "elapsed", res.ParseTime)
	if err != nil {
		return res, convertError(err)
	}

	expr := &Expr{node: node, source: src}
	if cfg.PrintAST {
		res.AST = expr.Prefix()
	}

	start = time.Now()
	v, err := expr.value()
	res.EvalTime = time.Since(start)
	log.Debug("evaluated", "elapsed", res.EvalTime)
	if err != nil {
		return res, err
	}
	res.Value = v.String()
	res.Kind = v.Kind().String()
	return res, nil
}
