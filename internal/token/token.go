// Package token defines lexical tokens for the expression language.
package token

import "strconv"

// Kind represents a lexical token type.
type Kind uint8

const (
	// Special tokens
	Skip Kind = iota // <skip>
	EOF              // EOF

	// Single character tokens
	operatorStart
	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	Comma      // ,
	Dot        // .
	Minus      // -
	Plus       // +
	Semicolon  // ;
	Slash      // /
	Star       // *

	// One or two character tokens
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=
	operatorEnd

	// Literals
	Identifier // identifier
	String     // string
	Number     // number

	// Keywords
	keywordStart
	And    // and
	Class  // class
	Else   // else
	False  // false
	For    // for
	Fun    // fun
	If     // if
	Nil    // nil
	Or     // or
	Print  // print
	Return // return
	Super  // super
	This   // this
	True   // true
	Var    // var
	While  // while
	keywordEnd
)

var kindNames = [...]string{
	Skip:         "<skip>",
	EOF:          "EOF",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	For:          "for",
	Fun:          "fun",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
}

// String returns the source spelling of operators and keywords, or a
// descriptive name for the other kinds.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsOperator returns true if the kind is punctuation or an operator.
func (k Kind) IsOperator() bool {
	return k > operatorStart && k < operatorEnd
}

// IsKeyword returns true if the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsLiteral returns true if the kind carries a literal payload.
func (k Kind) IsLiteral() bool {
	return k == Identifier || k == String || k == Number
}

// WithEqual returns the two-character kind formed by a trailing '='.
// Kinds that have no such form are returned unchanged.
func (k Kind) WithEqual() Kind {
	switch k {
	case Bang:
		return BangEqual
	case Equal:
		return EqualEqual
	case Less:
		return LessEqual
	case Greater:
		return GreaterEqual
	default:
		return k
	}
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupIdent returns the keyword kind for ident, or Identifier.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}

// LookupKeyword returns the kind for a reserved word and whether it is one.
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}

// Token is a scanned token with its source text and location.
// Tokens are immutable once produced.
type Token struct {
	Kind    Kind
	Lexeme  string  // Exact source slice backing the token
	Section Section // Location of Lexeme in the source
	Text    string  // Payload of Identifier and String tokens
	Number  float64 // Payload of Number tokens
}

// String returns a short description of the token for debugging.
func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return "Identifier(" + t.Text + ")"
	case String:
		return "String(" + strconv.Quote(t.Text) + ")"
	case Number:
		return "Number(" + strconv.FormatFloat(t.Number, 'f', -1, 64) + ")"
	case EOF:
		return "EOF"
	default:
		return t.Kind.String()
	}
}
