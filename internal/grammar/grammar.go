// Package grammar compiles a small rule DSL into Go AST node types and a
// matching visitor.
//
// A grammar is a list of rules terminated by semicolons:
//
//	// Doc comments directly above a rule are kept.
//	Expression => Binary | Unary | Grouping | Literal ;
//	Binary     => left: Expression, operator: token.Token, right: Expression ;
//	Literal    => Number as float64 | String as string | @True | @False | @Nil ;
//
// A rule whose body starts with "name:" is a product rule and becomes a
// struct. Any other rule is a sum rule. A sum rule whose variants are all
// other rules becomes an interface implemented by those rule types; any
// other sum rule becomes a tagged struct with one Kind constant per variant.
// Variants are either an implicit type (the variant is named after the rule
// it holds), an alias ("Name as Type") or a zero-payload atom ("@Name").
package grammar

import (
	"github.com/kolkov/ulox/internal/token"
)

// Grammar is a parsed rule file.
type Grammar struct {
	Name  string // Source name used in diagnostics and the generated header
	Rules []*Rule
}

// Rule is one named production.
type Rule struct {
	Name     string
	Doc      []string // Comment lines preceding the rule, without "//"
	Pos      token.Position
	Fields   []*Field   // Set for product rules
	Variants []*Variant // Set for sum rules
}

// Field is a named, typed member of a product rule.
type Field struct {
	Name string
	Type string
	Pos  token.Position
}

// VariantKind classifies a sum rule variant.
type VariantKind uint8

const (
	Implicit VariantKind = iota // Binary
	Alias                       // Number as float64
	Atom                        // @Nil
)

// String returns a readable name for the kind.
func (k VariantKind) String() string {
	switch k {
	case Implicit:
		return "implicit"
	case Alias:
		return "alias"
	case Atom:
		return "atom"
	default:
		return "unknown"
	}
}

// Variant is one alternative of a sum rule.
type Variant struct {
	Kind VariantKind
	Name string
	Type string // Payload type; equal to Name for Implicit, empty for Atom
	Pos  token.Position
}

// IsProduct reports whether r is a product rule.
func (r *Rule) IsProduct() bool {
	return len(r.Fields) > 0
}

// Rule returns the rule named name, or nil.
func (g *Grammar) Rule(name string) *Rule {
	for _, r := range g.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// IsInterface reports whether r is a sum rule made only of other rules,
// which is rendered as a Go interface.
func (g *Grammar) IsInterface(r *Rule) bool {
	if r.IsProduct() || len(r.Variants) == 0 {
		return false
	}
	for _, v := range r.Variants {
		if v.Kind != Implicit || g.Rule(v.Name) == nil {
			return false
		}
	}
	return true
}

// NodeRules returns the rules that become concrete node types, in order.
// These are the rules that get a visitor method.
func (g *Grammar) NodeRules() []*Rule {
	var out []*Rule
	for _, r := range g.Rules {
		if !g.IsInterface(r) {
			out = append(out, r)
		}
	}
	return out
}
