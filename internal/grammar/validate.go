package grammar

import (
	"strings"
	"unicode"

	"github.com/kolkov/ulox/internal/diag"
	"github.com/kolkov/ulox/internal/token"
)

// Validate checks the grammar for problems that would produce Go code
// that does not compile. It returns a diag.ErrorList, or nil.
func (g *Grammar) Validate() error {
	var errs diag.ErrorList
	at := func(pos token.Position) token.Section {
		return token.Section{Start: pos, End: pos}
	}

	if len(g.Rules) == 0 {
		errs.Addf(at(token.StartPos), "grammar %s has no rules", g.Name)
		return errs
	}

	seen := make(map[string]*Rule)
	for _, r := range g.Rules {
		if prev, ok := seen[r.Name]; ok {
			errs.Addf(at(r.Pos), "rule %s redefined (first defined at %s)", r.Name, prev.Pos)
			continue
		}
		seen[r.Name] = r
	}

	for _, r := range g.Rules {
		members := make(map[string]bool)
		for _, f := range r.Fields {
			name := exportName(f.Name)
			if members[name] {
				errs.Addf(at(f.Pos), "duplicate field %s in rule %s", f.Name, r.Name)
			}
			members[name] = true
			if !g.knownType(f.Type) {
				errs.Addf(at(f.Pos), "field %s of rule %s has undefined type %s", f.Name, r.Name, f.Type)
			}
		}

		iface := g.IsInterface(r)
		if !iface && !r.IsProduct() {
			// tagged structs carry a Kind field
			members["Kind"] = true
		}
		for _, v := range r.Variants {
			if members[v.Name] {
				errs.Addf(at(v.Pos), "duplicate variant %s in rule %s", v.Name, r.Name)
			}
			members[v.Name] = true

			switch v.Kind {
			case Implicit:
				target := g.Rule(v.Name)
				switch {
				case target == nil:
					errs.Addf(at(v.Pos), "variant %s of rule %s names an undefined rule", v.Name, r.Name)
				case iface && g.IsInterface(target):
					errs.Addf(at(v.Pos), "variant %s of rule %s must be a product or tagged rule", v.Name, r.Name)
				case target == r:
					errs.Addf(at(v.Pos), "rule %s cannot contain itself", r.Name)
				}
			case Alias:
				if !g.knownType(v.Type) {
					errs.Addf(at(v.Pos), "variant %s of rule %s has undefined type %s", v.Name, r.Name, v.Type)
				}
			}
		}
	}

	return errs.Err()
}

// knownType reports whether typ can be referenced from generated code:
// a rule, a qualified type, a slice or pointer of one, or a lower-case
// predeclared name.
func (g *Grammar) knownType(typ string) bool {
	base := strings.TrimLeft(typ, "[]*")
	if strings.Contains(base, ".") {
		return true
	}
	if g.Rule(base) != nil {
		return true
	}
	r := []rune(base)
	return len(r) > 0 && unicode.IsLower(r[0])
}
