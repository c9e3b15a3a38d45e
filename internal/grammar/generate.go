package grammar

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"unicode"
)

// Options controls code generation.
type Options struct {
	// Package is the name of the generated package. Defaults to "ast".
	Package string

	// Imports maps a type qualifier used in the grammar ("token" in
	// token.Token) to its import path.
	Imports map[string]string

	// Node is the interface every node type satisfies. It is embedded in
	// generated interfaces and used as the parameter of Accept. When empty,
	// Accept takes any.
	Node string

	// Base is a struct embedded in every generated struct. Optional.
	Base string
}

// Generate renders the Go source for g: one type per rule, marker methods
// for interface rules, a generic Visitor and an Accept dispatcher. The output
// is gofmt-formatted. If formatting fails the unformatted source is returned
// together with the error.
func Generate(g *Grammar, opts Options) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if opts.Package == "" {
		opts.Package = "ast"
	}

	imports, err := g.imports(opts)
	if err != nil {
		return nil, err
	}

	gen := &generator{g: g, opts: opts}
	gen.printf("// Code generated by astgen from %s. DO NOT EDIT.\n\n", g.Name)
	gen.printf("package %s\n\n", opts.Package)
	gen.writeImports(imports)

	for _, r := range g.Rules {
		switch {
		case g.IsInterface(r):
			gen.writeInterface(r)
		case r.IsProduct():
			gen.writeProduct(r)
		default:
			gen.writeTagged(r)
		}
	}
	gen.writeMarkers()
	gen.writeVisitor()

	out, err := format.Source(gen.buf.Bytes())
	if err != nil {
		return gen.buf.Bytes(), fmt.Errorf("format generated code: %w", err)
	}
	return out, nil
}

type generator struct {
	g    *Grammar
	opts Options
	buf  bytes.Buffer
}

func (gen *generator) printf(format string, args ...any) {
	fmt.Fprintf(&gen.buf, format, args...)
}

// imports returns the import paths needed by the grammar's qualified types,
// plus fmt for the Accept fallback.
func (g *Grammar) imports(opts Options) ([]string, error) {
	paths := map[string]bool{"fmt": true}
	check := func(typ string, pos fmt.Stringer) error {
		base := strings.TrimLeft(typ, "[]*")
		i := strings.IndexByte(base, '.')
		if i < 0 {
			return nil
		}
		qual := base[:i]
		path, ok := opts.Imports[qual]
		if !ok {
			return fmt.Errorf("%s: no import path for qualifier %q in type %s", pos, qual, typ)
		}
		paths[path] = true
		return nil
	}

	for _, r := range g.Rules {
		for _, f := range r.Fields {
			if err := check(f.Type, f.Pos); err != nil {
				return nil, err
			}
		}
		for _, v := range r.Variants {
			if v.Kind == Alias {
				if err := check(v.Type, v.Pos); err != nil {
					return nil, err
				}
			}
		}
	}

	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func (gen *generator) writeImports(paths []string) {
	var std, other []string
	for _, p := range paths {
		first, _, _ := strings.Cut(p, "/")
		if strings.Contains(first, ".") {
			other = append(other, p)
		} else {
			std = append(std, p)
		}
	}

	gen.printf("import (\n")
	for _, p := range std {
		gen.printf("\t%q\n", p)
	}
	if len(std) > 0 && len(other) > 0 {
		gen.printf("\n")
	}
	for _, p := range other {
		gen.printf("\t%q\n", p)
	}
	gen.printf(")\n\n")
}

func (gen *generator) writeDoc(r *Rule, fallback string) {
	if len(r.Doc) == 0 {
		gen.printf("// %s\n", fallback)
		return
	}
	for _, line := range r.Doc {
		if line == "" {
			gen.printf("//\n")
			continue
		}
		gen.printf("// %s\n", line)
	}
}

func (gen *generator) writeInterface(r *Rule) {
	names := make([]string, len(r.Variants))
	for i, v := range r.Variants {
		names[i] = v.Name
	}
	gen.writeDoc(r, fmt.Sprintf("%s is implemented by %s.", r.Name, joinAnd(names)))
	gen.printf("type %s interface {\n", r.Name)
	if gen.opts.Node != "" {
		gen.printf("\t%s\n", gen.opts.Node)
	}
	gen.printf("\t%s()\n}\n\n", markerName(r.Name))
}

func (gen *generator) writeProduct(r *Rule) {
	gen.writeDoc(r, fmt.Sprintf("%s is generated from rule %s.", r.Name, r.Name))
	gen.printf("type %s struct {\n", r.Name)
	if gen.opts.Base != "" {
		gen.printf("\t%s\n", gen.opts.Base)
	}
	for _, f := range r.Fields {
		gen.printf("\t%s %s\n", exportName(f.Name), gen.goType(f.Type))
	}
	gen.printf("}\n\n")
}

func (gen *generator) writeTagged(r *Rule) {
	kind := r.Name + "Kind"
	gen.printf("// %s identifies the variant held by a %s.\n", kind, r.Name)
	gen.printf("type %s uint8\n\n", kind)
	gen.printf("const (\n")
	for i, v := range r.Variants {
		if i == 0 {
			gen.printf("\t%s%s %s = iota\n", r.Name, v.Name, kind)
		} else {
			gen.printf("\t%s%s\n", r.Name, v.Name)
		}
	}
	gen.printf(")\n\n")

	gen.writeDoc(r, fmt.Sprintf("%s is generated from rule %s.", r.Name, r.Name))
	gen.printf("type %s struct {\n", r.Name)
	if gen.opts.Base != "" {
		gen.printf("\t%s\n", gen.opts.Base)
	}
	gen.printf("\tKind %s\n", kind)
	for _, v := range r.Variants {
		if v.Kind == Atom {
			continue
		}
		gen.printf("\t%s %s\n", v.Name, gen.goType(v.Type))
	}
	gen.printf("}\n\n")
}

// writeMarkers emits the unexported methods that tie each variant to its
// interface, and a compile-time assertion per pair.
func (gen *generator) writeMarkers() {
	var asserts []string
	for _, r := range gen.g.Rules {
		if !gen.g.IsInterface(r) {
			continue
		}
		for _, v := range r.Variants {
			gen.printf("func (*%s) %s() {}\n", v.Name, markerName(r.Name))
			asserts = append(asserts, fmt.Sprintf("_ %s = (*%s)(nil)", r.Name, v.Name))
		}
		gen.printf("\n")
	}
	if len(asserts) == 0 {
		return
	}
	gen.printf("var (\n")
	for _, a := range asserts {
		gen.printf("\t%s\n", a)
	}
	gen.printf(")\n\n")
}

func (gen *generator) writeVisitor() {
	nodes := gen.g.NodeRules()
	param := gen.opts.Node
	if param == "" {
		param = "any"
	}

	gen.printf("// Visitor is implemented by types that walk the nodes of this grammar.\n")
	gen.printf("// Each method receives one node type and returns a value of type T.\n")
	gen.printf("type Visitor[T any] interface {\n")
	for _, r := range nodes {
		gen.printf("\tVisit%s(node *%s) T\n", r.Name, r.Name)
	}
	gen.printf("}\n\n")

	gen.printf("// Accept calls the method of v that matches the dynamic type of node.\n")
	gen.printf("func Accept[T any](node %s, v Visitor[T]) T {\n", param)
	gen.printf("\tswitch n := node.(type) {\n")
	for _, r := range nodes {
		gen.printf("\tcase *%s:\n\t\treturn v.Visit%s(n)\n", r.Name, r.Name)
	}
	gen.printf("\tdefault:\n")
	gen.printf("\t\tpanic(fmt.Sprintf(\"%s: unexpected node type %%T\", node))\n", gen.opts.Package)
	gen.printf("\t}\n}\n")
}

// goType maps a grammar type expression to Go. Interface rules are used by
// value, other rules by pointer. Anything spelled with a leading [] or * is
// copied as written.
func (gen *generator) goType(typ string) string {
	if strings.HasPrefix(typ, "[]") || strings.HasPrefix(typ, "*") {
		return typ
	}
	if r := gen.g.Rule(typ); r != nil && !gen.g.IsInterface(r) {
		return "*" + typ
	}
	return typ
}

// exportName turns a field name such as "operator" or "else_branch" into
// an exported Go identifier.
func exportName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func markerName(iface string) string {
	r := []rune(iface)
	r[0] = unicode.ToLower(r[0])
	return string(r) + "Node"
}

func joinAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
