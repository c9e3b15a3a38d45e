package grammar

import (
	"strings"

	"github.com/kolkov/ulox/internal/diag"
)

// Parse parses a grammar file. name is used in diagnostics and in the
// header of generated code. On failure the error is a diag.ErrorList
// holding every problem found; the parser resumes after the next ';'.
func Parse(name, src string) (*Grammar, error) {
	p := &parser{toks: tokenize(src)}
	g := &Grammar{Name: name}

	for {
		doc := p.docComments()
		if p.tok().kind == tokEOF {
			break
		}
		rule, ok := p.parseRule(doc)
		if !ok {
			p.skipRule()
			continue
		}
		g.Rules = append(g.Rules, rule)
	}

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

type parser struct {
	toks   []dslToken
	pos    int
	errors diag.ErrorList
}

func (p *parser) tok() dslToken {
	return p.toks[p.pos]
}

// peek returns the token n places ahead, skipping comments.
func (p *parser) peek(n int) dslToken {
	i := p.pos
	for {
		for p.toks[i].kind == tokComment {
			i++
		}
		if n == 0 || p.toks[i].kind == tokEOF {
			return p.toks[i]
		}
		n--
		i++
	}
}

func (p *parser) next() dslToken {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// skipComments drops comments that do not precede a rule.
func (p *parser) skipComments() {
	for p.tok().kind == tokComment {
		p.next()
	}
}

// docComments collects the comment block in front of a rule.
// A blank line between comment lines starts a new block.
func (p *parser) docComments() []string {
	var doc []string
	lastLine := 0
	for p.tok().kind == tokComment {
		if p.pos > 0 && p.toks[p.pos-1].kind != tokComment &&
			p.toks[p.pos-1].section.End.Line == p.tok().section.Start.Line {
			// trailing comment of the previous rule
			p.next()
			continue
		}
		t := p.next()
		if lastLine != 0 && t.section.Start.Line > lastLine+1 {
			doc = doc[:0]
		}
		lastLine = t.section.Start.Line
		doc = append(doc, strings.TrimPrefix(strings.TrimPrefix(t.text, "//"), " "))
	}
	if len(doc) > 0 && p.tok().section.Start.Line > lastLine+1 {
		// detached from the rule
		return nil
	}
	return doc
}

func (p *parser) errorf(t dslToken, format string, args ...any) {
	p.errors.Addf(t.section, format, args...)
}

func (p *parser) expect(kind tokKind) (dslToken, bool) {
	p.skipComments()
	t := p.tok()
	if t.kind != kind {
		p.errorf(t, "expected %s, found %s", kind, describe(t))
		return t, false
	}
	return p.next(), true
}

func (p *parser) expectIdent(what string) (dslToken, bool) {
	t, ok := p.expect(tokWord)
	if !ok {
		return t, false
	}
	if !isIdent(t.text) {
		p.errorf(t, "invalid %s name %q", what, t.text)
		return t, false
	}
	return t, true
}

// skipRule advances past the next ';' so parsing can resume.
func (p *parser) skipRule() {
	for {
		t := p.next()
		if t.kind == tokSemi || t.kind == tokEOF {
			return
		}
	}
}

// parseRule parses: Name "=>" body [";"]
func (p *parser) parseRule(doc []string) (*Rule, bool) {
	name, ok := p.expectIdent("rule")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tokArrow); !ok {
		return nil, false
	}

	rule := &Rule{Name: name.text, Doc: doc, Pos: name.section.Start}

	if p.peek(0).kind == tokWord && p.peek(1).kind == tokColon {
		ok = p.parseFields(rule)
	} else {
		ok = p.parseVariants(rule)
	}
	if !ok {
		return nil, false
	}

	p.skipComments()
	switch p.tok().kind {
	case tokSemi:
		p.next()
	case tokEOF:
		// the last rule may omit its terminator
	default:
		p.errorf(p.tok(), "expected ';' after rule %s, found %s", rule.Name, describe(p.tok()))
		return nil, false
	}
	return rule, true
}

// parseFields parses: name ":" Type { "," name ":" Type }
func (p *parser) parseFields(rule *Rule) bool {
	for {
		name, ok := p.expectIdent("field")
		if !ok {
			return false
		}
		if _, ok := p.expect(tokColon); !ok {
			return false
		}
		typ, ok := p.expect(tokWord)
		if !ok {
			return false
		}
		rule.Fields = append(rule.Fields, &Field{Name: name.text, Type: typ.text, Pos: name.section.Start})

		if p.peek(0).kind != tokComma {
			return true
		}
		p.skipComments()
		p.next()
	}
}

// parseVariants parses: variant { "|" variant }
func (p *parser) parseVariants(rule *Rule) bool {
	for {
		v, ok := p.parseVariant()
		if !ok {
			return false
		}
		rule.Variants = append(rule.Variants, v)

		if p.peek(0).kind != tokPipe {
			return true
		}
		p.skipComments()
		p.next()
	}
}

// parseVariant parses: "@" Name | Name "as" Type | Name
func (p *parser) parseVariant() (*Variant, bool) {
	p.skipComments()
	if p.tok().kind == tokAt {
		at := p.next()
		name, ok := p.expectIdent("atom")
		if !ok {
			return nil, false
		}
		return &Variant{Kind: Atom, Name: name.text, Pos: at.section.Start}, true
	}

	name, ok := p.expectIdent("variant")
	if !ok {
		return nil, false
	}
	if next := p.peek(0); next.kind == tokWord && next.text == "as" {
		p.skipComments()
		p.next()
		typ, ok := p.expect(tokWord)
		if !ok {
			return nil, false
		}
		return &Variant{Kind: Alias, Name: name.text, Type: typ.text, Pos: name.section.Start}, true
	}
	return &Variant{Kind: Implicit, Name: name.text, Type: name.text, Pos: name.section.Start}, true
}

func describe(t dslToken) string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokWord, tokIllegal:
		return "'" + t.text + "'"
	default:
		return t.kind.String()
	}
}
