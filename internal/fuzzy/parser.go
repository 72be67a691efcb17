package fuzzy

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	kwIf   = "if"
	kwThen = "then"
	kwIs   = "is"
	kwNot  = "not"
	kwAnd  = "and"
	kwOr   = "or"
	kwWith = "with"
)

var keywords = map[string]bool{
	kwIf: true, kwThen: true, kwIs: true, kwNot: true, kwAnd: true, kwOr: true, kwWith: true,
}

// symbols resolves variable names to their positions in the engine tables.
type symbols struct {
	inputs  []*InputVariable
	outputs []*OutputVariable
}

func (s *symbols) input(name string) (int, bool) {
	for i, v := range s.inputs {
		if v.name == name {
			return i, true
		}
	}
	return 0, false
}

func (s *symbols) output(name string) (int, bool) {
	for i, v := range s.outputs {
		if v.name == name {
			return i, true
		}
	}
	return 0, false
}

// parseRule compiles rule text against the given variables. The grammar is
//
//	rule        := "if" antecedent "then" ident "is" ident ("with" number)?
//	antecedent  := conjunction ("or" conjunction)*
//	conjunction := operand ("and" operand)*
//	operand     := "(" antecedent ")" | ident "is" ["not"] ident
//
// so "and" binds tighter than "or".
func parseRule(text string, syms *symbols) (*Rule, error) {
	p := &parser{src: normalizeRule(text), toks: tokenize(text), syms: syms}
	return p.rule()
}

func tokenize(text string) []string {
	text = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(text)
	return strings.Fields(text)
}

type parser struct {
	src  string
	toks []string
	pos  int
	syms *symbols
}

func (p *parser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *parser) next() string {
	t := p.peek()
	if t != "" {
		p.pos++
	}
	return t
}

func (p *parser) errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Rule: p.src, Detail: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kw string) error {
	if t := p.next(); t != kw {
		if t == "" {
			return p.errorf(KindParse, "expected %q, got end of rule", kw)
		}
		return p.errorf(KindParse, "expected %q, got %q", kw, t)
	}
	return nil
}

func (p *parser) ident(what string) (string, error) {
	t := p.next()
	if t == "" {
		return "", p.errorf(KindParse, "expected %s, got end of rule", what)
	}
	if keywords[t] || t == "(" || t == ")" {
		return "", p.errorf(KindParse, "expected %s, got %q", what, t)
	}
	return t, nil
}

func (p *parser) rule() (*Rule, error) {
	if err := p.expect(kwIf); err != nil {
		return nil, err
	}
	if p.peek() == kwThen || p.peek() == "" {
		return nil, p.errorf(KindParse, "empty antecedent")
	}
	ante, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	if err := p.expect(kwThen); err != nil {
		return nil, err
	}
	cons, err := p.consequent()
	if err != nil {
		return nil, err
	}
	weight := 1.0
	if p.peek() == kwWith {
		p.next()
		t := p.next()
		w, err := strconv.ParseFloat(t, 64)
		if err != nil || w < 0 || w > 1 {
			return nil, p.errorf(KindParse, "invalid weight %q", t)
		}
		weight = w
	}
	if t := p.peek(); t != "" {
		return nil, p.errorf(KindParse, "unexpected %q after consequent", t)
	}

	out := p.syms.outputs[cons.output]
	canonical := fmt.Sprintf("if %s then %s is %s", ante.text(p.syms.inputs), out.name, out.terms[cons.term].Name)
	if weight != 1 {
		canonical += " with " + strconv.FormatFloat(weight, 'g', -1, 64)
	}
	return &Rule{
		source:     p.src,
		canonical:  canonical,
		antecedent: ante,
		consequent: cons,
		weight:     weight,
	}, nil
}

func (p *parser) disjunction() (expression, error) {
	left, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	for p.peek() == kwOr {
		p.next()
		right, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		left = binary{op: or, left: left, right: right}
	}
	return left, nil
}

func (p *parser) conjunction() (expression, error) {
	left, err := p.operand()
	if err != nil {
		return nil, err
	}
	for p.peek() == kwAnd {
		p.next()
		right, err := p.operand()
		if err != nil {
			return nil, err
		}
		left = binary{op: and, left: left, right: right}
	}
	return left, nil
}

func (p *parser) operand() (expression, error) {
	if p.peek() == "(" {
		p.next()
		e, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return p.proposition()
}

func (p *parser) proposition() (expression, error) {
	name, err := p.ident("variable")
	if err != nil {
		return nil, err
	}
	vi, ok := p.syms.input(name)
	if !ok {
		if _, isOutput := p.syms.output(name); isOutput {
			e := p.errorf(KindMisplacedVariable, "output variable used in antecedent")
			e.Variable = name
			return nil, e
		}
		e := p.errorf(KindUnknownVariable, "")
		e.Variable = name
		return nil, e
	}
	if err := p.expect(kwIs); err != nil {
		return nil, err
	}
	negated := false
	if p.peek() == kwNot {
		p.next()
		negated = true
	}
	termName, err := p.ident("term")
	if err != nil {
		return nil, err
	}
	ti, ok := p.syms.inputs[vi].term(termName)
	if !ok {
		e := p.errorf(KindUnknownTerm, "")
		e.Variable, e.Term = name, termName
		return nil, e
	}
	return proposition{variable: vi, term: ti, negated: negated}, nil
}

func (p *parser) consequent() (consequent, error) {
	name, err := p.ident("output variable")
	if err != nil {
		return consequent{}, err
	}
	oi, ok := p.syms.output(name)
	if !ok {
		if _, isInput := p.syms.input(name); isInput {
			e := p.errorf(KindMisplacedVariable, "input variable used in consequent")
			e.Variable = name
			return consequent{}, e
		}
		e := p.errorf(KindUnknownVariable, "")
		e.Variable = name
		return consequent{}, e
	}
	if err := p.expect(kwIs); err != nil {
		return consequent{}, err
	}
	termName, err := p.ident("term")
	if err != nil {
		return consequent{}, err
	}
	ti, ok := p.syms.outputs[oi].term(termName)
	if !ok {
		e := p.errorf(KindUnknownTerm, "")
		e.Variable, e.Term = name, termName
		return consequent{}, e
	}
	return consequent{output: oi, term: ti}, nil
}
