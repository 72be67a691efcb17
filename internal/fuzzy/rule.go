package fuzzy

import "strings"

// expression is a node of a rule antecedent. Variables and terms are held as
// indices into the engine's tables, resolved once by the parser.
type expression interface {
	strength(inputs []*InputVariable, b *RuleBlock) float64
	text(inputs []*InputVariable) string
}

type proposition struct {
	variable int
	term     int
	negated  bool
}

func (p proposition) strength(inputs []*InputVariable, _ *RuleBlock) float64 {
	mu := inputs[p.variable].degree(p.term)
	if p.negated {
		return 1 - mu
	}
	return mu
}

func (p proposition) text(inputs []*InputVariable) string {
	v := inputs[p.variable]
	is := " is "
	if p.negated {
		is = " is not "
	}
	return v.name + is + v.terms[p.term].Name
}

type connective int

const (
	and connective = iota
	or
)

type binary struct {
	op          connective
	left, right expression
}

func (e binary) strength(inputs []*InputVariable, b *RuleBlock) float64 {
	l := e.left.strength(inputs, b)
	r := e.right.strength(inputs, b)
	if e.op == and {
		return b.conjunction.Compute(l, r)
	}
	return b.disjunction.Compute(l, r)
}

func (e binary) text(inputs []*InputVariable) string {
	op := " and "
	if e.op == or {
		op = " or "
	}
	return "(" + e.left.text(inputs) + op + e.right.text(inputs) + ")"
}

type consequent struct {
	output int
	term   int
}

// Rule is a compiled "if ... then ... with w" statement.
type Rule struct {
	source     string
	canonical  string
	antecedent expression
	consequent consequent
	weight     float64

	strength float64
}

// Text returns the rule as it was written.
func (r *Rule) Text() string { return r.source }

// Canonical returns the antecedent fully parenthesised, showing how the
// parser grouped it.
func (r *Rule) Canonical() string { return r.canonical }

func (r *Rule) Weight() float64 { return r.weight }

// Strength returns the weighted firing strength from the last Process call.
func (r *Rule) Strength() float64 { return r.strength }

// RuleBlock is an ordered list of rules sharing conjunction, disjunction and
// activation operators.
type RuleBlock struct {
	name        string
	enabled     bool
	conjunction TNorm
	disjunction SNorm
	activation  TNorm
	rules       []*Rule
}

func (b *RuleBlock) Name() string       { return b.name }
func (b *RuleBlock) Enabled() bool      { return b.enabled }
func (b *RuleBlock) Conjunction() TNorm { return b.conjunction }
func (b *RuleBlock) Disjunction() SNorm { return b.disjunction }
func (b *RuleBlock) Activation() TNorm  { return b.activation }

// Rules returns the rules in declaration order.
func (b *RuleBlock) Rules() []*Rule {
	out := make([]*Rule, len(b.rules))
	copy(out, b.rules)
	return out
}

// fire evaluates every rule in order and records activations on the outputs.
func (b *RuleBlock) fire(inputs []*InputVariable, outputs []*OutputVariable) {
	for _, r := range b.rules {
		s := r.antecedent.strength(inputs, b) * r.weight
		r.strength = s
		if s > 0 {
			outputs[r.consequent.output].activate(Activation{
				Term:       r.consequent.term,
				Strength:   s,
				Implicator: b.activation,
			})
		}
	}
}

// Firing is one entry of the trace of a Process call.
type Firing struct {
	Block    string  `json:"block"`
	Rule     string  `json:"rule"`
	Strength float64 `json:"strength"`
}

func normalizeRule(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
