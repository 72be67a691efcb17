package fuzzy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Term is one labelled membership function of a variable.
type Term struct {
	Name string
	MF   Membership
}

// Shape describes the membership function as "Triangle -0.400 0.000 0.400".
func (t Term) Shape() string { return t.MF.fll() }

// Range is the declared domain of a variable. Inputs outside it are not
// rejected by the engine.
type Range struct {
	Min, Max float64
}

func (r Range) validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Max <= r.Min {
		return &Error{Kind: KindInvalidRange, Detail: fmt.Sprintf("[%v, %v]", r.Min, r.Max)}
	}
	return nil
}

// Degree is the membership of one term.
type Degree struct {
	Term  string  `json:"term"`
	Value float64 `json:"degree"`
}

// FuzzySet lists per-term degrees in term declaration order.
type FuzzySet []Degree

// String renders the set as "0.000/FarLeft + 1.000/NearLeft".
func (s FuzzySet) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprintf("%.3f/%s", d.Value, d.Term)
	}
	return strings.Join(parts, " + ")
}

type variable struct {
	name    string
	enabled bool
	rng     Range
	terms   []Term
	byName  map[string]int
}

func newVariable(name string, rng Range) (variable, error) {
	if name == "" {
		return variable{}, &Error{Kind: KindParse, Detail: "variable name is empty"}
	}
	if err := rng.validate(); err != nil {
		err.(*Error).Variable = name
		return variable{}, err
	}
	return variable{name: name, enabled: true, rng: rng, byName: make(map[string]int)}, nil
}

func (v *variable) addTerm(t Term) error {
	if t.Name == "" || t.MF == nil {
		return &Error{Kind: KindParse, Variable: v.name, Detail: "term needs a name and a membership function"}
	}
	if _, ok := v.byName[t.Name]; ok {
		return &Error{Kind: KindDuplicateName, Variable: v.name, Term: t.Name}
	}
	v.byName[t.Name] = len(v.terms)
	v.terms = append(v.terms, t)
	return nil
}

func (v *variable) term(name string) (int, bool) {
	i, ok := v.byName[name]
	return i, ok
}

func (v *variable) Name() string  { return v.name }
func (v *variable) Enabled() bool { return v.enabled }
func (v *variable) Range() Range  { return v.rng }

// Terms returns a copy of the term list.
func (v *variable) Terms() []Term {
	out := make([]Term, len(v.terms))
	copy(out, v.terms)
	return out
}

// Fuzzify returns the degree of x in every term. A disabled variable yields
// all zeros. Degrees are not normalised.
func (v *variable) Fuzzify(x float64) FuzzySet {
	set := make(FuzzySet, len(v.terms))
	for i, t := range v.terms {
		set[i] = Degree{Term: t.Name}
		if v.enabled {
			set[i].Value = t.MF.Degree(x)
		}
	}
	return set
}

// InputVariable holds the crisp value written by the caller before Process.
type InputVariable struct {
	variable
	value float64
	set   bool
}

// Value returns the current crisp input and whether one was set.
func (v *InputVariable) Value() (float64, bool) {
	return v.value, v.set
}

func (v *InputVariable) degree(term int) float64 {
	if !v.enabled {
		return 0
	}
	return v.terms[term].MF.Degree(v.value)
}

// Activation records one rule firing against an output term.
type Activation struct {
	Term       int
	Strength   float64
	Implicator TNorm
}

// OutputVariable holds the aggregated fuzzy set of the last Process call and
// the crisp value derived from it.
type OutputVariable struct {
	variable
	defaultValue float64
	lockInRange  bool
	aggregation  SNorm
	defuzzifier  Defuzzifier

	activations []Activation
	value       float64
	resolved    bool
}

func (v *OutputVariable) DefaultValue() float64     { return v.defaultValue }
func (v *OutputVariable) LockInRange() bool         { return v.lockInRange }
func (v *OutputVariable) Aggregation() SNorm        { return v.aggregation }
func (v *OutputVariable) Defuzzifier() Defuzzifier { return v.defuzzifier }

// Value returns the crisp output of the last Process call. The second result
// is false before the first successful Process.
func (v *OutputVariable) Value() (float64, bool) {
	return v.value, v.resolved
}

// Activations returns the firings recorded by the last Process call in rule
// evaluation order.
func (v *OutputVariable) Activations() []Activation {
	out := make([]Activation, len(v.activations))
	copy(out, v.activations)
	return out
}

func (v *OutputVariable) clear() {
	v.activations = v.activations[:0]
	v.value = math.NaN()
	v.resolved = false
}

func (v *OutputVariable) activate(a Activation) {
	v.activations = append(v.activations, a)
}

// membership is the aggregated degree at y: the S-norm over all activations
// of the activated term shapes.
func (v *OutputVariable) membership(y float64) float64 {
	mu := 0.0
	for _, a := range v.activations {
		mu = v.aggregation.Compute(mu, a.Implicator.Compute(a.Strength, v.terms[a.Term].MF.Degree(y)))
	}
	return mu
}

// AggregatedDegrees folds the recorded activations per term with the
// aggregation operator. Terms that did not fire report zero.
func (v *OutputVariable) AggregatedDegrees() FuzzySet {
	set := make(FuzzySet, len(v.terms))
	for i, t := range v.terms {
		set[i] = Degree{Term: t.Name}
	}
	for _, a := range v.activations {
		set[a.Term].Value = v.aggregation.Compute(set[a.Term].Value, a.Strength)
	}
	return set
}

func (v *OutputVariable) defuzzify() {
	result := math.NaN()
	if v.enabled && len(v.activations) > 0 {
		result = v.defuzzifier.Defuzzify(v.membership, v.rng.Min, v.rng.Max)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		result = v.defaultValue
	} else if v.lockInRange {
		result = clamp(result, v.rng.Min, v.rng.Max)
	}
	v.value = result
	v.resolved = true
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
