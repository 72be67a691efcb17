package fuzzy

import (
	"errors"
	"fmt"
	"math"
)

// Operators is the engine-wide operator choice, applied to every rule block
// and output variable by Builder.Configure.
type Operators struct {
	Conjunction TNorm
	Disjunction SNorm
	Activation  TNorm
	Aggregation SNorm
	Defuzzifier Defuzzifier
}

// DefaultOperators is Minimum, Maximum, Minimum, Maximum, Centroid.
func DefaultOperators() Operators {
	return Operators{
		Conjunction: Minimum,
		Disjunction: Maximum,
		Activation:  Minimum,
		Aggregation: Maximum,
		Defuzzifier: Centroid{N: DefaultResolution},
	}
}

// ParseOperators resolves operators by their FuzzyLite names.
func ParseOperators(conjunction, disjunction, activation, aggregation, defuzzifier string, resolution int) (Operators, error) {
	var ops Operators
	var err error
	if ops.Conjunction, err = ParseTNorm(conjunction); err != nil {
		return ops, fmt.Errorf("conjunction: %w", err)
	}
	if ops.Disjunction, err = ParseSNorm(disjunction); err != nil {
		return ops, fmt.Errorf("disjunction: %w", err)
	}
	if ops.Activation, err = ParseTNorm(activation); err != nil {
		return ops, fmt.Errorf("activation: %w", err)
	}
	if ops.Aggregation, err = ParseSNorm(aggregation); err != nil {
		return ops, fmt.Errorf("aggregation: %w", err)
	}
	if ops.Defuzzifier, err = ParseDefuzzifier(defuzzifier, resolution); err != nil {
		return ops, fmt.Errorf("defuzzifier: %w", err)
	}
	return ops, nil
}

// OutputOptions configures an output variable.
type OutputOptions struct {
	Default     float64
	LockInRange bool
	Aggregation SNorm
	// Defuzzifier defaults to Centroid with DefaultResolution.
	Defuzzifier Defuzzifier
}

// BlockOperators configures a rule block.
type BlockOperators struct {
	Conjunction TNorm
	Disjunction SNorm
	Activation  TNorm
}

var errBuilt = errors.New("engine already built")

// Builder assembles an Engine. Variables and terms come first, then rules,
// which are resolved against the variables declared so far. A failing rule
// does not stop the builder; the error is returned and also kept in Errors.
type Builder struct {
	name   string
	syms   symbols
	blocks []*RuleBlock
	ops    *Operators
	errs   []error
	stale  bool
	built  bool
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) nameTaken(name string) bool {
	_, in := b.syms.input(name)
	_, out := b.syms.output(name)
	return in || out
}

// AddInput declares an input variable with its terms.
func (b *Builder) AddInput(name string, rng Range, terms ...Term) (*InputVariable, error) {
	if b.built {
		return nil, errBuilt
	}
	if b.nameTaken(name) {
		return nil, b.fail(&Error{Kind: KindDuplicateName, Variable: name})
	}
	base, err := newVariable(name, rng)
	if err != nil {
		return nil, b.fail(err)
	}
	v := &InputVariable{variable: base, value: math.NaN()}
	for _, t := range terms {
		if err := v.addTerm(t); err != nil {
			return nil, b.fail(err)
		}
	}
	b.syms.inputs = append(b.syms.inputs, v)
	return v, nil
}

// AddOutput declares an output variable with its terms.
func (b *Builder) AddOutput(name string, rng Range, opts OutputOptions, terms ...Term) (*OutputVariable, error) {
	if b.built {
		return nil, errBuilt
	}
	if b.nameTaken(name) {
		return nil, b.fail(&Error{Kind: KindDuplicateName, Variable: name})
	}
	base, err := newVariable(name, rng)
	if err != nil {
		return nil, b.fail(err)
	}
	if opts.Defuzzifier == nil {
		opts.Defuzzifier = Centroid{N: DefaultResolution}
	}
	v := &OutputVariable{
		variable:     base,
		defaultValue: opts.Default,
		lockInRange:  opts.LockInRange,
		aggregation:  opts.Aggregation,
		defuzzifier:  opts.Defuzzifier,
		value:        math.NaN(),
	}
	for _, t := range terms {
		if err := v.addTerm(t); err != nil {
			return nil, b.fail(err)
		}
	}
	b.syms.outputs = append(b.syms.outputs, v)
	return v, nil
}

// AddTerm appends a term to an existing variable. Rules compiled before the
// call are recompiled by Build.
func (b *Builder) AddTerm(variable string, t Term) error {
	if b.built {
		return errBuilt
	}
	var err error
	if i, ok := b.syms.input(variable); ok {
		err = b.syms.inputs[i].addTerm(t)
	} else if i, ok := b.syms.output(variable); ok {
		err = b.syms.outputs[i].addTerm(t)
	} else {
		err = &Error{Kind: KindUnknownVariable, Variable: variable}
	}
	if err != nil {
		return b.fail(err)
	}
	b.stale = true
	return nil
}

// SetEnabled toggles a variable. A disabled input fuzzifies to zeros; a
// disabled output always yields its default value.
func (b *Builder) SetEnabled(variable string, enabled bool) error {
	if b.built {
		return errBuilt
	}
	if i, ok := b.syms.input(variable); ok {
		b.syms.inputs[i].enabled = enabled
		return nil
	}
	if i, ok := b.syms.output(variable); ok {
		b.syms.outputs[i].enabled = enabled
		return nil
	}
	return b.fail(&Error{Kind: KindUnknownVariable, Variable: variable})
}

// AddRuleBlock declares an empty rule block.
func (b *Builder) AddRuleBlock(name string, ops BlockOperators) (*RuleBlock, error) {
	if b.built {
		return nil, errBuilt
	}
	for _, blk := range b.blocks {
		if blk.name == name {
			return nil, b.fail(&Error{Kind: KindDuplicateName, Detail: fmt.Sprintf("rule block %q", name)})
		}
	}
	blk := &RuleBlock{
		name:        name,
		enabled:     true,
		conjunction: ops.Conjunction,
		disjunction: ops.Disjunction,
		activation:  ops.Activation,
	}
	b.blocks = append(b.blocks, blk)
	return blk, nil
}

// AddRule parses text and appends the rule to the named block.
func (b *Builder) AddRule(block, text string) error {
	if b.built {
		return errBuilt
	}
	var blk *RuleBlock
	for _, candidate := range b.blocks {
		if candidate.name == block {
			blk = candidate
			break
		}
	}
	if blk == nil {
		return b.fail(fmt.Errorf("rule block %q not declared", block))
	}
	r, err := parseRule(text, &b.syms)
	if err != nil {
		return b.fail(err)
	}
	blk.rules = append(blk.rules, r)
	return nil
}

// AddRules adds each rule in turn, continuing past failures. The returned
// error joins every failure.
func (b *Builder) AddRules(block string, texts ...string) error {
	var errs []error
	for _, text := range texts {
		if err := b.AddRule(block, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Configure sets every rule block's operators and every output's aggregation
// and defuzzifier when the engine is built.
func (b *Builder) Configure(ops Operators) {
	b.ops = &ops
}

// Errors returns every failure reported so far.
func (b *Builder) Errors() []error {
	out := make([]error, len(b.errs))
	copy(out, b.errs)
	return out
}

func (b *Builder) fail(err error) error {
	b.errs = append(b.errs, err)
	return err
}

// Build finishes the engine. Rule errors reported earlier do not fail Build;
// the engine runs with the rules that compiled.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errBuilt
	}
	if len(b.syms.inputs) == 0 {
		return nil, fmt.Errorf("engine %q has no input variables", b.name)
	}
	if len(b.syms.outputs) == 0 {
		return nil, fmt.Errorf("engine %q has no output variables", b.name)
	}
	if b.stale {
		if err := b.recompile(); err != nil {
			return nil, err
		}
	}
	if b.ops != nil {
		for _, blk := range b.blocks {
			blk.conjunction = b.ops.Conjunction
			blk.disjunction = b.ops.Disjunction
			blk.activation = b.ops.Activation
		}
		for _, out := range b.syms.outputs {
			out.aggregation = b.ops.Aggregation
			if b.ops.Defuzzifier != nil {
				out.defuzzifier = b.ops.Defuzzifier
			}
		}
	}
	b.built = true
	return &Engine{
		name:    b.name,
		inputs:  b.syms.inputs,
		outputs: b.syms.outputs,
		blocks:  b.blocks,
	}, nil
}

func (b *Builder) recompile() error {
	for _, blk := range b.blocks {
		for i, r := range blk.rules {
			compiled, err := parseRule(r.source, &b.syms)
			if err != nil {
				return fmt.Errorf("recompile rule block %q: %w", blk.name, err)
			}
			blk.rules[i] = compiled
		}
	}
	b.stale = false
	return nil
}

// Engine evaluates its rule blocks over crisp inputs. It is structurally
// immutable once built and is not safe for concurrent use.
type Engine struct {
	name    string
	inputs  []*InputVariable
	outputs []*OutputVariable
	blocks  []*RuleBlock
}

func (e *Engine) Name() string { return e.name }

func (e *Engine) Inputs() []*InputVariable {
	return append([]*InputVariable(nil), e.inputs...)
}

func (e *Engine) Outputs() []*OutputVariable {
	return append([]*OutputVariable(nil), e.outputs...)
}

func (e *Engine) RuleBlocks() []*RuleBlock {
	return append([]*RuleBlock(nil), e.blocks...)
}

func (e *Engine) InputVariable(name string) (*InputVariable, bool) {
	for _, v := range e.inputs {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

func (e *Engine) OutputVariable(name string) (*OutputVariable, bool) {
	for _, v := range e.outputs {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// SetInput writes the crisp value of an input variable. Values outside the
// variable range are accepted.
func (e *Engine) SetInput(name string, value float64) error {
	v, ok := e.InputVariable(name)
	if !ok {
		return &Error{Kind: KindUnknownVariable, Variable: name}
	}
	v.value = value
	v.set = true
	return nil
}

// Reset marks every input unset and clears every output.
func (e *Engine) Reset() {
	for _, v := range e.inputs {
		v.value = math.NaN()
		v.set = false
	}
	for _, v := range e.outputs {
		v.clear()
	}
	e.clearStrengths()
}

func (e *Engine) clearStrengths() {
	for _, blk := range e.blocks {
		for _, r := range blk.rules {
			r.strength = 0
		}
	}
}

// Process runs one inference: clear the outputs, fire every enabled rule
// block in order, then defuzzify each output. It fails without producing
// outputs when an enabled input has no value.
func (e *Engine) Process() error {
	for _, v := range e.outputs {
		v.clear()
	}
	e.clearStrengths()
	for _, v := range e.inputs {
		if v.enabled && !v.set {
			return &Error{Kind: KindUnsetInput, Variable: v.name}
		}
	}
	for _, blk := range e.blocks {
		if !blk.enabled {
			continue
		}
		blk.fire(e.inputs, e.outputs)
	}
	for _, v := range e.outputs {
		v.defuzzify()
	}
	return nil
}

// Output returns the crisp value of an output variable. It is NaN until
// Process succeeds.
func (e *Engine) Output(name string) (float64, error) {
	v, ok := e.OutputVariable(name)
	if !ok {
		return math.NaN(), &Error{Kind: KindUnknownVariable, Variable: name}
	}
	return v.value, nil
}

// Fuzzify returns the per-term degrees of value in any variable.
func (e *Engine) Fuzzify(name string, value float64) (FuzzySet, error) {
	if v, ok := e.InputVariable(name); ok {
		return v.Fuzzify(value), nil
	}
	if v, ok := e.OutputVariable(name); ok {
		return v.Fuzzify(value), nil
	}
	return nil, &Error{Kind: KindUnknownVariable, Variable: name}
}

// AggregatedDegrees returns the per-term activation of an output variable
// after the last Process call.
func (e *Engine) AggregatedDegrees(output string) (FuzzySet, error) {
	v, ok := e.OutputVariable(output)
	if !ok {
		return nil, &Error{Kind: KindUnknownVariable, Variable: output}
	}
	return v.AggregatedDegrees(), nil
}

// Firings lists every rule that fired in the last Process call, in
// evaluation order.
func (e *Engine) Firings() []Firing {
	var out []Firing
	for _, blk := range e.blocks {
		for _, r := range blk.rules {
			if r.strength > 0 {
				out = append(out, Firing{Block: blk.name, Rule: r.source, Strength: r.strength})
			}
		}
	}
	return out
}
