package racingline

import (
	"fmt"

	"github.com/MikeSquared-Agency/Helm/internal/fuzzy"
)

const (
	EngineName = "FuzzyCar"
	BlockName  = "steering"

	Position = "CarPosition"
	Velocity = "CarVelocity"
	Steering = "CarSteering"
)

// Position terms.
const (
	FarLeft   = "FarLeft"
	NearLeft  = "NearLeft"
	Neutral   = "Neutral"
	NearRight = "NearRight"
	FarRight  = "FarRight"
)

// Velocity terms. The centre term shares the name Neutral with position.
const (
	MovingFastLeft  = "MovingFastLeft"
	MovingSlowLeft  = "MovingSlowLeft"
	MovingSlowRight = "MovingSlowRight"
	MovingFastRight = "MovingFastRight"
)

// Steering terms.
const (
	SteerFarLeft     = "SteerFarLeft"
	SteerMediumLeft  = "SteerMediumLeft"
	SteerNearLeft    = "SteerNearLeft"
	SteerNearRight   = "SteerNearRight"
	SteerMediumRight = "SteerMediumRight"
	SteerFarRight    = "SteerFarRight"
)

// The five input shapes shared by position and velocity. The outer flanks
// reach past the [-1, 1] range so the edge terms stay at full degree there.
var (
	farLeftShape   = fuzzy.Triangle{A: -2.0, B: -1.0, C: -0.4}
	nearLeftShape  = fuzzy.Triangle{A: -0.8, B: -0.4, C: 0.0}
	neutralShape   = fuzzy.Triangle{A: -0.4, B: 0.0, C: 0.4}
	nearRightShape = fuzzy.Triangle{A: 0.0, B: 0.4, C: 0.8}
	farRightShape  = fuzzy.Triangle{A: 0.4, B: 1.0, C: 2.0}
)

var (
	positionTerms = []string{FarLeft, NearLeft, Neutral, NearRight, FarRight}
	velocityTerms = []string{MovingFastLeft, MovingSlowLeft, Neutral, MovingSlowRight, MovingFastRight}
)

// fam is the fuzzy associative map, indexed [velocity][position]. Rows run
// from moving fast left to moving fast right; columns from far left to far
// right.
var fam = [5][5]string{
	{SteerFarRight, SteerMediumRight, SteerMediumRight, SteerNearRight, Neutral},
	{SteerMediumRight, SteerNearRight, SteerNearRight, Neutral, SteerNearLeft},
	{SteerMediumRight, SteerNearRight, Neutral, SteerNearLeft, SteerMediumLeft},
	{SteerNearRight, Neutral, SteerNearLeft, SteerNearLeft, SteerMediumLeft},
	{Neutral, SteerNearLeft, SteerMediumLeft, SteerMediumLeft, SteerFarLeft},
}

// Range is the domain of every variable of the controller.
var Range = fuzzy.Range{Min: -1.0, Max: 1.0}

func inputTerms(names []string) []fuzzy.Term {
	shapes := []fuzzy.Triangle{farLeftShape, nearLeftShape, neutralShape, nearRightShape, farRightShape}
	terms := make([]fuzzy.Term, len(names))
	for i, name := range names {
		terms[i] = fuzzy.Term{Name: name, MF: shapes[i]}
	}
	return terms
}

func steeringTerms() []fuzzy.Term {
	return []fuzzy.Term{
		{Name: SteerFarLeft, MF: fuzzy.Triangle{A: -2.0, B: -1.0, C: -0.6}},
		{Name: SteerMediumLeft, MF: fuzzy.Triangle{A: -0.75, B: -0.5, C: -0.25}},
		{Name: SteerNearLeft, MF: fuzzy.Triangle{A: -0.4, B: -0.2, C: 0.0}},
		{Name: Neutral, MF: fuzzy.Triangle{A: -0.2, B: 0.0, C: 0.2}},
		{Name: SteerNearRight, MF: fuzzy.Triangle{A: 0.0, B: 0.2, C: 0.4}},
		{Name: SteerMediumRight, MF: fuzzy.Triangle{A: 0.25, B: 0.5, C: 0.75}},
		{Name: SteerFarRight, MF: fuzzy.Triangle{A: 0.6, B: 1.0, C: 1.2}},
	}
}

// Rules returns the 25 rule texts row-major by velocity then position.
func Rules() []string {
	rules := make([]string, 0, len(fam)*len(fam[0]))
	for vi, row := range fam {
		for pi, steer := range row {
			rules = append(rules, fmt.Sprintf("if %s is %s and %s is %s then %s is %s",
				Position, positionTerms[pi], Velocity, velocityTerms[vi], Steering, steer))
		}
	}
	return rules
}

// Options tune the reference controller. The zero value reproduces it
// exactly: Minimum, Maximum, Minimum, Maximum, Centroid over 200 samples.
type Options struct {
	Operators *fuzzy.Operators
	// Resolution overrides the sample count of the defuzzifier.
	Resolution int
	// Rules replaces the rule list, for example to evaluate a permutation.
	Rules []string
}

// NewEngine builds the racing line steering controller.
func NewEngine(opts Options) (*fuzzy.Engine, error) {
	ops := fuzzy.DefaultOperators()
	if opts.Operators != nil {
		ops = *opts.Operators
	}
	if opts.Resolution > 0 {
		d, err := fuzzy.ParseDefuzzifier(ops.Defuzzifier.Name(), opts.Resolution)
		if err != nil {
			return nil, err
		}
		ops.Defuzzifier = d
	}
	rules := opts.Rules
	if rules == nil {
		rules = Rules()
	}

	b := fuzzy.NewBuilder(EngineName)
	if _, err := b.AddInput(Position, Range, inputTerms(positionTerms)...); err != nil {
		return nil, fmt.Errorf("add %s: %w", Position, err)
	}
	if _, err := b.AddInput(Velocity, Range, inputTerms(velocityTerms)...); err != nil {
		return nil, fmt.Errorf("add %s: %w", Velocity, err)
	}
	_, err := b.AddOutput(Steering, Range, fuzzy.OutputOptions{
		Default:     0,
		LockInRange: true,
		Aggregation: ops.Aggregation,
		Defuzzifier: ops.Defuzzifier,
	}, steeringTerms()...)
	if err != nil {
		return nil, fmt.Errorf("add %s: %w", Steering, err)
	}
	if _, err := b.AddRuleBlock(BlockName, fuzzy.BlockOperators{
		Conjunction: ops.Conjunction,
		Disjunction: ops.Disjunction,
		Activation:  ops.Activation,
	}); err != nil {
		return nil, err
	}
	if err := b.AddRules(BlockName, rules...); err != nil {
		return nil, fmt.Errorf("add rules: %w", err)
	}
	b.Configure(ops)
	return b.Build()
}
