package fuzzy

import (
	"fmt"
	"math"
)

// TNorm is a conjunction operator on [0,1]. It also serves as the activation
// operator of a rule block: Minimum clips a consequent, AlgebraicProduct scales it.
type TNorm int

const (
	Minimum TNorm = iota
	AlgebraicProduct
	BoundedDifference
)

func (t TNorm) Compute(a, b float64) float64 {
	switch t {
	case AlgebraicProduct:
		return a * b
	case BoundedDifference:
		return math.Max(0, a+b-1)
	default:
		return math.Min(a, b)
	}
}

func (t TNorm) String() string {
	switch t {
	case Minimum:
		return "Minimum"
	case AlgebraicProduct:
		return "AlgebraicProduct"
	case BoundedDifference:
		return "BoundedDifference"
	}
	return fmt.Sprintf("TNorm(%d)", int(t))
}

// ParseTNorm resolves a T-norm by its FuzzyLite name.
func ParseTNorm(name string) (TNorm, error) {
	for _, t := range []TNorm{Minimum, AlgebraicProduct, BoundedDifference} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown t-norm %q", name)
}

// SNorm is a disjunction or aggregation operator on [0,1]. Zero is the
// identity of every SNorm, so folds start from zero.
type SNorm int

const (
	Maximum SNorm = iota
	AlgebraicSum
	BoundedSum
)

func (s SNorm) Compute(a, b float64) float64 {
	switch s {
	case AlgebraicSum:
		return a + b - a*b
	case BoundedSum:
		return math.Min(1, a+b)
	default:
		return math.Max(a, b)
	}
}

func (s SNorm) String() string {
	switch s {
	case Maximum:
		return "Maximum"
	case AlgebraicSum:
		return "AlgebraicSum"
	case BoundedSum:
		return "BoundedSum"
	}
	return fmt.Sprintf("SNorm(%d)", int(s))
}

// ParseSNorm resolves an S-norm by its FuzzyLite name.
func ParseSNorm(name string) (SNorm, error) {
	for _, s := range []SNorm{Maximum, AlgebraicSum, BoundedSum} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown s-norm %q", name)
}
