package fuzzy

import (
	"fmt"
	"math"
)

// Membership is a shape mapping a crisp value to a degree in [0, 1].
// The set of shapes is closed; parameters are never clamped to the range of
// the variable that owns them.
type Membership interface {
	Degree(x float64) float64
	fll() string
}

// Triangle rises from A to a peak at B and falls back to zero at C.
type Triangle struct {
	A, B, C float64
}

func (t Triangle) Degree(x float64) float64 {
	if math.IsNaN(x) || x < t.A || x > t.C {
		return 0
	}
	switch {
	case x == t.B:
		return 1
	case x < t.B:
		if t.B == t.A {
			return 0
		}
		return clamp01((x - t.A) / (t.B - t.A))
	default:
		if t.C == t.B {
			return 0
		}
		return clamp01((t.C - x) / (t.C - t.B))
	}
}

func (t Triangle) fll() string {
	return fmt.Sprintf("Triangle %s %s %s", fmtNum(t.A), fmtNum(t.B), fmtNum(t.C))
}

// Trapezoid is one on [B, C] with linear flanks down to A and D.
type Trapezoid struct {
	A, B, C, D float64
}

func (t Trapezoid) Degree(x float64) float64 {
	if math.IsNaN(x) || x < t.A || x > t.D {
		return 0
	}
	switch {
	case x >= t.B && x <= t.C:
		return 1
	case x < t.B:
		if t.B == t.A {
			return 0
		}
		return clamp01((x - t.A) / (t.B - t.A))
	default:
		if t.D == t.C {
			return 0
		}
		return clamp01((t.D - x) / (t.D - t.C))
	}
}

func (t Trapezoid) fll() string {
	return fmt.Sprintf("Trapezoid %s %s %s %s", fmtNum(t.A), fmtNum(t.B), fmtNum(t.C), fmtNum(t.D))
}

// Gaussian is the bell curve exp(-(x-Mean)^2 / (2 Sigma^2)).
type Gaussian struct {
	Mean, Sigma float64
}

func (g Gaussian) Degree(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if g.Sigma == 0 {
		if x == g.Mean {
			return 1
		}
		return 0
	}
	d := x - g.Mean
	return math.Exp(-(d * d) / (2 * g.Sigma * g.Sigma))
}

func (g Gaussian) fll() string {
	return fmt.Sprintf("Gaussian %s %s", fmtNum(g.Mean), fmtNum(g.Sigma))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
