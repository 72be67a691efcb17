package fuzzy

import (
	"fmt"
	"math"
)

// DefaultResolution is the number of samples integral defuzzifiers take over
// an output range. It matches the FuzzyLite default.
const DefaultResolution = 200

// Defuzzifier reduces an aggregated membership function on [min, max] to a
// crisp value. NaN means the set is empty; the output variable then falls back
// to its default value.
type Defuzzifier interface {
	Defuzzify(mu func(float64) float64, min, max float64) float64
	Name() string
	Resolution() int
}

// samples discretises [min, max] into n cells and yields each cell midpoint.
// Midpoints are computed as offsets from the centre of the range so that
// mirrored samples are exact negations of each other.
func samples(min, max float64, n int) []float64 {
	if n <= 0 {
		n = DefaultResolution
	}
	dx := (max - min) / float64(n)
	mid := min + (max-min)/2
	ys := make([]float64, n)
	for j := range ys {
		ys[j] = mid + (float64(j)+0.5-float64(n)/2)*dx
	}
	return ys
}

// Centroid returns the membership-weighted mean of the sampled domain.
type Centroid struct {
	N int
}

func (c Centroid) Name() string { return "Centroid" }

func (c Centroid) Resolution() int { return resolution(c.N) }

func (c Centroid) Defuzzify(mu func(float64) float64, min, max float64) float64 {
	ys := samples(min, max, c.N)
	n := len(ys)
	var num, den float64
	// Accumulate mirrored pairs together so a set symmetric about the centre
	// of the range has a numerator of exactly zero.
	for i, j := 0, n-1; i <= j; i, j = i+1, j-1 {
		mi := mu(ys[i])
		if i == j {
			num += ys[i] * mi
			den += mi
			break
		}
		mj := mu(ys[j])
		num += ys[i]*mi + ys[j]*mj
		den += mi + mj
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Bisector returns the first sample at which the cumulative area reaches
// half of the total.
type Bisector struct {
	N int
}

func (b Bisector) Name() string { return "Bisector" }

func (b Bisector) Resolution() int { return resolution(b.N) }

func (b Bisector) Defuzzify(mu func(float64) float64, min, max float64) float64 {
	ys := samples(min, max, b.N)
	degrees := make([]float64, len(ys))
	var area float64
	for j, y := range ys {
		degrees[j] = mu(y)
		area += degrees[j]
	}
	if area == 0 {
		return math.NaN()
	}
	half, cum := area/2, 0.0
	for j, d := range degrees {
		cum += d
		if cum >= half {
			return ys[j]
		}
	}
	return ys[len(ys)-1]
}

type maximumKind int

const (
	meanOfMaximum maximumKind = iota
	smallestOfMaximum
	largestOfMaximum
)

// Maximum-based defuzzifiers pick among the samples of highest degree.
type MeanOfMaximum struct{ N int }
type SmallestOfMaximum struct{ N int }
type LargestOfMaximum struct{ N int }

func (d MeanOfMaximum) Name() string     { return "MeanOfMaximum" }
func (d SmallestOfMaximum) Name() string { return "SmallestOfMaximum" }
func (d LargestOfMaximum) Name() string  { return "LargestOfMaximum" }

func (d MeanOfMaximum) Resolution() int     { return resolution(d.N) }
func (d SmallestOfMaximum) Resolution() int { return resolution(d.N) }
func (d LargestOfMaximum) Resolution() int  { return resolution(d.N) }

func (d MeanOfMaximum) Defuzzify(mu func(float64) float64, min, max float64) float64 {
	return ofMaximum(mu, min, max, d.N, meanOfMaximum)
}

func (d SmallestOfMaximum) Defuzzify(mu func(float64) float64, min, max float64) float64 {
	return ofMaximum(mu, min, max, d.N, smallestOfMaximum)
}

func (d LargestOfMaximum) Defuzzify(mu func(float64) float64, min, max float64) float64 {
	return ofMaximum(mu, min, max, d.N, largestOfMaximum)
}

func ofMaximum(mu func(float64) float64, min, max float64, n int, kind maximumKind) float64 {
	ys := samples(min, max, n)
	best := 0.0
	first, last := -1, -1
	for j, y := range ys {
		d := mu(y)
		switch {
		case d > best:
			best, first, last = d, j, j
		case d == best && best > 0:
			last = j
		}
	}
	if first < 0 {
		return math.NaN()
	}
	switch kind {
	case smallestOfMaximum:
		return ys[first]
	case largestOfMaximum:
		return ys[last]
	default:
		return (ys[first] + ys[last]) / 2
	}
}

func resolution(n int) int {
	if n <= 0 {
		return DefaultResolution
	}
	return n
}

// ParseDefuzzifier resolves a defuzzifier by its FuzzyLite name.
func ParseDefuzzifier(name string, n int) (Defuzzifier, error) {
	switch name {
	case "Centroid":
		return Centroid{N: n}, nil
	case "Bisector":
		return Bisector{N: n}, nil
	case "MeanOfMaximum":
		return MeanOfMaximum{N: n}, nil
	case "SmallestOfMaximum":
		return SmallestOfMaximum{N: n}, nil
	case "LargestOfMaximum":
		return LargestOfMaximum{N: n}, nil
	}
	return nil, fmt.Errorf("unknown defuzzifier %q", name)
}
