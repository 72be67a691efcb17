package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesAreCellMidpoints(t *testing.T) {
	ys := samples(-1, 1, 200)
	require.Len(t, ys, 200)
	for j, y := range ys {
		want := -1 + (float64(j)+0.5)*2.0/200
		assert.InDelta(t, want, y, 1e-12, "sample %d", j)
	}
	for j := range ys {
		assert.Equal(t, -ys[j], ys[len(ys)-1-j], "mirrored sample %d", j)
	}
}

func TestSamplesDefaultResolution(t *testing.T) {
	assert.Len(t, samples(0, 1, 0), DefaultResolution)
	assert.Equal(t, DefaultResolution, Centroid{}.Resolution())
	assert.Equal(t, 50, Centroid{N: 50}.Resolution())
}

func TestCentroid(t *testing.T) {
	t.Run("symmetric set centres exactly", func(t *testing.T) {
		mf := Triangle{-0.2, 0, 0.2}
		got := Centroid{N: 200}.Defuzzify(mf.Degree, -1, 1)
		assert.Equal(t, 0.0, got)
	})

	t.Run("half triangle at the range edge", func(t *testing.T) {
		mf := Triangle{0.6, 1.0, 1.2}
		got := Centroid{N: 200}.Defuzzify(mf.Degree, -1, 1)
		assert.InDelta(t, 0.8667, got, 0.005)
	})

	t.Run("clipped shape", func(t *testing.T) {
		mf := Triangle{0.25, 0.5, 0.75}
		clipped := func(y float64) float64 { return math.Min(0.5, mf.Degree(y)) }
		got := Centroid{N: 400}.Defuzzify(clipped, -1, 1)
		assert.InDelta(t, 0.5, got, 1e-9)
	})

	t.Run("empty set", func(t *testing.T) {
		got := Centroid{}.Defuzzify(func(float64) float64 { return 0 }, -1, 1)
		assert.True(t, math.IsNaN(got))
	})

	t.Run("odd resolution", func(t *testing.T) {
		got := Centroid{N: 3}.Defuzzify(func(float64) float64 { return 1 }, 0, 3)
		assert.InDelta(t, 1.5, got, 1e-12)
	})
}

func TestBisector(t *testing.T) {
	flat := func(float64) float64 { return 1 }
	got := Bisector{N: 100}.Defuzzify(flat, 0, 1)
	assert.InDelta(t, 0.5, got, 0.01)

	right := Triangle{0.5, 1, 1.5}
	got = Bisector{N: 200}.Defuzzify(right.Degree, -1, 1)
	assert.Greater(t, got, 0.5)

	assert.True(t, math.IsNaN(Bisector{}.Defuzzify(func(float64) float64 { return 0 }, 0, 1)))
}

func TestMaximumDefuzzifiers(t *testing.T) {
	plateau := Trapezoid{-0.5, -0.25, 0.25, 0.5}
	assert.InDelta(t, 0, MeanOfMaximum{N: 200}.Defuzzify(plateau.Degree, -1, 1), 1e-9)
	assert.InDelta(t, -0.245, SmallestOfMaximum{N: 200}.Defuzzify(plateau.Degree, -1, 1), 1e-9)
	assert.InDelta(t, 0.245, LargestOfMaximum{N: 200}.Defuzzify(plateau.Degree, -1, 1), 1e-9)

	empty := func(float64) float64 { return 0 }
	assert.True(t, math.IsNaN(MeanOfMaximum{}.Defuzzify(empty, -1, 1)))
}

func TestParseDefuzzifier(t *testing.T) {
	for _, name := range []string{"Centroid", "Bisector", "MeanOfMaximum", "SmallestOfMaximum", "LargestOfMaximum"} {
		d, err := ParseDefuzzifier(name, 100)
		require.NoError(t, err, name)
		assert.Equal(t, name, d.Name())
		assert.Equal(t, 100, d.Resolution())
	}
	_, err := ParseDefuzzifier("WeightedAverage", 100)
	assert.Error(t, err)
}
