package fuzzy

import (
	"math"
	"testing"
)

func TestTriangleDegree(t *testing.T) {
	tests := []struct {
		name string
		mf   Triangle
		x    float64
		want float64
	}{
		{"apex", Triangle{-0.4, 0, 0.4}, 0, 1},
		{"left foot", Triangle{-0.4, 0, 0.4}, -0.4, 0},
		{"right foot", Triangle{-0.4, 0, 0.4}, 0.4, 0},
		{"left flank", Triangle{-0.4, 0, 0.4}, -0.2, 0.5},
		{"right flank", Triangle{-0.4, 0, 0.4}, 0.2, 0.5},
		{"below", Triangle{-0.4, 0, 0.4}, -3, 0},
		{"above", Triangle{-0.4, 0, 0.4}, 3, 0},
		{"over-range flank", Triangle{-2, -1, -0.4}, -1.5, 0.5},
		{"over-range peak", Triangle{-2, -1, -0.4}, -1, 1},
		{"degenerate left apex", Triangle{0, 0, 1}, 0, 1},
		{"degenerate left flank", Triangle{0, 0, 1}, 0.5, 0.5},
		{"degenerate left outside", Triangle{0, 0, 1}, -0.1, 0},
		{"degenerate right apex", Triangle{0, 1, 1}, 1, 1},
		{"degenerate right flank", Triangle{0, 1, 1}, 0.5, 0.5},
		{"degenerate right outside", Triangle{0, 1, 1}, 1.1, 0},
		{"singleton", Triangle{1, 1, 1}, 1, 1},
		{"singleton miss", Triangle{1, 1, 1}, 1.0001, 0},
		{"nan", Triangle{-0.4, 0, 0.4}, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mf.Degree(tt.x)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Triangle%v.Degree(%v) = %v, want %v", tt.mf, tt.x, got, tt.want)
			}
		})
	}
}

func TestTriangleUnimodal(t *testing.T) {
	mf := Triangle{-0.75, -0.5, -0.25}
	prev := 0.0
	rising := true
	for x := -1.0; x <= 1.0; x += 0.001 {
		d := mf.Degree(x)
		if rising && d < prev {
			rising = false
		} else if !rising && d > prev {
			t.Fatalf("degree rises again at x=%v", x)
		}
		prev = d
	}
}

func TestDegreeBounds(t *testing.T) {
	shapes := []Membership{
		Triangle{-2, -1, -0.4},
		Triangle{0.6, 1, 1.2},
		Triangle{0, 0, 0},
		Trapezoid{-1, -0.5, 0.5, 1},
		Trapezoid{0, 0, 1, 1},
		Gaussian{0, 0.3},
		Gaussian{0.5, 0},
	}
	for _, mf := range shapes {
		for x := -3.0; x <= 3.0; x += 0.01 {
			d := mf.Degree(x)
			if d < 0 || d > 1 || math.IsNaN(d) {
				t.Fatalf("%T%v.Degree(%v) = %v, outside [0,1]", mf, mf, x, d)
			}
		}
	}
}

func TestTrapezoidDegree(t *testing.T) {
	mf := Trapezoid{-1, -0.5, 0.5, 1}
	cases := map[float64]float64{
		-1:    0,
		-0.75: 0.5,
		-0.5:  1,
		0:     1,
		0.5:   1,
		0.75:  0.5,
		1:     0,
		2:     0,
	}
	for x, want := range cases {
		if got := mf.Degree(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("Degree(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestGaussianDegree(t *testing.T) {
	mf := Gaussian{Mean: 0, Sigma: 1}
	if got := mf.Degree(0); got != 1 {
		t.Errorf("Degree(mean) = %v, want 1", got)
	}
	if got, want := mf.Degree(1), math.Exp(-0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("Degree(1) = %v, want %v", got, want)
	}
	if got := mf.Degree(math.NaN()); got != 0 {
		t.Errorf("Degree(NaN) = %v, want 0", got)
	}
}

func TestNorms(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Minimum", Minimum.Compute(0.3, 0.7), 0.3},
		{"AlgebraicProduct", AlgebraicProduct.Compute(0.5, 0.5), 0.25},
		{"BoundedDifference", BoundedDifference.Compute(0.3, 0.5), 0},
		{"Maximum", Maximum.Compute(0.3, 0.7), 0.7},
		{"AlgebraicSum", AlgebraicSum.Compute(0.5, 0.5), 0.75},
		{"BoundedSum", BoundedSum.Compute(0.6, 0.7), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestParseNorms(t *testing.T) {
	if tn, err := ParseTNorm("AlgebraicProduct"); err != nil || tn != AlgebraicProduct {
		t.Errorf("ParseTNorm = %v, %v", tn, err)
	}
	if sn, err := ParseSNorm("Maximum"); err != nil || sn != Maximum {
		t.Errorf("ParseSNorm = %v, %v", sn, err)
	}
	if _, err := ParseTNorm("Maximum"); err == nil {
		t.Error("expected error for s-norm name used as t-norm")
	}
}
