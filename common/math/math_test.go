package math

import (
	"math"
	"testing"
)

const float64EqualityThreshold = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func TestArithmeticAverage(t *testing.T) {
	t.Parallel()
	if avg := ArithmeticAverage([]float64{1, 2, 3, 4}); avg != 2.5 {
		t.Errorf("received %v expected 2.5", avg)
	}
	if avg := ArithmeticAverage(nil); avg != 0 {
		t.Errorf("received %v expected 0", avg)
	}
}

func TestStandardDeviation(t *testing.T) {
	t.Parallel()
	values := []float64{1, 2, 3, 4}
	if sd := SampleStandardDeviation(values); !almostEqual(sd, math.Sqrt(5.0/3)) {
		t.Errorf("received %v expected %v", sd, math.Sqrt(5.0/3))
	}
	if sd := SampleStandardDeviation([]float64{42}); sd != 0 {
		t.Errorf("received %v expected 0", sd)
	}
}

func TestSampleCovarianceAndCorrelation(t *testing.T) {
	t.Parallel()
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}
	if cov := SampleCovariance(x, y); !almostEqual(cov, 2) {
		t.Errorf("received %v expected 2", cov)
	}
	if corr := PearsonCorrelation(x, y); !almostEqual(corr, 1) {
		t.Errorf("received %v expected 1", corr)
	}
	if corr := PearsonCorrelation(x, []float64{5, 5, 5}); corr != 0 {
		t.Errorf("received %v expected 0", corr)
	}
	if cov := SampleCovariance(x, []float64{1, 2}); cov != 0 {
		t.Errorf("received %v expected 0 on mismatched lengths", cov)
	}
}

func TestQuantile(t *testing.T) {
	t.Parallel()
	values := []float64{4, 1, 3, 2}
	cases := []struct {
		q, expected float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{1, 4},
	}
	for _, tc := range cases {
		if q := Quantile(values, tc.q); !almostEqual(q, tc.expected) {
			t.Errorf("Quantile(%v) received %v expected %v", tc.q, q, tc.expected)
		}
	}
	if q := Quantile(nil, 0.5); q != 0 {
		t.Errorf("received %v expected 0", q)
	}
}

func TestSampleSkewness(t *testing.T) {
	t.Parallel()
	if skew := SampleSkewness([]float64{1, 2, 3, 4, 5}); !almostEqual(skew, 0) {
		t.Errorf("received %v expected 0 for a symmetric series", skew)
	}
	if skew := SampleSkewness([]float64{1, 2, 100}); skew <= 0 {
		t.Errorf("received %v expected a positive skew", skew)
	}
	if skew := SampleSkewness([]float64{1, 2}); skew != 0 {
		t.Errorf("received %v expected 0 for short input", skew)
	}
	if skew := SampleSkewness([]float64{7, 7, 7, 7}); skew != 0 {
		t.Errorf("received %v expected 0 for zero variance", skew)
	}
}

func TestSampleExcessKurtosis(t *testing.T) {
	t.Parallel()
	if kurt := SampleExcessKurtosis([]float64{1, 2, 3, 4, 5}); !almostEqual(kurt, -1.2) {
		t.Errorf("received %v expected -1.2", kurt)
	}
	if kurt := SampleExcessKurtosis([]float64{1, 2, 3}); kurt != 0 {
		t.Errorf("received %v expected 0 for short input", kurt)
	}
}

func TestCalculateCompoundAnnualGrowthRate(t *testing.T) {
	t.Parallel()
	if cagr := CalculateCompoundAnnualGrowthRate(100, 121, 1, 2); !almostEqual(cagr, 10) {
		t.Errorf("received %v expected 10", cagr)
	}
	if cagr := CalculateCompoundAnnualGrowthRate(0, 121, 1, 2); cagr != 0 {
		t.Errorf("received %v expected 0", cagr)
	}
}

func TestCalculateCalmarRatio(t *testing.T) {
	t.Parallel()
	if calmar := CalculateCalmarRatio(100, 80, 0.5); !almostEqual(calmar, 2.5) {
		t.Errorf("received %v expected 2.5", calmar)
	}
	if calmar := CalculateCalmarRatio(0, 80, 0.5); calmar != 0 {
		t.Errorf("received %v expected 0", calmar)
	}
}
