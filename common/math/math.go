package math

import (
	"math"
	"sort"
)

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values))
}

// SampleStandardDeviation standard deviation is a statistic that
// measures the dispersion of a dataset relative to its mean and
// is calculated as the square root of the variance
func SampleStandardDeviation(vals []float64) float64 {
	if len(vals) <= 1 {
		return 0
	}
	mean := ArithmeticAverage(vals)
	var combined float64
	for i := range vals {
		combined += math.Pow(vals[i]-mean, 2)
	}
	return math.Sqrt(combined / (float64(len(vals)) - 1))
}

// SampleVariance returns the variance of vals using an n-1 denominator
func SampleVariance(vals []float64) float64 {
	if len(vals) <= 1 {
		return 0
	}
	mean := ArithmeticAverage(vals)
	var combined float64
	for i := range vals {
		combined += math.Pow(vals[i]-mean, 2)
	}
	return combined / (float64(len(vals)) - 1)
}

// SampleCovariance measures the joint variability of two equal length
// series using an n-1 denominator. Mismatched lengths return 0
func SampleCovariance(x, y []float64) float64 {
	if len(x) <= 1 || len(x) != len(y) {
		return 0
	}
	meanX := ArithmeticAverage(x)
	meanY := ArithmeticAverage(y)
	var combined float64
	for i := range x {
		combined += (x[i] - meanX) * (y[i] - meanY)
	}
	return combined / (float64(len(x)) - 1)
}

// PearsonCorrelation returns the correlation coefficient between two
// equal length series, 0 when either series has no variance
func PearsonCorrelation(x, y []float64) float64 {
	sdX := SampleStandardDeviation(x)
	sdY := SampleStandardDeviation(y)
	if sdX == 0 || sdY == 0 {
		return 0
	}
	return SampleCovariance(x, y) / (sdX * sdY)
}

// Quantile returns the q-th quantile (0-1) of values using linear
// interpolation between closest ranks, the same method pandas defaults to
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// centralMoment returns the k-th central moment with a 1/n denominator
func centralMoment(values []float64, k float64) float64 {
	mean := ArithmeticAverage(values)
	var total float64
	for i := range values {
		total += math.Pow(values[i]-mean, k)
	}
	return total / float64(len(values))
}

// SampleSkewness returns the adjusted Fisher-Pearson standardised third
// moment, bias corrected the same way pandas' skew() is. Fewer than three
// values or zero variance returns 0
func SampleSkewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return 0
	}
	m2 := centralMoment(values, 2)
	if m2 == 0 {
		return 0
	}
	g1 := centralMoment(values, 3) / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// SampleExcessKurtosis returns bias corrected excess kurtosis matching
// pandas' kurtosis(). Fewer than four values or zero variance returns 0
func SampleExcessKurtosis(values []float64) float64 {
	n := float64(len(values))
	if n < 4 {
		return 0
	}
	m2 := centralMoment(values, 2)
	if m2 == 0 {
		return 0
	}
	g2 := centralMoment(values, 4)/(m2*m2) - 3
	return ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
}

// CalculateCompoundAnnualGrowthRate Calculates CAGR.
// Using years, intervals per year would be 1 and number of intervals would be the number of years
// Using days, intervals per year would be 252 and number of intervals would be the number of days
func CalculateCompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals float64) float64 {
	if openValue <= 0 || numberOfIntervals == 0 {
		return 0
	}
	k := math.Pow(closeValue/openValue, intervalsPerYear/numberOfIntervals) - 1
	return k * 100
}

// CalculateCalmarRatio is a function of the average compounded annual rate of return versus its maximum drawdown.
// The higher the Calmar ratio, the better it performed on a risk-adjusted basis during the given time frame
func CalculateCalmarRatio(highestValue, lowestValue, average float64) float64 {
	if highestValue == 0 {
		return 0
	}
	drawdownDiff := (highestValue - lowestValue) / highestValue
	if drawdownDiff == 0 {
		return 0
	}
	return average / drawdownDiff
}
