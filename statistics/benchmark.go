package statistics

import (
	gctmath "github.com/quantfarm/backtester/common/math"
)

// calculateBenchmarkMetrics compares the strategy return series against
// a benchmark series. Alignment is an inner join on timestamp, entries
// without a counterpart on the other side are discarded
func (a *Analyzer) calculateBenchmarkMetrics(m *Metrics, returns, benchmark []ReturnPoint) {
	if len(returns) == 0 || len(benchmark) == 0 {
		return
	}

	benchByTime := make(map[int64]float64, len(benchmark))
	for i := range benchmark {
		benchByTime[benchmark[i].Time.UnixNano()] = benchmark[i].Return
	}

	var aligned, alignedBench []float64
	for i := range returns {
		if b, ok := benchByTime[returns[i].Time.UnixNano()]; ok {
			aligned = append(aligned, returns[i].Return)
			alignedBench = append(alignedBench, b)
		}
	}
	if len(aligned) == 0 {
		return
	}
	m.HasBenchmark = true

	excess := make([]float64, len(aligned))
	for i := range aligned {
		excess[i] = aligned[i] - alignedBench[i]
	}

	m.TrackingError = gctmath.SampleStandardDeviation(excess) * sqrtTradingDays
	if m.TrackingError > 0 {
		m.InformationRatio = gctmath.ArithmeticAverage(excess) * tradingDaysPerYear / m.TrackingError
	}
	m.AvgExcessReturn = gctmath.ArithmeticAverage(excess) * tradingDaysPerYear

	benchVariance := gctmath.SampleVariance(alignedBench)
	if benchVariance > 0 {
		m.Beta = gctmath.SampleCovariance(aligned, alignedBench) / benchVariance
	}

	riskFreeDaily := a.RiskFreeRate / tradingDaysPerYear
	alpha := (gctmath.ArithmeticAverage(aligned) - riskFreeDaily) -
		m.Beta*(gctmath.ArithmeticAverage(alignedBench)-riskFreeDaily)
	m.Alpha = alpha * tradingDaysPerYear

	m.Correlation = gctmath.PearsonCorrelation(aligned, alignedBench)
}
