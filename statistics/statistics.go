package statistics

import (
	gctmath "github.com/quantfarm/backtester/common/math"
	"github.com/quantfarm/backtester/order"
)

// NewAnalyzer returns an analyzer using the supplied annual risk free
// rate, or DefaultRiskFreeRate when zero
func NewAnalyzer(riskFreeRate float64) *Analyzer {
	if riskFreeRate == 0 {
		riskFreeRate = DefaultRiskFreeRate
	}
	return &Analyzer{RiskFreeRate: riskFreeRate}
}

// CalculateMetrics builds the full report from an equity curve, its step
// return series, the trade ledger and an optional benchmark return
// series. Empty or short inputs produce zero valued metrics, never a
// panic, a section is simply skipped when its input series is absent
func (a *Analyzer) CalculateMetrics(equity []EquityPoint, returns []ReturnPoint, trades []order.Trade, benchmark []ReturnPoint) *Metrics {
	m := &Metrics{}

	a.calculateBasicStats(m, equity)
	a.calculateReturnMetrics(m, equity, returns)
	a.calculateRiskMetrics(m, returns)
	a.calculateDrawdownMetrics(m, equity)
	if len(trades) > 0 {
		a.calculateTradeStats(m, trades)
	}
	a.calculateRiskAdjustedMetrics(m, returns)
	if len(benchmark) > 0 {
		a.calculateBenchmarkMetrics(m, returns, benchmark)
	}

	return m
}

func (a *Analyzer) calculateBasicStats(m *Metrics, equity []EquityPoint) {
	if len(equity) == 0 {
		return
	}
	m.StartDate = equity[0].Time
	m.EndDate = equity[len(equity)-1].Time
	m.TradingDays = len(equity)
	m.StartValue = equity[0].Value
	m.EndValue = equity[len(equity)-1].Value
	m.NetProfit = m.EndValue - m.StartValue
}

func (a *Analyzer) calculateReturnMetrics(m *Metrics, equity []EquityPoint, returns []ReturnPoint) {
	if len(equity) == 0 || len(returns) == 0 {
		return
	}
	m.TotalReturn = equity[len(equity)-1].Value/equity[0].Value - 1
	m.AnnualizedReturn = gctmath.CalculateCompoundAnnualGrowthRate(
		equity[0].Value,
		equity[len(equity)-1].Value,
		tradingDaysPerYear,
		float64(len(equity))) / 100

	values := returnValues(returns)
	m.AvgDailyReturn = gctmath.ArithmeticAverage(values)
	m.BestDay = values[0]
	m.WorstDay = values[0]
	for i := range values {
		if values[i] > 0 {
			m.PositiveDays++
		} else if values[i] < 0 {
			m.NegativeDays++
		}
		if values[i] > m.BestDay {
			m.BestDay = values[i]
		}
		if values[i] < m.WorstDay {
			m.WorstDay = values[i]
		}
	}
	m.DailyWinRate = float64(m.PositiveDays) / float64(len(values))
}

func (a *Analyzer) calculateRiskMetrics(m *Metrics, returns []ReturnPoint) {
	if len(returns) == 0 {
		return
	}
	values := returnValues(returns)
	m.Volatility = gctmath.SampleStandardDeviation(values)
	m.AnnualizedVolatility = m.Volatility * sqrtTradingDays

	var negatives []float64
	for i := range values {
		if values[i] < 0 {
			negatives = append(negatives, values[i])
		}
	}
	m.DownsideVolatility = gctmath.SampleStandardDeviation(negatives)
	m.AnnualizedDownsideVolatility = m.DownsideVolatility * sqrtTradingDays

	m.VaR95 = gctmath.Quantile(values, 0.05)
	m.VaR99 = gctmath.Quantile(values, 0.01)
	m.CVaR95 = conditionalMean(values, m.VaR95)
	m.CVaR99 = conditionalMean(values, m.VaR99)

	m.Skewness = gctmath.SampleSkewness(values)
	m.Kurtosis = gctmath.SampleExcessKurtosis(values)
}

func (a *Analyzer) calculateRiskAdjustedMetrics(m *Metrics, returns []ReturnPoint) {
	if len(returns) == 0 {
		return
	}
	values := returnValues(returns)
	annualizedReturn := gctmath.ArithmeticAverage(values) * tradingDaysPerYear
	annualizedVolatility := gctmath.SampleStandardDeviation(values) * sqrtTradingDays
	excessReturn := annualizedReturn - a.RiskFreeRate

	if annualizedVolatility > 0 {
		m.SharpeRatio = excessReturn / annualizedVolatility
	}
	if m.AnnualizedDownsideVolatility > 0 {
		m.SortinoRatio = excessReturn / m.AnnualizedDownsideVolatility
	}
	if m.MaxDrawdown < 0 {
		m.CalmarRatio = gctmath.CalculateCalmarRatio(m.maxDrawdownPeak, m.maxDrawdownTrough, annualizedReturn)
	}
}

// conditionalMean returns the mean of all values at or below the cutoff,
// 0 when no value qualifies
func conditionalMean(values []float64, cutoff float64) float64 {
	var tail []float64
	for i := range values {
		if values[i] <= cutoff {
			tail = append(tail, values[i])
		}
	}
	return gctmath.ArithmeticAverage(tail)
}

func returnValues(returns []ReturnPoint) []float64 {
	values := make([]float64, len(returns))
	for i := range returns {
		values[i] = returns[i].Return
	}
	return values
}
