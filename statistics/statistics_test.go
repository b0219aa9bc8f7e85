package statistics

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/quantfarm/backtester/order"
)

func day(n int) time.Time {
	return time.Date(2023, 1, n, 0, 0, 0, 0, time.UTC)
}

func equityCurve(values ...float64) []EquityPoint {
	curve := make([]EquityPoint, len(values))
	for i := range values {
		curve[i] = EquityPoint{Time: day(i + 1), Value: values[i]}
	}
	return curve
}

func stepReturns(curve []EquityPoint) []ReturnPoint {
	returns := make([]ReturnPoint, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		returns = append(returns, ReturnPoint{
			Time:   curve[i].Time,
			Return: curve[i].Value/curve[i-1].Value - 1,
		})
	}
	return returns
}

func TestNewAnalyzer(t *testing.T) {
	t.Parallel()
	if a := NewAnalyzer(0); a.RiskFreeRate != DefaultRiskFreeRate {
		t.Errorf("received %v expected %v", a.RiskFreeRate, DefaultRiskFreeRate)
	}
	if a := NewAnalyzer(0.05); a.RiskFreeRate != 0.05 {
		t.Errorf("received %v expected 0.05", a.RiskFreeRate)
	}
}

func TestCalculateMetricsEmptyInputs(t *testing.T) {
	t.Parallel()
	m := NewAnalyzer(0).CalculateMetrics(nil, nil, nil, nil)
	if m == nil {
		t.Fatal("expected a metrics struct, not nil")
	}
	if m.TradingDays != 0 || m.SharpeRatio != 0 || m.TotalTrades != 0 {
		t.Error("expected zero valued metrics on empty inputs")
	}
}

func TestBasicAndReturnMetrics(t *testing.T) {
	t.Parallel()
	curve := equityCurve(100, 110, 99, 108.9)
	m := NewAnalyzer(0).CalculateMetrics(curve, stepReturns(curve), nil, nil)

	if m.TradingDays != 4 || m.StartValue != 100 || m.EndValue != 108.9 {
		t.Errorf("unexpected basic stats %+v", m)
	}
	if math.Abs(m.NetProfit-8.9) > 1e-9 {
		t.Errorf("received %v expected 8.9", m.NetProfit)
	}
	if math.Abs(m.TotalReturn-0.089) > 1e-9 {
		t.Errorf("received %v expected 0.089", m.TotalReturn)
	}
	if m.PositiveDays != 2 || m.NegativeDays != 1 {
		t.Errorf("received %v/%v expected 2/1", m.PositiveDays, m.NegativeDays)
	}
	if math.Abs(m.BestDay-0.1) > 1e-9 {
		t.Errorf("received %v expected 0.1", m.BestDay)
	}
	if math.Abs(m.WorstDay-(-0.1)) > 1e-9 {
		t.Errorf("received %v expected -0.1", m.WorstDay)
	}
	if math.Abs(m.DailyWinRate-2.0/3) > 1e-9 {
		t.Errorf("received %v expected %v", m.DailyWinRate, 2.0/3)
	}
	if m.AnnualizedReturn <= m.TotalReturn {
		t.Errorf("expected annualisation to amplify a 4 day gain, received %v", m.AnnualizedReturn)
	}
}

func TestDrawdownMetrics(t *testing.T) {
	t.Parallel()
	// peak 110 on day 2, trough 99 on day 3, recovery on day 5
	curve := equityCurve(100, 110, 99, 104.5, 110, 120)
	m := NewAnalyzer(0).CalculateMetrics(curve, stepReturns(curve), nil, nil)

	if math.Abs(m.MaxDrawdown-(-0.1)) > 1e-9 {
		t.Errorf("received %v expected -0.1", m.MaxDrawdown)
	}
	if !m.MaxDrawdownDate.Equal(day(3)) {
		t.Errorf("received %v expected %v", m.MaxDrawdownDate, day(3))
	}
	if m.CurrentDrawdown != 0 {
		t.Errorf("received %v expected 0 at a fresh peak", m.CurrentDrawdown)
	}
	if m.DrawdownPeriods != 1 {
		t.Fatalf("received %v periods expected 1", m.DrawdownPeriods)
	}
	period := m.Drawdowns[0]
	if !period.Start.Equal(day(3)) || !period.End.Equal(day(5)) || period.DurationDays != 2 {
		t.Errorf("unexpected period %+v", period)
	}
	if m.MaxDrawdownDuration != 2 || m.AvgDrawdownDuration != 2 {
		t.Errorf("received max %v avg %v expected 2", m.MaxDrawdownDuration, m.AvgDrawdownDuration)
	}
}

func TestDrawdownOpenRunNotCounted(t *testing.T) {
	t.Parallel()
	curve := equityCurve(100, 90)
	m := NewAnalyzer(0).CalculateMetrics(curve, stepReturns(curve), nil, nil)

	if math.Abs(m.MaxDrawdown-(-0.1)) > 1e-9 {
		t.Errorf("received %v expected -0.1", m.MaxDrawdown)
	}
	if math.Abs(m.CurrentDrawdown-(-0.1)) > 1e-9 {
		t.Errorf("received %v expected -0.1", m.CurrentDrawdown)
	}
	// still underwater at the end, no completed period
	if m.DrawdownPeriods != 0 {
		t.Errorf("received %v periods expected 0", m.DrawdownPeriods)
	}
}

func TestVaRAndCVaR(t *testing.T) {
	t.Parallel()
	returns := []ReturnPoint{
		{Time: day(1), Return: -0.02},
		{Time: day(2), Return: -0.01},
		{Time: day(3), Return: 0},
		{Time: day(4), Return: 0.01},
		{Time: day(5), Return: 0.02},
	}
	m := NewAnalyzer(0).CalculateMetrics(nil, returns, nil, nil)
	if math.Abs(m.VaR95-(-0.018)) > 1e-9 {
		t.Errorf("received %v expected -0.018", m.VaR95)
	}
	// only the worst day sits at or below the 5% quantile
	if math.Abs(m.CVaR95-(-0.02)) > 1e-9 {
		t.Errorf("received %v expected -0.02", m.CVaR95)
	}
}

func TestRiskAdjustedZeroDenominators(t *testing.T) {
	t.Parallel()
	returns := []ReturnPoint{
		{Time: day(1), Return: 0},
		{Time: day(2), Return: 0},
		{Time: day(3), Return: 0},
	}
	m := NewAnalyzer(0.03).CalculateMetrics(nil, returns, nil, nil)
	if m.SharpeRatio != 0 || m.SortinoRatio != 0 || m.CalmarRatio != 0 {
		t.Errorf("expected zero ratios on zero variance, received %+v", m)
	}
}

func TestTradeStats(t *testing.T) {
	t.Parallel()
	trades := []order.Trade{
		{Symbol: "AAPL", Side: order.Buy, Quantity: 100, Price: 10.0010, Time: day(1), Commission: 0.30},
		{Symbol: "AAPL", Side: order.Sell, Quantity: 100, Price: 11.9988, Time: day(3), Commission: 0.36},
	}
	m := NewAnalyzer(0).CalculateMetrics(nil, nil, trades, nil)

	if m.TotalTrades != 2 || m.BuyTrades != 1 || m.SellTrades != 1 {
		t.Errorf("unexpected trade counts %+v", m)
	}
	if m.CompletedTrades != 1 || m.WinningTrades != 1 || m.LosingTrades != 0 {
		t.Errorf("unexpected round trip counts %+v", m)
	}
	// 100 * (11.9988 - 10.0010) - 0.36
	if math.Abs(m.BestTrade-199.42) > 1e-9 {
		t.Errorf("received %v expected 199.42", m.BestTrade)
	}
	if m.WinRate != 1 {
		t.Errorf("received %v expected 1", m.WinRate)
	}
	if !math.IsInf(m.ProfitFactor, 1) {
		t.Errorf("received %v expected +Inf with no losses", m.ProfitFactor)
	}
	if math.Abs(m.TotalCommission-0.66) > 1e-9 {
		t.Errorf("received %v expected 0.66", m.TotalCommission)
	}
}

func TestTradeStatsPartialExits(t *testing.T) {
	t.Parallel()
	trades := []order.Trade{
		{Symbol: "AAPL", Side: order.Buy, Quantity: 100, Price: 10, Time: day(1)},
		{Symbol: "AAPL", Side: order.Buy, Quantity: 100, Price: 20, Time: day(2)},
		// two exits against a 15 average cost, one winner one loser
		{Symbol: "AAPL", Side: order.Sell, Quantity: 100, Price: 18, Time: day(3)},
		{Symbol: "AAPL", Side: order.Sell, Quantity: 100, Price: 13, Time: day(4)},
		// a sell with nothing accumulated is not a round trip
		{Symbol: "MSFT", Side: order.Sell, Quantity: 10, Price: 50, Time: day(5)},
	}
	m := NewAnalyzer(0).CalculateMetrics(nil, nil, trades, nil)

	if m.CompletedTrades != 2 {
		t.Fatalf("received %v round trips expected 2", m.CompletedTrades)
	}
	if m.WinningTrades != 1 || m.LosingTrades != 1 {
		t.Errorf("received %v/%v expected 1/1", m.WinningTrades, m.LosingTrades)
	}
	if math.Abs(m.AvgWin-300) > 1e-9 {
		t.Errorf("received %v expected 300", m.AvgWin)
	}
	if math.Abs(m.AvgLoss-(-200)) > 1e-9 {
		t.Errorf("received %v expected -200", m.AvgLoss)
	}
	if math.Abs(m.ProfitFactor-1.5) > 1e-9 {
		t.Errorf("received %v expected 1.5", m.ProfitFactor)
	}
}

func TestBenchmarkMetrics(t *testing.T) {
	t.Parallel()
	returns := []ReturnPoint{
		{Time: day(1), Return: 0.01},
		{Time: day(2), Return: -0.02},
		{Time: day(3), Return: 0.015},
		{Time: day(4), Return: 0.005},
	}
	// a benchmark identical to the strategy tracks it perfectly
	m := NewAnalyzer(0).CalculateMetrics(nil, returns, nil, returns)
	if !m.HasBenchmark {
		t.Fatal("expected benchmark metrics to be calculated")
	}
	if math.Abs(m.Beta-1) > 1e-9 {
		t.Errorf("received beta %v expected 1", m.Beta)
	}
	if math.Abs(m.Correlation-1) > 1e-9 {
		t.Errorf("received correlation %v expected 1", m.Correlation)
	}
	if m.TrackingError != 0 || m.InformationRatio != 0 {
		t.Errorf("received te %v ir %v expected 0", m.TrackingError, m.InformationRatio)
	}
	if math.Abs(m.Alpha) > 1e-9 {
		t.Errorf("received alpha %v expected 0", m.Alpha)
	}
}

func TestBenchmarkMetricsNoOverlap(t *testing.T) {
	t.Parallel()
	returns := []ReturnPoint{{Time: day(1), Return: 0.01}}
	benchmark := []ReturnPoint{{Time: day(2), Return: 0.01}}
	m := NewAnalyzer(0).CalculateMetrics(nil, returns, nil, benchmark)
	if m.HasBenchmark {
		t.Error("expected no benchmark metrics without overlapping timestamps")
	}
}

func TestReport(t *testing.T) {
	t.Parallel()
	curve := equityCurve(100, 110, 99, 108.9)
	trades := []order.Trade{
		{Symbol: "AAPL", Side: order.Buy, Quantity: 100, Price: 10, Time: day(1), Commission: 0.3},
		{Symbol: "AAPL", Side: order.Sell, Quantity: 100, Price: 12, Time: day(2), Commission: 0.36},
	}
	m := NewAnalyzer(0).CalculateMetrics(curve, stepReturns(curve), trades, nil)

	report := m.Report()
	for _, want := range []string{
		"Backtest Performance Report",
		"Total return: 8.90%",
		"Max drawdown: -10.00%",
		"Total trades: 2",
		"Profit factor: inf",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	flat := m.Flat()
	if flat["total_trades"] != 2 {
		t.Errorf("received %v expected 2", flat["total_trades"])
	}
	if _, ok := flat["alpha"]; ok {
		t.Error("expected no benchmark keys without a benchmark")
	}
}
