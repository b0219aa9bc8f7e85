package statistics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const reportRule = "============================================================"

// Report renders the metrics as a human readable text block
func (m *Metrics) Report() string {
	var b strings.Builder
	b.WriteString(reportRule + "\n")
	b.WriteString("                 Backtest Performance Report\n")
	b.WriteString(reportRule + "\n")

	if !m.StartDate.IsZero() {
		fmt.Fprintf(&b, "\nPeriod: %s to %s\n", m.StartDate.Format("2006-01-02"), m.EndDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "Trading days: %d\n", m.TradingDays)
	}

	b.WriteString("\nReturns:\n")
	fmt.Fprintf(&b, "Total return: %.2f%%\n", m.TotalReturn*100)
	fmt.Fprintf(&b, "Annualized return: %.2f%%\n", m.AnnualizedReturn*100)
	fmt.Fprintf(&b, "Daily win rate: %.2f%%\n", m.DailyWinRate*100)

	b.WriteString("\nRisk:\n")
	fmt.Fprintf(&b, "Annualized volatility: %.2f%%\n", m.AnnualizedVolatility*100)
	fmt.Fprintf(&b, "Max drawdown: %.2f%%\n", m.MaxDrawdown*100)
	fmt.Fprintf(&b, "Sharpe ratio: %.2f\n", m.SharpeRatio)
	fmt.Fprintf(&b, "Sortino ratio: %.2f\n", m.SortinoRatio)

	if m.TotalTrades > 0 {
		b.WriteString("\nTrades:\n")
		fmt.Fprintf(&b, "Total trades: %d\n", m.TotalTrades)
		fmt.Fprintf(&b, "Completed round trips: %d\n", m.CompletedTrades)
		if m.CompletedTrades > 0 {
			fmt.Fprintf(&b, "Winning trades: %d\n", m.WinningTrades)
			fmt.Fprintf(&b, "Losing trades: %d\n", m.LosingTrades)
			fmt.Fprintf(&b, "Win rate: %.2f%%\n", m.WinRate*100)
			fmt.Fprintf(&b, "Average win: %.2f\n", m.AvgWin)
			fmt.Fprintf(&b, "Average loss: %.2f\n", m.AvgLoss)
			if math.IsInf(m.ProfitFactor, 1) {
				b.WriteString("Profit factor: inf\n")
			} else {
				fmt.Fprintf(&b, "Profit factor: %.2f\n", m.ProfitFactor)
			}
		}
		fmt.Fprintf(&b, "Total commission: %.2f\n", m.TotalCommission)
	}

	if m.HasBenchmark {
		b.WriteString("\nBenchmark:\n")
		fmt.Fprintf(&b, "Alpha: %.4f\n", m.Alpha)
		fmt.Fprintf(&b, "Beta: %.4f\n", m.Beta)
		fmt.Fprintf(&b, "Correlation: %.4f\n", m.Correlation)
		fmt.Fprintf(&b, "Information ratio: %.4f\n", m.InformationRatio)
	}

	b.WriteString("\n" + reportRule + "\n")
	return b.String()
}

// Flat returns the report as a flat key to value map, the schema shared
// with dashboard and visualisation collaborators
func (m *Metrics) Flat() map[string]interface{} {
	flat := map[string]interface{}{
		"trading_days":                   m.TradingDays,
		"start_value":                    m.StartValue,
		"end_value":                      m.EndValue,
		"net_profit":                     m.NetProfit,
		"total_return":                   m.TotalReturn,
		"annualized_return":              m.AnnualizedReturn,
		"avg_daily_return":               m.AvgDailyReturn,
		"positive_days":                  m.PositiveDays,
		"negative_days":                  m.NegativeDays,
		"daily_win_rate":                 m.DailyWinRate,
		"best_day":                       m.BestDay,
		"worst_day":                      m.WorstDay,
		"volatility":                     m.Volatility,
		"annualized_volatility":          m.AnnualizedVolatility,
		"downside_volatility":            m.DownsideVolatility,
		"annualized_downside_volatility": m.AnnualizedDownsideVolatility,
		"var_95":                         m.VaR95,
		"var_99":                         m.VaR99,
		"cvar_95":                        m.CVaR95,
		"cvar_99":                        m.CVaR99,
		"skewness":                       m.Skewness,
		"kurtosis":                       m.Kurtosis,
		"max_drawdown":                   m.MaxDrawdown,
		"avg_drawdown_duration":          m.AvgDrawdownDuration,
		"max_drawdown_duration":          m.MaxDrawdownDuration,
		"drawdown_periods":               m.DrawdownPeriods,
		"current_drawdown":               m.CurrentDrawdown,
		"total_trades":                   m.TotalTrades,
		"buy_trades":                     m.BuyTrades,
		"sell_trades":                    m.SellTrades,
		"completed_trades":               m.CompletedTrades,
		"winning_trades":                 m.WinningTrades,
		"losing_trades":                  m.LosingTrades,
		"win_rate":                       m.WinRate,
		"avg_win":                        m.AvgWin,
		"avg_loss":                       m.AvgLoss,
		"best_trade":                     m.BestTrade,
		"worst_trade":                    m.WorstTrade,
		"profit_factor":                  m.ProfitFactor,
		"total_commission":               m.TotalCommission,
		"avg_trade":                      m.AvgTrade,
		"sharpe_ratio":                   m.SharpeRatio,
		"sortino_ratio":                  m.SortinoRatio,
		"calmar_ratio":                   m.CalmarRatio,
	}
	if !m.StartDate.IsZero() {
		flat["start_date"] = m.StartDate.Format(time.RFC3339)
		flat["end_date"] = m.EndDate.Format(time.RFC3339)
		flat["max_drawdown_date"] = m.MaxDrawdownDate.Format(time.RFC3339)
	}
	if m.HasBenchmark {
		flat["alpha"] = m.Alpha
		flat["beta"] = m.Beta
		flat["correlation"] = m.Correlation
		flat["tracking_error"] = m.TrackingError
		flat["information_ratio"] = m.InformationRatio
		flat["avg_excess_return"] = m.AvgExcessReturn
	}
	return flat
}
