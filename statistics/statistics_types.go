package statistics

import (
	"math"
	"time"
)

// DefaultRiskFreeRate is the annual risk free rate applied when none is configured
const DefaultRiskFreeRate = 0.03

// tradingDaysPerYear is the annualisation base for daily series
const tradingDaysPerYear = 252.0

var sqrtTradingDays = math.Sqrt(tradingDaysPerYear)

// Analyzer calculates the post-run metrics report. It is stateless
// between calls, a pure function of its inputs
type Analyzer struct {
	RiskFreeRate float64
}

// EquityPoint is one entry of the recorded equity curve
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// ReturnPoint is one entry of a timestamped return series
type ReturnPoint struct {
	Time   time.Time
	Return float64
}

// DrawdownPeriod is a maximal contiguous run where drawdown stayed below
// zero, closed out by a recovery to the previous peak
type DrawdownPeriod struct {
	Start        time.Time
	End          time.Time
	DurationDays int
	MaxDrawdown  float64
}

// Metrics is the full post-run report. It is the stable outbound
// contract consumed by reporting and dashboard collaborators
type Metrics struct {
	// basic statistics
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TradingDays int       `json:"trading_days"`
	StartValue  float64   `json:"start_value"`
	EndValue    float64   `json:"end_value"`
	NetProfit   float64   `json:"net_profit"`

	// return metrics
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	AvgDailyReturn   float64 `json:"avg_daily_return"`
	PositiveDays     int     `json:"positive_days"`
	NegativeDays     int     `json:"negative_days"`
	DailyWinRate     float64 `json:"daily_win_rate"`
	BestDay          float64 `json:"best_day"`
	WorstDay         float64 `json:"worst_day"`

	// risk metrics
	Volatility                   float64 `json:"volatility"`
	AnnualizedVolatility         float64 `json:"annualized_volatility"`
	DownsideVolatility           float64 `json:"downside_volatility"`
	AnnualizedDownsideVolatility float64 `json:"annualized_downside_volatility"`
	VaR95                        float64 `json:"var_95"`
	VaR99                        float64 `json:"var_99"`
	CVaR95                       float64 `json:"cvar_95"`
	CVaR99                       float64 `json:"cvar_99"`
	Skewness                     float64 `json:"skewness"`
	Kurtosis                     float64 `json:"kurtosis"`

	// drawdown metrics
	MaxDrawdown         float64          `json:"max_drawdown"`
	MaxDrawdownDate     time.Time        `json:"max_drawdown_date"`
	AvgDrawdownDuration float64          `json:"avg_drawdown_duration"`
	MaxDrawdownDuration int              `json:"max_drawdown_duration"`
	DrawdownPeriods     int              `json:"drawdown_periods"`
	CurrentDrawdown     float64          `json:"current_drawdown"`
	Drawdowns           []DrawdownPeriod `json:"-"`

	// trade statistics
	TotalTrades     int     `json:"total_trades"`
	BuyTrades       int     `json:"buy_trades"`
	SellTrades      int     `json:"sell_trades"`
	CompletedTrades int     `json:"completed_trades"`
	WinningTrades   int     `json:"winning_trades"`
	LosingTrades    int     `json:"losing_trades"`
	WinRate         float64 `json:"win_rate"`
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"`
	BestTrade       float64 `json:"best_trade"`
	WorstTrade      float64 `json:"worst_trade"`
	ProfitFactor    float64 `json:"profit_factor"`
	TotalCommission float64 `json:"total_commission"`
	AvgTrade        float64 `json:"avg_trade"`

	// risk adjusted ratios
	SharpeRatio  float64 `json:"sharpe_ratio"`
	SortinoRatio float64 `json:"sortino_ratio"`
	CalmarRatio  float64 `json:"calmar_ratio"`

	// benchmark relative metrics, only set when a benchmark is supplied
	HasBenchmark     bool    `json:"-"`
	Alpha            float64 `json:"alpha"`
	Beta             float64 `json:"beta"`
	Correlation      float64 `json:"correlation"`
	TrackingError    float64 `json:"tracking_error"`
	InformationRatio float64 `json:"information_ratio"`
	AvgExcessReturn  float64 `json:"avg_excess_return"`

	// equity values at the deepest peak-to-trough swing, retained for
	// the calmar calculation
	maxDrawdownPeak   float64
	maxDrawdownTrough float64
}
