package engine

import (
	"errors"
	"time"

	"github.com/quantfarm/backtester/data"
	"github.com/quantfarm/backtester/exchange"
	"github.com/quantfarm/backtester/order"
	"github.com/quantfarm/backtester/portfolio"
	"github.com/quantfarm/backtester/statistics"
	"go.uber.org/zap"
)

var (
	// ErrNoData is returned when Run is called without any price series loaded
	ErrNoData = errors.New("no data loaded")
	// ErrNoStrategy is returned when Run is called without a strategy set
	ErrNoStrategy = errors.New("no strategy set")
	// ErrAlreadyRun is returned when Run is called on a completed engine
	ErrAlreadyRun = errors.New("backtest has already run")
	// ErrNotRunning is returned when an order is submitted outside a run
	ErrNotRunning = errors.New("engine is not running")
)

// Status is the lifecycle state of a backtest run
type Status int32

// Engine lifecycle states
const (
	Initialized Status = iota
	Running
	Completed
)

// String implements the stringer interface
func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Settings is the run configuration of a backtest
type Settings struct {
	InitialCapital float64
	CommissionRate float64
	SlippageRate   float64
	RiskFreeRate   float64
	StartDate      time.Time
	EndDate        time.Time
}

// StrategyFunc is the per-timestep strategy callback. It receives the
// engine for order submission and state queries, the current timestep
// and the data visible at that timestep, nothing later. A returned
// error is logged and the run continues with the next timestep
type StrategyFunc func(e *Engine, t time.Time, visible map[string]*data.Series) error

// Results is everything a completed run produces
type Results struct {
	EquityCurve []statistics.EquityPoint
	Returns     []statistics.ReturnPoint
	Trades      []order.Trade
	Metrics     *statistics.Metrics
	Portfolio   portfolio.Summary
}

// Engine replays historical data through a strategy, routing its orders
// through the execution simulator into the portfolio ledger. It is not
// safe for concurrent use, a run owns the engine until it completes
type Engine struct {
	settings  Settings
	store     *data.Store
	pf        *portfolio.Portfolio
	exch      *exchange.Simulator
	strategy  StrategyFunc
	benchmark []statistics.ReturnPoint

	status      Status
	currentTime time.Time
	prices      map[string]float64
	equity      []statistics.EquityPoint
	returns     []statistics.ReturnPoint
	trades      []order.Trade

	log *zap.SugaredLogger
}
