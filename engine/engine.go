package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/quantfarm/backtester/data"
	"github.com/quantfarm/backtester/exchange"
	"github.com/quantfarm/backtester/order"
	"github.com/quantfarm/backtester/portfolio"
	"github.com/quantfarm/backtester/statistics"
	"go.uber.org/zap"
)

// New creates an engine from run settings. The portfolio is funded with
// the configured initial capital and the execution simulator inherits
// the commission and slippage rates
func New(settings Settings, logger *zap.SugaredLogger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	pf, err := portfolio.New(settings.InitialCapital)
	if err != nil {
		return nil, err
	}
	return &Engine{
		settings: settings,
		store:    data.NewStore(),
		pf:       pf,
		exch:     exchange.New(settings.CommissionRate, settings.SlippageRate, logger),
		status:   Initialized,
		prices:   make(map[string]float64),
		log:      logger,
	}, nil
}

// AddData registers a price series, restricted to the configured date
// range. Multiple symbols may be added, the replay loop walks the union
// of their timestamps
func (e *Engine) AddData(series *data.Series) error {
	if series == nil || series.Len() == 0 {
		return data.ErrNoCandleData
	}
	bounded := series.Truncate(e.settings.StartDate, e.settings.EndDate)
	if bounded.Len() == 0 {
		return fmt.Errorf("%w: %v within configured date range", data.ErrNoCandleData, series.Symbol())
	}
	return e.store.Add(bounded)
}

// SetStrategy installs the per-timestep strategy callback
func (e *Engine) SetStrategy(fn StrategyFunc) {
	e.strategy = fn
}

// SetBenchmark installs a benchmark return series compared against the
// strategy returns in the final report
func (e *Engine) SetBenchmark(returns []statistics.ReturnPoint) {
	e.benchmark = returns
}

// SetBenchmarkData derives close-to-close returns from a candle series,
// restricted to the configured date range, and installs them as the
// benchmark
func (e *Engine) SetBenchmarkData(series *data.Series) error {
	if series == nil || series.Len() == 0 {
		return data.ErrNoCandleData
	}
	bars := series.Truncate(e.settings.StartDate, e.settings.EndDate).Bars()
	if len(bars) < 2 {
		return fmt.Errorf("%w: benchmark %v needs at least two bars within the date range",
			data.ErrNoCandleData, series.Symbol())
	}
	returns := make([]statistics.ReturnPoint, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close == 0 {
			continue
		}
		returns = append(returns, statistics.ReturnPoint{
			Time:   bars[i].Time,
			Return: bars[i].Close/bars[i-1].Close - 1,
		})
	}
	e.benchmark = returns
	return nil
}

// SubmitOrder creates and synchronously executes an order at the
// current timestep. Market orders fill at the current close adjusted
// for slippage, limit orders fill at their limit price. The order id is
// returned together with any execution error, a rejected order leaves
// the portfolio untouched
func (e *Engine) SubmitOrder(symbol string, side order.Side, quantity float64, orderType order.Type, price float64) (string, error) {
	if e.status != Running {
		return "", ErrNotRunning
	}
	id, err := order.NewID()
	if err != nil {
		return "", err
	}
	o := &order.Order{
		ID:       id,
		Symbol:   symbol,
		Side:     side,
		Quantity: quantity,
		Type:     orderType,
		Price:    price,
		Time:     e.currentTime,
	}
	currentPrice := e.prices[symbol]
	trade, err := e.exch.ExecuteOrder(o, currentPrice, e.pf)
	if err != nil {
		return o.ID, err
	}
	e.trades = append(e.trades, *trade)
	return o.ID, nil
}

// CurrentPrice returns the close of the most recent bar at or before
// the current timestep
func (e *Engine) CurrentPrice(symbol string) (float64, bool) {
	price, ok := e.prices[symbol]
	return price, ok
}

// Portfolio exposes the ledger for strategy state queries
func (e *Engine) Portfolio() *portfolio.Portfolio {
	return e.pf
}

// CurrentTime returns the timestep being replayed
func (e *Engine) CurrentTime() time.Time {
	return e.currentTime
}

// Status returns the engine lifecycle state
func (e *Engine) Status() Status {
	return e.status
}

// Run replays every timestep in order through the strategy and returns
// the assembled results. The context is checked between timesteps so a
// cancellation stops the replay at a timestep boundary
func (e *Engine) Run(ctx context.Context) (*Results, error) {
	switch {
	case e.status == Completed:
		return nil, ErrAlreadyRun
	case e.store.Len() == 0:
		return nil, ErrNoData
	case e.strategy == nil:
		return nil, ErrNoStrategy
	}

	// each run starts from a clean ledger so an aborted run leaves no
	// residue behind for the next one
	e.pf.Reset()
	e.prices = make(map[string]float64)
	e.equity = nil
	e.returns = nil
	e.trades = nil

	timestamps := e.store.Timestamps()
	symbols := e.store.Symbols()
	e.status = Running
	e.log.Infof("backtest started: %v symbols, %v timesteps, commission %v, slippage %v",
		len(symbols), len(timestamps), e.exch.CommissionRate(), e.exch.SlippageRate())

	var previousValue float64
	for i, t := range timestamps {
		select {
		case <-ctx.Done():
			e.status = Initialized
			return nil, ctx.Err()
		default:
		}
		e.currentTime = t
		e.updatePrices(symbols, t)

		visible := e.visibleData(symbols, t)
		e.step(t, visible)

		value := e.pf.TotalValue(e.prices)
		e.equity = append(e.equity, statistics.EquityPoint{Time: t, Value: value})
		if i > 0 && previousValue != 0 {
			e.returns = append(e.returns, statistics.ReturnPoint{Time: t, Return: value/previousValue - 1})
		}
		previousValue = value
		e.pf.SaveSnapshot(e.prices, t)

		if (i+1)%100 == 0 {
			e.log.Debugf("replayed %v/%v timesteps", i+1, len(timestamps))
		}
	}

	e.status = Completed
	e.log.Infof("backtest completed: %v trades, final value %.2f", len(e.trades), e.pf.TotalValue(e.prices))

	analyzer := statistics.NewAnalyzer(e.settings.RiskFreeRate)
	return &Results{
		EquityCurve: e.equity,
		Returns:     e.returns,
		Trades:      e.trades,
		Metrics:     analyzer.CalculateMetrics(e.equity, e.returns, e.trades, e.benchmark),
		Portfolio:   e.pf.Summary(e.prices),
	}, nil
}

// updatePrices refreshes the close price cache for symbols that have a
// bar at t. Symbols without a bar keep their last known close
func (e *Engine) updatePrices(symbols []string, t time.Time) {
	for _, symbol := range symbols {
		series, err := e.store.Get(symbol)
		if err != nil {
			continue
		}
		if bar, ok := series.At(t); ok {
			e.prices[symbol] = bar.Close
		}
	}
}

// visibleData builds the no-lookahead view handed to the strategy,
// every bar at or before t per symbol. Symbols with no visible bars yet
// are omitted
func (e *Engine) visibleData(symbols []string, t time.Time) map[string]*data.Series {
	visible := make(map[string]*data.Series, len(symbols))
	for _, symbol := range symbols {
		series, err := e.store.Get(symbol)
		if err != nil {
			continue
		}
		if window := series.Window(t); window != nil {
			visible[symbol] = window
		}
	}
	return visible
}

// step invokes the strategy for one timestep. Strategy errors and
// panics are contained here so a single bad timestep never aborts the
// replay
func (e *Engine) step(t time.Time, visible map[string]*data.Series) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("strategy panic at %v: %v", t, r)
		}
	}()
	if err := e.strategy(e, t, visible); err != nil {
		e.log.Warnf("strategy error at %v: %v", t, err)
	}
}
