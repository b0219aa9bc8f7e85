package smacross

import (
	"fmt"
	"time"

	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/quantfarm/backtester/data"
	"github.com/quantfarm/backtester/engine"
	"github.com/quantfarm/backtester/order"
	"github.com/quantfarm/backtester/strategies/base"
)

const (
	// Name is the strategy name
	Name          = "smacross"
	fastPeriodKey = "fast-period"
	slowPeriodKey = "slow-period"
	description   = `A moving average crossover strategy. It buys when the fast simple moving average crosses above the slow one and exits when the fast average crosses back below`
)

// Strategy trades golden and death crosses of two simple moving averages
type Strategy struct {
	base.Strategy
	fastPeriod int
	slowPeriod int
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.Strategy.SetDefaults()
	s.fastPeriod = 10
	s.slowPeriod = 30
}

// SetCustomSettings allows a user to modify the moving average periods
// in their config
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	remaining, err := s.Strategy.SetCustomSettings(customSettings)
	if err != nil {
		return err
	}
	for k, v := range remaining {
		value, err := base.ParseFloat(k, v)
		if err != nil {
			return err
		}
		switch k {
		case fastPeriodKey:
			s.fastPeriod = int(value)
		case slowPeriodKey:
			s.slowPeriod = int(value)
		default:
			return fmt.Errorf("%w: unrecognised key %v", base.ErrInvalidCustomSettings, k)
		}
	}
	if s.fastPeriod >= s.slowPeriod {
		return fmt.Errorf("%w: fast period %v must be shorter than slow period %v",
			base.ErrInvalidCustomSettings, s.fastPeriod, s.slowPeriod)
	}
	return nil
}

// OnTimestep evaluates the crossover per symbol against the visible
// window. A golden cross opens a position of the configured order size
// when flat, a death cross closes the whole position
func (s *Strategy) OnTimestep(e *engine.Engine, _ time.Time, visible map[string]*data.Series) error {
	for symbol, series := range visible {
		closes := series.Closes()
		if len(closes) <= s.slowPeriod {
			continue
		}
		fast := indicators.SMA(closes, s.fastPeriod)
		slow := indicators.SMA(closes, s.slowPeriod)
		last := len(closes) - 1

		position := e.Portfolio().Position(symbol)
		switch {
		case crossedAbove(fast, slow, last) && position == 0:
			if _, err := e.SubmitOrder(symbol, order.Buy, s.OrderSize(), order.Market, 0); err != nil {
				return err
			}
		case crossedBelow(fast, slow, last) && position > 0:
			if _, err := e.SubmitOrder(symbol, order.Sell, position, order.Market, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func crossedAbove(fast, slow []float64, i int) bool {
	return fast[i] > slow[i] && fast[i-1] <= slow[i-1]
}

func crossedBelow(fast, slow []float64, i int) bool {
	return fast[i] < slow[i] && fast[i-1] >= slow[i-1]
}
