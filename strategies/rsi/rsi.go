package rsi

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
	Name         = "rsi"
	rsiPeriodKey = "rsi-period"
	rsiLowKey    = "rsi-low"
	rsiHighKey   = "rsi-high"
	description  = `The relative strength index charts the current and historical strength or weakness of an instrument based on the closing prices of a recent trading period. This strategy buys oversold readings and sells overbought ones`
)

// Strategy buys when RSI drops to the low threshold and exits when it
// reaches the high threshold
type Strategy struct {
	base.Strategy
	rsiPeriod int
	rsiLow    float64
	rsiHigh   float64
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
	s.rsiPeriod = 14
	s.rsiLow = 30
	s.rsiHigh = 70
}

// SetCustomSettings allows a user to modify the RSI limits in their config
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
		case rsiPeriodKey:
			s.rsiPeriod = int(value)
		case rsiLowKey:
			s.rsiLow = value
		case rsiHighKey:
			s.rsiHigh = value
		default:
			return fmt.Errorf("%w: unrecognised key %v", base.ErrInvalidCustomSettings, k)
		}
	}
	if s.rsiLow >= s.rsiHigh {
		return fmt.Errorf("%w: rsi-low %v must be below rsi-high %v",
			base.ErrInvalidCustomSettings, s.rsiLow, s.rsiHigh)
	}
	return nil
}

// OnTimestep evaluates RSI per symbol against the visible window. An
// oversold reading opens a position of the configured order size when
// flat, an overbought reading closes the whole position
func (s *Strategy) OnTimestep(e *engine.Engine, _ time.Time, visible map[string]*data.Series) error {
	for symbol, series := range visible {
		closes := series.Closes()
		if len(closes) <= s.rsiPeriod {
			continue
		}
		rsi := indicators.RSI(closes, s.rsiPeriod)
		latest := rsi[len(rsi)-1]

		position := e.Portfolio().Position(symbol)
		switch {
		case latest <= s.rsiLow && position == 0:
			if _, err := e.SubmitOrder(symbol, order.Buy, s.OrderSize(), order.Market, 0); err != nil {
				return err
			}
		case latest >= s.rsiHigh && position > 0:
			if _, err := e.SubmitOrder(symbol, order.Sell, position, order.Market, 0); err != nil {
				return err
			}
		}
	}
	return nil
}
