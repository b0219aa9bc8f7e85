package exchange

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/quantfarm/backtester/order"
	"github.com/quantfarm/backtester/portfolio"
)

// New creates an execution simulator with flat commission and slippage rates
func New(commissionRate, slippageRate float64, logger *zap.SugaredLogger) *Simulator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Simulator{
		commissionRate: commissionRate,
		slippageRate:   slippageRate,
		log:            logger,
	}
}

// ExecuteOrder fills an order against the current close price of its
// symbol and applies the fill to the portfolio. Market orders fill
// unconditionally within the submitting timestep at a slippage adjusted
// price. Limit orders fill at their exact limit price without checking
// the bar's high/low range ever reached it, preserving the behaviour of
// a bar-level simulation
func (s *Simulator) ExecuteOrder(o *order.Order, currentPrice float64, pf *portfolio.Portfolio) (*order.Trade, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if currentPrice <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoCurrentPrice, o.Symbol)
	}

	var fillPrice float64
	switch o.Type {
	case order.Market:
		fillPrice = s.applySlippage(o.Side, currentPrice)
	case order.Limit:
		fillPrice = o.Price
	}
	commission := o.Quantity * fillPrice * s.commissionRate

	signedQuantity := o.Quantity
	if o.Side == order.Sell {
		signedQuantity = -o.Quantity
	}
	if err := pf.UpdatePosition(o.Symbol, signedQuantity, fillPrice, commission); err != nil {
		s.log.Warnf("order %v rejected: %v", o.ID, err)
		return nil, err
	}

	trade := &order.Trade{
		OrderID:    o.ID,
		Symbol:     o.Symbol,
		Side:       o.Side,
		Quantity:   o.Quantity,
		Price:      fillPrice,
		Time:       o.Time,
		Commission: commission,
	}
	s.log.Infof("order executed: %v %v %v %v @ %.4f", o.ID, o.Symbol, o.Side, o.Quantity, fillPrice)
	return trade, nil
}

// applySlippage adjusts a market fill adversely to the order direction
func (s *Simulator) applySlippage(side order.Side, price float64) float64 {
	if side == order.Buy {
		return price * (1 + s.slippageRate)
	}
	return price * (1 - s.slippageRate)
}

// CommissionRate returns the configured flat commission rate
func (s *Simulator) CommissionRate() float64 {
	return s.commissionRate
}

// SlippageRate returns the configured slippage rate
func (s *Simulator) SlippageRate() float64 {
	return s.slippageRate
}
