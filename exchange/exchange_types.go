package exchange

import (
	"errors"

	"go.uber.org/zap"
)

// ErrNoCurrentPrice is returned when an order arrives for a symbol with
// no price observed at the current timestep
var ErrNoCurrentPrice = errors.New("no current price for symbol")

// Simulator converts one submitted order plus the current price of its
// symbol into at most one trade, applying slippage and commission. A
// rejected order performs no mutation anywhere
type Simulator struct {
	commissionRate float64
	slippageRate   float64
	log            *zap.SugaredLogger
}
