package order

import (
	"errors"
	"time"
)

var (
	// ErrInvalidSide is returned when a side is neither buy nor sell
	ErrInvalidSide = errors.New("invalid order side")
	// ErrInvalidType is returned when an order type is neither market nor limit
	ErrInvalidType = errors.New("invalid order type")
	// ErrInvalidQuantity is returned when an order quantity is not positive
	ErrInvalidQuantity = errors.New("order quantity must be greater than zero")
	// ErrLimitPriceRequired is returned when a limit order carries no price
	ErrLimitPriceRequired = errors.New("limit orders require a positive limit price")
)

// Side is the direction of an order
type Side string

// Order sides
const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Type distinguishes how an order is priced on execution
type Type string

// Order types
const (
	Market Type = "market"
	Limit  Type = "limit"
)

// Order is a single instruction from a strategy to trade a symbol.
// It is consumed at most once by the execution simulator and is never
// mutated after a fill
type Order struct {
	ID       string
	Symbol   string
	Side     Side
	Quantity float64
	Type     Type
	// Price is only set for limit orders
	Price float64
	Time  time.Time
}

// Trade is the result of a filled order, appended to the trade ledger
type Trade struct {
	OrderID    string
	Symbol     string
	Side       Side
	Quantity   float64
	Price      float64
	Time       time.Time
	Commission float64
}
