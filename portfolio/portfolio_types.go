package portfolio

import (
	"errors"
	"time"
)

var (
	// ErrInsufficientFunds is returned when a buy would push cash negative
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientPosition is returned when a sell exceeds the held quantity
	ErrInsufficientPosition = errors.New("insufficient position")
	// ErrNoInitialCapital is returned when a portfolio is created without capital
	ErrNoInitialCapital = errors.New("initial capital must be greater than zero")
)

// Portfolio is the cash and position ledger for a single backtest run.
// It is pure state, it knows nothing about time ordering or execution
// and performs no I/O. One run owns exactly one instance
type Portfolio struct {
	initialCapital  float64
	cash            float64
	positions       map[string]float64
	avgPrices       map[string]float64
	totalCommission float64
	history         []Snapshot
}

// PositionDetail describes one open position valued at a current price
type PositionDetail struct {
	Symbol        string
	Quantity      float64
	AvgPrice      float64
	MarketValue   float64
	CostBasis     float64
	UnrealizedPnL float64
}

// Snapshot is an immutable record of the portfolio at one timestep
type Snapshot struct {
	Time       time.Time
	TotalValue float64
	Cash       float64
	Positions  map[string]float64
	AvgPrices  map[string]float64
}

// Summary is the final portfolio state reported in the result bundle
type Summary struct {
	InitialCapital  float64
	CurrentValue    float64
	Cash            float64
	MarketValue     float64
	TotalReturn     float64
	TotalPnL        float64
	CashUtilization float64
	TotalCommission float64
	PositionCount   int
}
