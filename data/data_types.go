package data

import (
	"errors"
	"time"
)

var (
	// ErrMissingColumn is returned when a data source lacks a required OHLCV column
	ErrMissingColumn = errors.New("data missing required column")
	// ErrNoCandleData is returned when a series is created without any bars
	ErrNoCandleData = errors.New("no candle data provided")
	// ErrSymbolNotFound is returned when the store holds no series for a symbol
	ErrSymbolNotFound = errors.New("no data registered for symbol")
)

// requiredColumns must all be present in any loaded data source
var requiredColumns = []string{"open", "high", "low", "close", "volume"}

// Bar is a single OHLCV candle. Bars are immutable once loaded
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a per-symbol stream of bars sorted ascending by time.
// Windows handed to strategies share the backing array and must be
// treated as read-only
type Series struct {
	symbol string
	bars   []Bar
}

// Store holds the series for every registered symbol during a run
type Store struct {
	series map[string]*Series
}
