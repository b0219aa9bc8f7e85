package config

import "errors"

var (
	// ErrNoDataSettings is returned when no data files are configured
	ErrNoDataSettings = errors.New("no data settings provided")
	// ErrInvalidRate is returned when a configured rate is out of range
	ErrInvalidRate = errors.New("rate must be within [0, 1)")
	// ErrInvalidDateRange is returned when the end date precedes the start
	ErrInvalidDateRange = errors.New("end date cannot precede start date")
	// ErrInvalidBenchmark is returned when a benchmark entry is incomplete
	ErrInvalidBenchmark = errors.New("benchmark needs both symbol and path")
	errBadDate          = errors.New("dates should be formatted as YYYY-MM-DD")
)

// Config is the top level run configuration
type Config struct {
	InitialCapital   float64          `mapstructure:"initial-capital"`
	CommissionRate   float64          `mapstructure:"commission-rate"`
	SlippageRate     float64          `mapstructure:"slippage-rate"`
	RiskFreeRate     float64          `mapstructure:"risk-free-rate"`
	StartDate        string           `mapstructure:"start-date"`
	EndDate          string           `mapstructure:"end-date"`
	StrategySettings StrategySettings `mapstructure:"strategy-settings"`
	DataSettings     []DataSettings   `mapstructure:"data-settings"`
	// Benchmark optionally names a candle file whose returns the run is
	// compared against
	Benchmark *DataSettings `mapstructure:"benchmark"`
	Verbose   bool          `mapstructure:"verbose"`
}

// StrategySettings names the strategy to run and its custom settings
type StrategySettings struct {
	Name           string         `mapstructure:"name"`
	CustomSettings map[string]any `mapstructure:"custom-settings"`
}

// DataSettings points at one CSV candle file for one symbol
type DataSettings struct {
	Symbol string `mapstructure:"symbol"`
	Path   string `mapstructure:"path"`
}
