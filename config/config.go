package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default run settings applied when the config file omits them
const (
	DefaultInitialCapital = 1_000_000.0
	DefaultCommissionRate = 0.0003
	DefaultSlippageRate   = 0.0001
	DefaultRiskFreeRate   = 0.03
)

const dateLayout = "2006-01-02"

// ReadConfigFromFile loads, parses and validates a run configuration.
// The file format follows its extension, json and yaml are supported
func ReadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("initial-capital", DefaultInitialCapital)
	v.SetDefault("commission-rate", DefaultCommissionRate)
	v.SetDefault("slippage-rate", DefaultSlippageRate)
	v.SetDefault("risk-free-rate", DefaultRiskFreeRate)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config %v: %w", path, err)
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for impossible settings
func (c *Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %v", c.InitialCapital)
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return fmt.Errorf("%w: commission-rate %v", ErrInvalidRate, c.CommissionRate)
	}
	if c.SlippageRate < 0 || c.SlippageRate >= 1 {
		return fmt.Errorf("%w: slippage-rate %v", ErrInvalidRate, c.SlippageRate)
	}
	if len(c.DataSettings) == 0 {
		return ErrNoDataSettings
	}
	for i := range c.DataSettings {
		if c.DataSettings[i].Symbol == "" || c.DataSettings[i].Path == "" {
			return fmt.Errorf("%w: entry %v needs both symbol and path", ErrNoDataSettings, i)
		}
	}
	if c.Benchmark != nil && (c.Benchmark.Symbol == "" || c.Benchmark.Path == "") {
		return ErrInvalidBenchmark
	}
	start, err := c.ParsedStartDate()
	if err != nil {
		return err
	}
	end, err := c.ParsedEndDate()
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, c.StartDate, c.EndDate)
	}
	return nil
}

// ParsedStartDate returns the start bound, zero when unset
func (c *Config) ParsedStartDate() (time.Time, error) {
	return parseDate(c.StartDate)
}

// ParsedEndDate returns the end bound, zero when unset
func (c *Config) ParsedEndDate() (time.Time, error) {
	return parseDate(c.EndDate)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errBadDate, s)
	}
	return t, nil
}
