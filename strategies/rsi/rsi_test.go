package rsi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quantfarm/backtester/data"
	"github.com/quantfarm/backtester/engine"
	"github.com/quantfarm/backtester/order"
	"github.com/quantfarm/backtester/strategies/base"
)

func day(n int) time.Time {
	return time.Date(2023, 1, n, 0, 0, 0, 0, time.UTC)
}

func testSeries(t *testing.T, closes ...float64) *data.Series {
	t.Helper()
	bars := make([]data.Bar, len(closes))
	for i := range closes {
		bars[i] = data.Bar{Time: day(i + 1), Close: closes[i]}
	}
	s, err := data.NewSeries("BTC-USD", bars)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()
	s := &Strategy{}
	s.SetDefaults()
	if s.rsiPeriod != 14 || s.rsiLow != 30 || s.rsiHigh != 70 {
		t.Errorf("unexpected defaults %v %v %v", s.rsiPeriod, s.rsiLow, s.rsiHigh)
	}
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := &Strategy{}
	s.SetDefaults()
	if err := s.SetCustomSettings(map[string]any{
		"rsi-period": 7.0,
		"rsi-low":    25.0,
		"rsi-high":   75.0,
	}); err != nil {
		t.Fatal(err)
	}
	if s.rsiPeriod != 7 || s.rsiLow != 25 || s.rsiHigh != 75 {
		t.Errorf("settings not applied: %v %v %v", s.rsiPeriod, s.rsiLow, s.rsiHigh)
	}

	s.SetDefaults()
	if err := s.SetCustomSettings(map[string]any{"rsi-low": -1.0}); !errors.Is(err, base.ErrInvalidCustomSettings) {
		t.Errorf("received %v expected %v", err, base.ErrInvalidCustomSettings)
	}
	if err := s.SetCustomSettings(map[string]any{
		"rsi-low":  80.0,
		"rsi-high": 20.0,
	}); !errors.Is(err, base.ErrInvalidCustomSettings) {
		t.Errorf("received %v expected %v for inverted thresholds", err, base.ErrInvalidCustomSettings)
	}
}

func TestOnTimestep(t *testing.T) {
	t.Parallel()
	e, err := engine.New(engine.Settings{InitialCapital: 1_000_000}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// straight losses drive RSI to the floor, then a violent rally
	// drives it through the exit threshold
	if err = e.AddData(testSeries(t, 10, 9, 8, 7, 30, 60)); err != nil {
		t.Fatal(err)
	}

	s := &Strategy{}
	s.SetDefaults()
	if err = s.SetCustomSettings(map[string]any{"rsi-period": 2.0}); err != nil {
		t.Fatal(err)
	}
	e.SetStrategy(s.OnTimestep)

	results, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results.Trades) != 2 {
		t.Fatalf("received %v trades expected 2", len(results.Trades))
	}
	buy, sell := results.Trades[0], results.Trades[1]
	if buy.Side != order.Buy || !buy.Time.Equal(day(3)) {
		t.Errorf("unexpected entry %+v", buy)
	}
	if sell.Side != order.Sell || !sell.Time.Equal(day(5)) || sell.Quantity != buy.Quantity {
		t.Errorf("unexpected exit %+v", sell)
	}
}
