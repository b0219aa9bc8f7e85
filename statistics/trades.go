package statistics

import (
	"math"
	"sort"

	gctmath "github.com/quantfarm/backtester/common/math"
	"github.com/quantfarm/backtester/order"
)

// costBasis is the per-symbol consumption state used when pairing sells
// against accumulated buys. Buys feed a running weighted cost basis and
// each consuming sell realises one profit sample
type costBasis struct {
	position float64
	avgCost  float64
}

func (c *costBasis) buy(quantity, price float64) {
	totalCost := c.position*c.avgCost + quantity*price
	c.position += quantity
	if c.position > 0 {
		c.avgCost = totalCost / c.position
	}
}

// sell realises the profit of selling quantity at price against the
// running cost basis, the consuming trade's commission is deducted
func (c *costBasis) sell(quantity, price, commission float64) (float64, bool) {
	if c.position < quantity {
		return 0, false
	}
	pnl := quantity*(price-c.avgCost) - commission
	c.position -= quantity
	return pnl, true
}

// realizedPnL pairs each sell against the running cost basis of prior
// buys per symbol and returns one realised profit sample per sell
func realizedPnL(trades []order.Trade) []float64 {
	ordered := make([]order.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	bases := make(map[string]*costBasis)
	var samples []float64
	for i := range ordered {
		basis, ok := bases[ordered[i].Symbol]
		if !ok {
			basis = &costBasis{}
			bases[ordered[i].Symbol] = basis
		}
		switch ordered[i].Side {
		case order.Buy:
			basis.buy(ordered[i].Quantity, ordered[i].Price)
		case order.Sell:
			if pnl, ok := basis.sell(ordered[i].Quantity, ordered[i].Price, ordered[i].Commission); ok {
				samples = append(samples, pnl)
			}
		}
	}
	return samples
}

func (a *Analyzer) calculateTradeStats(m *Metrics, trades []order.Trade) {
	m.TotalTrades = len(trades)
	for i := range trades {
		m.TotalCommission += trades[i].Commission
		switch trades[i].Side {
		case order.Buy:
			m.BuyTrades++
		case order.Sell:
			m.SellTrades++
		}
	}

	samples := realizedPnL(trades)
	m.CompletedTrades = len(samples)
	if len(samples) == 0 {
		return
	}

	var wins, losses []float64
	var winSum, lossSum float64
	m.BestTrade = samples[0]
	m.WorstTrade = samples[0]
	for i := range samples {
		if samples[i] > 0 {
			wins = append(wins, samples[i])
			winSum += samples[i]
		} else if samples[i] < 0 {
			losses = append(losses, samples[i])
			lossSum += samples[i]
		}
		if samples[i] > m.BestTrade {
			m.BestTrade = samples[i]
		}
		if samples[i] < m.WorstTrade {
			m.WorstTrade = samples[i]
		}
	}

	m.WinningTrades = len(wins)
	m.LosingTrades = len(losses)
	m.WinRate = float64(len(wins)) / float64(len(samples))
	m.AvgWin = gctmath.ArithmeticAverage(wins)
	m.AvgLoss = gctmath.ArithmeticAverage(losses)
	m.AvgTrade = gctmath.ArithmeticAverage(samples)
	if lossSum != 0 {
		m.ProfitFactor = math.Abs(winSum / lossSum)
	} else {
		m.ProfitFactor = math.Inf(1)
	}
}
