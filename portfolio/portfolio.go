package portfolio

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// New creates a portfolio funded with initial capital
func New(initialCapital float64) (*Portfolio, error) {
	if initialCapital <= 0 {
		return nil, ErrNoInitialCapital
	}
	return &Portfolio{
		initialCapital: initialCapital,
		cash:           initialCapital,
		positions:      make(map[string]float64),
		avgPrices:      make(map[string]float64),
	}, nil
}

// UpdatePosition applies a fill to the ledger. A positive quantity is a
// buy, a negative quantity a sell. Quantity and average price are always
// updated together and a rejected update leaves the ledger untouched
func (p *Portfolio) UpdatePosition(symbol string, quantity, price, commission float64) error {
	switch {
	case quantity > 0:
		cost := quantity*price + commission
		if p.cash < cost {
			return fmt.Errorf("%w: need %.2f, available %.2f", ErrInsufficientFunds, cost, p.cash)
		}
		currQuantity := p.positions[symbol]
		currAvg := p.avgPrices[symbol]
		newQuantity := currQuantity + quantity

		p.cash -= cost
		p.totalCommission += commission
		p.positions[symbol] = newQuantity
		p.avgPrices[symbol] = (currQuantity*currAvg + quantity*price) / newQuantity
	case quantity < 0:
		sellQuantity := math.Abs(quantity)
		currQuantity := p.positions[symbol]
		if currQuantity < sellQuantity {
			return fmt.Errorf("%w: need %v, holding %v", ErrInsufficientPosition, sellQuantity, currQuantity)
		}

		p.cash += sellQuantity*price - commission
		p.totalCommission += commission
		newQuantity := currQuantity - sellQuantity
		if newQuantity == 0 {
			// the average price of a flat position is meaningless
			delete(p.positions, symbol)
			delete(p.avgPrices, symbol)
		} else {
			p.positions[symbol] = newQuantity
		}
	}
	return nil
}

// Position returns the held quantity for a symbol, 0 when unseen
func (p *Portfolio) Position(symbol string) float64 {
	return p.positions[symbol]
}

// AvgPrice returns the weighted average cost for a symbol, 0 when unseen
func (p *Portfolio) AvgPrice(symbol string) float64 {
	return p.avgPrices[symbol]
}

// PositionValue returns the market value of one holding
func (p *Portfolio) PositionValue(symbol string, currentPrice float64) float64 {
	return p.positions[symbol] * currentPrice
}

// PositionPnL returns the unrealised profit of one holding
func (p *Portfolio) PositionPnL(symbol string, currentPrice float64) float64 {
	quantity := p.positions[symbol]
	if quantity == 0 {
		return 0
	}
	return quantity * (currentPrice - p.avgPrices[symbol])
}

// TotalValue returns cash plus the market value of every position that
// has a current price. Symbols without a price contribute nothing, they
// are neither assumed zero nor stale
func (p *Portfolio) TotalValue(currentPrices map[string]float64) float64 {
	total := decimal.NewFromFloat(p.cash)
	for symbol, quantity := range p.positions {
		price, ok := currentPrices[symbol]
		if !ok || quantity <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price)))
	}
	value, _ := total.Round(4).Float64()
	return value
}

// TotalMarketValue returns the market value of all priced positions
func (p *Portfolio) TotalMarketValue(currentPrices map[string]float64) float64 {
	var marketValue float64
	for symbol, quantity := range p.positions {
		if price, ok := currentPrices[symbol]; ok && quantity > 0 {
			marketValue += quantity * price
		}
	}
	return marketValue
}

// TotalPnL returns the unrealised profit across all priced positions
func (p *Portfolio) TotalPnL(currentPrices map[string]float64) float64 {
	var total float64
	for symbol := range p.positions {
		if price, ok := currentPrices[symbol]; ok {
			total += p.PositionPnL(symbol, price)
		}
	}
	return total
}

// CashUtilization returns the share of total value committed to positions
func (p *Portfolio) CashUtilization(currentPrices map[string]float64) float64 {
	totalValue := p.TotalValue(currentPrices)
	if totalValue == 0 {
		return 0
	}
	return (totalValue - p.cash) / totalValue
}

// PositionDetails values every priced open position
func (p *Portfolio) PositionDetails(currentPrices map[string]float64) map[string]PositionDetail {
	details := make(map[string]PositionDetail)
	for symbol, quantity := range p.positions {
		price, ok := currentPrices[symbol]
		if !ok || quantity <= 0 {
			continue
		}
		avgPrice := p.avgPrices[symbol]
		marketValue := quantity * price
		costBasis := quantity * avgPrice
		details[symbol] = PositionDetail{
			Symbol:        symbol,
			Quantity:      quantity,
			AvgPrice:      avgPrice,
			MarketValue:   marketValue,
			CostBasis:     costBasis,
			UnrealizedPnL: marketValue - costBasis,
		}
	}
	return details
}

// SaveSnapshot appends an immutable record of the current state, called
// once per engine timestep
func (p *Portfolio) SaveSnapshot(currentPrices map[string]float64, timestamp time.Time) {
	p.history = append(p.history, Snapshot{
		Time:       timestamp,
		TotalValue: p.TotalValue(currentPrices),
		Cash:       p.cash,
		Positions:  copyMap(p.positions),
		AvgPrices:  copyMap(p.avgPrices),
	})
}

// History returns all recorded snapshots
func (p *Portfolio) History() []Snapshot {
	return p.history
}

// Summary reports the portfolio state valued at the given prices
func (p *Portfolio) Summary(currentPrices map[string]float64) Summary {
	totalValue := p.TotalValue(currentPrices)
	return Summary{
		InitialCapital:  p.initialCapital,
		CurrentValue:    totalValue,
		Cash:            p.cash,
		MarketValue:     p.TotalMarketValue(currentPrices),
		TotalReturn:     (totalValue - p.initialCapital) / p.initialCapital,
		TotalPnL:        p.TotalPnL(currentPrices),
		CashUtilization: p.CashUtilization(currentPrices),
		TotalCommission: p.totalCommission,
		PositionCount:   len(p.positions),
	}
}

// Cash returns available cash
func (p *Portfolio) Cash() float64 {
	return p.cash
}

// InitialCapital returns the starting capital
func (p *Portfolio) InitialCapital() float64 {
	return p.initialCapital
}

// TotalCommission returns the cumulative commission paid
func (p *Portfolio) TotalCommission() float64 {
	return p.totalCommission
}

// Positions returns a copy of the open position quantities
func (p *Portfolio) Positions() map[string]float64 {
	return copyMap(p.positions)
}

// Reset returns the portfolio to its initial state
func (p *Portfolio) Reset() {
	p.cash = p.initialCapital
	p.positions = make(map[string]float64)
	p.avgPrices = make(map[string]float64)
	p.totalCommission = 0
	p.history = nil
}

func copyMap(m map[string]float64) map[string]float64 {
	ret := make(map[string]float64, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}
