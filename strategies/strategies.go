package strategies

import (
	"fmt"
	"strings"

	"github.com/quantfarm/backtester/strategies/rsi"
	"github.com/quantfarm/backtester/strategies/smacross"
)

// GetSupportedStrategies returns a new instance of every bundled
// strategy with defaults applied
func GetSupportedStrategies() []Handler {
	handlers := []Handler{
		new(smacross.Strategy),
		new(rsi.Strategy),
	}
	for i := range handlers {
		handlers[i].SetDefaults()
	}
	return handlers
}

// LoadStrategyByName returns the bundled strategy matching the name,
// case insensitively, with defaults applied
func LoadStrategyByName(name string) (Handler, error) {
	for _, h := range GetSupportedStrategies() {
		if strings.EqualFold(h.Name(), name) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrStrategyNotFound, name)
}
