package base

import "fmt"

const orderSizeKey = "order-size"

// defaultOrderSize is the quantity bought per entry signal when the
// config does not override it
const defaultOrderSize = 100

// SetDefaults sets the shared settings to their default values
func (s *Strategy) SetDefaults() {
	s.orderSize = defaultOrderSize
}

// OrderSize returns the quantity bought per entry signal
func (s *Strategy) OrderSize() float64 {
	return s.orderSize
}

// SetCustomSettings applies the settings shared by all strategies,
// returning the keys it did not consume for the embedding strategy
func (s *Strategy) SetCustomSettings(customSettings map[string]any) (map[string]any, error) {
	remaining := make(map[string]any)
	for k, v := range customSettings {
		if k != orderSizeKey {
			remaining[k] = v
			continue
		}
		size, err := ParseFloat(k, v)
		if err != nil {
			return nil, err
		}
		s.orderSize = size
	}
	return remaining, nil
}

// ParseFloat coerces a custom setting value into a positive float
func ParseFloat(key string, v any) (float64, error) {
	var f float64
	switch value := v.(type) {
	case float64:
		f = value
	case int:
		f = float64(value)
	default:
		return 0, fmt.Errorf("%w: %v value could not be parsed: %v", ErrInvalidCustomSettings, key, v)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%w: %v must be positive: %v", ErrInvalidCustomSettings, key, v)
	}
	return f, nil
}
