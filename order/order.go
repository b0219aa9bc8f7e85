package order

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// NewID returns a unique identifier for an order
func NewID() (string, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// String implements the stringer interface
func (s Side) String() string {
	return string(s)
}

// Valid returns whether the side is a known direction
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// String implements the stringer interface
func (t Type) String() string {
	return string(t)
}

// Valid returns whether the order type is known
func (t Type) Valid() bool {
	return t == Market || t == Limit
}

// Validate ensures an order is well formed before execution
func (o *Order) Validate() error {
	if !o.Side.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSide, o.Side)
	}
	if !o.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, o.Type)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, o.Quantity)
	}
	if o.Type == Limit && o.Price <= 0 {
		return ErrLimitPriceRequired
	}
	return nil
}
