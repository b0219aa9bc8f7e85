package strategies

import (
	"errors"
	"time"

	"github.com/quantfarm/backtester/data"
	"github.com/quantfarm/backtester/engine"
)

// ErrStrategyNotFound used when the strategy named in the config does
// not exist
var ErrStrategyNotFound = errors.New("strategy not found")

// Handler defines all functions a strategy must implement to be run by
// the engine
type Handler interface {
	Name() string
	Description() string
	SetDefaults()
	SetCustomSettings(map[string]any) error
	OnTimestep(e *engine.Engine, t time.Time, visible map[string]*data.Series) error
}
