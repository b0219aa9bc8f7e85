package base

import "errors"

// ErrInvalidCustomSettings used when a custom setting fails to parse
var ErrInvalidCustomSettings = errors.New("invalid custom settings in config")

// Strategy is the base implementation shared by all strategies. It
// carries the order sizing every bundled strategy uses
type Strategy struct {
	orderSize float64
}
