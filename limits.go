package glcmd

import "fmt"

// DefaultMaxViewports is the number of simultaneous viewports every
// multi-viewport capable GL context must support.
const DefaultMaxViewports = 16

// Limits is the subset of device limits a recorder validates against.
type Limits struct {
	// MaxViewports bounds both viewport and scissor counts per command.
	MaxViewports int
}

// DefaultLimits returns limits matching the GL guaranteed minimums.
func DefaultLimits() Limits {
	return Limits{MaxViewports: DefaultMaxViewports}
}

// LimitsProvider supplies device limits, typically from the adapter.
type LimitsProvider interface {
	MaxViewports() int
}

// LimitsFrom reads the limits a recorder needs from a provider.
func LimitsFrom(p LimitsProvider) Limits {
	return Limits{MaxViewports: p.MaxViewports()}
}

// Validate reports whether the limits are usable.
func (l Limits) Validate() error {
	if l.MaxViewports < 1 {
		return fmt.Errorf("%w: MaxViewports = %d, want >= 1", ErrInvalidLimits, l.MaxViewports)
	}
	return nil
}
