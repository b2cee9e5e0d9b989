package smile

import "github.com/meenmo/fxsmile/market"

// Bounds is the floor/ceiling clamp applied to interpolated vols.
// Values are decimals (0.04 == 4%).
type Bounds struct {
	Floor   float64
	Ceiling float64
}

// Config holds smile construction parameters.
type Config struct {
	// DeltaBucket selects which quoted wing drives the smile (5, 10, 15, 25, 35).
	DeltaBucket int

	// WingExtrapolationFactor scales the wing-to-ATM vol gap when extending the
	// smile linearly beyond the outer quoted strikes.
	WingExtrapolationFactor float64

	// Bounds is the default clamp when no per-pair bounds are registered.
	Bounds Bounds

	// BoundsByPair overrides the clamp per currency pair. EM pairs need
	// materially wider bounds than G10.
	BoundsByPair map[string]Bounds
}

// DefaultConfig provides production-ready default values: the 25-delta wing,
// the reference extrapolation factor of 2.0, and a 4%-20% G10 clamp with wider
// presets for the common EM pairs.
var DefaultConfig = Config{
	DeltaBucket:             25,
	WingExtrapolationFactor: 2.0,
	Bounds:                  Bounds{Floor: 0.04, Ceiling: 0.20},
	BoundsByPair: map[string]Bounds{
		"USDTRY": {Floor: 0.05, Ceiling: 0.80},
		"USDZAR": {Floor: 0.05, Ceiling: 0.50},
		"USDBRL": {Floor: 0.05, Ceiling: 0.50},
		"USDMXN": {Floor: 0.04, Ceiling: 0.40},
	},
}

// BoundsFor returns the clamp for a pair, falling back to the config's
// default bounds. An unset zero-value clamp falls back to DefaultConfig's so
// a partially-populated Config cannot pin every vol to zero.
func (c Config) BoundsFor(pair market.CurrencyPair) Bounds {
	b, ok := c.BoundsByPair[pair.String()]
	if !ok {
		b = c.Bounds
	}
	if b.Floor == 0 && b.Ceiling == 0 {
		return DefaultConfig.Bounds
	}
	return b
}
