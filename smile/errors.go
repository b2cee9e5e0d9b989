package smile

import (
	"fmt"

	"github.com/meenmo/fxsmile/market"
)

// DegenerateSmileError reports wing strikes that fail to straddle the forward,
// so no smile can be anchored on them.
type DegenerateSmileError struct {
	Pair    market.CurrencyPair
	Tenor   market.Tenor
	KPut    float64
	KCall   float64
	Forward float64
}

func (e *DegenerateSmileError) Error() string {
	return fmt.Sprintf("degenerate smile for %s %s: wing strikes [%.6f, %.6f] do not straddle forward %.6f",
		e.Pair, e.Tenor, e.KPut, e.KCall, e.Forward)
}
