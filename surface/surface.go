// Package surface assembles per-tenor smiles into a queryable (strike, tenor)
// volatility surface with total-variance interpolation between quoted tenors.
package surface

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/smile"
)

// BuildFailure records a tenor that could not be fitted during a surface build.
type BuildFailure struct {
	Tenor market.Tenor
	Err   error
}

// Surface is an immutable per-snapshot volatility surface for one pair:
// fitted smiles ordered by time to expiry, plus the per-tenor failures the
// partial-success build policy recorded. Concurrent readers need no locking.
type Surface struct {
	pair    market.CurrencyPair
	version string
	asof    time.Time

	years    []float64 // sorted ascending, parallel to curves
	curves   []*smile.Curve
	failures []BuildFailure
}

// VolAt returns the implied vol for a strike at an arbitrary expiry.
//
// An expiry matching a quoted tenor evaluates that tenor's smile directly.
// Between two quoted tenors, total variance σ²T is interpolated linearly at
// equal strike and converted back to vol. Outside the quoted range the
// nearest smile is used flat.
func (s *Surface) VolAt(strike, years float64) (float64, error) {
	if years <= 0 || math.IsNaN(years) {
		return 0, fmt.Errorf("VolAt: non-positive expiry %g", years)
	}
	n := len(s.years)
	if years <= s.years[0] {
		return s.curves[0].VolAt(strike), nil
	}
	if years >= s.years[n-1] {
		return s.curves[n-1].VolAt(strike), nil
	}

	i, j := bracket(s.years, years)
	if s.years[i] == years {
		return s.curves[i].VolAt(strike), nil
	}

	t1, t2 := s.years[i], s.years[j]
	v1 := s.curves[i].VolAt(strike)
	v2 := s.curves[j].VolAt(strike)

	w := (years - t1) / (t2 - t1)
	totalVar := (1.0-w)*v1*v1*t1 + w*v2*v2*t2
	return math.Sqrt(totalVar / years), nil
}

// Curve returns the fitted smile for a quoted tenor, if the build succeeded.
func (s *Surface) Curve(tenor market.Tenor) (*smile.Curve, bool) {
	for _, c := range s.curves {
		if c.Tenor().Label == tenor.Label {
			return c, true
		}
	}
	return nil, false
}

// Tenors returns the successfully fitted tenors, ascending by expiry.
func (s *Surface) Tenors() []market.Tenor {
	out := make([]market.Tenor, len(s.curves))
	for i, c := range s.curves {
		out[i] = c.Tenor()
	}
	return out
}

// Failures returns the per-tenor build failures recorded by Build.
func (s *Surface) Failures() []BuildFailure {
	out := make([]BuildFailure, len(s.failures))
	copy(out, s.failures)
	return out
}

// Pair returns the surface's currency pair.
func (s *Surface) Pair() market.CurrencyPair {
	return s.pair
}

// Version returns the snapshot version the surface was built from.
func (s *Surface) Version() string {
	return s.version
}

// AsOf returns the snapshot timestamp the surface was built from.
func (s *Surface) AsOf() time.Time {
	return s.asof
}

// bracket finds adjacent indices i, j in a sorted slice with ys[i] <= t <= ys[j].
// Callers guarantee t lies inside the range; boundary pairs are returned otherwise.
func bracket(ys []float64, t float64) (int, int) {
	idx := sort.SearchFloat64s(ys, t)
	if idx <= 0 {
		return 0, 1
	}
	if idx >= len(ys) {
		return len(ys) - 2, len(ys) - 1
	}
	if ys[idx] == t {
		return idx, idx
	}
	return idx - 1, idx
}
