package surface

import (
	"fmt"
	"sort"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/smile"
)

// Builder constructs volatility surfaces from one quote snapshot.
type Builder struct {
	Snapshot *market.MarketQuoteSet
	Config   smile.Config
}

// NewBuilder wraps a snapshot with the default smile configuration.
func NewBuilder(snapshot *market.MarketQuoteSet) *Builder {
	return &Builder{Snapshot: snapshot, Config: smile.DefaultConfig}
}

// Build fits a smile per requested tenor under a partial-success policy:
// tenors with missing or invalid quotes are recorded as failures on the
// returned surface rather than aborting the build, so downstream consumers
// still get the tenors that fitted. Build errors only when no tenor fits.
func (b *Builder) Build(pair market.CurrencyPair, tenors []market.Tenor) (*Surface, error) {
	if b.Snapshot == nil {
		return nil, fmt.Errorf("Build: nil snapshot")
	}

	s := &Surface{
		pair:    pair,
		version: b.Snapshot.Version(),
		asof:    b.Snapshot.AsOf(),
	}
	for _, tenor := range tenors {
		q, err := b.Snapshot.Quote(pair, tenor)
		if err != nil {
			s.failures = append(s.failures, BuildFailure{Tenor: tenor, Err: err})
			continue
		}
		crv, err := smile.Build(q, b.Config)
		if err != nil {
			s.failures = append(s.failures, BuildFailure{Tenor: tenor, Err: err})
			continue
		}
		s.curves = append(s.curves, crv)
	}

	if len(s.curves) == 0 {
		return nil, fmt.Errorf("Build: no usable tenors for %s (%d of %d failed)",
			pair, len(s.failures), len(tenors))
	}

	sort.Slice(s.curves, func(i, j int) bool {
		return s.curves[i].Expiry() < s.curves[j].Expiry()
	})
	s.years = make([]float64, len(s.curves))
	for i, c := range s.curves {
		s.years[i] = c.Expiry()
	}
	return s, nil
}

// BuildAll fits every tenor the snapshot quotes for the pair.
func (b *Builder) BuildAll(pair market.CurrencyPair) (*Surface, error) {
	if b.Snapshot == nil {
		return nil, fmt.Errorf("BuildAll: nil snapshot")
	}
	return b.Build(pair, b.Snapshot.Tenors(pair))
}
