package market

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// MarketQuote is the raw quoted instrument set for one (pair, tenor):
// at-the-money vol plus risk-reversal and butterfly quotes keyed by delta
// bucket (5, 10, 15, 25, 35), together with spot and the two deposit rates.
//
// Vols and rates are decimals (0.076375 == 7.6375%). A quote is a value in a
// snapshot and is never mutated; a changed market state is a new snapshot.
type MarketQuote struct {
	Pair  CurrencyPair
	Tenor Tenor

	ATMVol    float64
	RRByDelta map[int]float64
	BFByDelta map[int]float64

	Spot         float64
	DomesticRate float64
	ForeignRate  float64
}

// Validate checks the quote invariants: finite values, strictly positive
// ATM vol / spot / time to expiry, and identical RR/BF delta-bucket keys.
func (q MarketQuote) Validate() error {
	invalid := func(reason string) error {
		return &InvalidQuoteError{Pair: q.Pair, Tenor: q.Tenor, Reason: reason}
	}
	if q.Tenor.Years <= 0 {
		return invalid(fmt.Sprintf("non-positive time to expiry %g", q.Tenor.Years))
	}
	if q.ATMVol <= 0 || !isFinite(q.ATMVol) {
		return invalid(fmt.Sprintf("non-positive ATM vol %g", q.ATMVol))
	}
	if q.Spot <= 0 || !isFinite(q.Spot) {
		return invalid(fmt.Sprintf("non-positive spot %g", q.Spot))
	}
	if !isFinite(q.DomesticRate) || !isFinite(q.ForeignRate) {
		return invalid("non-finite deposit rate")
	}
	if len(q.RRByDelta) != len(q.BFByDelta) {
		return invalid(fmt.Sprintf("RR/BF bucket mismatch: %d vs %d buckets", len(q.RRByDelta), len(q.BFByDelta)))
	}
	for d, rr := range q.RRByDelta {
		bf, ok := q.BFByDelta[d]
		if !ok {
			return invalid(fmt.Sprintf("RR quotes %dD but BF does not", d))
		}
		if !isFinite(rr) || !isFinite(bf) {
			return invalid(fmt.Sprintf("non-finite RR/BF at %dD", d))
		}
	}
	return nil
}

// DeltaBuckets returns the quoted delta buckets in ascending order.
func (q MarketQuote) DeltaBuckets() []int {
	out := make([]int, 0, len(q.RRByDelta))
	for d := range q.RRByDelta {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

type quoteKey struct {
	pair  string
	tenor string
}

// MarketQuoteSet is an immutable market snapshot: validated quotes keyed by
// (pair, tenor), tagged with a version and an as-of timestamp so cached
// surfaces can be invalidated when a new snapshot replaces it.
//
// A set never changes once constructed; concurrent readers need no locking.
type MarketQuoteSet struct {
	version string
	asof    time.Time
	quotes  map[quoteKey]MarketQuote
}

// NewQuoteSet validates and copies the given quotes into a snapshot.
// Quote maps are deep-copied so later caller-side mutation cannot leak in.
func NewQuoteSet(version string, asof time.Time, quotes []MarketQuote) (*MarketQuoteSet, error) {
	s := &MarketQuoteSet{
		version: version,
		asof:    asof,
		quotes:  make(map[quoteKey]MarketQuote, len(quotes)),
	}
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("NewQuoteSet: %w", err)
		}
		k := quoteKey{pair: q.Pair.String(), tenor: q.Tenor.Label}
		if _, dup := s.quotes[k]; dup {
			return nil, fmt.Errorf("NewQuoteSet: duplicate quote for %s %s", q.Pair, q.Tenor)
		}
		q.RRByDelta = cloneBuckets(q.RRByDelta)
		q.BFByDelta = cloneBuckets(q.BFByDelta)
		s.quotes[k] = q
	}
	return s, nil
}

// Quote returns the quote for a pair/tenor, or a MissingQuoteError.
// The returned quote's bucket maps are copies.
func (s *MarketQuoteSet) Quote(pair CurrencyPair, tenor Tenor) (MarketQuote, error) {
	q, ok := s.quotes[quoteKey{pair: pair.String(), tenor: tenor.Label}]
	if !ok {
		return MarketQuote{}, &MissingQuoteError{Pair: pair, Tenor: tenor}
	}
	q.RRByDelta = cloneBuckets(q.RRByDelta)
	q.BFByDelta = cloneBuckets(q.BFByDelta)
	return q, nil
}

// Tenors returns the quoted tenors for a pair, ascending by time to expiry.
func (s *MarketQuoteSet) Tenors(pair CurrencyPair) []Tenor {
	var out []Tenor
	for _, q := range s.quotes {
		if q.Pair == pair {
			out = append(out, q.Tenor)
		}
	}
	SortTenors(out)
	return out
}

// Validate re-runs quote validation across the whole snapshot.
func (s *MarketQuoteSet) Validate() error {
	for _, q := range s.quotes {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Version returns the snapshot version tag.
func (s *MarketQuoteSet) Version() string {
	return s.version
}

// AsOf returns the snapshot timestamp.
func (s *MarketQuoteSet) AsOf() time.Time {
	return s.asof
}

// Len returns the number of quotes in the snapshot.
func (s *MarketQuoteSet) Len() int {
	return len(s.quotes)
}

func cloneBuckets(m map[int]float64) map[int]float64 {
	if m == nil {
		return nil
	}
	out := make(map[int]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
