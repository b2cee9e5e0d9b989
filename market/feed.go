package market

import (
	"fmt"
	"time"
)

// QuoteFeed supplies raw vol-instrument quotes per (pair, tenor). External
// reference-data pulls (e.g. terminal tickers <PAIR>V<TENOR>, <PAIR><DELTA>R<TENOR>,
// <PAIR><DELTA>B<TENOR>) sit behind this interface; only the numeric tuple matters here.
type QuoteFeed interface {
	QuoteFor(pair CurrencyPair, tenor Tenor) (MarketQuote, bool)
}

// MapQuoteFeed is a static map-backed implementation for development/testing.
type MapQuoteFeed struct {
	quotes map[quoteKey]MarketQuote
}

func NewMapQuoteFeed(quotes []MarketQuote) *MapQuoteFeed {
	m := make(map[quoteKey]MarketQuote, len(quotes))
	for _, q := range quotes {
		m[quoteKey{pair: q.Pair.String(), tenor: q.Tenor.Label}] = q
	}
	return &MapQuoteFeed{quotes: m}
}

func (f *MapQuoteFeed) QuoteFor(pair CurrencyPair, tenor Tenor) (MarketQuote, bool) {
	q, ok := f.quotes[quoteKey{pair: pair.String(), tenor: tenor.Label}]
	return q, ok
}

// SnapshotFromFeed pulls the requested pair/tenors from a feed and freezes them
// into a validated snapshot. Tenors absent from the feed are skipped; it is the
// surface builder's job to report them as build failures.
func SnapshotFromFeed(feed QuoteFeed, version string, asof time.Time, pair CurrencyPair, tenors []Tenor) (*MarketQuoteSet, error) {
	var quotes []MarketQuote
	for _, t := range tenors {
		if q, ok := feed.QuoteFor(pair, t); ok {
			quotes = append(quotes, q)
		}
	}
	snap, err := NewQuoteSet(version, asof, quotes)
	if err != nil {
		return nil, fmt.Errorf("SnapshotFromFeed: %w", err)
	}
	return snap, nil
}
