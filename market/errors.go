package market

import "fmt"

// MissingQuoteError reports that a snapshot holds no quote for a pair/tenor.
type MissingQuoteError struct {
	Pair  CurrencyPair
	Tenor Tenor
}

func (e *MissingQuoteError) Error() string {
	return fmt.Sprintf("no quote for %s %s", e.Pair, e.Tenor)
}

// InvalidQuoteError reports a quote that fails validation
// (non-positive vol/spot/time, or mismatched RR/BF delta buckets).
type InvalidQuoteError struct {
	Pair   CurrencyPair
	Tenor  Tenor
	Reason string
}

func (e *InvalidQuoteError) Error() string {
	return fmt.Sprintf("invalid quote for %s %s: %s", e.Pair, e.Tenor, e.Reason)
}
