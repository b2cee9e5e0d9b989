package market

import (
	"fmt"
	"strings"
)

// CurrencyPair identifies an FX pair by its base and quote ISO currency codes.
//
// The zero value is invalid; construct pairs via ParsePair or NewPair.
type CurrencyPair struct {
	Base  string
	Quote string
}

// NewPair builds a CurrencyPair from explicit ISO codes.
func NewPair(base, quote string) (CurrencyPair, error) {
	base = strings.TrimSpace(strings.ToUpper(base))
	quote = strings.TrimSpace(strings.ToUpper(quote))
	if len(base) != 3 || len(quote) != 3 {
		return CurrencyPair{}, fmt.Errorf("NewPair: want 3-letter ISO codes, got %q/%q", base, quote)
	}
	if base == quote {
		return CurrencyPair{}, fmt.Errorf("NewPair: base and quote are both %q", base)
	}
	return CurrencyPair{Base: base, Quote: quote}, nil
}

// ParsePair converts a six-letter ticker like "EURUSD" into a CurrencyPair.
func ParsePair(ticker string) (CurrencyPair, error) {
	t := strings.TrimSpace(strings.ToUpper(ticker))
	if len(t) != 6 {
		return CurrencyPair{}, fmt.Errorf("ParsePair: want 6-letter ticker, got %q", ticker)
	}
	return NewPair(t[:3], t[3:])
}

// MustPair is ParsePair for static tickers; it panics on malformed input.
func MustPair(ticker string) CurrencyPair {
	p, err := ParsePair(ticker)
	if err != nil {
		panic(err)
	}
	return p
}

func (p CurrencyPair) String() string {
	return p.Base + p.Quote
}

// IsZero reports whether the pair is the (invalid) zero value.
func (p CurrencyPair) IsZero() bool {
	return p.Base == "" && p.Quote == ""
}
