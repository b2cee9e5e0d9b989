package main

import (
	"fmt"
	"time"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/pricer"
	"github.com/meenmo/fxsmile/surface"
)

func main() {
	eurusd := market.MustPair("EURUSD")
	asof := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

	quotes := []market.MarketQuote{
		quote(eurusd, "1W", 0.0810, -0.00030, 0.00120),
		quote(eurusd, "1M", 0.076375, -0.00045, 0.00158),
		quote(eurusd, "3M", 0.0745, -0.00095, 0.00175),
		quote(eurusd, "6M", 0.0730, -0.00150, 0.00190),
		quote(eurusd, "1Y", 0.0718, -0.00210, 0.00205),
	}

	snap, err := market.NewQuoteSet("demo", asof, quotes)
	if err != nil {
		fmt.Println("snapshot error:", err)
		return
	}

	srf, err := surface.NewBuilder(snap).BuildAll(eurusd)
	if err != nil {
		fmt.Println("surface error:", err)
		return
	}

	fmt.Printf("EURUSD volatility surface (%s, asof %s)\n", snap.Version(), snap.AsOf().Format("2006-01-02 15:04"))
	for _, tenor := range srf.Tenors() {
		crv, _ := srf.Curve(tenor)
		volPut, volATM, volCall := crv.Anchors()
		fmt.Printf("  %-3s fwd %.5f  25dP %.3f%%  atm %.3f%%  25dC %.3f%%\n",
			tenor, crv.Forward(), volPut*100, volATM*100, volCall*100)
	}

	// Price a 2M ATM-spot call off the interpolated surface.
	const expiry = 2.0 / 12.0
	q := quotes[1]
	strike := q.Spot
	vol, err := srf.VolAt(strike, expiry)
	if err != nil {
		fmt.Println("vol query error:", err)
		return
	}

	opt := pricer.Option{Pair: eurusd, Strike: strike, Expiry: expiry, Type: pricer.Call, Notional: 10_000_000}
	res := pricer.Price(opt, pricer.Inputs{
		Spot:         q.Spot,
		DomesticRate: q.DomesticRate,
		ForeignRate:  q.ForeignRate,
		Vol:          vol,
	})
	if res.Status != pricer.StatusOK {
		fmt.Println("pricing error:", res.Err)
		return
	}

	fmt.Printf("\n2M EURUSD call, K=%.4f, vol %.3f%% (surface-interpolated)\n", strike, vol*100)
	fmt.Printf("  premium   %.6f  (%.4f%% of spot)\n", res.Premium, res.PremiumPct)
	fmt.Printf("  cash      %.2f USD on %.0f EUR\n", res.PremiumCash, opt.Notional)
	fmt.Printf("  delta     %.4f   gamma %.4f\n", res.Delta, res.Gamma)
	fmt.Printf("  vega      %.6f   theta %.6f   rho %.6f\n", res.Vega, res.Theta, res.Rho)
}

func quote(pair market.CurrencyPair, tenor string, atm, rr25, bf25 float64) market.MarketQuote {
	return market.MarketQuote{
		Pair:         pair,
		Tenor:        market.MustTenor(tenor),
		ATMVol:       atm,
		RRByDelta:    map[int]float64{25: rr25},
		BFByDelta:    map[int]float64{25: bf25},
		Spot:         1.1742,
		DomesticRate: 0.0496,
		ForeignRate:  0.0190,
	}
}
