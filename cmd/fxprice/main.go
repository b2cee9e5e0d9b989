// Command fxprice prices a single European FX vanilla from explicit market
// inputs and prints premium and Greeks, with cash amounts rounded to cents.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/pricer"
)

func main() {
	var (
		pairArg   = flag.String("pair", "EURUSD", "currency pair ticker")
		spot      = flag.Float64("spot", 0, "spot rate")
		strike    = flag.Float64("strike", 0, "option strike")
		tenorArg  = flag.String("tenor", "1M", "expiry tenor label (e.g. 1W, 1M, 1Y)")
		rd        = flag.Float64("rd", 0, "domestic (quote currency) rate, decimal")
		rf        = flag.Float64("rf", 0, "foreign (base currency) rate, decimal")
		vol       = flag.Float64("vol", 0, "implied volatility, decimal")
		typeArg   = flag.String("type", "C", "option type: C or P")
		notional  = flag.Float64("notional", 1_000_000, "base currency notional")
		premiumIn = flag.Float64("premium", 0, "solve implied vol from this premium instead of pricing")
	)
	flag.Parse()

	pair, err := market.ParsePair(*pairArg)
	if err != nil {
		fail(err)
	}
	tenor, err := market.ParseTenor(*tenorArg)
	if err != nil {
		fail(err)
	}

	opt := pricer.Option{
		Pair:     pair,
		Strike:   *strike,
		Expiry:   tenor.Years,
		Type:     pricer.CallPut(*typeArg),
		Notional: *notional,
	}
	in := pricer.Inputs{Spot: *spot, DomesticRate: *rd, ForeignRate: *rf, Vol: *vol}

	if *premiumIn > 0 {
		iv, err := pricer.ImpliedVol(opt, in, *premiumIn)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%s %s %s K=%.4f implied vol: %.4f%%\n", pair, tenor, opt.Type, opt.Strike, iv*100)
		return
	}

	res := pricer.Price(opt, in)
	if res.Status != pricer.StatusOK {
		fail(res.Err)
	}

	cash := func(v float64) decimal.Decimal {
		return decimal.NewFromFloat(v).Round(2)
	}

	fmt.Printf("%s %s %s  K=%.4f  S=%.4f  vol=%.4f%%\n", pair, tenor, opt.Type, opt.Strike, in.Spot, in.Vol*100)
	fmt.Printf("  forward       %.6f\n", res.Forward)
	fmt.Printf("  premium       %.6f  (%.4f%% of spot)\n", res.Premium, res.PremiumPct)
	fmt.Printf("  intrinsic     %.6f   time value %.6f\n", res.Intrinsic, res.TimeValue)
	fmt.Printf("  delta %.4f  gamma %.4f  vega %.6f  theta %.6f  rho %.6f\n",
		res.Delta, res.Gamma, res.Vega, res.Theta, res.Rho)
	fmt.Printf("  cash on %.0f %s:\n", opt.Notional, pair.Base)
	fmt.Printf("    premium %s %s   delta %s %s\n", cash(res.PremiumCash), pair.Quote, cash(res.DeltaCash), pair.Base)
	fmt.Printf("    vega    %s %s   theta %s %s\n", cash(res.VegaCash), pair.Quote, cash(res.ThetaCash), pair.Quote)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "fxprice:", err)
	os.Exit(1)
}
