// Package pricer prices European FX vanillas under Garman-Kohlhagen:
// Black-Scholes generalized to a domestic/foreign rate pair, with closed-form
// Greeks. Pricing never panics or returns a Go error across the public
// boundary; domain failures come back as a tagged error Result so batch
// pricing loops stay robust to one bad input.
package pricer

import (
	"fmt"
	"math"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/utils"
)

// CallPut tags the option type.
type CallPut string

const (
	Call CallPut = "C"
	Put  CallPut = "P"
)

// Option is a single European FX vanilla to be priced. Notional is in base
// currency units; premium cash amounts come back in quote currency.
type Option struct {
	Pair     market.CurrencyPair
	Strike   float64
	Expiry   float64 // years
	Type     CallPut
	Notional float64
}

// Inputs are the market inputs to one pricing call. Vol is typically sourced
// from a surface at the option's strike and expiry.
type Inputs struct {
	Spot         float64
	DomesticRate float64
	ForeignRate  float64
	Vol          float64
}

// Status tags a pricing result.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// NumericDomainError reports inputs outside the pricing formula's domain.
type NumericDomainError struct {
	Reason string
}

func (e *NumericDomainError) Error() string {
	return "numeric domain error: " + e.Reason
}

// Result carries the premium and Greeks for one priced vanilla.
//
// Unit Greeks are per one unit of base currency; the Cash fields scale them by
// the option notional. Vega is per 1% vol move, Theta per calendar day, Rho
// per 1% move in the domestic rate.
type Result struct {
	Status Status
	Err    error

	Premium    float64 // quote-currency premium per unit of base notional
	PremiumPct float64 // premium as % of spot
	Forward    float64
	Intrinsic  float64
	TimeValue  float64

	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64

	PremiumCash float64
	DeltaCash   float64
	GammaCash   float64
	VegaCash    float64
	ThetaCash   float64
	RhoCash     float64
}

// Price values one option. It always returns; malformed inputs produce a
// Result with StatusError and a NumericDomainError cause.
func Price(opt Option, in Inputs) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = errorResult(fmt.Sprintf("pricing panic: %v", r))
		}
	}()

	if reason, ok := validate(opt, in); !ok {
		return errorResult(reason)
	}

	S, K, T := in.Spot, opt.Strike, opt.Expiry
	rd, rf, vol := in.DomesticRate, in.ForeignRate, in.Vol

	sqrtT := math.Sqrt(T)
	dfDom := math.Exp(-rd * T)
	dfFor := math.Exp(-rf * T)
	forward := S * math.Exp((rd-rf)*T)

	d1 := (math.Log(S/K) + (rd-rf+0.5*vol*vol)*T) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT

	nd1 := utils.NormCDF(d1)
	nd2 := utils.NormCDF(d2)
	pdf1 := utils.NormPDF(d1)

	res = Result{Status: StatusOK, Forward: forward}

	switch opt.Type {
	case Call:
		res.Premium = S*dfFor*nd1 - K*dfDom*nd2
		res.Delta = dfFor * nd1
		res.Theta = (-S*dfFor*pdf1*vol/(2.0*sqrtT) + rf*S*dfFor*nd1 - rd*K*dfDom*nd2) / 365.0
		res.Rho = K * T * dfDom * nd2 / 100.0
		res.Intrinsic = math.Max(S-K, 0)
	case Put:
		res.Premium = K*dfDom*utils.NormCDF(-d2) - S*dfFor*utils.NormCDF(-d1)
		res.Delta = dfFor * (nd1 - 1.0)
		res.Theta = (-S*dfFor*pdf1*vol/(2.0*sqrtT) - rf*S*dfFor*utils.NormCDF(-d1) + rd*K*dfDom*utils.NormCDF(-d2)) / 365.0
		res.Rho = -K * T * dfDom * utils.NormCDF(-d2) / 100.0
		res.Intrinsic = math.Max(K-S, 0)
	}

	res.Gamma = dfFor * pdf1 / (S * vol * sqrtT)
	res.Vega = S * dfFor * pdf1 * sqrtT / 100.0
	res.PremiumPct = res.Premium / S * 100.0
	res.TimeValue = res.Premium - res.Intrinsic

	n := opt.Notional
	res.PremiumCash = res.Premium * n
	res.DeltaCash = res.Delta * n
	res.GammaCash = res.Gamma * n
	res.VegaCash = res.Vega * n
	res.ThetaCash = res.Theta * n
	res.RhoCash = res.Rho * n

	if !finite(res.Premium) || !finite(res.Delta) || !finite(res.Gamma) {
		return errorResult("non-finite pricing output")
	}
	return res
}

func validate(opt Option, in Inputs) (string, bool) {
	switch {
	case opt.Type != Call && opt.Type != Put:
		return fmt.Sprintf("unknown option type %q", opt.Type), false
	case !finite(in.Spot) || in.Spot <= 0:
		return fmt.Sprintf("non-positive spot %g", in.Spot), false
	case !finite(opt.Strike) || opt.Strike <= 0:
		return fmt.Sprintf("non-positive strike %g", opt.Strike), false
	case !finite(opt.Expiry) || opt.Expiry <= 0:
		return fmt.Sprintf("non-positive expiry %g", opt.Expiry), false
	case !finite(in.Vol) || in.Vol <= 0:
		return fmt.Sprintf("non-positive vol %g", in.Vol), false
	case !finite(in.DomesticRate) || !finite(in.ForeignRate):
		return "non-finite rate", false
	}
	return "", true
}

func errorResult(reason string) Result {
	return Result{Status: StatusError, Err: &NumericDomainError{Reason: reason}}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
