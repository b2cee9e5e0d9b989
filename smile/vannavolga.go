// Package smile reconstructs a continuous FX implied-volatility smile from the
// three quoted anchor instruments (ATM, risk reversal, butterfly) using the
// Vanna-Volga method.
//
// Market convention used throughout, with RR and BF as quoted decimals:
//
//	vol(put wing)  = ATM + BF - RR/2
//	vol(call wing) = ATM + BF + RR/2
//
// so that RR = vol(call) - vol(put) and BF = (vol(call)+vol(put))/2 - ATM
// round-trip exactly from the fitted curve.
package smile

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/fxsmile/market"
)

// Curve is the fitted smile for one (pair, tenor) quote: a pure function from
// strike to implied vol, valid over the whole strike axis. A Curve holds no
// mutable state and may be shared across goroutines.
type Curve struct {
	pair  market.CurrencyPair
	tenor market.Tenor

	forward float64
	expiry  float64 // years
	atmVol  float64
	bucket  int

	// Anchors in log-moneyness x = ln(K/F); the ATM anchor sits at x = 0.
	xPut, xCall     float64
	volPut, volCall float64

	wingFactor float64
	bounds     Bounds
}

// Build fits a Vanna-Volga smile to one quote.
//
// The forward is computed by covered interest parity, the wing strikes by the
// single-pass ATM-vol delta mapping K = F*exp(∓z*σ√T + σ²T/2) with
// z = Φ⁻¹(bucket/100), and the anchors interpolated with quadratic Lagrange
// weights in log-moneyness. Beyond the wings the smile extends linearly,
// scaled by the wing-to-ATM vol gap, and the result is clamped to the
// configured per-pair bounds.
func Build(q market.MarketQuote, cfg Config) (*Curve, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	rr, okRR := q.RRByDelta[cfg.DeltaBucket]
	bf, okBF := q.BFByDelta[cfg.DeltaBucket]
	if !okRR || !okBF {
		return nil, &market.InvalidQuoteError{
			Pair: q.Pair, Tenor: q.Tenor,
			Reason: "no RR/BF quote at the configured delta bucket",
		}
	}

	T := q.Tenor.Years
	forward := Forward(q.Spot, q.DomesticRate, q.ForeignRate, T)

	z := -distuv.UnitNormal.Quantile(float64(cfg.DeltaBucket) / 100.0)
	sig := q.ATMVol * math.Sqrt(T)
	drift := 0.5 * q.ATMVol * q.ATMVol * T
	kPut := forward * math.Exp(-z*sig+drift)
	kCall := forward * math.Exp(z*sig+drift)

	if kPut >= forward || kCall <= forward {
		return nil, &DegenerateSmileError{
			Pair: q.Pair, Tenor: q.Tenor,
			KPut: kPut, KCall: kCall, Forward: forward,
		}
	}

	return &Curve{
		pair:       q.Pair,
		tenor:      q.Tenor,
		forward:    forward,
		expiry:     T,
		atmVol:     q.ATMVol,
		bucket:     cfg.DeltaBucket,
		xPut:       math.Log(kPut / forward),
		xCall:      math.Log(kCall / forward),
		volPut:     q.ATMVol + bf - rr/2.0,
		volCall:    q.ATMVol + bf + rr/2.0,
		wingFactor: cfg.WingExtrapolationFactor,
		bounds:     cfg.BoundsFor(q.Pair),
	}, nil
}

// Forward is the covered-interest-parity forward S*exp((rd-rf)*T).
func Forward(spot, domesticRate, foreignRate, years float64) float64 {
	return spot * math.Exp((domesticRate-foreignRate)*years)
}

// VolAt returns the implied vol for a strike, clamped to the configured bounds.
func (c *Curve) VolAt(strike float64) float64 {
	if strike <= 0 || math.IsNaN(strike) {
		// Far-left wing limit: the extrapolated put wing hits the ceiling.
		return c.clamp(c.bounds.Ceiling)
	}
	x := math.Log(strike / c.forward)

	var vol float64
	switch {
	case x < c.xPut:
		vol = c.volPut + c.wingFactor*(c.volPut-c.atmVol)*(c.xPut-x)/(-c.xPut)
	case x > c.xCall:
		vol = c.volCall + c.wingFactor*(c.volCall-c.atmVol)*(x-c.xCall)/c.xCall
	default:
		vol = c.lagrange(x)
	}
	return c.clamp(vol)
}

// lagrange evaluates the quadratic through (xPut, volPut), (0, atmVol),
// (xCall, volCall) at x.
func (c *Curve) lagrange(x float64) float64 {
	xP, xC := c.xPut, c.xCall
	lP := x * (x - xC) / (xP * (xP - xC))
	lA := (x - xP) * (x - xC) / (xP * xC)
	lC := (x - xP) * x / ((xC - xP) * xC)
	return lP*c.volPut + lA*c.atmVol + lC*c.volCall
}

func (c *Curve) clamp(vol float64) float64 {
	if vol < c.bounds.Floor {
		return c.bounds.Floor
	}
	if vol > c.bounds.Ceiling {
		return c.bounds.Ceiling
	}
	return vol
}

// StrikeForDelta maps a put-axis delta in (0, 1) to a strike with the same
// single-pass ATM-vol convention used for the wing anchors: low deltas land on
// the put wing, delta near 0.5 by the forward, high deltas on the call wing.
func (c *Curve) StrikeForDelta(delta float64) float64 {
	z := distuv.UnitNormal.Quantile(delta)
	return c.forward * math.Exp(z*c.atmVol*math.Sqrt(c.expiry)+0.5*c.atmVol*c.atmVol*c.expiry)
}

// Anchors returns the three fitted anchor vols (put wing, ATM, call wing).
func (c *Curve) Anchors() (volPut, volATM, volCall float64) {
	return c.volPut, c.atmVol, c.volCall
}

// WingStrikes returns the put- and call-wing anchor strikes.
func (c *Curve) WingStrikes() (kPut, kCall float64) {
	return c.forward * math.Exp(c.xPut), c.forward * math.Exp(c.xCall)
}

// Forward returns the covered-interest-parity forward for this smile.
func (c *Curve) Forward() float64 {
	return c.forward
}

// Pair returns the smile's currency pair.
func (c *Curve) Pair() market.CurrencyPair {
	return c.pair
}

// Tenor returns the smile's tenor.
func (c *Curve) Tenor() market.Tenor {
	return c.tenor
}

// Expiry returns the time to expiry in years.
func (c *Curve) Expiry() float64 {
	return c.expiry
}

// DeltaBucket returns the quoted wing bucket the smile was fitted on.
func (c *Curve) DeltaBucket() int {
	return c.bucket
}
