package pricer_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/fxsmile/market"
	"github.com/meenmo/fxsmile/pricer"
)

var eurusd = market.MustPair("EURUSD")

// gkReference prices with gonum's erf-based normal CDF, independent of the
// polynomial approximation used by the pricer.
func gkReference(cp pricer.CallPut, S, K, T, rd, rf, vol float64) (premium, delta float64) {
	d1 := (math.Log(S/K) + (rd-rf+0.5*vol*vol)*T) / (vol * math.Sqrt(T))
	d2 := d1 - vol*math.Sqrt(T)
	dfDom := math.Exp(-rd * T)
	dfFor := math.Exp(-rf * T)
	n := distuv.UnitNormal
	if cp == pricer.Call {
		return S*dfFor*n.CDF(d1) - K*dfDom*n.CDF(d2), dfFor * n.CDF(d1)
	}
	return K*dfDom*n.CDF(-d2) - S*dfFor*n.CDF(-d1), dfFor * (n.CDF(d1) - 1.0)
}

// EURUSD 1M ATM call: S=K=1.1742, T=1/12, rd=4.96%, rf=1.90%, vol=7.34%.
func TestPrice_ATMCallAgainstReference(t *testing.T) {
	t.Parallel()

	const (
		S   = 1.1742
		K   = 1.1742
		T   = 1.0 / 12.0
		rd  = 0.0496
		rf  = 0.0190
		vol = 0.0734
	)
	opt := pricer.Option{Pair: eurusd, Strike: K, Expiry: T, Type: pricer.Call, Notional: 1_000_000}
	res := pricer.Price(opt, pricer.Inputs{Spot: S, DomesticRate: rd, ForeignRate: rf, Vol: vol})
	if res.Status != pricer.StatusOK {
		t.Fatalf("Price failed: %v", res.Err)
	}

	wantPremium, wantDelta := gkReference(pricer.Call, S, K, T, rd, rf, vol)
	if math.Abs(res.Premium-wantPremium) > 1e-4 {
		t.Fatalf("premium = %.8f, want %.8f", res.Premium, wantPremium)
	}
	if math.Abs(res.Delta-wantDelta) > 1e-4 {
		t.Fatalf("delta = %.8f, want %.8f", res.Delta, wantDelta)
	}
	// ATM-spot with rd > rf puts d1 = (rd-rf+vol²/2)√T/vol above zero, so the
	// call delta exceeds e^{-rf T}/2.
	if res.Delta <= math.Exp(-rf*T)*0.5 {
		t.Fatalf("ATM-spot delta %.6f, want above %.6f", res.Delta, math.Exp(-rf*T)*0.5)
	}
	if math.Abs(res.Forward-S*math.Exp((rd-rf)*T)) > 1e-12 {
		t.Fatalf("forward = %.10f, want covered interest parity", res.Forward)
	}
}

// Call - Put = S*e^{-rf T} - K*e^{-rd T} for identical strike/expiry/vol.
func TestPrice_PutCallParity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		S, K, T, rd, rf, vol float64
	}{
		{1.1742, 1.1742, 1.0 / 12.0, 0.0496, 0.0190, 0.0734},
		{1.1742, 1.2500, 0.25, 0.0496, 0.0190, 0.0812},
		{145.30, 140.00, 1.0, 0.0050, 0.0496, 0.1150},
		{0.6410, 0.6000, 0.5, 0.0435, 0.0496, 0.0990},
	}
	for _, tc := range cases {
		in := pricer.Inputs{Spot: tc.S, DomesticRate: tc.rd, ForeignRate: tc.rf, Vol: tc.vol}
		call := pricer.Price(pricer.Option{Pair: eurusd, Strike: tc.K, Expiry: tc.T, Type: pricer.Call, Notional: 1}, in)
		put := pricer.Price(pricer.Option{Pair: eurusd, Strike: tc.K, Expiry: tc.T, Type: pricer.Put, Notional: 1}, in)
		if call.Status != pricer.StatusOK || put.Status != pricer.StatusOK {
			t.Fatalf("pricing failed: %v / %v", call.Err, put.Err)
		}

		lhs := call.Premium - put.Premium
		rhs := tc.S*math.Exp(-tc.rf*tc.T) - tc.K*math.Exp(-tc.rd*tc.T)
		if math.Abs(lhs-rhs) > 1e-7 {
			t.Fatalf("parity violated for K=%g T=%g: C-P=%.10f, want %.10f", tc.K, tc.T, lhs, rhs)
		}
	}
}

func TestPrice_VegaMatchesFiniteDifference(t *testing.T) {
	t.Parallel()

	opt := pricer.Option{Pair: eurusd, Strike: 1.20, Expiry: 0.25, Type: pricer.Call, Notional: 1}
	in := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190, Vol: 0.08}

	res := pricer.Price(opt, in)
	if res.Status != pricer.StatusOK {
		t.Fatalf("Price failed: %v", res.Err)
	}

	const h = 1e-5
	up, down := in, in
	up.Vol += h
	down.Vol -= h
	fd := (pricer.Price(opt, up).Premium - pricer.Price(opt, down).Premium) / (2 * h) / 100.0

	if math.Abs(res.Vega-fd) > 1e-6 {
		t.Fatalf("vega = %.10f, finite difference %.10f", res.Vega, fd)
	}
}

func TestPrice_GammaMatchesFiniteDifference(t *testing.T) {
	t.Parallel()

	opt := pricer.Option{Pair: eurusd, Strike: 1.18, Expiry: 0.25, Type: pricer.Put, Notional: 1}
	in := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190, Vol: 0.08}

	res := pricer.Price(opt, in)
	if res.Status != pricer.StatusOK {
		t.Fatalf("Price failed: %v", res.Err)
	}

	const h = 1e-3
	up, down := in, in
	up.Spot += h
	down.Spot -= h
	fd := (pricer.Price(opt, up).Delta - pricer.Price(opt, down).Delta) / (2 * h)

	if math.Abs(res.Gamma-fd) > 1e-2 {
		t.Fatalf("gamma = %.8f, finite difference %.8f", res.Gamma, fd)
	}
}

func TestPrice_IntrinsicAndTimeValue(t *testing.T) {
	t.Parallel()

	in := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190, Vol: 0.0734}
	itm := pricer.Price(pricer.Option{Pair: eurusd, Strike: 1.10, Expiry: 0.25, Type: pricer.Call, Notional: 1}, in)
	if itm.Status != pricer.StatusOK {
		t.Fatalf("Price failed: %v", itm.Err)
	}
	if math.Abs(itm.Intrinsic-(1.1742-1.10)) > 1e-12 {
		t.Fatalf("intrinsic = %.8f, want %.8f", itm.Intrinsic, 1.1742-1.10)
	}
	if math.Abs(itm.Premium-itm.Intrinsic-itm.TimeValue) > 1e-12 {
		t.Fatal("premium != intrinsic + time value")
	}

	otm := pricer.Price(pricer.Option{Pair: eurusd, Strike: 1.30, Expiry: 0.25, Type: pricer.Call, Notional: 1}, in)
	if otm.Intrinsic != 0 {
		t.Fatalf("OTM intrinsic = %g, want 0", otm.Intrinsic)
	}
}

func TestPrice_NotionalScaling(t *testing.T) {
	t.Parallel()

	in := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190, Vol: 0.0734}
	opt := pricer.Option{Pair: eurusd, Strike: 1.1742, Expiry: 1.0 / 12.0, Type: pricer.Call, Notional: 10_000_000}

	res := pricer.Price(opt, in)
	if res.Status != pricer.StatusOK {
		t.Fatalf("Price failed: %v", res.Err)
	}
	if math.Abs(res.PremiumCash-res.Premium*opt.Notional) > 1e-6 {
		t.Fatalf("premium cash %.6f, want %.6f", res.PremiumCash, res.Premium*opt.Notional)
	}
	if math.Abs(res.VegaCash-res.Vega*opt.Notional) > 1e-6 {
		t.Fatalf("vega cash %.6f, want %.6f", res.VegaCash, res.Vega*opt.Notional)
	}
}

// Bad inputs must come back as tagged error results, never as a panic.
func TestPrice_DomainErrorsNeverPanic(t *testing.T) {
	t.Parallel()

	good := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190, Vol: 0.0734}
	cases := []struct {
		name string
		opt  pricer.Option
		in   pricer.Inputs
	}{
		{"zero spot", pricer.Option{Pair: eurusd, Strike: 1.18, Expiry: 0.25, Type: pricer.Call}, pricer.Inputs{Spot: 0, Vol: 0.07}},
		{"negative strike", pricer.Option{Pair: eurusd, Strike: -1, Expiry: 0.25, Type: pricer.Call}, good},
		{"zero expiry", pricer.Option{Pair: eurusd, Strike: 1.18, Expiry: 0, Type: pricer.Put}, good},
		{"zero vol", pricer.Option{Pair: eurusd, Strike: 1.18, Expiry: 0.25, Type: pricer.Put}, pricer.Inputs{Spot: 1.17, Vol: 0}},
		{"nan spot", pricer.Option{Pair: eurusd, Strike: 1.18, Expiry: 0.25, Type: pricer.Call}, pricer.Inputs{Spot: math.NaN(), Vol: 0.07}},
		{"bad type", pricer.Option{Pair: eurusd, Strike: 1.18, Expiry: 0.25, Type: "X"}, good},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := pricer.Price(tc.opt, tc.in)
			if res.Status != pricer.StatusError {
				t.Fatalf("status = %q, want error", res.Status)
			}
			var domain *pricer.NumericDomainError
			if !errors.As(res.Err, &domain) {
				t.Fatalf("err = %v, want NumericDomainError", res.Err)
			}
		})
	}
}

func TestImpliedVol_RoundTrip(t *testing.T) {
	t.Parallel()

	opt := pricer.Option{Pair: eurusd, Strike: 1.20, Expiry: 0.25, Type: pricer.Call, Notional: 1}
	in := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190, Vol: 0.0812}

	res := pricer.Price(opt, in)
	if res.Status != pricer.StatusOK {
		t.Fatalf("Price failed: %v", res.Err)
	}

	got, err := pricer.ImpliedVol(opt, in, res.Premium)
	if err != nil {
		t.Fatalf("ImpliedVol error: %v", err)
	}
	if math.Abs(got-in.Vol) > 1e-8 {
		t.Fatalf("implied vol = %.10f, want %.10f", got, in.Vol)
	}
}

func TestImpliedVol_RejectsBadPremium(t *testing.T) {
	t.Parallel()

	opt := pricer.Option{Pair: eurusd, Strike: 1.20, Expiry: 0.25, Type: pricer.Call, Notional: 1}
	in := pricer.Inputs{Spot: 1.1742, DomesticRate: 0.0496, ForeignRate: 0.0190}
	if _, err := pricer.ImpliedVol(opt, in, -0.01); err == nil {
		t.Fatal("expected error for negative premium")
	}
}
