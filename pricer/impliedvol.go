package pricer

import (
	"fmt"
	"math"
)

// Newton-Raphson parameters for the implied-vol solve.
const (
	impliedVolTolerance = 1e-10
	impliedVolMaxIter   = 100
	impliedVolGuess     = 0.20
	impliedVolMin       = 1e-4
	impliedVolMax       = 5.0
)

// ImpliedVol solves for the vol that reprices the option to the given
// quote-currency premium (per unit of base notional), by Newton-Raphson on
// vega with a damped, clamped step.
func ImpliedVol(opt Option, in Inputs, premium float64) (float64, error) {
	if premium <= 0 || math.IsNaN(premium) || math.IsInf(premium, 0) {
		return 0, fmt.Errorf("ImpliedVol: non-positive premium %g", premium)
	}

	vol := impliedVolGuess
	for iter := 0; iter < impliedVolMaxIter; iter++ {
		in.Vol = vol
		res := Price(opt, in)
		if res.Status != StatusOK {
			return 0, fmt.Errorf("ImpliedVol: %w", res.Err)
		}

		diff := res.Premium - premium
		if math.Abs(diff) < impliedVolTolerance {
			return vol, nil
		}

		vega := res.Vega * 100.0 // per unit vol, not per 1%
		if math.Abs(vega) < 1e-12 {
			break
		}

		step := diff / vega
		// Damping: never move by more than half the current guess.
		if math.Abs(step) > 0.5*vol {
			step = 0.5 * vol * sign(step)
		}
		vol -= step

		if vol < impliedVolMin {
			vol = impliedVolMin
		}
		if vol > impliedVolMax {
			vol = impliedVolMax
		}
	}
	return 0, fmt.Errorf("ImpliedVol: no convergence after %d iterations", impliedVolMaxIter)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1.0
	}
	return 1.0
}
