package utils

import "math"

// Coefficients for the Abramowitz & Stegun 26.2.17 polynomial expansion
// of the standard normal CDF. Absolute error is below 7.5e-8 on the whole axis.
const (
	normB0 = 0.2316419
	normB1 = 0.319381530
	normB2 = -0.356563782
	normB3 = 1.781477937
	normB4 = -1.821255978
	normB5 = 1.330274429
)

var invSqrt2Pi = 1.0 / math.Sqrt(2.0*math.Pi)

// NormCDF returns the standard normal cumulative distribution N(x) using the
// Abramowitz & Stegun 26.2.17 polynomial approximation.
func NormCDF(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x < 0 {
		return 1.0 - NormCDF(-x)
	}
	k := 1.0 / (1.0 + normB0*x)
	poly := k * (normB1 + k*(normB2+k*(normB3+k*(normB4+k*normB5))))
	return 1.0 - NormPDF(x)*poly
}

// NormPDF returns the standard normal density at x.
func NormPDF(x float64) float64 {
	return invSqrt2Pi * math.Exp(-0.5*x*x)
}
