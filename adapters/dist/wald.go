package dist

import (
	"math"
	"math/rand"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
)

// ShiftedWald models response times as the first-passage time of a single
// evidence accumulator: drift rate nu toward threshold alpha, plus a fixed
// non-decision time. The first-passage time is inverse-Gaussian distributed
// with mean alpha/nu and shape alpha^2; distuv has no inverse-Gaussian
// family, so the closed form is computed here.
type ShiftedWald struct{}

// NewShiftedWald creates a ShiftedWald family adapter
func NewShiftedWald() *ShiftedWald {
	return &ShiftedWald{}
}

// Family returns the registry name
func (d *ShiftedWald) Family() string {
	return FamilyShiftedWald
}

// Params declares drift and threshold (strictly positive: a zero or negative
// drift never reaches the threshold) and ndt (non-negative by convention)
func (d *ShiftedWald) Params() []model.ParamSpec {
	return []model.ParamSpec{
		{Name: "drift", Bound: model.BoundStrictPositive},
		{Name: "threshold", Bound: model.BoundStrictPositive},
		{Name: "ndt", Bound: model.BoundNonNegative},
	}
}

// LogProb evaluates the shifted Wald log-density at rt:
//
//	log f(t) = log(alpha) - 0.5*log(2 pi t^3) - (alpha - nu t)^2 / (2t)
//
// with t = rt - ndt. Response times at or below the non-decision time have
// zero likelihood.
func (d *ShiftedWald) LogProb(params map[core.ParamName]float64, rt float64) float64 {
	drift := params["drift"]
	threshold := params["threshold"]
	if drift <= 0 || threshold <= 0 {
		return math.Inf(-1)
	}

	t := rt - params["ndt"]
	if t <= 0 {
		return math.Inf(-1)
	}

	dev := threshold - drift*t
	lp := math.Log(threshold) - 0.5*(logTwoPi+3*math.Log(t)) - dev*dev/(2*t)

	if math.IsNaN(lp) {
		return math.Inf(-1)
	}
	return lp
}

// Rand draws one simulated response time using the Michael-Schucany-Haas
// transformation for inverse-Gaussian variates, then adds the shift.
func (d *ShiftedWald) Rand(params map[core.ParamName]float64, rng *rand.Rand) float64 {
	drift := params["drift"]
	threshold := params["threshold"]

	mean := threshold / drift
	shape := threshold * threshold

	nu := rng.NormFloat64()
	y := nu * nu
	x := mean + mean*mean*y/(2*shape) - (mean/(2*shape))*math.Sqrt(4*mean*shape*y+mean*mean*y*y)

	if rng.Float64() > mean/(mean+x) {
		x = mean * mean / x
	}

	return params["ndt"] + x
}
