package posterior

import (
	"math"

	"github.com/montanaflynn/stats"
)

// CredibleInterval is an equal-tailed posterior interval at the given mass
type CredibleInterval struct {
	Mass  float64 `json:"mass"` // e.g. 0.89, 0.95
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// CoefficientSummary describes the marginal posterior of one coefficient
type CoefficientSummary struct {
	Mean      float64            `json:"mean"`
	Median    float64            `json:"median"`
	StdDev    float64            `json:"std_dev"`
	Intervals []CredibleInterval `json:"intervals"`
	// ProbPositive is the posterior mass above zero, useful for reading
	// directional claims off a slope without a separate test.
	ProbPositive float64 `json:"prob_positive"`
}

// NoData marks a summary computed from an empty trace. Callers render an
// explicit "no data" row instead of an undefined interval.
func (c CoefficientSummary) NoData() bool {
	return math.IsNaN(c.Mean)
}

// Summarize computes an equal-tailed summary of one coefficient trace.
// An empty trace produces a NoData summary, never a crash or NaN intervals
// masquerading as results.
func Summarize(trace []float64, masses ...float64) CoefficientSummary {
	if len(masses) == 0 {
		masses = []float64{0.89, 0.95}
	}

	if len(trace) == 0 {
		return CoefficientSummary{Mean: math.NaN(), Median: math.NaN(), StdDev: math.NaN()}
	}

	mean, _ := stats.Mean(trace)
	median, _ := stats.Median(trace)
	sd, _ := stats.StandardDeviationSample(trace)

	positive := 0
	for _, v := range trace {
		if v > 0 {
			positive++
		}
	}

	intervals := make([]CredibleInterval, 0, len(masses))
	for _, mass := range masses {
		if mass <= 0 || mass >= 1 {
			mass = 0.95
		}
		tail := (1 - mass) / 2 * 100
		lower, errL := stats.Percentile(trace, tail)
		upper, errU := stats.Percentile(trace, 100-tail)
		if errL != nil || errU != nil {
			// Single-draw trace: percentile degenerates to the point itself
			lower, upper = trace[0], trace[0]
		}
		intervals = append(intervals, CredibleInterval{Mass: mass, Lower: lower, Upper: upper})
	}

	return CoefficientSummary{
		Mean:         mean,
		Median:       median,
		StdDev:       sd,
		Intervals:    intervals,
		ProbPositive: float64(positive) / float64(len(trace)),
	}
}
