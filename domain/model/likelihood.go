package model

import (
	"math"

	"bayesrt/domain/core"
	"bayesrt/domain/trial"
)

// Scorer evaluates the log-density of one response time under fully composed
// parameter values. A log-density of -Inf means the observation is outside
// the distribution's support for those parameters (e.g. an RT at or below a
// shift); that is a valid result, not an error.
type Scorer interface {
	LogProb(params map[core.ParamName]float64, rt float64) float64
}

// Spec ties together everything needed to score a coefficient draw: the
// parameter declarations, their priors, and the distribution family name the
// adapter layer resolves to a Scorer.
type Spec struct {
	Family string      `json:"family"`
	Params []ParamSpec `json:"params"`
	Priors PriorSet    `json:"priors"`
}

// Validate checks the spec before sampling begins
func (s Spec) Validate() error {
	if s.Family == "" {
		return core.ErrUnknownFamily
	}
	if err := ValidateSpecs(s.Params); err != nil {
		return err
	}
	return s.Priors.Validate(s.Params)
}

// Hash fingerprints the spec for run provenance
func (s Spec) Hash() core.SpecHash {
	parts := []string{s.Family}
	for _, p := range s.Params {
		parts = append(parts, string(p.Name), string(p.Bound))
	}
	return core.ComputeSpecHash(parts...)
}

// LogLikelihood sums per-observation log-densities for a coefficient draw.
// Any infeasible composition or zero-support observation short-circuits to
// -Inf: the draw is an infinitely improbable region the sampler will reject,
// never a fatal condition.
func LogLikelihood(spec Spec, scorer Scorer, values ParamValues, obs []trial.Observation) float64 {
	total := 0.0

	for i := range obs {
		comp := Compose(spec.Params, values, obs[i].ConditionIndex)
		if !comp.OK() {
			return math.Inf(-1)
		}

		lp := scorer.LogProb(comp.Values, obs[i].RT)
		if math.IsInf(lp, -1) || math.IsNaN(lp) {
			return math.Inf(-1)
		}
		total += lp
	}

	return total
}

// LogPosterior combines the prior and the likelihood for one draw
func LogPosterior(spec Spec, scorer Scorer, values ParamValues, obs []trial.Observation) float64 {
	prior := spec.Priors.LogProb(values)
	if math.IsInf(prior, -1) {
		return math.Inf(-1)
	}
	like := LogLikelihood(spec, scorer, values, obs)
	if math.IsInf(like, -1) {
		return math.Inf(-1)
	}
	return prior + like
}
