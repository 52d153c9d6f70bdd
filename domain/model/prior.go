package model

import (
	"fmt"
	"math"

	"bayesrt/domain/core"

	"gonum.org/v1/gonum/stat/distuv"
)

// PriorKind identifies the prior family for a single coefficient
type PriorKind string

const (
	PriorNormal          PriorKind = "normal"
	PriorTruncatedNormal PriorKind = "truncated_normal" // Normal truncated below at zero
)

// Prior specifies the prior for one coefficient (an intercept or a slope)
type Prior struct {
	Kind  PriorKind `json:"kind"`
	Mu    float64   `json:"mu"`
	Sigma float64   `json:"sigma"`
}

// CoefficientPriors pairs intercept and slope priors for a named parameter
type CoefficientPriors struct {
	Intercept Prior `json:"intercept"`
	Slope     Prior `json:"slope"`
}

// PriorSet maps parameter names to coefficient priors
type PriorSet map[core.ParamName]CoefficientPriors

// LogProb evaluates the prior log-density at x. Values outside the prior's
// support score -Inf, consistent with the soft-reject contract used for
// composed parameters.
func (p Prior) LogProb(x float64) float64 {
	if math.IsNaN(x) {
		return math.Inf(-1)
	}

	dist := distuv.Normal{Mu: p.Mu, Sigma: p.Sigma}

	switch p.Kind {
	case PriorNormal:
		return dist.LogProb(x)
	case PriorTruncatedNormal:
		if x <= 0 {
			return math.Inf(-1)
		}
		// Renormalize by the mass above zero
		tailMass := 1 - dist.CDF(0)
		if tailMass <= 0 {
			return math.Inf(-1)
		}
		return dist.LogProb(x) - math.Log(tailMass)
	default:
		return math.Inf(-1)
	}
}

// Validate checks the prior for structural problems
func (p Prior) Validate() error {
	switch p.Kind {
	case PriorNormal, PriorTruncatedNormal:
	default:
		return fmt.Errorf("%w: unknown kind %q", core.ErrInvalidPrior, p.Kind)
	}
	if p.Sigma <= 0 || math.IsNaN(p.Sigma) || math.IsInf(p.Sigma, 0) {
		return fmt.Errorf("%w: sigma must be positive and finite, got %g", core.ErrInvalidPrior, p.Sigma)
	}
	if math.IsNaN(p.Mu) || math.IsInf(p.Mu, 0) {
		return fmt.Errorf("%w: mu must be finite, got %g", core.ErrInvalidPrior, p.Mu)
	}
	return nil
}

// Validate checks every prior in the set against the declared parameters
func (ps PriorSet) Validate(specs []ParamSpec) error {
	for _, spec := range specs {
		cp, ok := ps[spec.Name]
		if !ok {
			return fmt.Errorf("%w: no prior for parameter %q", core.ErrInvalidPrior, spec.Name)
		}
		if err := cp.Intercept.Validate(); err != nil {
			return fmt.Errorf("parameter %q intercept: %w", spec.Name, err)
		}
		if err := cp.Slope.Validate(); err != nil {
			return fmt.Errorf("parameter %q slope: %w", spec.Name, err)
		}
	}
	return nil
}

// LogProb sums coefficient prior log-densities for a full draw
func (ps PriorSet) LogProb(values ParamValues) float64 {
	total := 0.0
	for name, cp := range ps {
		coef, ok := values[name]
		if !ok {
			return math.Inf(-1)
		}
		total += cp.Intercept.LogProb(coef.Intercept)
		total += cp.Slope.LogProb(coef.Slope)
		if math.IsInf(total, -1) {
			return math.Inf(-1)
		}
	}
	return total
}
