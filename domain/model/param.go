package model

import (
	"fmt"
	"math"

	"bayesrt/domain/core"
)

// BoundaryPolicy declares how a composed parameter value is checked against
// its domain. Different distributions use different conventions at zero
// (a scale must be strictly positive, a shift may sit exactly at zero), so
// the policy is configured per parameter rather than globally.
type BoundaryPolicy string

const (
	BoundNone           BoundaryPolicy = "none"            // No domain restriction
	BoundStrictPositive BoundaryPolicy = "strict_positive" // Value must be > 0; exactly 0 rejects
	BoundNonNegative    BoundaryPolicy = "non_negative"    // Value must be >= 0; exactly 0 accepts
)

// Holds reports whether value satisfies the policy
func (b BoundaryPolicy) Holds(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	switch b {
	case BoundStrictPositive:
		return value > 0
	case BoundNonNegative:
		return value >= 0
	default:
		return true
	}
}

// ParamSpec declares one named distribution parameter and its domain
type ParamSpec struct {
	Name  core.ParamName `json:"name"`
	Bound BoundaryPolicy `json:"bound"`
}

// Coefficients are the intercept and slope of a linear parameter expression:
// the composed value is Intercept + Slope*predictor.
type Coefficients struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// ParamValues maps parameter names to their current coefficient draw
type ParamValues map[core.ParamName]Coefficients

// InfeasibleReason explains why a composed parameter draw was rejected
type InfeasibleReason string

const (
	ReasonBoundViolated InfeasibleReason = "bound_violated"
	ReasonNonFinite     InfeasibleReason = "non_finite"
	ReasonMissingParam  InfeasibleReason = "missing_param"
)

// Composition is the outcome of composing all parameters for one observation.
// Infeasibility is a first-class result, not an error: the caller scores the
// draw as log-likelihood -Inf and sampling continues.
type Composition struct {
	Values map[core.ParamName]float64

	feasible bool
	reason   InfeasibleReason
	param    core.ParamName
	value    float64
}

// OK reports whether every parameter satisfied its boundary policy
func (c Composition) OK() bool {
	return c.feasible
}

// Reason returns the rejection detail for an infeasible composition
func (c Composition) Reason() (core.ParamName, float64, InfeasibleReason) {
	return c.param, c.value, c.reason
}

// String renders the composition for logs and reports
func (c Composition) String() string {
	if c.feasible {
		return fmt.Sprintf("feasible (%d params)", len(c.Values))
	}
	return fmt.Sprintf("infeasible: %s = %g (%s)", c.param, c.value, c.reason)
}

// Feasible constructs a feasible composition
func Feasible(values map[core.ParamName]float64) Composition {
	return Composition{Values: values, feasible: true}
}

// Infeasible constructs a rejected composition naming the violating parameter
func Infeasible(param core.ParamName, value float64, reason InfeasibleReason) Composition {
	return Composition{feasible: false, param: param, value: value, reason: reason}
}

// Compose evaluates every declared parameter as intercept + slope*predictor
// and checks its boundary policy. The first violation short-circuits; a
// non-finite coefficient is reported as infeasible with its own reason so a
// wild proposal never leaks NaN into a density. Deterministic: identical
// inputs always produce identical compositions.
func Compose(specs []ParamSpec, values ParamValues, predictor float64) Composition {
	composed := make(map[core.ParamName]float64, len(specs))

	for _, spec := range specs {
		coef, ok := values[spec.Name]
		if !ok {
			return Infeasible(spec.Name, math.NaN(), ReasonMissingParam)
		}

		value := coef.Intercept + coef.Slope*predictor
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return Infeasible(spec.Name, value, ReasonNonFinite)
		}
		if !spec.Bound.Holds(value) {
			return Infeasible(spec.Name, value, ReasonBoundViolated)
		}

		composed[spec.Name] = value
	}

	return Feasible(composed)
}

// ValidateSpecs checks a parameter declaration list for structural problems
// before any sampling starts. Unlike composition, these are hard errors.
func ValidateSpecs(specs []ParamSpec) error {
	if len(specs) == 0 {
		return core.ErrParamCountWrong
	}

	seen := make(map[core.ParamName]bool, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("%w: empty name", core.ErrUnknownParam)
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate parameter %q", spec.Name)
		}
		seen[spec.Name] = true

		switch spec.Bound {
		case BoundNone, BoundStrictPositive, BoundNonNegative:
		default:
			return fmt.Errorf("parameter %q: unknown boundary policy %q", spec.Name, spec.Bound)
		}
	}
	return nil
}
