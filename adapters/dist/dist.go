// Package dist implements the response-time distribution families consumed
// by the model layer. Densities use gonum's distuv where the family exists
// there; ExGaussian and Shifted Wald have no distuv counterpart and use their
// closed forms directly.
package dist

import (
	"fmt"
	"math"
	"sort"

	"bayesrt/domain/core"
	"bayesrt/ports"
)

// Family names as used in chapter specs
const (
	FamilyGaussian         = "gaussian"
	FamilyScaledGaussian   = "scaled_gaussian"
	FamilyShiftedLogNormal = "shifted_lognormal"
	FamilyExGaussian       = "exgaussian"
	FamilyShiftedWald      = "shifted_wald"
)

// Registry resolves family names to distribution adapters
type Registry struct {
	families map[string]ports.Distribution
}

// NewRegistry creates a registry with all supported families
func NewRegistry() *Registry {
	r := &Registry{families: make(map[string]ports.Distribution)}
	for _, d := range []ports.Distribution{
		NewGaussian(),
		NewScaledGaussian(),
		NewShiftedLogNormal(),
		NewExGaussian(),
		NewShiftedWald(),
	} {
		r.families[d.Family()] = d
	}
	return r
}

// Lookup resolves a family name
func (r *Registry) Lookup(family string) (ports.Distribution, error) {
	d, ok := r.families[family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownFamily, family)
	}
	return d, nil
}

// Families lists the registered family names
func (r *Registry) Families() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const logTwoPi = 1.8378770664093453 // log(2*pi)

// logPhi is the log of the standard normal CDF, clamped to -Inf when the
// tail mass underflows so a vanishing density soft-rejects instead of
// producing NaN downstream.
func logPhi(u float64) float64 {
	p := 0.5 * math.Erfc(-u/math.Sqrt2)
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}
