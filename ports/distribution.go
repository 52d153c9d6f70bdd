package ports

import (
	"math/rand"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
)

// Distribution is the external-capability boundary for response-time
// distribution families: given composed parameter values, produce a
// log-density or draw simulated response times. The core never implements
// density math itself; adapters do.
type Distribution interface {
	model.Scorer

	// Family returns the registry name, e.g. "shifted_wald"
	Family() string

	// Params declares the parameters this family expects, with each one's
	// default boundary convention
	Params() []model.ParamSpec

	// Rand draws one simulated response time under composed parameters.
	// Callers must only pass parameter values a feasible composition
	// produced.
	Rand(params map[core.ParamName]float64, rng *rand.Rand) float64
}
