package ports

import (
	"context"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
	"bayesrt/domain/posterior"
	"bayesrt/domain/trial"
)

// SamplerSettings controls a posterior sampling run
type SamplerSettings struct {
	Chains int   // Number of independent chains (parallelism lives here only)
	Draws  int   // Retained draws per chain, after burn-in
	BurnIn int   // Discarded warmup draws per chain
	Seed   int64 // Base seed; per-chain streams are derived deterministically
}

// Sampler draws posterior samples for a model spec given data. The entire
// inference mechanism is delegated behind this port; the domain only reads
// the resulting sample set.
type Sampler interface {
	Sample(ctx context.Context, runID core.RunID, spec model.Spec, dist Distribution,
		obs []trial.Observation, settings SamplerSettings) (*posterior.SampleSet, error)
}
