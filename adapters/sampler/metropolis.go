// Package sampler implements posterior sampling behind ports.Sampler. The
// inference mechanism is a seeded random-walk Metropolis algorithm: chains
// run in parallel, draws within a chain are strictly sequential, and a draw
// scored -Inf (infeasible parameters, zero-support observation, prior
// violation) is simply rejected so the chain keeps exploring.
package sampler

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
	"bayesrt/domain/posterior"
	"bayesrt/domain/trial"
	"bayesrt/ports"

	"golang.org/x/sync/errgroup"
)

// Metropolis is the random-walk Metropolis sampler adapter
type Metropolis struct {
	rngPort ports.RNGPort

	// StepScale sizes proposal jumps relative to each coefficient's prior
	// standard deviation. Around 0.1-0.5 works for the chapter models.
	StepScale float64

	// InitAttempts bounds the search for a feasible starting point
	InitAttempts int
}

// NewMetropolis creates a sampler with default tuning
func NewMetropolis(rngPort ports.RNGPort) *Metropolis {
	return &Metropolis{
		rngPort:      rngPort,
		StepScale:    0.25,
		InitAttempts: 200,
	}
}

// Sample draws posterior samples for the spec given the observations.
// Deterministic for a fixed (seed, chains, draws, burn-in) configuration.
func (m *Metropolis) Sample(ctx context.Context, runID core.RunID, spec model.Spec, dist ports.Distribution,
	obs []trial.Observation, settings ports.SamplerSettings) (*posterior.SampleSet, error) {

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model spec: %w", err)
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, core.ErrEmptyDataset
	}

	chainDraws := make([][]posterior.Draw, settings.Chains)
	chainStats := make([]posterior.ChainStats, settings.Chains)

	g, gctx := errgroup.WithContext(ctx)
	for chain := 0; chain < settings.Chains; chain++ {
		chain := chain
		g.Go(func() error {
			stream := m.rngPort.ChainStream(runID.String(), chain, settings.Seed)
			draws, stats, err := m.runChain(gctx, chain, spec, dist, obs, settings, stream)
			if err != nil {
				return fmt.Errorf("chain %d: %w", chain, err)
			}
			chainDraws[chain] = draws
			chainStats[chain] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]posterior.Draw, 0, settings.Chains*settings.Draws)
	for _, draws := range chainDraws {
		all = append(all, draws...)
	}
	if len(all) == 0 {
		return nil, core.ErrNoDraws
	}

	return &posterior.SampleSet{
		RunID:     runID,
		SpecHash:  spec.Hash(),
		Seed:      settings.Seed,
		BurnIn:    settings.BurnIn,
		Draws:     all,
		Chains:    chainStats,
		SampledAt: core.Now(),
	}, nil
}

func (m *Metropolis) runChain(ctx context.Context, chain int, spec model.Spec, dist ports.Distribution,
	obs []trial.Observation, settings ports.SamplerSettings, stream *rand.Rand) ([]posterior.Draw, posterior.ChainStats, error) {

	stats := posterior.ChainStats{Chain: chain, Seed: settings.Seed}

	current, err := m.initialValues(spec, dist, obs, stream)
	if err != nil {
		return nil, stats, err
	}
	currentLp := model.LogPosterior(spec, dist, current, obs)

	total := settings.BurnIn + settings.Draws
	draws := make([]posterior.Draw, 0, settings.Draws)

	for i := 0; i < total; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		proposal := m.propose(spec, current, stream)
		proposalLp := model.LogPosterior(spec, dist, proposal, obs)

		stats.Proposals++
		if math.IsInf(proposalLp, -1) {
			// Soft-rejected region: count it, keep the current state
			stats.Infeasible++
		} else if accept(currentLp, proposalLp, stream) {
			current = proposal
			currentLp = proposalLp
			stats.Accepted++
		}

		if i >= settings.BurnIn {
			draws = append(draws, posterior.Draw{Chain: chain, Values: cloneValues(current)})
		}
	}

	if stats.Proposals > 0 {
		stats.AcceptanceRate = float64(stats.Accepted) / float64(stats.Proposals)
	}
	return draws, stats, nil
}

// initialValues searches for a starting point with finite log-posterior.
// The first attempt sits at the prior means; later attempts jitter around
// them so a boundary-hugging prior still finds feasible ground.
func (m *Metropolis) initialValues(spec model.Spec, dist ports.Distribution,
	obs []trial.Observation, stream *rand.Rand) (model.ParamValues, error) {

	for attempt := 0; attempt < m.InitAttempts; attempt++ {
		values := make(model.ParamValues, len(spec.Params))
		for _, p := range spec.Params {
			priors := spec.Priors[p.Name]
			values[p.Name] = model.Coefficients{
				Intercept: initCoefficient(priors.Intercept, attempt, stream),
				Slope:     initCoefficient(priors.Slope, attempt, stream),
			}
		}

		if lp := model.LogPosterior(spec, dist, values, obs); !math.IsInf(lp, -1) {
			return values, nil
		}
	}

	return nil, fmt.Errorf("%w: no feasible starting point after %d attempts", core.ErrNoDraws, m.InitAttempts)
}

func initCoefficient(p model.Prior, attempt int, stream *rand.Rand) float64 {
	value := p.Mu
	if attempt > 0 {
		value += p.Sigma * stream.NormFloat64()
	}
	if p.Kind == model.PriorTruncatedNormal && value <= 0 {
		value = math.Abs(value)
		if value == 0 {
			value = p.Sigma / 10
		}
	}
	return value
}

// propose jitters every coefficient. Parameters are walked in spec order so
// the consumed random stream (and therefore the whole run) is reproducible.
func (m *Metropolis) propose(spec model.Spec, current model.ParamValues, stream *rand.Rand) model.ParamValues {
	next := make(model.ParamValues, len(current))
	for _, p := range spec.Params {
		coef := current[p.Name]
		priors := spec.Priors[p.Name]
		next[p.Name] = model.Coefficients{
			Intercept: coef.Intercept + m.StepScale*priors.Intercept.Sigma*stream.NormFloat64(),
			Slope:     coef.Slope + m.StepScale*priors.Slope.Sigma*stream.NormFloat64(),
		}
	}
	return next
}

func accept(currentLp, proposalLp float64, stream *rand.Rand) bool {
	if proposalLp >= currentLp {
		return true
	}
	return math.Log(stream.Float64()) < proposalLp-currentLp
}

func cloneValues(values model.ParamValues) model.ParamValues {
	out := make(model.ParamValues, len(values))
	for name, coef := range values {
		out[name] = coef
	}
	return out
}

func validateSettings(s ports.SamplerSettings) error {
	if s.Chains < 1 {
		return fmt.Errorf("chains must be >= 1, got %d", s.Chains)
	}
	if s.Draws < 1 {
		return fmt.Errorf("draws must be >= 1, got %d", s.Draws)
	}
	if s.BurnIn < 0 {
		return fmt.Errorf("burn-in must be >= 0, got %d", s.BurnIn)
	}
	return nil
}
