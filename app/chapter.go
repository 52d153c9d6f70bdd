// Package app wires the chapter pipeline: load trials, resolve the model,
// draw posterior samples, render the report artifacts. One call per chapter
// run; nothing is shared between runs.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
	"bayesrt/domain/posterior"
	"bayesrt/domain/trial"
	"bayesrt/internal"
	"bayesrt/internal/errors"
	"bayesrt/internal/report"
	"bayesrt/ports"
)

// FamilyRegistry resolves a distribution family name to its adapter
type FamilyRegistry interface {
	Lookup(family string) (ports.Distribution, error)
}

// ChapterSpec describes one chapter run end to end
type ChapterSpec struct {
	Title    string
	Model    model.Spec
	Filter   trial.Filter
	Settings ports.SamplerSettings
	OutDir   string // Empty disables artifact writing
}

// RunResult carries everything a chapter run produced
type RunResult struct {
	RunID     core.RunID
	Dataset   *trial.Dataset
	Samples   *posterior.SampleSet
	Report    *report.ChapterReport
	Artifacts []string
}

// ChapterService executes chapter pipelines
type ChapterService struct {
	source     ports.TrialSource
	sampler    ports.Sampler
	registry   FamilyRegistry
	rngPort    ports.RNGPort
	summarizer *report.Summarizer
	logger     *internal.Logger
}

// NewChapterService creates a chapter service
func NewChapterService(source ports.TrialSource, sampler ports.Sampler,
	registry FamilyRegistry, rngPort ports.RNGPort, logger *internal.Logger) *ChapterService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ChapterService{
		source:     source,
		sampler:    sampler,
		registry:   registry,
		rngPort:    rngPort,
		summarizer: report.NewSummarizer(),
		logger:     logger,
	}
}

// Run executes the four pipeline stages synchronously
func (s *ChapterService) Run(ctx context.Context, spec ChapterSpec) (*RunResult, error) {
	runID := core.RunID(core.NewID())
	s.logger.Info("chapter %q run %s starting", spec.Title, runID)

	// Stage 1: data
	ds, err := s.source.Load(ctx, spec.Filter)
	if err != nil {
		return nil, errors.DataLoadError(spec.Title, err)
	}
	s.logger.Info("loaded %d trials from %s (%d rows read, %d rejected)",
		ds.Len(), ds.Source, ds.RowsRead, ds.RejectedCount())

	// Stage 2: model
	dist, err := s.registry.Lookup(spec.Model.Family)
	if err != nil {
		return nil, errors.ModelInvalid(err.Error())
	}
	if err := checkParamsMatch(spec.Model, dist); err != nil {
		return nil, errors.ModelInvalid(err.Error())
	}

	// Stage 3: sampling, delegated entirely behind the port
	set, err := s.sampler.Sample(ctx, runID, spec.Model, dist, ds.Observations, spec.Settings)
	if err != nil {
		return nil, errors.SamplingError(err)
	}
	set.DatasetHash = ds.Fingerprint
	s.logger.Info("sampled %d draws across %d chains", set.Len(), len(set.Chains))
	for _, cs := range set.Chains {
		s.logger.Debug("chain %d: acceptance %.3f, %d infeasible proposals",
			cs.Chain, cs.AcceptanceRate, cs.Infeasible)
	}

	// Stage 4: reporting
	overlayRNG := s.rngPort.SeededStream("posterior-predictive/"+runID.String(), spec.Settings.Seed)
	rep := s.summarizer.Build(spec.Title, ds, dist, set, overlayRNG)

	result := &RunResult{RunID: runID, Dataset: ds, Samples: set, Report: rep}
	if spec.OutDir != "" {
		if err := report.WriteArtifacts(rep, spec.OutDir); err != nil {
			return nil, err
		}
		xlsxPath := filepath.Join(spec.OutDir, "report.xlsx")
		if err := report.WriteWorkbook(rep, xlsxPath); err != nil {
			return nil, err
		}
		result.Artifacts = []string{
			filepath.Join(spec.OutDir, "report.md"),
			filepath.Join(spec.OutDir, "report.html"),
			xlsxPath,
		}
		s.logger.Info("wrote %d artifacts to %s", len(result.Artifacts), spec.OutDir)
	}

	return result, nil
}

// checkParamsMatch verifies the chapter's parameter declarations cover
// exactly the family's parameters. Bounds may be tightened per chapter but
// never widened past the family's convention.
func checkParamsMatch(spec model.Spec, dist ports.Distribution) error {
	declared := make(map[core.ParamName]model.BoundaryPolicy, len(spec.Params))
	for _, p := range spec.Params {
		declared[p.Name] = p.Bound
	}

	family := dist.Params()
	if len(declared) != len(family) {
		return fmt.Errorf("%w: family %s expects %d parameters, spec declares %d",
			core.ErrParamCountWrong, dist.Family(), len(family), len(declared))
	}

	for _, fp := range family {
		bound, ok := declared[fp.Name]
		if !ok {
			return core.NewUnknownParamError(fp.Name)
		}
		if fp.Bound == model.BoundStrictPositive && bound != model.BoundStrictPositive {
			return fmt.Errorf("parameter %q must keep the %s bound required by family %s",
				fp.Name, fp.Bound, dist.Family())
		}
	}
	return nil
}

// DefaultModelSpec builds a model spec from a family's own parameter
// declarations and the supplied priors, the common case for chapters that
// do not override boundary conventions.
func DefaultModelSpec(dist ports.Distribution, priors model.PriorSet) model.Spec {
	return model.Spec{
		Family: dist.Family(),
		Params: dist.Params(),
		Priors: priors,
	}
}
