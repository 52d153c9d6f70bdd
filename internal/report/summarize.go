// Package report turns a posterior sample set into the chapter artifacts:
// credible-interval tables, posterior-predictive overlays, a markdown/HTML
// report and an xlsx workbook.
package report

import (
	"math/rand"

	"bayesrt/domain/core"
	"bayesrt/domain/posterior"
	"bayesrt/domain/trial"
	"bayesrt/ports"
)

// CoefficientRole distinguishes the two coefficients of a parameter expression
type CoefficientRole string

const (
	RoleIntercept CoefficientRole = "intercept"
	RoleSlope     CoefficientRole = "slope"
)

// CoefficientRow is one line of the credible-interval table
type CoefficientRow struct {
	Param   core.ParamName                `json:"param"`
	Role    CoefficientRole               `json:"role"`
	Summary posterior.CoefficientSummary  `json:"summary"`
}

// ChapterReport aggregates everything the renderers consume
type ChapterReport struct {
	Title        string                 `json:"title"`
	Family       string                 `json:"family"`
	Source       string                 `json:"source"`
	TrialCount   int                    `json:"trial_count"`
	RowsRead     int                    `json:"rows_read"`
	Rejections   map[trial.RejectReason]int `json:"rejections,omitempty"`
	NoData       bool                   `json:"no_data"`
	Coefficients []CoefficientRow       `json:"coefficients,omitempty"`
	Chains       []posterior.ChainStats `json:"chains,omitempty"`
	Overlays     []Overlay              `json:"overlays,omitempty"`
	GeneratedAt  core.Timestamp         `json:"generated_at"`
}

// Summarizer builds chapter reports from posterior samples
type Summarizer struct {
	// Masses are the credible-interval levels reported per coefficient
	Masses []float64
	// PredictiveDraws is the number of posterior draws used for the
	// posterior-predictive overlay
	PredictiveDraws int
	// Bins controls overlay histogram resolution
	Bins int
}

// NewSummarizer creates a summarizer with the chapter defaults
func NewSummarizer() *Summarizer {
	return &Summarizer{
		Masses:          []float64{0.89, 0.95},
		PredictiveDraws: 200,
		Bins:            30,
	}
}

// Build assembles the report. An empty sample set produces an explicit
// NoData report rather than failing: the renderers emit a "no data" row.
func (s *Summarizer) Build(title string, ds *trial.Dataset, dist ports.Distribution,
	set *posterior.SampleSet, rng *rand.Rand) *ChapterReport {

	r := &ChapterReport{
		Title:       title,
		Family:      dist.Family(),
		Source:      ds.Source,
		TrialCount:  ds.Len(),
		RowsRead:    ds.RowsRead,
		Rejections:  ds.Rejections,
		GeneratedAt: core.Now(),
	}

	if set.IsEmpty() {
		r.NoData = true
		return r
	}

	r.Chains = set.Chains
	for _, p := range dist.Params() {
		r.Coefficients = append(r.Coefficients,
			CoefficientRow{Param: p.Name, Role: RoleIntercept, Summary: posterior.Summarize(set.Intercepts(p.Name), s.Masses...)},
			CoefficientRow{Param: p.Name, Role: RoleSlope, Summary: posterior.Summarize(set.Slopes(p.Name), s.Masses...)},
		)
	}

	r.Overlays = s.buildOverlays(ds, dist, set, rng)
	return r
}
