package posterior

import (
	"bayesrt/domain/core"
	"bayesrt/domain/model"
)

// Draw is one posterior sample of the full coefficient vector, tagged with
// the chain that produced it. Draws are read-only once recorded.
type Draw struct {
	Chain  int               `json:"chain"`
	Values model.ParamValues `json:"values"`
}

// ChainStats records per-chain sampler diagnostics
type ChainStats struct {
	Chain          int     `json:"chain"`
	Seed           int64   `json:"seed"`
	Proposals      int     `json:"proposals"`
	Accepted       int     `json:"accepted"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	Infeasible     int     `json:"infeasible"` // Proposals rejected by domain constraints alone
}

// SampleSet is the ordered sequence of posterior draws from all chains plus
// run provenance. Downstream reporting only reads it, never mutates it.
type SampleSet struct {
	RunID       core.RunID       `json:"run_id"`
	SpecHash    core.SpecHash    `json:"spec_hash"`
	DatasetHash core.DatasetHash `json:"dataset_hash"`
	Seed        int64            `json:"seed"`
	BurnIn      int              `json:"burn_in"`
	Draws       []Draw           `json:"draws"`
	Chains      []ChainStats     `json:"chains"`
	SampledAt   core.Timestamp   `json:"sampled_at"`
}

// Len returns the number of retained draws
func (s *SampleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Draws)
}

// IsEmpty reports whether the set holds any draws at all
func (s *SampleSet) IsEmpty() bool {
	return s.Len() == 0
}

// Intercepts extracts the intercept trace for one parameter
func (s *SampleSet) Intercepts(name core.ParamName) []float64 {
	out := make([]float64, 0, s.Len())
	for _, d := range s.Draws {
		if coef, ok := d.Values[name]; ok {
			out = append(out, coef.Intercept)
		}
	}
	return out
}

// Slopes extracts the slope trace for one parameter
func (s *SampleSet) Slopes(name core.ParamName) []float64 {
	out := make([]float64, 0, s.Len())
	for _, d := range s.Draws {
		if coef, ok := d.Values[name]; ok {
			out = append(out, coef.Slope)
		}
	}
	return out
}
