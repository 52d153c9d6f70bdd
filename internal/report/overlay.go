package report

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"bayesrt/domain/model"
	"bayesrt/domain/posterior"
	"bayesrt/domain/trial"
	"bayesrt/ports"
)

// Bin is one histogram cell on the density scale
type Bin struct {
	Center  float64 `json:"center"`
	Density float64 `json:"density"`
}

// Histogram is a binned density estimate over a fixed range
type Histogram struct {
	Bins []Bin `json:"bins"`
}

// Overlay compares empirical and posterior-predictive RT densities for one
// condition: the posterior-predictive check of the chapter plots.
type Overlay struct {
	Condition string    `json:"condition"`
	Predictor float64   `json:"predictor"`
	Empirical Histogram `json:"empirical"`
	Predicted Histogram `json:"predicted"`
}

// NewHistogram bins data into a density estimate over [min, max]
func NewHistogram(data []float64, bins int, min, max float64) Histogram {
	if bins < 1 || len(data) == 0 || max <= min {
		return Histogram{}
	}

	width := (max - min) / float64(bins)
	counts := make([]int, bins)
	total := 0
	for _, v := range data {
		if v < min || v > max {
			continue
		}
		idx := int((v - min) / width)
		if idx == bins {
			idx = bins - 1
		}
		counts[idx]++
		total++
	}
	if total == 0 {
		return Histogram{}
	}

	h := Histogram{Bins: make([]Bin, bins)}
	for i, c := range counts {
		h.Bins[i] = Bin{
			Center:  min + (float64(i)+0.5)*width,
			Density: float64(c) / (float64(total) * width),
		}
	}
	return h
}

// buildOverlays simulates posterior-predictive RTs per condition and bins
// them against the empirical distribution. Posterior draws are taken at
// evenly spaced indices so the overlay is deterministic given the sample
// set and the provided stream.
func (s *Summarizer) buildOverlays(ds *trial.Dataset, dist ports.Distribution,
	set *posterior.SampleSet, rng *rand.Rand) []Overlay {

	specs := dist.Params()
	rts := ds.RTs()
	min, max := dataRange(rts)

	var overlays []Overlay
	for _, cond := range conditionOrder(ds) {
		predictor := ds.Conditions[cond]

		var empirical []float64
		for _, obs := range ds.Observations {
			if obs.Condition == cond {
				empirical = append(empirical, obs.RT)
			}
		}
		if len(empirical) == 0 {
			continue
		}

		simulated := s.simulate(specs, set, dist, predictor, len(empirical), rng)

		overlays = append(overlays, Overlay{
			Condition: cond,
			Predictor: predictor,
			Empirical: NewHistogram(empirical, s.Bins, min, max),
			Predicted: NewHistogram(simulated, s.Bins, min, max),
		})
	}
	return overlays
}

func (s *Summarizer) simulate(specs []model.ParamSpec, set *posterior.SampleSet,
	dist ports.Distribution, predictor float64, perDraw int, rng *rand.Rand) []float64 {

	draws := s.PredictiveDraws
	if draws > set.Len() {
		draws = set.Len()
	}
	if draws == 0 {
		return nil
	}
	stride := set.Len() / draws

	// Cap simulated trials per draw so long experiments keep overlays cheap
	perDraw = minInt(perDraw, 50)

	var out []float64
	for i := 0; i < draws; i++ {
		draw := set.Draws[i*stride]
		comp := model.Compose(specs, draw.Values, predictor)
		if !comp.OK() {
			// A retained draw can still be infeasible for the opposite
			// condition; skip it rather than simulating nonsense
			continue
		}
		for j := 0; j < perDraw; j++ {
			out = append(out, dist.Rand(comp.Values, rng))
		}
	}
	return out
}

func conditionOrder(ds *trial.Dataset) []string {
	seen := make(map[string]bool)
	var order []string
	for _, obs := range ds.Observations {
		if !seen[obs.Condition] {
			seen[obs.Condition] = true
			order = append(order, obs.Condition)
		}
	}
	return order
}

func dataRange(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 1
	}
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		max = min + 1
	}
	return min, max
}

// RenderASCII draws the overlay as a fixed-width chart for terminal output:
// '#' marks empirical density, '*' the posterior-predictive density, '@'
// where they coincide.
func (o Overlay) RenderASCII(width int) string {
	if width < 10 {
		width = 60
	}
	peak := 0.0
	for _, b := range o.Empirical.Bins {
		peak = math.Max(peak, b.Density)
	}
	for _, b := range o.Predicted.Bins {
		peak = math.Max(peak, b.Density)
	}
	if peak == 0 {
		return fmt.Sprintf("%s: no density to draw\n", o.Condition)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (# empirical, * predicted)\n", o.Condition)
	for i, b := range o.Empirical.Bins {
		emp := int(b.Density / peak * float64(width))
		pred := 0
		if i < len(o.Predicted.Bins) {
			pred = int(o.Predicted.Bins[i].Density / peak * float64(width))
		}

		line := make([]byte, maxInt(emp, pred))
		for j := range line {
			switch {
			case j < emp && j < pred:
				line[j] = '@'
			case j < emp:
				line[j] = '#'
			default:
				line[j] = '*'
			}
		}
		fmt.Fprintf(&sb, "%6.3fs |%s\n", b.Center, line)
	}
	return sb.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
