// Package testkit provides seeded synthetic trial data for tests and demos:
// datasets with known ground-truth parameters, and CSV fixtures matching the
// wire format the csvdata reader expects.
package testkit

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
	"bayesrt/domain/trial"
	"bayesrt/ports"
)

// Scenario describes a synthetic experiment with known ground truth
type Scenario struct {
	Dist       ports.Distribution
	Truth      model.ParamValues // Ground-truth coefficients per parameter
	Conditions []string          // Label order; index 0 is the baseline
	Trials     int
	Seed       int64
	ErrorRate  float64 // Fraction of trials flagged as error responses
}

// GaussianScenario is the default fixture: a two-condition design with a
// known mean shift, matching the simplest chapter model.
func GaussianScenario(dist ports.Distribution) Scenario {
	return Scenario{
		Dist: dist,
		Truth: model.ParamValues{
			"mu":    {Intercept: 0.45, Slope: 0.08},
			"sigma": {Intercept: 0.08, Slope: 0},
		},
		Conditions: []string{"Speed", "Accuracy"},
		Trials:     400,
		Seed:       2024,
		ErrorRate:  0.05,
	}
}

// Generate produces raw observations from the scenario's ground truth.
// Deterministic for a fixed seed.
func (s Scenario) Generate() ([]trial.Observation, error) {
	if len(s.Conditions) < 1 {
		return nil, fmt.Errorf("scenario needs at least one condition")
	}

	gen := rand.New(rand.NewSource(s.Seed))
	specs := s.Dist.Params()

	obs := make([]trial.Observation, 0, s.Trials)
	for i := 0; i < s.Trials; i++ {
		condIdx := i % len(s.Conditions)
		predictor := 0.0
		if condIdx > 0 {
			predictor = 1.0
		}

		comp := model.Compose(specs, s.Truth, predictor)
		if !comp.OK() {
			return nil, fmt.Errorf("ground truth composes infeasibly: %s", comp)
		}

		obs = append(obs, trial.Observation{
			Participant: fmt.Sprintf("S%02d", i%10+1),
			RT:          s.Dist.Rand(comp.Values, gen),
			Condition:   s.Conditions[condIdx],
			Error:       gen.Float64() < s.ErrorRate,
		})
	}
	return obs, nil
}

// Dataset generates and filters a full dataset
func (s Scenario) Dataset(filter trial.Filter) (*trial.Dataset, error) {
	raw, err := s.Generate()
	if err != nil {
		return nil, err
	}
	return trial.NewDataset(fmt.Sprintf("testkit:%s", s.Dist.Family()), raw, filter), nil
}

// CSV renders the scenario as CSV text in the default column layout
func (s Scenario) CSV() (string, error) {
	raw, err := s.Generate()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Participant,RT,Condition,Error\n")
	for _, o := range raw {
		errFlag := 0
		if o.Error {
			errFlag = 1
		}
		fmt.Fprintf(&sb, "%s,%.6f,%s,%d\n", o.Participant, o.RT, o.Condition, errFlag)
	}
	return sb.String(), nil
}

// WriteCSV writes the scenario to a CSV fixture file
func (s Scenario) WriteCSV(path string) error {
	content, err := s.CSV()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// TruthFor reads a ground-truth coefficient back out for assertions
func (s Scenario) TruthFor(name core.ParamName) model.Coefficients {
	return s.Truth[name]
}
