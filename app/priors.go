package app

import (
	"fmt"

	"bayesrt/adapters/dist"
	"bayesrt/domain/core"
	"bayesrt/domain/model"
)

// DefaultPriors returns weakly informative priors for a family, scaled for
// response times measured in seconds. Chapters that need sharper priors
// build their own PriorSet instead.
func DefaultPriors(family string) (model.PriorSet, error) {
	switch family {
	case dist.FamilyGaussian, dist.FamilyScaledGaussian:
		return model.PriorSet{
			"mu":    location(0.5, 0.5),
			"sigma": scale(0.1, 0.2),
		}, nil
	case dist.FamilyShiftedLogNormal:
		return model.PriorSet{
			"meanlog": location(-1.0, 1.0),
			"sdlog":   scale(0.5, 0.5),
			"shift":   scale(0.1, 0.1),
		}, nil
	case dist.FamilyExGaussian:
		return model.PriorSet{
			"mu":    location(0.4, 0.3),
			"sigma": scale(0.05, 0.1),
			"tau":   scale(0.1, 0.2),
		}, nil
	case dist.FamilyShiftedWald:
		return model.PriorSet{
			"drift":     scale(3.0, 2.0),
			"threshold": scale(1.0, 1.0),
			"ndt":       scale(0.2, 0.1),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownFamily, family)
	}
}

// location builds unconstrained priors: a normal intercept and a
// zero-centered normal slope with matching spread
func location(mu, sigma float64) model.CoefficientPriors {
	return model.CoefficientPriors{
		Intercept: model.Prior{Kind: model.PriorNormal, Mu: mu, Sigma: sigma},
		Slope:     model.Prior{Kind: model.PriorNormal, Mu: 0, Sigma: sigma},
	}
}

// scale builds priors for positive parameters: a truncated-normal intercept
// keeps the baseline away from zero while the slope stays unconstrained
func scale(mu, sigma float64) model.CoefficientPriors {
	return model.CoefficientPriors{
		Intercept: model.Prior{Kind: model.PriorTruncatedNormal, Mu: mu, Sigma: sigma},
		Slope:     model.Prior{Kind: model.PriorNormal, Mu: 0, Sigma: sigma / 2},
	}
}
