package ports

import (
	"context"

	"bayesrt/domain/trial"
)

// TrialSource loads and filters trial data for a chapter run. Load failures
// are fatal for the run: there is no retry policy for a one-shot analysis.
type TrialSource interface {
	Load(ctx context.Context, filter trial.Filter) (*trial.Dataset, error)
}
