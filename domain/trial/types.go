package trial

import (
	"math"

	"bayesrt/domain/core"
)

// Observation represents a single trial: one response time under one condition.
// Observations are immutable once loaded; derived fields (ConditionIndex) are
// computed exactly once during dataset construction.
type Observation struct {
	Participant    string  `json:"participant,omitempty"`
	RT             float64 `json:"rt"`              // Response time in seconds (> 0)
	Condition      string  `json:"condition"`       // Raw condition label
	ConditionIndex float64 `json:"condition_index"` // Binarized predictor (0 or 1)
	Error          bool    `json:"error"`           // Incorrect response flag
}

// RejectReason explains why a trial was excluded during filtering
type RejectReason string

const (
	RejectError      RejectReason = "error_response"
	RejectTooFast    RejectReason = "rt_below_minimum"
	RejectTooSlow    RejectReason = "rt_above_maximum"
	RejectNonFinite  RejectReason = "rt_not_finite"
	RejectNonPositve RejectReason = "rt_not_positive"
)

// Filter defines trial exclusion rules applied once at load time
type Filter struct {
	DropErrors bool    `json:"drop_errors"`
	MinRT      float64 `json:"min_rt"` // Seconds; 0 disables the lower bound
	MaxRT      float64 `json:"max_rt"` // Seconds; 0 disables the upper bound
}

// DefaultFilter matches the conventional cleanup for speeded-response data:
// drop error trials and implausibly fast or slow responses.
func DefaultFilter() Filter {
	return Filter{DropErrors: true, MinRT: 0.15, MaxRT: 3.0}
}

// Dataset is an immutable collection of filtered trials plus load provenance
type Dataset struct {
	Source       string                  `json:"source"` // URL or file path
	Observations []Observation           `json:"observations"`
	RowsRead     int                     `json:"rows_read"`
	Rejections   map[RejectReason]int    `json:"rejections,omitempty"`
	Fingerprint  core.DatasetHash        `json:"fingerprint"`
	LoadedAt     core.Timestamp          `json:"loaded_at"`
	Conditions   map[string]float64      `json:"conditions"` // Label -> predictor index assignment
}

// NewDataset applies the filter to raw observations and records rejection
// counts. Condition labels are binarized in first-seen order: the first label
// maps to predictor 0, any other label to 1.
func NewDataset(source string, raw []Observation, filter Filter) *Dataset {
	kept := make([]Observation, 0, len(raw))
	rejections := make(map[RejectReason]int)
	conditions := make(map[string]float64)

	var baseline string
	haveBaseline := false

	for _, obs := range raw {
		if reason, ok := reject(obs, filter); ok {
			rejections[reason]++
			continue
		}

		if !haveBaseline {
			baseline = obs.Condition
			haveBaseline = true
		}
		if obs.Condition == baseline {
			obs.ConditionIndex = 0
		} else {
			obs.ConditionIndex = 1
		}
		conditions[obs.Condition] = obs.ConditionIndex

		kept = append(kept, obs)
	}

	rts := make([]float64, len(kept))
	preds := make([]float64, len(kept))
	for i, obs := range kept {
		rts[i] = obs.RT
		preds[i] = obs.ConditionIndex
	}

	return &Dataset{
		Source:       source,
		Observations: kept,
		RowsRead:     len(raw),
		Rejections:   rejections,
		Fingerprint:  core.ComputeDatasetHash(source, rts, preds),
		LoadedAt:     core.Now(),
		Conditions:   conditions,
	}
}

func reject(obs Observation, filter Filter) (RejectReason, bool) {
	if math.IsNaN(obs.RT) || math.IsInf(obs.RT, 0) {
		return RejectNonFinite, true
	}
	if obs.RT <= 0 {
		return RejectNonPositve, true
	}
	if filter.DropErrors && obs.Error {
		return RejectError, true
	}
	if filter.MinRT > 0 && obs.RT < filter.MinRT {
		return RejectTooFast, true
	}
	if filter.MaxRT > 0 && obs.RT > filter.MaxRT {
		return RejectTooSlow, true
	}
	return "", false
}

// Len returns the number of usable trials
func (d *Dataset) Len() int {
	return len(d.Observations)
}

// IsEmpty checks whether filtering left any trials at all
func (d *Dataset) IsEmpty() bool {
	return len(d.Observations) == 0
}

// RTs returns response times as a flat slice for summary statistics
func (d *Dataset) RTs() []float64 {
	out := make([]float64, len(d.Observations))
	for i, obs := range d.Observations {
		out[i] = obs.RT
	}
	return out
}

// RTsByCondition splits response times by binarized predictor value
func (d *Dataset) RTsByCondition() (baseline, contrast []float64) {
	for _, obs := range d.Observations {
		if obs.ConditionIndex == 0 {
			baseline = append(baseline, obs.RT)
		} else {
			contrast = append(contrast, obs.RT)
		}
	}
	return baseline, contrast
}

// RejectedCount returns the total number of filtered-out trials
func (d *Dataset) RejectedCount() int {
	total := 0
	for _, n := range d.Rejections {
		total += n
	}
	return total
}
