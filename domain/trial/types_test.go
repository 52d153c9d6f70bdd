package trial

import (
	"math"
	"testing"
)

func TestNewDataset_FiltersAndCounts(t *testing.T) {
	raw := []Observation{
		{RT: 0.45, Condition: "congruent"},
		{RT: 0.62, Condition: "incongruent"},
		{RT: 0.05, Condition: "congruent"},                // too fast
		{RT: 4.20, Condition: "incongruent"},              // too slow
		{RT: 0.51, Condition: "congruent", Error: true},   // error response
		{RT: math.NaN(), Condition: "congruent"},          // unparseable
		{RT: -0.3, Condition: "incongruent"},              // negative RT
		{RT: 0.70, Condition: "incongruent"},
	}

	ds := NewDataset("test.csv", raw, DefaultFilter())

	if ds.Len() != 3 {
		t.Fatalf("expected 3 kept trials, got %d", ds.Len())
	}
	if ds.RowsRead != 8 {
		t.Errorf("expected 8 rows read, got %d", ds.RowsRead)
	}
	if ds.RejectedCount() != 5 {
		t.Errorf("expected 5 rejections, got %d", ds.RejectedCount())
	}

	expected := map[RejectReason]int{
		RejectTooFast:    1,
		RejectTooSlow:    1,
		RejectError:      1,
		RejectNonFinite:  1,
		RejectNonPositve: 1,
	}
	for reason, want := range expected {
		if got := ds.Rejections[reason]; got != want {
			t.Errorf("rejection %s: expected %d, got %d", reason, want, got)
		}
	}
}

func TestNewDataset_BinarizesConditions(t *testing.T) {
	raw := []Observation{
		{RT: 0.45, Condition: "congruent"},
		{RT: 0.62, Condition: "incongruent"},
		{RT: 0.50, Condition: "congruent"},
	}

	ds := NewDataset("test.csv", raw, Filter{})

	if ds.Conditions["congruent"] != 0 {
		t.Errorf("first-seen condition should map to 0, got %v", ds.Conditions["congruent"])
	}
	if ds.Conditions["incongruent"] != 1 {
		t.Errorf("second condition should map to 1, got %v", ds.Conditions["incongruent"])
	}

	baseline, contrast := ds.RTsByCondition()
	if len(baseline) != 2 || len(contrast) != 1 {
		t.Errorf("expected 2 baseline / 1 contrast, got %d / %d", len(baseline), len(contrast))
	}
}

func TestNewDataset_FingerprintDeterministic(t *testing.T) {
	raw := []Observation{
		{RT: 0.45, Condition: "a"},
		{RT: 0.62, Condition: "b"},
	}

	ds1 := NewDataset("test.csv", raw, Filter{})
	ds2 := NewDataset("test.csv", raw, Filter{})

	if ds1.Fingerprint != ds2.Fingerprint {
		t.Error("identical data produced different fingerprints")
	}
}

func TestDataset_Empty(t *testing.T) {
	ds := NewDataset("empty.csv", nil, DefaultFilter())

	if !ds.IsEmpty() {
		t.Error("dataset with no observations should report empty")
	}
	if rts := ds.RTs(); len(rts) != 0 {
		t.Errorf("expected no RTs, got %d", len(rts))
	}
}

func TestFilter_ZeroBoundsDisabled(t *testing.T) {
	raw := []Observation{
		{RT: 0.01, Condition: "a"},
		{RT: 100.0, Condition: "a"},
	}

	ds := NewDataset("test.csv", raw, Filter{})

	if ds.Len() != 2 {
		t.Errorf("zero bounds should disable RT filtering, kept %d of 2", ds.Len())
	}
}
