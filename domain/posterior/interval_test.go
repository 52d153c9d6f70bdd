package posterior

import (
	"math"
	"testing"

	"bayesrt/domain/model"
)

func TestSummarize_EmptyTraceReturnsNoData(t *testing.T) {
	summary := Summarize(nil)

	if !summary.NoData() {
		t.Fatal("empty trace should produce a NoData summary")
	}
	if len(summary.Intervals) != 0 {
		t.Errorf("NoData summary should carry no intervals, got %d", len(summary.Intervals))
	}
}

func TestSummarize_SingleDraw(t *testing.T) {
	summary := Summarize([]float64{0.42})

	if summary.NoData() {
		t.Fatal("single-draw trace is data, not NoData")
	}
	if summary.Mean != 0.42 || summary.Median != 0.42 {
		t.Errorf("expected point summary at 0.42, got mean=%g median=%g", summary.Mean, summary.Median)
	}
	for _, iv := range summary.Intervals {
		if iv.Lower != 0.42 || iv.Upper != 0.42 {
			t.Errorf("degenerate interval should collapse to the point, got [%g, %g]", iv.Lower, iv.Upper)
		}
	}
}

func TestSummarize_IntervalsOrderedAndNested(t *testing.T) {
	trace := make([]float64, 2000)
	for i := range trace {
		// Deterministic spread around 0.5
		trace[i] = 0.5 + 0.3*math.Sin(float64(i))
	}

	summary := Summarize(trace, 0.89, 0.95)

	if len(summary.Intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(summary.Intervals))
	}

	narrow, wide := summary.Intervals[0], summary.Intervals[1]
	if narrow.Lower > narrow.Upper || wide.Lower > wide.Upper {
		t.Error("interval bounds out of order")
	}
	if narrow.Lower < wide.Lower || narrow.Upper > wide.Upper {
		t.Errorf("89%% interval should nest inside 95%%: [%g,%g] vs [%g,%g]",
			narrow.Lower, narrow.Upper, wide.Lower, wide.Upper)
	}
	if summary.Mean < wide.Lower || summary.Mean > wide.Upper {
		t.Error("mean should fall inside the 95% interval for symmetric data")
	}
}

func TestSummarize_ProbPositive(t *testing.T) {
	trace := []float64{-1, -0.5, 0.5, 1} // half the mass above zero

	summary := Summarize(trace)

	if summary.ProbPositive != 0.5 {
		t.Errorf("expected ProbPositive 0.5, got %g", summary.ProbPositive)
	}
}

func TestSampleSet_Traces(t *testing.T) {
	set := &SampleSet{
		Draws: []Draw{
			{Chain: 0, Values: model.ParamValues{"mu": {Intercept: 0.4, Slope: 0.1}}},
			{Chain: 0, Values: model.ParamValues{"mu": {Intercept: 0.5, Slope: 0.2}}},
			{Chain: 1, Values: model.ParamValues{"mu": {Intercept: 0.6, Slope: 0.3}}},
		},
	}

	intercepts := set.Intercepts("mu")
	if len(intercepts) != 3 || intercepts[1] != 0.5 {
		t.Errorf("unexpected intercept trace: %v", intercepts)
	}

	slopes := set.Slopes("mu")
	if len(slopes) != 3 || slopes[2] != 0.3 {
		t.Errorf("unexpected slope trace: %v", slopes)
	}

	if got := set.Intercepts("sigma"); len(got) != 0 {
		t.Errorf("unknown parameter should yield empty trace, got %v", got)
	}
}

func TestSampleSet_Empty(t *testing.T) {
	var set *SampleSet
	if !set.IsEmpty() {
		t.Error("nil sample set should report empty")
	}

	empty := &SampleSet{}
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Error("zero-draw sample set should report empty")
	}
}
