package model

import (
	"math"
	"testing"

	"bayesrt/domain/core"
)

func specFor(bound BoundaryPolicy) []ParamSpec {
	return []ParamSpec{{Name: "sigma", Bound: bound}}
}

func TestCompose_NegativeScaleRejected(t *testing.T) {
	// intercept=0.14, slope=-0.15, predictor=1 => -0.01: must be reported
	// infeasible, never propagated as a negative scale
	values := ParamValues{"sigma": {Intercept: 0.14, Slope: -0.15}}

	comp := Compose(specFor(BoundStrictPositive), values, 1)

	if comp.OK() {
		t.Fatal("negative composed scale should be infeasible")
	}
	param, value, reason := comp.Reason()
	if param != "sigma" {
		t.Errorf("expected violating param sigma, got %s", param)
	}
	if math.Abs(value-(-0.01)) > 1e-12 {
		t.Errorf("expected composed value -0.01, got %g", value)
	}
	if reason != ReasonBoundViolated {
		t.Errorf("expected bound_violated, got %s", reason)
	}
}

func TestCompose_FeasibleBaseline(t *testing.T) {
	// intercept=0.5, slope=0.1, predictor=0 => 0.5: feasible
	values := ParamValues{"sigma": {Intercept: 0.5, Slope: 0.1}}

	comp := Compose(specFor(BoundStrictPositive), values, 0)

	if !comp.OK() {
		t.Fatalf("expected feasible composition, got %s", comp)
	}
	if got := comp.Values["sigma"]; got != 0.5 {
		t.Errorf("expected composed value 0.5, got %g", got)
	}
}

func TestCompose_BoundaryEqualityPerPolicy(t *testing.T) {
	// Exactly zero: strict-positive rejects, non-negative accepts
	values := ParamValues{"sigma": {Intercept: 0.0, Slope: 0.0}}

	if comp := Compose(specFor(BoundStrictPositive), values, 1); comp.OK() {
		t.Error("strict-positive policy should reject exactly-zero value")
	}
	if comp := Compose(specFor(BoundNonNegative), values, 1); !comp.OK() {
		t.Error("non-negative policy should accept exactly-zero value")
	}
	if comp := Compose(specFor(BoundNone), values, 1); !comp.OK() {
		t.Error("unconstrained policy should accept any finite value")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	specs := []ParamSpec{
		{Name: "mu", Bound: BoundNone},
		{Name: "sigma", Bound: BoundStrictPositive},
	}
	values := ParamValues{
		"mu":    {Intercept: 0.42, Slope: 0.07},
		"sigma": {Intercept: 0.11, Slope: 0.02},
	}

	first := Compose(specs, values, 1)
	for i := 0; i < 10; i++ {
		again := Compose(specs, values, 1)
		if !again.OK() || again.Values["mu"] != first.Values["mu"] || again.Values["sigma"] != first.Values["sigma"] {
			t.Fatal("identical inputs produced different compositions")
		}
	}
}

func TestCompose_NonFiniteCoefficients(t *testing.T) {
	cases := []ParamValues{
		{"sigma": {Intercept: math.NaN(), Slope: 0}},
		{"sigma": {Intercept: math.Inf(1), Slope: 0}},
		{"sigma": {Intercept: 0, Slope: math.Inf(-1)}},
	}

	for i, values := range cases {
		comp := Compose(specFor(BoundNone), values, 1)
		if comp.OK() {
			t.Errorf("case %d: non-finite coefficients must never compose feasibly", i)
			continue
		}
		_, _, reason := comp.Reason()
		if reason != ReasonNonFinite {
			t.Errorf("case %d: expected non_finite reason, got %s", i, reason)
		}
	}
}

func TestCompose_MissingParam(t *testing.T) {
	comp := Compose(specFor(BoundNone), ParamValues{}, 1)

	if comp.OK() {
		t.Fatal("missing coefficient should be infeasible")
	}
	_, _, reason := comp.Reason()
	if reason != ReasonMissingParam {
		t.Errorf("expected missing_param, got %s", reason)
	}
}

func TestValidateSpecs(t *testing.T) {
	valid := []ParamSpec{
		{Name: "mu", Bound: BoundNone},
		{Name: "sigma", Bound: BoundStrictPositive},
	}
	if err := ValidateSpecs(valid); err != nil {
		t.Errorf("valid specs rejected: %v", err)
	}

	if err := ValidateSpecs(nil); err == nil {
		t.Error("empty spec list should be rejected")
	}

	dup := []ParamSpec{
		{Name: "mu", Bound: BoundNone},
		{Name: "mu", Bound: BoundNone},
	}
	if err := ValidateSpecs(dup); err == nil {
		t.Error("duplicate parameter names should be rejected")
	}

	bad := []ParamSpec{{Name: "mu", Bound: BoundaryPolicy("sometimes")}}
	if err := ValidateSpecs(bad); err == nil {
		t.Error("unknown boundary policy should be rejected")
	}
}

func TestBoundaryPolicy_Holds(t *testing.T) {
	cases := []struct {
		policy BoundaryPolicy
		value  float64
		want   bool
	}{
		{BoundStrictPositive, 0.001, true},
		{BoundStrictPositive, 0, false},
		{BoundStrictPositive, -0.001, false},
		{BoundNonNegative, 0, true},
		{BoundNonNegative, -1e-9, false},
		{BoundNone, -5, true},
		{BoundNone, math.NaN(), false},
		{BoundNonNegative, math.Inf(1), false},
	}

	for _, c := range cases {
		if got := c.policy.Holds(c.value); got != c.want {
			t.Errorf("%s.Holds(%g) = %v, want %v", c.policy, c.value, got, c.want)
		}
	}
}

func TestPriorSet_Validate(t *testing.T) {
	specs := []ParamSpec{{Name: core.ParamName("sigma"), Bound: BoundStrictPositive}}

	ok := PriorSet{"sigma": {
		Intercept: Prior{Kind: PriorTruncatedNormal, Mu: 0.3, Sigma: 0.5},
		Slope:     Prior{Kind: PriorNormal, Mu: 0, Sigma: 1},
	}}
	if err := ok.Validate(specs); err != nil {
		t.Errorf("valid prior set rejected: %v", err)
	}

	missing := PriorSet{}
	if err := missing.Validate(specs); err == nil {
		t.Error("missing prior should be rejected")
	}

	badSigma := PriorSet{"sigma": {
		Intercept: Prior{Kind: PriorNormal, Mu: 0, Sigma: 0},
		Slope:     Prior{Kind: PriorNormal, Mu: 0, Sigma: 1},
	}}
	if err := badSigma.Validate(specs); err == nil {
		t.Error("zero prior sigma should be rejected")
	}
}

func TestPrior_TruncatedNormalSupport(t *testing.T) {
	p := Prior{Kind: PriorTruncatedNormal, Mu: 0.3, Sigma: 0.5}

	if lp := p.LogProb(-0.1); !math.IsInf(lp, -1) {
		t.Errorf("truncated prior below zero should be -Inf, got %g", lp)
	}
	if lp := p.LogProb(0); !math.IsInf(lp, -1) {
		t.Errorf("truncated prior at zero should be -Inf, got %g", lp)
	}
	if lp := p.LogProb(0.3); math.IsInf(lp, -1) || math.IsNaN(lp) {
		t.Errorf("truncated prior in support should be finite, got %g", lp)
	}

	// Truncation renormalizes: density above zero exceeds the untruncated one
	plain := Prior{Kind: PriorNormal, Mu: 0.3, Sigma: 0.5}
	if p.LogProb(0.3) <= plain.LogProb(0.3) {
		t.Error("truncated density should exceed untruncated density in support")
	}
}
