package dist

import (
	"math"
	"math/rand"
	"testing"

	"bayesrt/domain/core"
	"bayesrt/domain/model"
)

func TestRegistry_LookupAllFamilies(t *testing.T) {
	registry := NewRegistry()

	for _, family := range []string{
		FamilyGaussian,
		FamilyScaledGaussian,
		FamilyShiftedLogNormal,
		FamilyExGaussian,
		FamilyShiftedWald,
	} {
		d, err := registry.Lookup(family)
		if err != nil {
			t.Errorf("family %s not registered: %v", family, err)
			continue
		}
		if d.Family() != family {
			t.Errorf("family name mismatch: asked %s, got %s", family, d.Family())
		}
		if err := model.ValidateSpecs(d.Params()); err != nil {
			t.Errorf("family %s declares invalid params: %v", family, err)
		}
	}

	if _, err := registry.Lookup("weibull"); err == nil {
		t.Error("unknown family should fail lookup")
	}
}

func TestGaussian_LogProbMatchesClosedForm(t *testing.T) {
	g := NewGaussian()
	params := map[core.ParamName]float64{"mu": 0.5, "sigma": 0.2}

	got := g.LogProb(params, 0.45)
	z := (0.45 - 0.5) / 0.2
	want := -0.5*z*z - math.Log(0.2) - 0.5*math.Log(2*math.Pi)

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Gaussian log-density mismatch: got %g, want %g", got, want)
	}
}

func TestShiftedLogNormal_SupportBoundary(t *testing.T) {
	d := NewShiftedLogNormal()
	params := map[core.ParamName]float64{"meanlog": -1.0, "sdlog": 0.4, "shift": 0.2}

	if lp := d.LogProb(params, 0.2); !math.IsInf(lp, -1) {
		t.Errorf("RT exactly at shift should have -Inf log-density, got %g", lp)
	}
	if lp := d.LogProb(params, 0.15); !math.IsInf(lp, -1) {
		t.Errorf("RT below shift should have -Inf log-density, got %g", lp)
	}
	if lp := d.LogProb(params, 0.6); math.IsInf(lp, -1) || math.IsNaN(lp) {
		t.Errorf("RT above shift should have finite log-density, got %g", lp)
	}
}

func TestShiftedWald_SupportBoundary(t *testing.T) {
	d := NewShiftedWald()
	params := map[core.ParamName]float64{"drift": 3.0, "threshold": 1.2, "ndt": 0.25}

	if lp := d.LogProb(params, 0.25); !math.IsInf(lp, -1) {
		t.Errorf("RT at non-decision time should have -Inf log-density, got %g", lp)
	}
	if lp := d.LogProb(params, 0.6); math.IsInf(lp, -1) || math.IsNaN(lp) {
		t.Errorf("RT above non-decision time should have finite log-density, got %g", lp)
	}
}

func TestExGaussian_SmallTauApproachesGaussian(t *testing.T) {
	ex := NewExGaussian()
	g := NewGaussian()

	// With a vanishing exponential component the ExGaussian density at the
	// mode should be close to the plain Gaussian's
	exParams := map[core.ParamName]float64{"mu": 0.5, "sigma": 0.1, "tau": 0.001}
	gParams := map[core.ParamName]float64{"mu": 0.501, "sigma": 0.1}

	exLp := ex.LogProb(exParams, 0.55)
	gLp := g.LogProb(gParams, 0.55)

	if math.Abs(exLp-gLp) > 0.1 {
		t.Errorf("ExGaussian with tiny tau should approximate Gaussian: %g vs %g", exLp, gLp)
	}
}

func TestExGaussian_FarLeftTailSoftRejects(t *testing.T) {
	ex := NewExGaussian()
	params := map[core.ParamName]float64{"mu": 0.5, "sigma": 0.05, "tau": 0.1}

	// Deep left tail: Phi underflows; must produce -Inf, never NaN
	lp := ex.LogProb(params, -50)
	if math.IsNaN(lp) {
		t.Error("underflowing tail should soft-reject, got NaN")
	}
}

func TestRand_DrawsMatchTheoreticalMeans(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 50000

	cases := []struct {
		name   string
		d      interface {
			Rand(map[core.ParamName]float64, *rand.Rand) float64
		}
		params map[core.ParamName]float64
		want   float64
	}{
		{"gaussian", NewGaussian(), map[core.ParamName]float64{"mu": 0.5, "sigma": 0.2}, 0.5},
		{"exgaussian", NewExGaussian(), map[core.ParamName]float64{"mu": 0.4, "sigma": 0.05, "tau": 0.2}, 0.6},
		{"shifted_lognormal", NewShiftedLogNormal(), map[core.ParamName]float64{"meanlog": -1, "sdlog": 0.3, "shift": 0.2},
			0.2 + math.Exp(-1+0.3*0.3/2)},
		{"shifted_wald", NewShiftedWald(), map[core.ParamName]float64{"drift": 3, "threshold": 1.2, "ndt": 0.25},
			0.25 + 1.2/3},
	}

	for _, c := range cases {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += c.d.Rand(c.params, rng)
		}
		mean := sum / n

		if math.Abs(mean-c.want) > 0.02 {
			t.Errorf("%s: simulated mean %g, theoretical %g", c.name, mean, c.want)
		}
	}
}

func TestShiftedWald_DrawsRespectShift(t *testing.T) {
	d := NewShiftedWald()
	rng := rand.New(rand.NewSource(7))
	params := map[core.ParamName]float64{"drift": 2, "threshold": 1, "ndt": 0.3}

	for i := 0; i < 1000; i++ {
		if rt := d.Rand(params, rng); rt <= 0.3 {
			t.Fatalf("Wald draw %g at or below non-decision time", rt)
		}
	}
}
