package orbel

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestPhaseContinuityRoundTrip(t *testing.T) {
	for _, e := range []float64{0, 0.2, 0.7, 0.95} {
		for ν0 := -3.0; ν0 <= 3.0; ν0 += 0.2 {
			var pt PhaseTracker
			pt.SetνKeepPhase(ν0, e)
			pt.RecomputeFromM(pt.MeanM(), e)
			if !floats.EqualWithinAbs(pt.Trueν(), ν0, 1e-10) {
				t.Fatalf("e=%.2f ν0=%.4f: round trip through M gave %.12f", e, ν0, pt.Trueν())
			}
		}
	}
}

func TestPhaseConsistencyAfterEveryWrite(t *testing.T) {
	e := 0.6
	var pt PhaseTracker
	pt.SetνKeepPhase(1.2, e)
	// Invariant: M = E - e sin E with E = f(ν, e), after either write path.
	check := func(label string) {
		E := EFromν(pt.Trueν(), e)
		if !floats.EqualWithinAbs(MFromE(E, e), pt.MeanM(), 1e-10) {
			t.Fatalf("%s: ν and M are inconsistent (ν=%.9f M=%.9f)", label, pt.Trueν(), pt.MeanM())
		}
	}
	check("after SetνKeepPhase")
	pt.AdvanceM(0.37, e)
	check("after AdvanceM")
	pt.RecomputeFromM(4.9, e)
	check("after RecomputeFromM")
}

func TestPhaseAdvanceAccumulatesM(t *testing.T) {
	var pt PhaseTracker
	e := 0.3
	pt.RecomputeFromM(0, e)
	for i := 0; i < 10; i++ {
		pt.AdvanceM(0.1, e)
	}
	if !floats.EqualWithinAbs(pt.MeanM(), 1.0, 1e-12) {
		t.Fatalf("ten 0.1 steps must accumulate M=1, got %.15f", pt.MeanM())
	}
}

func TestPhaseKeepHoldsν(t *testing.T) {
	var pt PhaseTracker
	pt.SetνKeepPhase(2.2, 0.5)
	before := pt.Trueν()
	// An eccentricity edit re-derives M while the displayed ν stays put.
	pt.SetνKeepPhase(before, 0.8)
	if pt.Trueν() != before {
		t.Fatal("keep-phase write must hold ν fixed")
	}
	E := EFromν(before, 0.8)
	if !floats.EqualWithinAbs(pt.MeanM(), MFromE(E, 0.8), 1e-12) {
		t.Fatal("keep-phase write must re-derive M for the new eccentricity")
	}
}

func TestPhaseCircularIdentity(t *testing.T) {
	var pt PhaseTracker
	for M := 0.0; M < 2*math.Pi; M += 0.5 {
		pt.RecomputeFromM(M, 0)
		// For e=0 all three anomalies coincide (mod 2π).
		want := math.Atan2(math.Sin(M), math.Cos(M))
		if !floats.EqualWithinAbs(pt.Trueν(), want, 1e-12) {
			t.Fatalf("M=%.2f: circular orbit must give ν=M (mod 2π), got %.12f", M, pt.Trueν())
		}
	}
}
