package orbel

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestCircularOrbitSanity(t *testing.T) {
	p := NewOrbitParameters(2, 0, 0, 0, 0, 0)
	X, Y, Z := p.RelativePosition([]float64{0, math.Pi / 2, math.Pi}, false)
	expected := [][3]float64{{2, 0, 0}, {0, 2, 0}, {-2, 0, 0}}
	for j, exp := range expected {
		if !floats.EqualWithinAbs(X[j], exp[0], 1e-12) ||
			!floats.EqualWithinAbs(Y[j], exp[1], 1e-12) ||
			!floats.EqualWithinAbs(Z[j], exp[2], 1e-12) {
			t.Fatalf("sample %d: got (%.15f, %.15f, %.15f), expected %v", j, X[j], Y[j], Z[j], exp)
		}
	}
}

func TestEnsureValidClamping(t *testing.T) {
	p := OrbitParameters{a: -5, e: 1.5, i: 1, ω: 2, Ω: 3, startν: 4}.EnsureValid()
	if p.A() <= 0 {
		t.Fatalf("semi-major axis must be floored positive, got %g", p.A())
	}
	if p.E() > 0.999999 {
		t.Fatalf("eccentricity must be clamped at 0.999999, got %g", p.E())
	}
	if p.I() != 1 || p.ArgPeriω() != 2 || p.NodeΩ() != 3 || p.Startν() != 4 {
		t.Fatal("angles must pass through validation unchanged")
	}
	neg := NewOrbitParameters(1, -0.3, 0, 0, 0, 0)
	if neg.E() != 0 {
		t.Fatalf("negative eccentricity must clamp to 0, got %g", neg.E())
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	p := NewOrbitParameters(1, 0.5, 0.2, 0.3, 0.4, 0.5)
	q := p.With(SetA(3), SetE(0.1))
	if p.A() != 1 || p.E() != 0.5 {
		t.Fatal("With must not mutate the receiver")
	}
	if q.A() != 3 || q.E() != 0.1 {
		t.Fatal("With must apply the named changes")
	}
	if q.I() != p.I() || q.Startν() != p.Startν() {
		t.Fatal("unnamed fields must carry over")
	}
	if r := p.With(SetE(2)); r.E() != 0.999999 {
		t.Fatal("With must validate the result")
	}
}

func TestExtentRadius(t *testing.T) {
	for _, tc := range []struct{ a, e float64 }{{1, 0}, {2, 0.5}, {0.3, 0.99}, {10, 0.1}} {
		p := NewOrbitParameters(tc.a, tc.e, 0, 0, 0, 0)
		if !floats.EqualWithinAbs(p.ExtentRadius(), tc.a*(1+tc.e), 1e-15) {
			t.Fatalf("a=%g e=%g: extent %g != a(1+e)", tc.a, tc.e, p.ExtentRadius())
		}
	}
}

func TestRotationMatrixComposition(t *testing.T) {
	p := NewOrbitParameters(1, 0.2, Deg2rad(30), Deg2rad(40), Deg2rad(50), 0)
	rot := p.RotationMatrix(false)
	// Rz(Ω)·Rx(i)·Rz(ω) applied stepwise must match the composed matrix.
	v := []float64{0.3, -0.8, 0.12}
	step := MxV33(Rz(p.ArgPeriω()), v)
	step = MxV33(Rx(p.I()), step)
	step = MxV33(Rz(p.NodeΩ()), step)
	composed := MxV33(rot, v)
	for j := range v {
		if !floats.EqualWithinAbs(step[j], composed[j], 1e-13) {
			t.Fatalf("component %d: stepwise %.15f != composed %.15f", j, step[j], composed[j])
		}
	}
}

func TestRotationMatrixPrimaryAntipodal(t *testing.T) {
	p := NewOrbitParameters(1.4, 0, Deg2rad(25), Deg2rad(70), Deg2rad(110), 0)
	// With e=0 the radius is constant, so measuring ω for the opposite body
	// negates every in-plane position.
	x, y, z := p.RelativePositionAt(1.1, false)
	xp, yp, zp := p.RelativePositionAt(1.1, true)
	if !floats.EqualWithinAbs(x, -xp, 1e-12) ||
		!floats.EqualWithinAbs(y, -yp, 1e-12) ||
		!floats.EqualWithinAbs(z, -zp, 1e-12) {
		t.Fatalf("ωIsPrimary must be antipodal for circular orbits: (%g,%g,%g) vs (%g,%g,%g)", x, y, z, xp, yp, zp)
	}
}

func TestRelativePositionRadius(t *testing.T) {
	p := NewOrbitParameters(1.7, 0.6, Deg2rad(35), Deg2rad(80), Deg2rad(120), 0)
	for f := 0.0; f < 2*math.Pi; f += 0.21 {
		x, y, z := p.RelativePositionAt(f, false)
		want := p.A() * (1 - p.E()*p.E()) / (1 + p.E()*math.Cos(f))
		if !floats.EqualWithinAbs(norm([]float64{x, y, z}), want, 1e-12) {
			t.Fatalf("f=%.2f: rotated radius %.12f != conic radius %.12f", f, norm([]float64{x, y, z}), want)
		}
	}
}

func TestPeriastronAtApsisDistances(t *testing.T) {
	p := NewOrbitParameters(2, 0.5, Deg2rad(45), Deg2rad(90), Deg2rad(90), 0)
	xp, yp, zp := p.RelativePositionAt(0, false)
	if !floats.EqualWithinAbs(norm([]float64{xp, yp, zp}), p.A()*(1-p.E()), 1e-12) {
		t.Fatal("periastron must sit at a(1-e)")
	}
	xa, ya, za := p.RelativePositionAt(math.Pi, false)
	if !floats.EqualWithinAbs(norm([]float64{xa, ya, za}), p.A()*(1+p.E()), 1e-12) {
		t.Fatal("apoapsis must sit at a(1+e)")
	}
}

func TestOrbitEquals(t *testing.T) {
	p := NewOrbitParameters(1, 0.5, 0.1, 0.2, 0.3, 0.4)
	if !p.Equals(p.With()) {
		t.Fatal("no-op With must compare equal")
	}
	if p.Equals(p.With(SetA(1.1))) {
		t.Fatal("changed axis must not compare equal")
	}
}
