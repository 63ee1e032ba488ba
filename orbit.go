package orbel

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	// paramε floors semi-major axis and masses strictly above zero.
	paramε = 1e-9
	// eccMax keeps the orbit elliptical; the Kepler solver assumes e < 1.
	eccMax = 0.999999
)

// OrbitParameters defines a two-body Keplerian orbit via its orbital elements.
// Instances are immutable: every change goes through With or EnsureValid and
// produces a new value, so the recompute-on-write contract is visible at call
// sites.
type OrbitParameters struct {
	a, e, i, ω, Ω, startν float64
}

// NewOrbitParameters returns a validated parameter set. All angles in radians.
func NewOrbitParameters(a, e, i, ω, Ω, startν float64) OrbitParameters {
	return OrbitParameters{a, e, i, ω, Ω, startν}.EnsureValid()
}

// EnsureValid returns a corrected copy: the semi-major axis is floored at a
// small positive epsilon and the eccentricity clamped to [0, 0.999999].
// Angles pass through unchanged; downstream trig tolerates values outside
// [0, 2π) via periodicity.
func (p OrbitParameters) EnsureValid() OrbitParameters {
	p.a = math.Max(p.a, paramε)
	p.e = math.Min(math.Max(p.e, 0), eccMax)
	return p
}

// OrbitChange names a single field update for With.
type OrbitChange func(*OrbitParameters)

// SetA replaces the semi-major axis.
func SetA(a float64) OrbitChange { return func(p *OrbitParameters) { p.a = a } }

// SetE replaces the eccentricity.
func SetE(e float64) OrbitChange { return func(p *OrbitParameters) { p.e = e } }

// SetI replaces the inclination (radians).
func SetI(i float64) OrbitChange { return func(p *OrbitParameters) { p.i = i } }

// Setω replaces the argument of periastron (radians).
func Setω(ω float64) OrbitChange { return func(p *OrbitParameters) { p.ω = ω } }

// SetΩ replaces the longitude of the ascending node (radians).
func SetΩ(Ω float64) OrbitChange { return func(p *OrbitParameters) { p.Ω = Ω } }

// SetStartν replaces the seeding true anomaly (radians).
func SetStartν(ν float64) OrbitChange { return func(p *OrbitParameters) { p.startν = ν } }

// With returns a new validated instance with the named fields replaced; the
// receiver is never mutated.
func (p OrbitParameters) With(changes ...OrbitChange) OrbitParameters {
	for _, change := range changes {
		change(&p)
	}
	return p.EnsureValid()
}

// Elements returns the six orbital elements.
func (p OrbitParameters) Elements() (a, e, i, ω, Ω, startν float64) {
	return p.a, p.e, p.i, p.ω, p.Ω, p.startν
}

// A returns the semi-major axis.
func (p OrbitParameters) A() float64 { return p.a }

// E returns the eccentricity.
func (p OrbitParameters) E() float64 { return p.e }

// I returns the inclination in radians.
func (p OrbitParameters) I() float64 { return p.i }

// ArgPeriω returns the argument of periastron in radians.
func (p OrbitParameters) ArgPeriω() float64 { return p.ω }

// NodeΩ returns the longitude of the ascending node in radians.
func (p OrbitParameters) NodeΩ() float64 { return p.Ω }

// Startν returns the seeding true anomaly in radians.
func (p OrbitParameters) Startν() float64 { return p.startν }

// RotationMatrix returns Rz(Ω)·Rx(i)·Rz(ω), the orbital-plane to sky-frame
// rotation. With ωIsPrimary the argument of periastron is measured for the
// opposite body: its periastron is antipodal in the orbital plane, so ω+π is
// used instead.
func (p OrbitParameters) RotationMatrix(ωIsPrimary bool) *mat64.Dense {
	ω := p.ω
	if ωIsPrimary {
		ω += math.Pi
	}
	var zx, zxz mat64.Dense
	zx.Mul(Rz(p.Ω), Rx(p.i))
	zxz.Mul(&zx, Rz(ω))
	return &zxz
}

// RelativePosition computes the sky-frame coordinates of the orbiting body for
// each true anomaly in f. This is the single source of truth for body, curve
// and marker positions: the orbit-plane radius is r = a(1-e²)/(1+e cos f), the
// in-plane point (r cos f, r sin f, 0), rotated by RotationMatrix.
func (p OrbitParameters) RelativePosition(f []float64, ωIsPrimary bool) (X, Y, Z []float64) {
	rot := p.RotationMatrix(ωIsPrimary)
	plane := mat64.NewDense(3, len(f), nil)
	semiLatus := p.a * (1 - p.e*p.e)
	for j, fj := range f {
		s, c := math.Sincos(fj)
		r := semiLatus / (1 + p.e*c)
		plane.Set(0, j, r*c)
		plane.Set(1, j, r*s)
	}
	var sky mat64.Dense
	sky.Mul(rot, plane)
	X = mat64.Row(nil, 0, &sky)
	Y = mat64.Row(nil, 1, &sky)
	Z = mat64.Row(nil, 2, &sky)
	return
}

// RelativePositionAt is the single-anomaly form of RelativePosition.
func (p OrbitParameters) RelativePositionAt(f float64, ωIsPrimary bool) (x, y, z float64) {
	X, Y, Z := p.RelativePosition([]float64{f}, ωIsPrimary)
	return X[0], Y[0], Z[0]
}

// ExtentRadius returns the apoapsis distance a(1+e), used to size the plotted
// view window.
func (p OrbitParameters) ExtentRadius() float64 {
	return math.Max(p.a*(1+p.e), paramε)
}

// Equals returns whether two parameter sets are identical within 1e-12.
func (p OrbitParameters) Equals(p1 OrbitParameters) bool {
	return floats.EqualWithinAbs(p.a, p1.a, 1e-12) &&
		floats.EqualWithinAbs(p.e, p1.e, 1e-12) &&
		floats.EqualWithinAbs(p.i, p1.i, 1e-12) &&
		floats.EqualWithinAbs(p.ω, p1.ω, 1e-12) &&
		floats.EqualWithinAbs(p.Ω, p1.Ω, 1e-12) &&
		floats.EqualWithinAbs(p.startν, p1.startν, 1e-12)
}

// String implements the stringer interface.
func (p OrbitParameters) String() string {
	return fmt.Sprintf("a=%.4f e=%.6f i=%.3f ω=%.3f Ω=%.3f ν₀=%.3f",
		p.a, p.e, Rad2deg(p.i), Rad2deg(p.ω), Rad2deg(p.Ω), Rad2deg(p.startν))
}
