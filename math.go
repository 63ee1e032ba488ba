package orbel

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180

	// Newton-Raphson settings for Kepler's equation. The solver accepts the
	// best available estimate after keplerMaxIter rather than failing: with
	// eccentricity pre-clamped below 1 the iteration is well behaved.
	keplerTol     = 1e-12
	keplerMaxIter = 40
)

// Rz returns the right-handed rotation matrix about the z axis.
func Rz(θ float64) *mat64.Dense {
	s, c := math.Sincos(θ)
	return mat64.NewDense(3, 3, []float64{c, -s, 0, s, c, 0, 0, 0, 1})
}

// Rx returns the right-handed rotation matrix about the x axis.
func Rx(θ float64) *mat64.Dense {
	s, c := math.Sincos(θ)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, -s, 0, s, c})
}

// MxV33 multiplies a 3x3 matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// SolveKepler solves M = E - e sin(E) for the eccentric anomaly E, elementwise
// over the provided mean anomalies. Seeded with E0 = M + e sin(M); stops early
// once every element's update step is below keplerTol in absolute value.
// For e = 0 the seed is already exact.
func SolveKepler(M []float64, e float64) []float64 {
	E := make([]float64, len(M))
	for j, m := range M {
		E[j] = m + e*math.Sin(m)
	}
	for iter := 0; iter < keplerMaxIter; iter++ {
		converged := true
		for j := range E {
			f := E[j] - e*math.Sin(E[j]) - M[j]
			fp := 1 - e*math.Cos(E[j])
			dE := f / fp
			E[j] -= dE
			if math.Abs(dE) >= keplerTol {
				converged = false
			}
		}
		if converged {
			break
		}
	}
	return E
}

// SolveKeplerScalar is the single-value form of SolveKepler.
func SolveKeplerScalar(M, e float64) float64 {
	return SolveKepler([]float64{M}, e)[0]
}

// EFromν converts true anomaly to eccentric anomaly. Branch-correct via atan2
// within one revolution; callers needing multi-revolution unwrapping normalize
// separately.
func EFromν(ν, e float64) float64 {
	sν, cν := math.Sincos(ν / 2)
	return 2 * math.Atan2(math.Sqrt(1-e)*sν, math.Sqrt(1+e)*cν)
}

// MFromE returns the mean anomaly for a given eccentric anomaly.
func MFromE(E, e float64) float64 {
	return E - e*math.Sin(E)
}

// νFromE converts eccentric anomaly to true anomaly. Same half-angle atan2
// construction as EFromν with the (1+e) and (1-e) factors swapped.
func νFromE(E, e float64) float64 {
	sE, cE := math.Sincos(E / 2)
	return 2 * math.Atan2(math.Sqrt(1+e)*sE, math.Sqrt(1-e)*cE)
}

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// linspace returns count values evenly spaced over [start, stop], both endpoints included.
func linspace(start, stop float64, count int) []float64 {
	if count == 1 {
		return []float64{start}
	}
	out := make([]float64, count)
	step := (stop - start) / float64(count-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[count-1] = stop
	return out
}

// mod2π reduces an angle to [0, 2π).
func mod2π(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
