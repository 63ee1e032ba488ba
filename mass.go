package orbel

import (
	"fmt"
	"math"
)

// MassParameters holds the two body masses of the system, in arbitrary units.
// Immutable; same With/EnsureValid pattern as OrbitParameters.
type MassParameters struct {
	m1, m2 float64
}

// NewMassParameters returns a validated mass pair.
func NewMassParameters(m1, m2 float64) MassParameters {
	return MassParameters{m1, m2}.EnsureValid()
}

// EnsureValid floors both masses strictly above zero.
func (m MassParameters) EnsureValid() MassParameters {
	m.m1 = math.Max(m.m1, paramε)
	m.m2 = math.Max(m.m2, paramε)
	return m
}

// MassChange names a single field update for With.
type MassChange func(*MassParameters)

// SetM1 replaces the primary mass.
func SetM1(m1 float64) MassChange { return func(m *MassParameters) { m.m1 = m1 } }

// SetM2 replaces the secondary mass.
func SetM2(m2 float64) MassChange { return func(m *MassParameters) { m.m2 = m2 } }

// With returns a new validated instance with the named fields replaced.
func (m MassParameters) With(changes ...MassChange) MassParameters {
	for _, change := range changes {
		change(&m)
	}
	return m.EnsureValid()
}

// M1 returns the primary mass.
func (m MassParameters) M1() float64 { return m.m1 }

// M2 returns the secondary mass.
func (m MassParameters) M2() float64 { return m.m2 }

// TotalMass returns m1 + m2.
func (m MassParameters) TotalMass() float64 {
	return math.Max(m.m1+m.m2, paramε)
}

// BarycentricFactors returns (c1, c2) such that body 1 and body 2 sit at c1·r
// and c2·r from the barycenter for relative position vector r:
// c1 = -m2/(m1+m2), c2 = m1/(m1+m2).
func (m MassParameters) BarycentricFactors() (c1, c2 float64) {
	total := m.TotalMass()
	return -m.m2 / total, m.m1 / total
}

// MeanMotion returns n = sqrt((m1+m2)/a³) per Kepler's third law. The
// semi-major axis is floored the same way as in OrbitParameters to avoid a
// division by zero.
func (m MassParameters) MeanMotion(semiMajor float64) float64 {
	semi := math.Max(semiMajor, paramε)
	return math.Sqrt(m.TotalMass() / (semi * semi * semi))
}

// String implements the stringer interface.
func (m MassParameters) String() string {
	return fmt.Sprintf("m1=%.3f m2=%.3f", m.m1, m.m2)
}
