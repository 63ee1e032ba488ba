package orbel

// Topic tags which parameter set of an OrbitModel changed.
type Topic uint8

const (
	// TopicOrbit signals a change of the orbital elements.
	TopicOrbit Topic = iota
	// TopicMass signals a change of the body masses.
	TopicMass
)

func (t Topic) String() string {
	switch t {
	case TopicOrbit:
		return "orbit"
	case TopicMass:
		return "mass"
	}
	return "unknown"
}

// Event carries the post-change state to subscribers. Only the value matching
// the topic changed; the other is included so callbacks that derive from both
// (e.g. mean motion) need not reach back into the model.
type Event struct {
	Topic  Topic
	Orbit  OrbitParameters
	Masses MassParameters
}

// OrbitModel owns the current orbit and mass parameters and notifies
// subscribers per topic. Subscribers are invoked synchronously in
// registration order; there is no unsubscribe, the model lives as long as
// its owning view. No history is retained.
type OrbitModel struct {
	orbit  OrbitParameters
	masses MassParameters
	subs   map[Topic][]func(Event)
}

// NewOrbitModel validates and stores the initial parameter sets.
func NewOrbitModel(orbit OrbitParameters, masses MassParameters) *OrbitModel {
	return &OrbitModel{
		orbit:  orbit.EnsureValid(),
		masses: masses.EnsureValid(),
		subs:   make(map[Topic][]func(Event)),
	}
}

// Orbit returns the current orbital elements.
func (m *OrbitModel) Orbit() OrbitParameters { return m.orbit }

// Masses returns the current mass parameters.
func (m *OrbitModel) Masses() MassParameters { return m.masses }

// Subscribe registers a callback invoked with the new state whenever the
// given topic changes.
func (m *OrbitModel) Subscribe(topic Topic, fn func(Event)) {
	m.subs[topic] = append(m.subs[topic], fn)
}

func (m *OrbitModel) notify(topic Topic) {
	evt := Event{Topic: topic, Orbit: m.orbit, Masses: m.masses}
	for _, fn := range m.subs[topic] {
		fn(evt)
	}
}

// SetOrbit replaces the current orbital elements and notifies the orbit topic only.
func (m *OrbitModel) SetOrbit(params OrbitParameters) {
	m.orbit = params.EnsureValid()
	m.notify(TopicOrbit)
}

// UpdateOrbit applies the named changes against the current elements.
func (m *OrbitModel) UpdateOrbit(changes ...OrbitChange) {
	m.SetOrbit(m.orbit.With(changes...))
}

// SetMasses replaces the current masses and notifies the mass topic only.
func (m *OrbitModel) SetMasses(masses MassParameters) {
	m.masses = masses.EnsureValid()
	m.notify(TopicMass)
}

// UpdateMasses applies the named changes against the current masses.
func (m *OrbitModel) UpdateMasses(changes ...MassChange) {
	m.SetMasses(m.masses.With(changes...))
}
