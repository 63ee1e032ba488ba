package orbel

import (
	"fmt"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

// Built-in scenario defaults, restored on every application start. Scenario
// files override these; nothing is persisted back.
const (
	defaultA          = 1.0
	defaultE          = 0.5
	defaultIDeg       = 45.0
	defaultWDeg       = 90.0
	defaultOmDeg      = 90.0
	defaultStartνDeg  = 45.0
	defaultM1         = 1.6
	defaultM2         = 0.8
	defaultSpeedScale = 1.0
)

// Scenario bundles everything needed to construct a Scene. Angles are stored
// in radians; scenario files carry them in degrees for hand-editing and are
// converted at the load boundary.
type Scenario struct {
	Orbit      OrbitParameters
	Masses     MassParameters
	Interval   time.Duration
	SpeedScale float64
	View       ViewMode
}

// DefaultScenario returns the hardcoded startup state.
func DefaultScenario() Scenario {
	return Scenario{
		Orbit: NewOrbitParameters(defaultA, defaultE, Deg2rad(defaultIDeg),
			Deg2rad(defaultWDeg), Deg2rad(defaultOmDeg), Deg2rad(defaultStartνDeg)),
		Masses:     NewMassParameters(defaultM1, defaultM2),
		Interval:   DefaultTickInterval,
		SpeedScale: defaultSpeedScale,
		View:       ViewRelative,
	}
}

// LoadScenario reads a TOML scenario file. Missing keys fall back to the
// defaults; out-of-range values are clamped by the parameter validation, not
// rejected.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("orbit.a", defaultA)
	v.SetDefault("orbit.e", defaultE)
	v.SetDefault("orbit.i_deg", defaultIDeg)
	v.SetDefault("orbit.w_deg", defaultWDeg)
	v.SetDefault("orbit.om_deg", defaultOmDeg)
	v.SetDefault("orbit.start_nu_deg", defaultStartνDeg)
	v.SetDefault("masses.m1", defaultM1)
	v.SetDefault("masses.m2", defaultM2)
	v.SetDefault("animation.interval_ms", int(DefaultTickInterval/time.Millisecond))
	v.SetDefault("animation.speed_scale", defaultSpeedScale)
	v.SetDefault("animation.view", ViewRelative.String())

	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	scenario := Scenario{
		Orbit: NewOrbitParameters(
			v.GetFloat64("orbit.a"),
			v.GetFloat64("orbit.e"),
			Deg2rad(v.GetFloat64("orbit.i_deg")),
			Deg2rad(v.GetFloat64("orbit.w_deg")),
			Deg2rad(v.GetFloat64("orbit.om_deg")),
			Deg2rad(v.GetFloat64("orbit.start_nu_deg")),
		),
		Masses:     NewMassParameters(v.GetFloat64("masses.m1"), v.GetFloat64("masses.m2")),
		Interval:   time.Duration(v.GetInt("animation.interval_ms")) * time.Millisecond,
		SpeedScale: v.GetFloat64("animation.speed_scale"),
	}
	if scenario.Interval < time.Millisecond {
		scenario.Interval = DefaultTickInterval
	}
	if scenario.SpeedScale < 0 {
		scenario.SpeedScale = 0
	}
	switch v.GetString("animation.view") {
	case ViewAbsolute.String():
		scenario.View = ViewAbsolute
	default:
		scenario.View = ViewRelative
	}
	return scenario, nil
}

// NewSceneFromScenario wires a scene and its wall clock from a scenario.
func NewSceneFromScenario(sc Scenario, logger kitlog.Logger) (*Scene, *WallClock) {
	clock := NewWallClock(sc.Interval)
	scene := NewScene(sc.View, sc.Orbit, sc.Masses, clock, logger)
	scene.SetSpeedScale(sc.SpeedScale)
	return scene, clock
}
