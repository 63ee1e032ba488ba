package orbel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario()
	a, e, i, ω, Ω, startν := sc.Orbit.Elements()
	if a != 1.0 || e != 0.5 {
		t.Fatalf("default orbit must be a=1 e=0.5, got a=%g e=%g", a, e)
	}
	for name, tc := range map[string]struct{ got, wantDeg float64 }{
		"i":      {i, 45},
		"w":      {ω, 90},
		"Om":     {Ω, 90},
		"startν": {startν, 45},
	} {
		if !floats.EqualWithinAbs(tc.got, Deg2rad(tc.wantDeg), 1e-12) {
			t.Fatalf("default %s must be %g°", name, tc.wantDeg)
		}
	}
	if sc.Masses.M1() != 1.6 || sc.Masses.M2() != 0.8 {
		t.Fatal("default masses must be 1.6 and 0.8")
	}
	if sc.Interval != 15*time.Millisecond || sc.SpeedScale != 1 || sc.View != ViewRelative {
		t.Fatal("default animation settings must be 15 ms, scale 1, relative view")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.toml")
	content := `
[orbit]
a = 2.5
e = 0.75
i_deg = 120.0
w_deg = 10.0

[masses]
m1 = 3.0

[animation]
interval_ms = 30
speed_scale = 0.5
view = "absolute"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Orbit.A() != 2.5 || sc.Orbit.E() != 0.75 {
		t.Fatalf("file values must win: got a=%g e=%g", sc.Orbit.A(), sc.Orbit.E())
	}
	if !floats.EqualWithinAbs(sc.Orbit.I(), Deg2rad(120), 1e-12) {
		t.Fatal("inclination must convert from degrees")
	}
	// Unset keys fall back to defaults.
	if !floats.EqualWithinAbs(sc.Orbit.NodeΩ(), Deg2rad(90), 1e-12) {
		t.Fatal("missing Om must default to 90°")
	}
	if sc.Masses.M1() != 3.0 || sc.Masses.M2() != 0.8 {
		t.Fatal("missing m2 must default to 0.8")
	}
	if sc.Interval != 30*time.Millisecond || sc.SpeedScale != 0.5 || sc.View != ViewAbsolute {
		t.Fatal("animation settings must load from the file")
	}
}

func TestLoadScenarioClampsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	content := `
[orbit]
a = -3.0
e = 1.7

[masses]
m2 = -1.0

[animation]
interval_ms = 0
speed_scale = -2.0
view = "sideways"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	// Silent correction, not rejection: dragging a file through extreme
	// values behaves like dragging a slider.
	if sc.Orbit.A() <= 0 || sc.Orbit.E() > 0.999999 {
		t.Fatal("out-of-range elements must be clamped")
	}
	if sc.Masses.M2() <= 0 {
		t.Fatal("non-positive masses must be floored")
	}
	if sc.Interval != DefaultTickInterval || sc.SpeedScale != 0 {
		t.Fatal("invalid animation settings must fall back")
	}
	if sc.View != ViewRelative {
		t.Fatal("unknown view names must fall back to relative")
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("a missing scenario file is an error")
	}
}

func TestNewSceneFromScenario(t *testing.T) {
	sc := DefaultScenario()
	sc.SpeedScale = 0.25
	sc.View = ViewAbsolute
	scene, clock := NewSceneFromScenario(sc, nil)
	if scene.Mode() != ViewAbsolute {
		t.Fatal("scene must adopt the scenario view")
	}
	if scene.Animator().SpeedScale() != 0.25 {
		t.Fatal("scene must adopt the scenario speed scale")
	}
	if clock.Interval() != sc.Interval {
		t.Fatal("clock must adopt the scenario interval")
	}
	if clock.Active() {
		t.Fatal("the clock starts stopped")
	}
}
