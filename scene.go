package orbel

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
)

// ViewMode selects which derived-position formulas a Scene applies.
type ViewMode uint8

const (
	// ViewRelative plots body 2's position relative to body 1 directly.
	ViewRelative ViewMode = iota
	// ViewAbsolute plots both bodies' barycentric trajectories.
	ViewAbsolute
)

func (v ViewMode) String() string {
	if v == ViewAbsolute {
		return "absolute"
	}
	return "relative"
}

const (
	curveSamples = 1000
	arcSamples   = 200
	wedgeSamples = 40
	// arcε below which the node arcs collapse to nothing.
	arcε = 1e-9
)

// Path3 is a 3-D polyline in the reference (sky) frame.
type Path3 struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	Z []float64 `json:"z"`
}

// Path2 is a 2-D polyline in sky-plane plot coordinates.
type Path2 struct {
	U []float64 `json:"u"`
	V []float64 `json:"v"`
}

// Point3 is a single 3-D marker position.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point2 is a single 2-D marker position.
type Point2 struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// BodyTrack bundles everything drawn for one body: its orbit curve, current
// position and periastron marker, in both views.
type BodyTrack struct {
	Orbit3 Path3  `json:"orbit3d"`
	Orbit2 Path2  `json:"orbit2d"`
	Body3  Point3 `json:"body3d"`
	Body2  Point2 `json:"body2d"`
	Peri3  Point3 `json:"periastron3d"`
	Peri2  Point2 `json:"periastron2d"`
}

// Frame is a full geometry snapshot handed to the rendering collaborator.
// The core never touches pixels, colors or widget geometry.
type Frame struct {
	Mode     ViewMode    `json:"-"`
	ModeName string      `json:"mode"`
	Extent   float64     `json:"extent"`
	Trueν    float64     `json:"true_anomaly"`
	MeanM    float64     `json:"mean_anomaly"`
	Bodies   []BodyTrack `json:"bodies"`

	Asc3      Point3 `json:"ascending_node3d"`
	Des3      Point3 `json:"descending_node3d"`
	Asc2      Point2 `json:"ascending_node2d"`
	Des2      Point2 `json:"descending_node2d"`
	NodeLine3 Path3  `json:"node_line3d"`
	NodeLine2 Path2  `json:"node_line2d"`

	ΩArc3    Path3   `json:"node_arc3d"`
	ΩArc2    Path2   `json:"node_arc2d"`
	PeriArc3 []Path3 `json:"periastron_arc3d"`
	PeriArc2 []Path2 `json:"periastron_arc2d"`

	// PeriLink3 joins the two periastra in absolute view; empty otherwise.
	PeriLink3 Path3 `json:"periastron_link3d,omitempty"`
	// IncWedge is the rim polyline of the inclination wedge, origin first.
	IncWedge Path3 `json:"inclination_wedge3d,omitempty"`
}

// SkyProject maps sky-frame (X, Y) to 2-D plot coordinates (u, v) = (Y, X):
// the plotted view is the X-Y reference plane with axes swapped, the
// astronomical East-left North-up convention. Z (line of sight) is dropped.
func SkyProject(X, Y []float64) (U, V []float64) {
	U = append([]float64(nil), Y...)
	V = append([]float64(nil), X...)
	return
}

// skyPoint is the single-point form of SkyProject.
func skyPoint(x, y float64) Point2 {
	return Point2{U: y, V: x}
}

// Scene is the orbit-geometry core behind one view: it owns the model, the
// anomaly phase pair and the animator, and produces Frames. One Scene per
// view; mirroring two views is an external coordinator's job.
type Scene struct {
	mode     ViewMode
	model    *OrbitModel
	phase    PhaseTracker
	animator *Animator
	logger   kitlog.Logger
	onRedraw func()
}

// NewScene builds a scene with a stopped animator and the phase seeded from
// the orbit's start anomaly. A nil logger disables logging.
func NewScene(mode ViewMode, orbit OrbitParameters, masses MassParameters, clock Clock, logger kitlog.Logger) *Scene {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	s := &Scene{
		mode:   mode,
		model:  NewOrbitModel(orbit, masses),
		logger: kitlog.With(logger, "component", "scene", "view", mode.String()),
	}
	s.phase.SetνKeepPhase(s.model.Orbit().Startν(), s.model.Orbit().E())
	s.animator = NewAnimator(s, clock, logger)
	s.model.Subscribe(TopicOrbit, func(Event) { s.animator.RecomputeMeanMotion() })
	s.model.Subscribe(TopicMass, func(Event) { s.animator.RecomputeMeanMotion() })
	return s
}

// Mode returns the scene's view mode.
func (s *Scene) Mode() ViewMode { return s.mode }

// Model returns the underlying observable model.
func (s *Scene) Model() *OrbitModel { return s.model }

// Animator returns the scene's animator.
func (s *Scene) Animator() *Animator { return s.animator }

// Trueν returns the current true anomaly.
func (s *Scene) Trueν() float64 { return s.phase.Trueν() }

// MeanM returns the current mean anomaly.
func (s *Scene) MeanM() float64 { return s.phase.MeanM() }

// SetRedrawFunc registers the rendering collaborator's repaint request.
func (s *Scene) SetRedrawFunc(fn func()) { s.onRedraw = fn }

// ApplyParameters validates and installs new orbital elements. With keepPhase
// the displayed true anomaly is preserved across the edit (the live-slider
// path); without it the phase reseeds from the new start anomaly, a reset by
// design.
func (s *Scene) ApplyParameters(params OrbitParameters, keepPhase bool) {
	params = params.EnsureValid()
	current := s.phase.Trueν()
	s.model.SetOrbit(params)
	target := params.Startν()
	if keepPhase {
		target = current
	}
	s.phase.SetνKeepPhase(target, params.E())
	s.RequestRedraw()
}

// ApplyMasses validates and installs new mass parameters.
func (s *Scene) ApplyMasses(masses MassParameters) {
	s.model.SetMasses(masses)
	s.RequestRedraw()
}

// Start begins the animation.
func (s *Scene) Start() { s.animator.Start() }

// Stop halts the animation.
func (s *Scene) Stop() { s.animator.Stop() }

// SetSpeedScale forwards to the animator.
func (s *Scene) SetSpeedScale(scale float64) { s.animator.SetSpeedScale(scale) }

// SemiMajor implements AnimatorHost.
func (s *Scene) SemiMajor() float64 { return s.model.Orbit().A() }

// Masses implements AnimatorHost.
func (s *Scene) Masses() MassParameters { return s.model.Masses() }

// DirSign returns +1 while the inclination is below 90° and -1 past it: the
// apparent motion on the sky flips from prograde to retrograde through the
// inclination fold.
func (s *Scene) DirSign() float64 {
	if s.model.Orbit().I() < math.Pi/2 {
		return 1
	}
	return -1
}

// StepM implements AnimatorHost: advance the mean anomaly and resync ν.
func (s *Scene) StepM(dM float64) {
	s.phase.AdvanceM(dM, s.model.Orbit().E())
}

// RequestRedraw implements AnimatorHost.
func (s *Scene) RequestRedraw() {
	if s.onRedraw != nil {
		s.onRedraw()
	}
}

// ascendingν returns the true anomaly of the ascending node: f = (-ω) mod 2π
// while i < 90°, ω mod 2π past it. Which root of the line of nodes is the
// ascending one flips with the inclination fold.
func (s *Scene) ascendingν() float64 {
	ω := mod2π(s.model.Orbit().ArgPeriω())
	if s.DirSign() > 0 {
		return mod2π(-ω)
	}
	return ω
}

// Frame computes a fresh geometry snapshot for the current state.
func (s *Scene) Frame() Frame {
	orbit := s.model.Orbit()
	frame := Frame{
		Mode:     s.mode,
		ModeName: s.mode.String(),
		Extent:   orbit.ExtentRadius(),
		Trueν:    s.phase.Trueν(),
		MeanM:    s.phase.MeanM(),
	}

	fAsc := s.ascendingν()
	fDes := mod2π(fAsc + math.Pi)
	sweep := linspace(0, 2*math.Pi, curveSamples)
	Xr, Yr, Zr := orbit.RelativePosition(sweep, false)

	switch s.mode {
	case ViewAbsolute:
		c1, c2 := s.model.Masses().BarycentricFactors()
		frame.Bodies = []BodyTrack{
			s.bodyTrack(orbit, Xr, Yr, Zr, c1),
			s.bodyTrack(orbit, Xr, Yr, Zr, c2),
		}
		// Node markers go on whichever body dominates; both bodies are
		// diametrically opposite at every instant.
		cDom := c1
		if math.Abs(c2) > math.Abs(c1) {
			cDom = c2
		}
		frame.Asc3, frame.Asc2 = scaledMarker(orbit, fAsc, cDom)
		frame.Des3, frame.Des2 = scaledMarker(orbit, fDes, cDom)
		frame.PeriLink3 = Path3{
			X: []float64{frame.Bodies[0].Peri3.X, frame.Bodies[1].Peri3.X},
			Y: []float64{frame.Bodies[0].Peri3.Y, frame.Bodies[1].Peri3.Y},
			Z: []float64{frame.Bodies[0].Peri3.Z, frame.Bodies[1].Peri3.Z},
		}
		// One periastron arc per body. Body 1's periastron is antipodal, so
		// its arc spans ω+π and uses the primary-measured rotation; scaling
		// by |c1| then lands on the same points as the barycentric split.
		ω := mod2π(orbit.ArgPeriω())
		arc2_3, arc2_2 := s.periArc(orbit, ω, math.Abs(c2), false)
		arc1_3, arc1_2 := s.periArc(orbit, mod2π(ω+math.Pi), math.Abs(c1), true)
		frame.PeriArc3 = []Path3{arc1_3, arc2_3}
		frame.PeriArc2 = []Path2{arc1_2, arc2_2}
	default:
		frame.Bodies = []BodyTrack{s.bodyTrack(orbit, Xr, Yr, Zr, 1)}
		frame.Asc3, frame.Asc2 = scaledMarker(orbit, fAsc, 1)
		frame.Des3, frame.Des2 = scaledMarker(orbit, fDes, 1)
		arc3, arc2 := s.periArc(orbit, mod2π(orbit.ArgPeriω()), 1, false)
		frame.PeriArc3 = []Path3{arc3}
		frame.PeriArc2 = []Path2{arc2}
	}

	frame.NodeLine3, frame.NodeLine2 = s.nodeLine(orbit, frame.Extent)
	frame.ΩArc3, frame.ΩArc2 = s.nodeArc(orbit, frame.Extent)
	frame.IncWedge = s.inclinationWedge(orbit, frame.Extent)
	return frame
}

// bodyTrack scales the shared relative-position sweep by the barycentric
// factor c (c = 1 collapses to the relative view) and evaluates the body and
// periastron markers at the current ν and f = 0.
func (s *Scene) bodyTrack(orbit OrbitParameters, Xr, Yr, Zr []float64, c float64) BodyTrack {
	var track BodyTrack
	track.Orbit3 = Path3{X: scaled(Xr, c), Y: scaled(Yr, c), Z: scaled(Zr, c)}
	track.Orbit2.U, track.Orbit2.V = SkyProject(track.Orbit3.X, track.Orbit3.Y)

	xb, yb, zb := orbit.RelativePositionAt(s.phase.Trueν(), false)
	track.Body3 = Point3{X: c * xb, Y: c * yb, Z: c * zb}
	track.Body2 = skyPoint(track.Body3.X, track.Body3.Y)

	xp, yp, zp := orbit.RelativePositionAt(0, false)
	track.Peri3 = Point3{X: c * xp, Y: c * yp, Z: c * zp}
	track.Peri2 = skyPoint(track.Peri3.X, track.Peri3.Y)
	return track
}

// scaledMarker evaluates a single relative-position marker scaled by c.
func scaledMarker(orbit OrbitParameters, f, c float64) (Point3, Point2) {
	x, y, z := orbit.RelativePositionAt(f, false)
	p3 := Point3{X: c * x, Y: c * y, Z: c * z}
	return p3, skyPoint(p3.X, p3.Y)
}

// periArc walks the argument-of-periastron arc on the orbit curve itself:
// true anomalies from the node through span, in the direction of apparent
// motion. The start anomaly comes from the span so that the walk always
// terminates at f = 0 — the periastron of whichever argument measurement
// the span encodes.
func (s *Scene) periArc(orbit OrbitParameters, span, scale float64, ωIsPrimary bool) (Path3, Path2) {
	if span < arcε {
		return Path3{}, Path2{}
	}
	dir := s.DirSign()
	fAsc := span
	if dir > 0 {
		fAsc = mod2π(-span)
	}
	th := linspace(0, span, arcSamples)
	f := make([]float64, len(th))
	for j, t := range th {
		f[j] = mod2π(fAsc + dir*t)
	}
	X, Y, Z := orbit.RelativePosition(f, ωIsPrimary)
	p3 := Path3{X: scaled(X, scale), Y: scaled(Y, scale), Z: scaled(Z, scale)}
	var p2 Path2
	p2.U, p2.V = SkyProject(p3.X, p3.Y)
	return p3, p2
}

// nodeLine spans the line of nodes across 90% of the view extent.
func (s *Scene) nodeLine(orbit OrbitParameters, extent float64) (Path3, Path2) {
	sΩ, cΩ := math.Sincos(orbit.NodeΩ())
	t := []float64{-0.9 * extent, 0.9 * extent}
	p3 := Path3{
		X: []float64{t[0] * cΩ, t[1] * cΩ},
		Y: []float64{t[0] * sΩ, t[1] * sΩ},
		Z: []float64{0, 0},
	}
	var p2 Path2
	p2.U, p2.V = SkyProject(p3.X, p3.Y)
	return p3, p2
}

// nodeArc sweeps the longitude-of-ascending-node arc in the sky plane at 70%
// of the view extent. Empty when Ω vanishes modulo 2π.
func (s *Scene) nodeArc(orbit OrbitParameters, extent float64) (Path3, Path2) {
	Ω := mod2π(orbit.NodeΩ())
	if Ω < arcε {
		return Path3{}, Path2{}
	}
	end := Ω
	if math.Abs(Ω-2*math.Pi) < arcε {
		end = 2 * math.Pi
	}
	th := linspace(0, end, arcSamples)
	r := 0.7 * extent
	p3 := Path3{X: make([]float64, len(th)), Y: make([]float64, len(th)), Z: make([]float64, len(th))}
	for j, t := range th {
		sT, cT := math.Sincos(t)
		p3.X[j] = r * cT
		p3.Y[j] = r * sT
	}
	var p2 Path2
	p2.U, p2.V = SkyProject(p3.X, p3.Y)
	return p3, p2
}

// inclinationWedge builds the rim polyline of the wedge between the sky
// normal and the orbit normal, hinged on the line of nodes. Origin first,
// then the rim at 70% of the view extent; empty for a face-on orbit.
func (s *Scene) inclinationWedge(orbit OrbitParameters, extent float64) Path3 {
	k := []float64{0, 0, 1}
	n := MxV33(orbit.RotationMatrix(false), k)
	axis := cross(k, n)
	if norm(axis) < arcε {
		return Path3{}
	}
	lHat := unit(axis)
	e1 := unit(cross(lHat, k))
	e2 := cross(lHat, e1)
	th := linspace(0, orbit.I(), wedgeSamples)
	r := 0.7 * extent
	wedge := Path3{
		X: make([]float64, len(th)+1),
		Y: make([]float64, len(th)+1),
		Z: make([]float64, len(th)+1),
	}
	for j, t := range th {
		sT, cT := math.Sincos(t)
		wedge.X[j+1] = r * (cT*e1[0] + sT*e2[0])
		wedge.Y[j+1] = r * (cT*e1[1] + sT*e2[1])
		wedge.Z[j+1] = r * (cT*e1[2] + sT*e2[2])
	}
	return wedge
}

// scaled returns c times each element of v.
func scaled(v []float64, c float64) []float64 {
	out := make([]float64, len(v))
	for i, val := range v {
		out[i] = c * val
	}
	return out
}
