package orbel

import (
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// DefaultTickInterval is the wall-clock period between animation ticks.
const DefaultTickInterval = 15 * time.Millisecond

// Clock is the repeating-timer service driving the animator. The core never
// owns an event loop: an external mechanism fires at Interval and calls the
// animator's Tick on the same goroutine that owns all orbit state.
type Clock interface {
	Start()
	Stop()
	Active() bool
	Interval() time.Duration
	SetInterval(time.Duration)
}

// WallClock is a time.Ticker backed Clock. Ticks must be drained by the
// single goroutine owning the scene; there is no callback dispatch.
type WallClock struct {
	interval time.Duration
	ticker   *time.Ticker
}

// NewWallClock returns a stopped wall clock with the given period.
func NewWallClock(interval time.Duration) *WallClock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &WallClock{interval: interval}
}

// Start begins ticking. No-op when already active.
func (c *WallClock) Start() {
	if c.ticker == nil {
		c.ticker = time.NewTicker(c.interval)
	}
}

// Stop halts ticking. No-op when already stopped.
func (c *WallClock) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Active reports whether the clock is ticking.
func (c *WallClock) Active() bool { return c.ticker != nil }

// Interval returns the tick period.
func (c *WallClock) Interval() time.Duration { return c.interval }

// SetInterval changes the tick period, restarting the ticker if active.
func (c *WallClock) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	c.interval = interval
	if c.ticker != nil {
		c.ticker.Reset(interval)
	}
}

// Ticks exposes the underlying channel for the owning loop to range over.
// Nil while stopped.
func (c *WallClock) Ticks() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.C
}

// ManualClock is a Clock advanced explicitly, for tests and offline rendering.
type ManualClock struct {
	interval time.Duration
	active   bool
}

// NewManualClock returns a stopped manual clock with the given period.
func NewManualClock(interval time.Duration) *ManualClock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &ManualClock{interval: interval}
}

// Start marks the clock active.
func (c *ManualClock) Start() { c.active = true }

// Stop marks the clock stopped.
func (c *ManualClock) Stop() { c.active = false }

// Active reports whether the clock has been started.
func (c *ManualClock) Active() bool { return c.active }

// Interval returns the nominal tick period.
func (c *ManualClock) Interval() time.Duration { return c.interval }

// SetInterval changes the nominal tick period.
func (c *ManualClock) SetInterval(interval time.Duration) {
	if interval > 0 {
		c.interval = interval
	}
}

// AnimatorHost is the surface the animator needs from the view owning the
// orbit state.
type AnimatorHost interface {
	// SemiMajor returns the current semi-major axis.
	SemiMajor() float64
	// Masses returns the current mass parameters.
	Masses() MassParameters
	// DirSign returns +1 for prograde apparent motion (i < 90°), -1 past the
	// inclination fold.
	DirSign() float64
	// StepM advances the mean anomaly by dM, resyncs the true anomaly and
	// refreshes the displayed body position.
	StepM(dM float64)
	// RequestRedraw asks the rendering collaborator for a repaint.
	RequestRedraw()
}

// Animator advances the mean anomaly at a rate derived from Kepler's third
// law and the clock period. Two states, stopped and running; initial state is
// stopped and both transitions are idempotent.
type Animator struct {
	host       AnimatorHost
	clock      Clock
	logger     kitlog.Logger
	speedScale float64
	dM         float64
	running    bool
}

// NewAnimator wires a stopped animator to its host and clock. A nil logger
// disables logging.
func NewAnimator(host AnimatorHost, clock Clock, logger kitlog.Logger) *Animator {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	a := &Animator{
		host:       host,
		clock:      clock,
		logger:     kitlog.With(logger, "component", "animator"),
		speedScale: 1,
	}
	a.RecomputeMeanMotion()
	return a
}

// Running reports whether the animator is in the running state.
func (a *Animator) Running() bool { return a.running }

// Start transitions stopped to running. No-op if already running.
func (a *Animator) Start() {
	if a.running {
		return
	}
	a.running = true
	a.clock.Start()
	a.logger.Log("state", "running", "dM", a.dM)
}

// Stop transitions running to stopped. No-op if already stopped.
func (a *Animator) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.clock.Stop()
	a.logger.Log("state", "stopped")
}

// SetSpeedScale sets the non-negative rate multiplier. Zero freezes the body
// without stopping the clock.
func (a *Animator) SetSpeedScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	a.speedScale = scale
	a.RecomputeMeanMotion()
}

// SpeedScale returns the current rate multiplier.
func (a *Animator) SpeedScale() float64 { return a.speedScale }

// DM returns the mean-anomaly increment applied per tick.
func (a *Animator) DM() float64 { return a.dM }

// RecomputeMeanMotion rederives dM = n · dt · scale from Kepler's third law.
// Must be re-run whenever the semi-major axis, either mass, or the tick
// interval changes; the Scene wires this to its model subscriptions.
func (a *Animator) RecomputeMeanMotion() {
	dt := a.clock.Interval()
	if dt < time.Millisecond {
		dt = time.Millisecond
	}
	n := a.host.Masses().MeanMotion(a.host.SemiMajor())
	a.dM = n * dt.Seconds() * a.speedScale
}

// Tick advances one animation step. Only effective while running; the caller
// is the clock's drain loop, on the single goroutine owning the state.
func (a *Animator) Tick() {
	if !a.running {
		return
	}
	a.host.StepM(a.host.DirSign() * a.dM)
	a.host.RequestRedraw()
}
