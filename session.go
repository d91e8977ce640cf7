package bloch

import (
	"errors"
	"fmt"

	"github.com/theapemachine/errnie"
)

// ErrSessionClosed is returned by every operation after Close.
var ErrSessionClosed = errors.New("session closed")

/*
Session is one interactive Bloch-sphere visualizer. It owns the slider
position, the conversion mode, the current state and its trajectory, and the
animator holding the per-series cancellation tokens.

Input arrives as discrete events: SetAngles on slider movement, Commit when
a slider is released, ToggleMode, ApplyGate and ResetTrajectory. A Session is
not safe for concurrent use; only its Animator may be stepped from another
goroutine.
*/
type Session struct {
	cfg        *Config
	animator   *Animator
	blueprint  []AnglePair
	mode       ConversionMode
	theta      int
	phi        int
	state      Qubit
	trajectory *Trajectory
	closed     bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithAnimator lets the caller supply the animator, for instance one with a
// fake clock.
func WithAnimator(a *Animator) SessionOption {
	return func(s *Session) {
		s.animator = a
	}
}

// WithMode sets the initial conversion mode.
func WithMode(mode ConversionMode) SessionOption {
	return func(s *Session) {
		s.mode = mode
	}
}

/*
NewSession starts at |0⟩ with both sliders at 0, draws the grid, guides,
state marker and an empty trajectory, and seeds the trajectory with the
starting point.
*/
func NewSession(renderer Renderer, cfg *Config, opts ...SessionOption) (*Session, error) {
	s := &Session{
		cfg:       cfg.withDefaults(),
		blueprint: GridBlueprint(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.animator == nil {
		s.animator = NewAnimator(renderer)
	}

	s.state = FromAngles(0, 0, s.mode)
	s.trajectory = NewTrajectory(s.state.Point(), s.cfg.TrajectoryEpsilon, s.cfg.PathSteps)

	errnie.Info("NewSession - mode %v, path steps %d", s.mode, s.cfg.PathSteps)

	for _, series := range []Series{
		MapGrid(s.blueprint, s.mode),
		Guides(),
		s.stateSeries(),
		s.trajectorySeries(),
	} {
		if err := s.animator.Draw(series); err != nil {
			return nil, fmt.Errorf("draw %s: %w", series.Name, err)
		}
	}

	return s, nil
}

func (s *Session) Config() *Config           { return s.cfg }
func (s *Session) Animator() *Animator       { return s.animator }
func (s *Session) Mode() ConversionMode      { return s.mode }
func (s *Session) State() Qubit              { return s.state }
func (s *Session) Point() Point              { return s.state.Point() }
func (s *Session) Trajectory() *Trajectory   { return s.trajectory }
func (s *Session) Sliders() (theta, phi int) { return s.theta, s.phi }

// Readout is the amplitude panel content for the current state.
func (s *Session) Readout() Readout {
	return s.state.Readout(s.mode)
}

// SetAngles handles slider movement: the state follows the sliders and the
// marker is redrawn at once. Nothing is committed to the trajectory.
func (s *Session) SetAngles(theta, phi int) error {
	if s.closed {
		return ErrSessionClosed
	}

	s.theta = FormatThetaForSlider(float64(theta))
	s.phi = FormatPhiForSlider(float64(phi))
	s.state = FromAngles(float64(s.theta), float64(s.phi), s.mode)

	return s.draw(s.stateSeries())
}

// Commit records the current point, as on slider release.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.commit()
}

func (s *Session) commit() error {
	if !s.trajectory.Append(s.state.Point()) {
		return nil
	}
	return s.draw(s.trajectorySeries())
}

// ResetTrajectory truncates the history to the current point.
func (s *Session) ResetTrajectory() error {
	if s.closed {
		return ErrSessionClosed
	}

	s.trajectory.Reset(s.state.Point())
	errnie.Info("trajectory reset at theta %d, phi %d", s.theta, s.phi)
	return s.draw(s.trajectorySeries())
}

/*
ToggleMode flips the conversion mode. The sliders keep their position, so
the state changes; the grid morphs to its new mapping and the marker travels
to its new point along the great circle.
*/
func (s *Session) ToggleMode() error {
	if s.closed {
		return ErrSessionClosed
	}

	s.mode = !s.mode
	from := s.onScreen()
	s.state = FromAngles(float64(s.theta), float64(s.phi), s.mode)

	errnie.Info("conversion mode %v", s.mode)

	s.animator.Animate(MapGrid(s.blueprint, s.mode), s.cfg.ConversionDuration)
	s.animator.AnimatePath(
		SeriesState,
		SampleGreatCircle(from, s.state.Point(), s.cfg.TransitionSteps),
		StateColor(float64(s.phi), s.mode),
		s.cfg.ConversionDuration,
	)
	return nil
}

/*
ApplyGate applies the gate named by key. Unknown keys are ignored and report
false. Otherwise the exact resulting state becomes current, the sliders snap
to the nearest integer position describing it, the marker travels along the
geodesic from the old point, and the new point is committed.
*/
func (s *Session) ApplyGate(key string) (bool, error) {
	if s.closed {
		return false, ErrSessionClosed
	}

	gate, ok := LookupGate(key)
	if !ok {
		errnie.Info("ApplyGate - unknown gate %q ignored", key)
		return false, nil
	}

	from := s.onScreen()
	s.state = s.state.ApplyGate(gate)
	s.theta, s.phi = s.state.SliderAngles(s.mode).Snap()

	errnie.Info("ApplyGate - %v, sliders theta %d, phi %d", gate.Kind, s.theta, s.phi)

	s.animator.AnimatePath(
		SeriesState,
		SampleGreatCircle(from, s.state.Point(), s.cfg.TransitionSteps),
		StateColor(float64(s.phi), s.mode),
		s.cfg.GateDuration,
	)

	return true, s.commit()
}

// Close cancels every running transition. Further operations fail with
// ErrSessionClosed.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.animator.CancelAll(ErrSessionClosed)
	errnie.Info("session closed")
}

// onScreen is where the marker is drawn right now, which lags the state
// while a transition runs.
func (s *Session) onScreen() Point {
	if marker, ok := s.animator.Current(SeriesState); ok && marker.Len() > 0 {
		return marker.At(0)
	}
	return s.state.Point()
}

func (s *Session) stateSeries() Series {
	series := SeriesFromPoints(SeriesState, []Point{s.state.Point()})
	series.Colors = []string{StateColor(float64(s.phi), s.mode)}
	return series
}

func (s *Session) trajectorySeries() Series {
	return SeriesFromPath(SeriesTrajectory, s.trajectory.Path())
}

func (s *Session) draw(series Series) error {
	if err := s.animator.Draw(series); err != nil {
		return fmt.Errorf("draw %s: %w", series.Name, err)
	}
	return nil
}
