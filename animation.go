package bloch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

var (
	// ErrAnimationComplete is the cause of an animation that ran to the end.
	ErrAnimationComplete = errors.New("animation complete")
	// ErrAnimationSuperseded is the cause of an animation replaced by a newer
	// one on the same series, or by an immediate redraw.
	ErrAnimationSuperseded = errors.New("animation superseded")
)

/*
Animation is one in-flight transition of a named series. Its context is the
cancellation token: it is cancelled with ErrAnimationComplete when progress
reaches 1, with ErrAnimationSuperseded when replaced, or with a renderer
error when a frame fails.
*/
type Animation struct {
	series   string
	from     Series
	to       Series
	path     []Point
	color    string
	started  time.Time
	duration time.Duration
	ctx      context.Context
	cancel   context.CancelCauseFunc
}

func (an *Animation) Series() string {
	return an.series
}

// Done is closed once the animation stops for any reason.
func (an *Animation) Done() <-chan struct{} {
	return an.ctx.Done()
}

// Err returns nil while running, then the reason it stopped.
func (an *Animation) Err() error {
	if an.ctx.Err() == nil {
		return nil
	}
	return context.Cause(an.ctx)
}

// progress is elapsed over duration clamped to [0,1].
func (an *Animation) progress(now time.Time) float64 {
	if an.duration <= 0 {
		return 1
	}
	return clamp(float64(now.Sub(an.started))/float64(an.duration), 0, 1)
}

func (an *Animation) frame(now time.Time) (Series, bool) {
	p := an.progress(now)
	eased := EaseInOutCubic(p)

	var s Series
	if an.path != nil {
		s = SeriesFromPoints(an.series, []Point{alongPath(an.path, eased)})
		if an.color != "" {
			s.Colors = []string{an.color}
		}
	} else {
		s = LerpSeries(an.from, an.to, eased)
		s.Name = an.series
	}

	return s, p >= 1
}

/*
Animator owns the cancellation tokens of every animated series and the last
coordinates drawn for each, so a new transition always starts from what is
currently on screen. Frames run under the animator's lock: a cancellation
issued while a frame is drawing waits for that frame and suppresses the next.
*/
type Animator struct {
	mu       sync.Mutex
	renderer Renderer
	active   map[string]*Animation
	current  map[string]Series
	now      func() time.Time
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) AnimatorOption {
	return func(a *Animator) {
		a.now = now
	}
}

func NewAnimator(renderer Renderer, opts ...AnimatorOption) *Animator {
	a := &Animator{
		renderer: renderer,
		active:   make(map[string]*Animation),
		current:  make(map[string]Series),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Draw cancels any transition on s.Name and redraws it immediately.
func (a *Animator) Draw(s Series) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked(s.Name, ErrAnimationSuperseded)
	return a.redrawLocked(s)
}

// Current returns the coordinates last drawn for name.
func (a *Animator) Current(name string) (Series, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.current[name]
	return s.Clone(), ok
}

// Animate starts a transition of the series to.Name from its current
// coordinates toward to. A running transition on the same series is
// cancelled first.
func (a *Animator) Animate(to Series, duration time.Duration) *Animation {
	a.mu.Lock()
	defer a.mu.Unlock()

	from, ok := a.current[to.Name]
	if !ok {
		from = to
	}
	return a.startLocked(&Animation{
		series:   to.Name,
		from:     from.Clone(),
		to:       to.Clone(),
		duration: duration,
	})
}

// AnimatePath moves a single-point series along path, typically a sampled
// great circle, colouring it with color when non-empty.
func (a *Animator) AnimatePath(name string, path []Point, color string, duration time.Duration) *Animation {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.startLocked(&Animation{
		series:   name,
		path:     append([]Point(nil), path...),
		color:    color,
		duration: duration,
	})
}

func (a *Animator) startLocked(an *Animation) *Animation {
	if prev, ok := a.active[an.series]; ok {
		errnie.Info("animation on %s superseded", an.series)
		prev.cancel(ErrAnimationSuperseded)
	}

	an.started = a.now()
	an.ctx, an.cancel = context.WithCancelCause(context.Background())
	a.active[an.series] = an
	return an
}

// Cancel stops the transition on name, if any.
func (a *Animator) Cancel(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked(name, ErrAnimationSuperseded)
}

// CancelAll stops every transition with cause.
func (a *Animator) CancelAll(cause error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for name := range a.active {
		a.cancelLocked(name, cause)
	}
}

func (a *Animator) cancelLocked(name string, cause error) {
	if an, ok := a.active[name]; ok {
		an.cancel(cause)
		delete(a.active, name)
	}
}

// Active is the number of running transitions.
func (a *Animator) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.active)
}

/*
Step draws one frame of every running transition at time now. Finished
transitions are retired. The first renderer error is returned after all
series had their frame; the failing transition is stopped with that error.
*/
func (a *Animator) Step(now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var first error
	for name, an := range a.active {
		s, finished := an.frame(now)

		if err := a.redrawLocked(s); err != nil {
			an.cancel(err)
			delete(a.active, name)
			if first == nil {
				first = err
			}
			continue
		}

		if finished {
			an.cancel(ErrAnimationComplete)
			delete(a.active, name)
		}
	}
	return first
}

// Run drives Step from a ticker until ctx is done. Renderer errors are
// logged and do not stop the loop.
func (a *Animator) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.Step(a.now()); err != nil {
				errnie.Info("frame failed: %v", err)
			}
		}
	}
}

func (a *Animator) redrawLocked(s Series) error {
	if err := a.renderer.Redraw(s.Name, s); err != nil {
		return err
	}
	a.current[s.Name] = s.Clone()
	return nil
}
