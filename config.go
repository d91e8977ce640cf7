package bloch

import "time"

const (
	DefaultPathSteps       = 32
	DefaultTransitionSteps = 48
	DefaultFrameInterval   = 16 * time.Millisecond
)

// Config tunes sampling density and animation timing for a Session.
type Config struct {
	PathSteps          int           // samples per trajectory segment
	TransitionSteps    int           // samples for a gate transition arc
	TrajectoryEpsilon  float64       // per-axis dedup threshold
	ConversionDuration time.Duration // grid and marker move on mode toggle
	GateDuration       time.Duration // marker move along a gate arc
	FrameInterval      time.Duration // frame clock used by Animator.Run
}

func NewConfig() *Config {
	return &Config{
		PathSteps:          DefaultPathSteps,
		TransitionSteps:    DefaultTransitionSteps,
		TrajectoryEpsilon:  DefaultTrajectoryEpsilon,
		ConversionDuration: 700 * time.Millisecond,
		GateDuration:       600 * time.Millisecond,
		FrameInterval:      DefaultFrameInterval,
	}
}

// withDefaults fills zero or invalid fields from NewConfig.
func (c *Config) withDefaults() *Config {
	def := NewConfig()
	if c == nil {
		return def
	}

	out := *c
	if out.PathSteps < 1 {
		out.PathSteps = def.PathSteps
	}
	if out.TransitionSteps < 1 {
		out.TransitionSteps = def.TransitionSteps
	}
	if out.TrajectoryEpsilon <= 0 {
		out.TrajectoryEpsilon = def.TrajectoryEpsilon
	}
	if out.ConversionDuration <= 0 {
		out.ConversionDuration = def.ConversionDuration
	}
	if out.GateDuration <= 0 {
		out.GateDuration = def.GateDuration
	}
	if out.FrameInterval <= 0 {
		out.FrameInterval = def.FrameInterval
	}
	return &out
}
