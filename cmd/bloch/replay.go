package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/theapemachine/bloch"
)

// writeFrames encodes every frame from ch as a line of JSON until ch is
// closed. The first write error is reported once the channel drains.
func writeFrames(w io.Writer, ch <-chan bloch.Frame) <-chan error {
	done := make(chan error, 1)
	enc := json.NewEncoder(w)

	go func() {
		var first error
		for frame := range ch {
			if err := enc.Encode(frame.Series); err != nil && first == nil {
				first = err
			}
		}
		done <- first
	}()

	return done
}

// Summary is printed after the script has run.
type Summary struct {
	Mode       string        `json:"mode"`
	Theta      int           `json:"theta"`
	Phi        int           `json:"phi"`
	Point      [3]float64    `json:"point"`
	Readout    bloch.Readout `json:"readout"`
	Trajectory int           `json:"trajectory"`
	Dropped    int64         `json:"dropped"`

	Metrics bloch.MetricsSnapshot `json:"metrics"`
}

func summarize(s *bloch.Session, b *bloch.Broadcast, m *bloch.RenderMetrics) Summary {
	theta, phi := s.Sliders()
	p := s.Point()
	return Summary{
		Mode:       modeName(s.Mode()),
		Theta:      theta,
		Phi:        phi,
		Point:      [3]float64{p.X, p.Y, p.Z},
		Readout:    s.Readout(),
		Trajectory: s.Trajectory().Len(),
		Dropped:    b.Metrics().FramesDropped,
		Metrics:    m.Snapshot(),
	}
}

/*
replay feeds events to the session in order. Waits sleep on the wall clock
so the session's animator, stepped by its own frame loop, gets to draw.
At debug level the session state is dumped after every event.
*/
func replay(ctx context.Context, s *bloch.Session, events []Event, logger *log.Logger) error {
	for i, ev := range events {
		if err := apply(ctx, s, ev, logger); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}

		if logger.GetLevel() <= log.DebugLevel {
			logger.Debug("event applied", "event", i+1, "state", spew.Sdump(s.State(), s.Trajectory().Len()))
		}
	}
	return nil
}

func apply(ctx context.Context, s *bloch.Session, ev Event, logger *log.Logger) error {
	switch ev.Kind {
	case EventAngles:
		return s.SetAngles(ev.Theta, ev.Phi)
	case EventCommit:
		return s.Commit()
	case EventToggle:
		return s.ToggleMode()
	case EventReset:
		return s.ResetTrajectory()
	case EventGate:
		applied, err := s.ApplyGate(ev.Gate)
		if !applied && err == nil {
			logger.Warn("ignored unknown gate", "key", ev.Gate)
		}
		return err
	case EventWait:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ev.Wait):
		}
	}
	return nil
}

// settle waits until no transition is running.
func settle(ctx context.Context, a *bloch.Animator, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for a.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
