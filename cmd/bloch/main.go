// Command bloch replays a script of slider, gate and mode events against a
// qubit session and writes every redraw as a line of JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/bloch"
)

func main() {
	v, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(v.GetString("log-level"))
	if err := run(ctx, v, os.Stdout, logger); err != nil {
		logger.Error("replay failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(args []string) (*viper.Viper, error) {
	def := bloch.NewConfig()

	flags := pflag.NewFlagSet("bloch", pflag.ContinueOnError)
	flags.String("events", "-", "event script, - for stdin")
	flags.String("mode", "half", "angle conversion, half or full")
	flags.Int("path-steps", def.PathSteps, "samples per trajectory segment")
	flags.Int("transition-steps", def.TransitionSteps, "samples per gate transition")
	flags.Float64("epsilon", def.TrajectoryEpsilon, "trajectory dedup tolerance")
	flags.Duration("gate-duration", def.GateDuration, "gate transition length")
	flags.Duration("conversion-duration", def.ConversionDuration, "mode toggle transition length")
	flags.Duration("frame-interval", def.FrameInterval, "animation frame interval")
	flags.Duration("settle-timeout", 5*time.Second, "max wait for transitions after the last event")
	flags.StringSlice("series", nil, "only write these series, default all")
	flags.Int("buffer", 4096, "frames buffered for the output writer")
	flags.String("log-level", "info", "debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("BLOCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	return v, nil
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bloch",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func sessionConfig(v *viper.Viper) *bloch.Config {
	cfg := bloch.NewConfig()
	cfg.PathSteps = v.GetInt("path-steps")
	cfg.TransitionSteps = v.GetInt("transition-steps")
	cfg.TrajectoryEpsilon = v.GetFloat64("epsilon")
	cfg.GateDuration = v.GetDuration("gate-duration")
	cfg.ConversionDuration = v.GetDuration("conversion-duration")
	cfg.FrameInterval = v.GetDuration("frame-interval")
	return cfg
}

func parseMode(s string) (bloch.ConversionMode, error) {
	switch strings.ToLower(s) {
	case "half", "":
		return bloch.HalfAngle, nil
	case "full":
		return bloch.FullAngle, nil
	}
	return bloch.HalfAngle, fmt.Errorf("unknown mode %q", s)
}

func modeName(m bloch.ConversionMode) string {
	if m == bloch.FullAngle {
		return "full"
	}
	return "half"
}

func openEvents(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func run(ctx context.Context, v *viper.Viper, out io.Writer, logger *log.Logger) error {
	mode, err := parseMode(v.GetString("mode"))
	if err != nil {
		return err
	}

	in, err := openEvents(v.GetString("events"))
	if err != nil {
		return err
	}
	events, err := ParseEvents(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("parse events: %w", err)
	}

	var filters []bloch.FilterFunc
	if names := v.GetStringSlice("series"); len(names) > 0 {
		filters = append(filters, bloch.OnlySeries(names...))
	}

	broadcast := bloch.NewBroadcast()
	written := writeFrames(out, broadcast.Subscribe("out", v.GetInt("buffer"), filters...))
	metrics := bloch.NewRenderMetrics()

	cfg := sessionConfig(v)
	session, err := bloch.NewSession(metrics.Wrap(broadcast), cfg, bloch.WithMode(mode))
	if err != nil {
		broadcast.Close()
		<-written
		return err
	}

	frames, cancelFrames := context.WithCancel(ctx)
	loop := make(chan error, 1)
	go func() { loop <- session.Animator().Run(frames, cfg.FrameInterval) }()

	replayErr := replay(ctx, session, events, logger)
	if replayErr == nil {
		settleCtx, cancelSettle := context.WithTimeout(ctx, v.GetDuration("settle-timeout"))
		if err := settle(settleCtx, session.Animator(), session.Config().FrameInterval); errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("transitions still running at exit", "active", session.Animator().Active())
		} else {
			replayErr = err
		}
		cancelSettle()
	}

	cancelFrames()
	if err := <-loop; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("frame loop stopped", "err", err)
	}

	session.Close()
	broadcast.Close()
	if err := <-written; err != nil {
		return fmt.Errorf("write frames: %w", err)
	}

	if replayErr != nil {
		return replayErr
	}

	summary := summarize(session, broadcast, metrics)
	if summary.Dropped > 0 {
		logger.Warn("output fell behind", "dropped", summary.Dropped)
	}

	logger.Info("replayed events", "count", len(events), "trajectory", summary.Trajectory)
	return json.NewEncoder(out).Encode(summary)
}

