package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/bloch"
)

func writeScript(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "events.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func lines(out *bytes.Buffer) []string {
	var all []string
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		all = append(all, scanner.Text())
	}
	return all
}

func TestRun(t *testing.T) {
	Convey("Given a script that flips |0> with X", t, func() {
		path := writeScript(t, "gate X\nwait 5ms\n")
		v, err := loadConfig([]string{
			"--events", path,
			"--gate-duration", "20ms",
			"--frame-interval", "2ms",
		})
		So(err, ShouldBeNil)

		var out bytes.Buffer
		So(run(context.Background(), v, &out, log.New(io.Discard)), ShouldBeNil)
		all := lines(&out)

		Convey("The initial scene is drawn first", func() {
			So(len(all), ShouldBeGreaterThan, 5)

			var names []string
			for _, line := range all[:4] {
				var series map[string]any
				So(json.Unmarshal([]byte(line), &series), ShouldBeNil)
				names = append(names, series["series"].(string))
			}
			So(names, ShouldResemble, []string{
				bloch.SeriesGrid, bloch.SeriesGuides, bloch.SeriesState, bloch.SeriesTrajectory,
			})
		})

		Convey("The summary reports the south pole", func() {
			var summary Summary
			So(json.Unmarshal([]byte(all[len(all)-1]), &summary), ShouldBeNil)

			So(summary.Mode, ShouldEqual, "half")
			So(summary.Theta, ShouldEqual, 180)
			So(summary.Phi, ShouldEqual, 0)
			So(summary.Point[2], ShouldAlmostEqual, -1, 1e-9)
			So(summary.Readout.Beta, ShouldAlmostEqual, 1, 1e-9)
			So(summary.Trajectory, ShouldEqual, 2)
		})
	})

	Convey("Given an unknown mode", t, func() {
		v, err := loadConfig([]string{"--mode", "sideways", "--events", writeScript(t, "")})
		So(err, ShouldBeNil)

		Convey("The run fails before drawing", func() {
			var out bytes.Buffer
			So(run(context.Background(), v, &out, log.New(io.Discard)), ShouldNotBeNil)
			So(out.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given a malformed script", t, func() {
		v, err := loadConfig([]string{"--events", writeScript(t, "angles 1\n")})
		So(err, ShouldBeNil)

		Convey("The run reports the parse error", func() {
			var out bytes.Buffer
			err := run(context.Background(), v, &out, log.New(io.Discard))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "line 1")
		})
	})

	Convey("Mode names parse case-insensitively", t, func() {
		mode, err := parseMode("FULL")
		So(err, ShouldBeNil)
		So(mode, ShouldEqual, bloch.FullAngle)
	})
}

func TestRunSeriesFilter(t *testing.T) {
	Convey("Given a series filter", t, func() {
		path := writeScript(t, "angles 90 0\ncommit\n")
		v, err := loadConfig([]string{
			"--events", path,
			"--series", bloch.SeriesTrajectory,
		})
		So(err, ShouldBeNil)

		var out bytes.Buffer
		So(run(context.Background(), v, &out, log.New(io.Discard)), ShouldBeNil)
		all := lines(&out)

		Convey("Only trajectory redraws are written before the summary", func() {
			So(all, ShouldHaveLength, 3)
			for _, line := range all[:2] {
				So(line, ShouldStartWith, `{"series":"trajectory"`)
			}
		})

		Convey("The summary still counts every redraw", func() {
			var summary Summary
			So(json.Unmarshal([]byte(all[2]), &summary), ShouldBeNil)
			So(summary.Trajectory, ShouldEqual, 2)
			So(summary.Dropped, ShouldEqual, 0)
			So(summary.Metrics.Redraws[bloch.SeriesState], ShouldEqual, 1+1)
			So(summary.Metrics.Redraws[bloch.SeriesGrid], ShouldEqual, 1)
		})
	})
}

func TestRunSettleTimeout(t *testing.T) {
	Convey("Given waits longer than the settle timeout", t, func() {
		path := writeScript(t, "wait 30ms\ngate X\nwait 30ms\ngate H\n")
		v, err := loadConfig([]string{
			"--events", path,
			"--settle-timeout", "1ms",
			"--gate-duration", "10s",
		})
		So(err, ShouldBeNil)

		var out, logs bytes.Buffer
		So(run(context.Background(), v, &out, log.New(&logs)), ShouldBeNil)
		all := lines(&out)

		Convey("Every event still runs", func() {
			var summary Summary
			So(json.Unmarshal([]byte(all[len(all)-1]), &summary), ShouldBeNil)
			So(summary.Trajectory, ShouldEqual, 3)
			So(summary.Theta, ShouldEqual, 90)
			So(summary.Phi, ShouldEqual, 180)
		})

		Convey("Only the unfinished transition is reported", func() {
			So(logs.String(), ShouldContainSubstring, "transitions still running")
		})
	})
}

func TestRunDebugDump(t *testing.T) {
	Convey("Given a debug logger", t, func() {
		v, err := loadConfig([]string{"--events", writeScript(t, "angles 90 0\n")})
		So(err, ShouldBeNil)

		var logs bytes.Buffer
		logger := log.New(&logs)
		logger.SetLevel(log.DebugLevel)

		var out bytes.Buffer
		So(run(context.Background(), v, &out, logger), ShouldBeNil)

		Convey("The state is dumped after each event", func() {
			So(logs.String(), ShouldContainSubstring, "event applied")
			So(logs.String(), ShouldContainSubstring, "bloch.Qubit")
			So(logs.String(), ShouldContainSubstring, "alpha")
		})
	})
}
