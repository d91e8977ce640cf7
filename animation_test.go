package bloch

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEaseInOutCubic(t *testing.T) {
	Convey("Given the cubic ease", t, func() {
		Convey("It pins the endpoints and the midpoint", func() {
			So(EaseInOutCubic(0), ShouldEqual, 0.0)
			So(EaseInOutCubic(0.5), ShouldEqual, 0.5)
			So(EaseInOutCubic(1), ShouldEqual, 1.0)
		})

		Convey("It is symmetric and monotonic", func() {
			prev := 0.0
			for x := 0.05; x <= 1; x += 0.05 {
				y := EaseInOutCubic(x)
				So(y, ShouldBeGreaterThanOrEqualTo, prev)
				So(y+EaseInOutCubic(1-x), ShouldAlmostEqual, 1, 1e-12)
				prev = y
			}
		})
	})
}

func TestAnimator(t *testing.T) {
	Convey("Given an animator on a fake clock", t, func() {
		clock := newFakeClock()
		r := newRecordRenderer()
		a := NewAnimator(r, WithClock(clock.now))

		So(a.Draw(SeriesFromPoints("dot", []Point{{X: 0}})), ShouldBeNil)

		Convey("When animating toward a new position", func() {
			target := SeriesFromPoints("dot", []Point{{X: 1}})
			target.Colors = []string{"#ffffff"}
			an := a.Animate(target, 100*time.Millisecond)

			So(a.Active(), ShouldEqual, 1)
			So(an.Err(), ShouldBeNil)

			Convey("A frame halfway through is halfway there", func() {
				So(a.Step(clock.advance(50*time.Millisecond)), ShouldBeNil)

				s, _ := r.lastOf("dot")
				So(s.X[0], ShouldAlmostEqual, 0.5, 1e-12)
				So(s.Colors, ShouldResemble, []string{"#ffffff"})
				So(an.Err(), ShouldBeNil)
			})

			Convey("The frame at full duration lands and retires it", func() {
				So(a.Step(clock.advance(150*time.Millisecond)), ShouldBeNil)

				s, _ := r.lastOf("dot")
				So(s.X[0], ShouldEqual, 1.0)
				So(a.Active(), ShouldEqual, 0)
				So(errors.Is(an.Err(), ErrAnimationComplete), ShouldBeTrue)

				select {
				case <-an.Done():
				default:
					t.Fatal("animation should be done")
				}
			})

			Convey("A second animation on the series supersedes the first", func() {
				next := a.Animate(SeriesFromPoints("dot", []Point{{X: -1}}), 100*time.Millisecond)

				So(errors.Is(an.Err(), ErrAnimationSuperseded), ShouldBeTrue)
				So(next.Err(), ShouldBeNil)
				So(a.Active(), ShouldEqual, 1)

				frames := r.count("dot")
				So(a.Step(clock.advance(100*time.Millisecond)), ShouldBeNil)
				So(r.count("dot"), ShouldEqual, frames+1)

				s, _ := r.lastOf("dot")
				So(s.X[0], ShouldEqual, -1.0)
			})

			Convey("An immediate draw cancels it", func() {
				So(a.Draw(SeriesFromPoints("dot", []Point{{X: 0.3}})), ShouldBeNil)

				So(errors.Is(an.Err(), ErrAnimationSuperseded), ShouldBeTrue)
				So(a.Active(), ShouldEqual, 0)

				frames := r.count("dot")
				So(a.Step(clock.advance(50*time.Millisecond)), ShouldBeNil)
				So(r.count("dot"), ShouldEqual, frames)
			})

			Convey("Other series are left alone", func() {
				other := a.Animate(SeriesFromPoints("grid", []Point{{Y: 1}}), time.Second)
				So(a.Active(), ShouldEqual, 2)
				So(an.Err(), ShouldBeNil)

				a.Cancel("grid")
				So(errors.Is(other.Err(), ErrAnimationSuperseded), ShouldBeTrue)
				So(a.Active(), ShouldEqual, 1)
			})
		})

		Convey("When moving a marker along a path", func() {
			path := SampleGreatCircle(NorthPole, Point{X: 1}, 8)
			an := a.AnimatePath("marker", path, "#123456", 80*time.Millisecond)

			Convey("Frames stay on the sphere", func() {
				for i := 0; i < 4; i++ {
					So(a.Step(clock.advance(15*time.Millisecond)), ShouldBeNil)
					s, _ := r.lastOf("marker")
					So(s.Len(), ShouldEqual, 1)
					So(s.At(0).Norm(), ShouldAlmostEqual, 1, 1e-12)
					So(s.Colors, ShouldResemble, []string{"#123456"})
				}
			})

			Convey("The last frame is the end of the path", func() {
				So(a.Step(clock.advance(time.Second)), ShouldBeNil)
				s, _ := r.lastOf("marker")
				So(s.At(0).Distance(Point{X: 1}), ShouldBeLessThan, 1e-12)
				So(errors.Is(an.Err(), ErrAnimationComplete), ShouldBeTrue)

				cur, ok := a.Current("marker")
				So(ok, ShouldBeTrue)
				So(cur.At(0).Distance(Point{X: 1}), ShouldBeLessThan, 1e-12)
			})
		})

		Convey("When the duration is zero", func() {
			an := a.Animate(SeriesFromPoints("dot", []Point{{Z: 1}}), 0)

			Convey("The first frame completes it", func() {
				So(a.Step(clock.now()), ShouldBeNil)
				So(errors.Is(an.Err(), ErrAnimationComplete), ShouldBeTrue)
			})
		})

		Convey("When the renderer fails mid-animation", func() {
			an := a.Animate(SeriesFromPoints("dot", []Point{{X: 1}}), time.Second)
			r.fail = errRenderer

			Convey("Step reports it and stops that animation", func() {
				err := a.Step(clock.advance(10 * time.Millisecond))
				So(errors.Is(err, errRenderer), ShouldBeTrue)
				So(errors.Is(an.Err(), errRenderer), ShouldBeTrue)
				So(a.Active(), ShouldEqual, 0)
			})
		})

		Convey("When every animation is cancelled", func() {
			one := a.Animate(SeriesFromPoints("dot", []Point{{X: 1}}), time.Second)
			two := a.Animate(SeriesFromPoints("grid", []Point{{X: 1}}), time.Second)
			cause := errors.New("teardown")
			a.CancelAll(cause)

			Convey("Each carries the cause", func() {
				So(errors.Is(one.Err(), cause), ShouldBeTrue)
				So(errors.Is(two.Err(), cause), ShouldBeTrue)
				So(a.Active(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given an animator driven by its own frame loop", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		r := newRecordRenderer()
		a := NewAnimator(r)
		an := a.Animate(SeriesFromPoints("dot", []Point{{X: 1}}), 20*time.Millisecond)

		loop, stop := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- a.Run(loop, time.Millisecond)
		}()

		Convey("The animation runs to completion and the loop stops on cancel", func() {
			select {
			case <-an.Done():
			case <-ctx.Done():
				t.Fatal("timed out waiting for the animation")
			}
			So(errors.Is(an.Err(), ErrAnimationComplete), ShouldBeTrue)

			stop()
			So(errors.Is(<-done, context.Canceled), ShouldBeTrue)

			s, _ := r.lastOf("dot")
			So(s.X[0], ShouldEqual, 1.0)
		})
	})
}
