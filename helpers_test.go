package bloch

import (
	"errors"
	"sync"
	"time"
)

const testTimeout = 2 * time.Second

// recordRenderer keeps every redraw it receives.
type recordRenderer struct {
	mu    sync.Mutex
	calls []Series
	last  map[string]Series
	fail  error
}

func newRecordRenderer() *recordRenderer {
	return &recordRenderer{last: make(map[string]Series)}
}

func (r *recordRenderer) Redraw(name string, s Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return r.fail
	}
	r.calls = append(r.calls, s.Clone())
	r.last[name] = s.Clone()
	return nil
}

func (r *recordRenderer) lastOf(name string) (Series, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.last[name]
	return s, ok
}

func (r *recordRenderer) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range r.calls {
		if s.Name == name {
			n++
		}
	}
	return n
}

var errRenderer = errors.New("surface gone")

// fakeClock is advanced by hand.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}
