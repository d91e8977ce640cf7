package bloch

import (
	"errors"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

var ErrBroadcastClosed = errors.New("broadcast closed")

// Frame is one redraw as delivered to a subscriber.
type Frame struct {
	Name   string
	Series Series
}

// FilterFunc decides whether a subscriber receives redraws of a series.
type FilterFunc func(name string) bool

// OnlySeries accepts the named series and nothing else.
func OnlySeries(names ...string) FilterFunc {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}

// BroadcastMetrics counts what happened to redraws so far.
type BroadcastMetrics struct {
	FramesSent    int64
	FramesDropped int64
	Subscribers   int
	LastBroadcast time.Time
}

/*
Broadcast is a Renderer that fans every redraw out to buffered subscriber
channels. A subscriber that is not keeping up loses frames instead of
stalling the animator; the loss shows up in Metrics.
*/
type Broadcast struct {
	mu          sync.RWMutex
	subscribers map[string]chan Frame
	filters     map[string][]FilterFunc
	metrics     BroadcastMetrics
	closed      bool
	now         func() time.Time
}

func NewBroadcast() *Broadcast {
	return &Broadcast{
		subscribers: make(map[string]chan Frame),
		filters:     make(map[string][]FilterFunc),
		now:         time.Now,
	}
}

/*
Subscribe registers id and returns its channel. A frame is delivered when
every filter accepts the series name. Subscribing an id again replaces the
previous channel, which is closed.
*/
func (b *Broadcast) Subscribe(id string, buffer int, filters ...FilterFunc) <-chan Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Frame, max(buffer, 0))
	if b.closed {
		close(ch)
		return ch
	}

	if old, ok := b.subscribers[id]; ok {
		close(old)
	} else {
		b.metrics.Subscribers++
	}

	b.subscribers[id] = ch
	b.filters[id] = filters

	errnie.Info("Subscribe - %s, buffer %d", id, buffer)
	return ch
}

func (b *Broadcast) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
		delete(b.filters, id)
		b.metrics.Subscribers--
	}
}

// Redraw implements Renderer.
func (b *Broadcast) Redraw(name string, s Series) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBroadcastClosed
	}

	frame := Frame{Name: name, Series: s.Clone()}

	for id, ch := range b.subscribers {
		if !accepts(b.filters[id], name) {
			continue
		}

		select {
		case ch <- frame:
			b.metrics.FramesSent++
		default:
			b.metrics.FramesDropped++
		}
	}

	b.metrics.LastBroadcast = b.now()
	return nil
}

func accepts(filters []FilterFunc, name string) bool {
	for _, filter := range filters {
		if !filter(name) {
			return false
		}
	}
	return true
}

func (b *Broadcast) Metrics() BroadcastMetrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}

// Close closes every subscriber channel. Later redraws fail.
func (b *Broadcast) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
		delete(b.filters, id)
	}
	b.metrics.Subscribers = 0
}
