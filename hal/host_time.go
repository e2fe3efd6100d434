//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step converts the real time elapsed since the previous call into
// millisecond ticks.
func (t *hostTime) step() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / time.Millisecond)
	if ticks == 0 {
		return
	}
	t.acc %= time.Millisecond
	t.stepN(ticks)
}

// stepN publishes only the newest sequence number; consumers use TickTo
// semantics, so intermediate values carry no information.
func (t *hostTime) stepN(n uint64) {
	t.seq += n
	select {
	case t.ch <- t.seq:
	default:
	}
}

type hostClock struct {
	mu     sync.Mutex
	loc    *time.Location
	start  time.Time
	origin time.Time
	scale  float64
}

func newHostClock(loc *time.Location, start time.Time, scale float64) *hostClock {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now()
	if start.IsZero() {
		start = now
	}
	if scale <= 0 {
		scale = 1
	}
	return &hostClock{loc: loc, start: start, origin: now, scale: scale}
}

func (c *hostClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	elapsed := time.Since(c.origin)
	return c.start.Add(time.Duration(float64(elapsed) * c.scale)).In(c.loc)
}

func (c *hostClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = t
	c.origin = time.Now()
	c.loc = t.Location()
}
