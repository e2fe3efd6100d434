package anim

import "errors"

// ErrNoSlot is returned by Schedule when every animation slot is in use.
var ErrNoSlot = errors.New("anim: no free animation slot")

// DefaultSlots is enough for five text rows plus the status bar.
const DefaultSlots = 8

// Animation describes one timed interpolation. Times are milliseconds.
type Animation struct {
	Delay    uint32
	Duration uint32
	Curve    Curve

	// Update receives eased progress on every frame while the animation
	// runs. The last call gets exactly 1.
	Update func(p float64)
	// Done runs once after the final Update. It never runs for an
	// animation that was cancelled.
	Done func()
}

// Handle refers to a scheduled animation. The zero Handle is never active.
type Handle struct {
	slot uint8
	gen  uint32
}

type slot struct {
	gen    uint32
	active bool
	start  uint64
	a      Animation
}

// Scheduler runs animations from a millisecond clock on the caller's
// goroutine. Callbacks may schedule and cancel animations, including their
// own.
type Scheduler struct {
	slots []slot
	now   uint64
	gen   uint32
}

func NewScheduler(slots int) *Scheduler {
	if slots <= 0 {
		slots = DefaultSlots
	}
	if slots > 255 {
		slots = 255
	}
	return &Scheduler{slots: make([]slot, slots)}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() uint64 { return s.now }

// Schedule starts a after its delay, measured from the last Advance.
func (s *Scheduler) Schedule(a Animation) (Handle, error) {
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.active {
			continue
		}
		s.gen++
		if s.gen == 0 {
			s.gen++
		}
		*sl = slot{gen: s.gen, active: true, start: s.now + uint64(a.Delay), a: a}
		return Handle{slot: uint8(i), gen: s.gen}, nil
	}
	return Handle{}, ErrNoSlot
}

// Cancel stops h without calling its Done. It reports whether h was active.
func (s *Scheduler) Cancel(h Handle) bool {
	sl := s.lookup(h)
	if sl == nil {
		return false
	}
	*sl = slot{gen: sl.gen}
	return true
}

// Active reports whether h is scheduled or running.
func (s *Scheduler) Active(h Handle) bool { return s.lookup(h) != nil }

// Running returns the number of occupied slots.
func (s *Scheduler) Running() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].active {
			n++
		}
	}
	return n
}

func (s *Scheduler) lookup(h Handle) *slot {
	if h.gen == 0 || int(h.slot) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[h.slot]
	if !sl.active || sl.gen != h.gen {
		return nil
	}
	return sl
}

// Advance moves the clock to now and runs one frame of every animation
// that has started. Animations scheduled from a callback during Advance
// get their first frame on the next call.
func (s *Scheduler) Advance(now uint64) {
	if now > s.now {
		s.now = now
	}

	var due [255]Handle
	n := 0
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.active && sl.start <= s.now {
			due[n] = Handle{slot: uint8(i), gen: sl.gen}
			n++
		}
	}

	for _, h := range due[:n] {
		sl := s.lookup(h)
		if sl == nil {
			continue
		}
		p := 1.0
		if sl.a.Duration > 0 {
			p = float64(s.now-sl.start) / float64(sl.a.Duration)
		}
		finished := p >= 1
		a := sl.a
		if finished {
			*sl = slot{gen: sl.gen}
		}
		if a.Update != nil {
			a.Update(a.Curve.Apply(p))
		}
		if finished && a.Done != nil {
			a.Done()
		}
	}
}
