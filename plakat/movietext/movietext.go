// Package movietext implements a single line text widget that changes its
// content by sliding the old text off screen and the new text back in.
package movietext

import (
	"fmt"
	"image/color"

	"filmplakat/hal"
	"filmplakat/plakat/anim"
	"filmplakat/plakat/gfx"
)

const (
	// Width is the widget width; a slide moves the frame by this much.
	Width = hal.ScreenWidth

	// MaxTextBytes bounds the text buffers.
	MaxTextBytes = 20

	SlideDuration  uint32 = 500
	OriginDuration uint32 = 1000
	StartDelay     uint32 = 100
)

// Mode selects how a text or origin change becomes visible.
type Mode uint8

const (
	// ModeNone applies the change without animation or redraw.
	ModeNone Mode = iota
	// ModeInstant applies the change and redraws.
	ModeInstant
	ModeSlideLeft
	ModeSlideRight
	// ModeDelay stores the change for the next animation to pick up: text
	// stays hidden until the next origin move, an origin waits for the next
	// slide.
	ModeDelay
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeInstant:
		return "instant"
	case ModeSlideLeft:
		return "slide-left"
	case ModeSlideRight:
		return "slide-right"
	case ModeDelay:
		return "delay"
	default:
		return "unknown"
	}
}

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSlidingOut
	PhaseSlidingIn
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSlidingOut:
		return "sliding-out"
	case PhaseSlidingIn:
		return "sliding-in"
	default:
		return "unknown"
	}
}

type event uint8

const (
	evSlide event = iota
	evMove
	evSnap
	evOutDone
	evInDone
	evCancel
)

// transition is the widget's state table. Completion events that do not
// match the current phase leave it unchanged.
func transition(p Phase, ev event) Phase {
	switch ev {
	case evSlide:
		return PhaseSlidingOut
	case evMove:
		return PhaseSlidingIn
	case evSnap, evCancel:
		return PhaseIdle
	case evOutDone:
		if p == PhaseSlidingOut {
			return PhaseSlidingIn
		}
	case evInDone:
		if p == PhaseSlidingIn {
			return PhaseIdle
		}
	}
	return p
}

// Layer is an animated text row. It holds the text on screen and the text
// waiting to slide in, and owns at most one scheduled animation.
type Layer struct {
	sched  *anim.Scheduler
	font   gfx.Font
	height int

	fg, bg color.RGBA
	opaque bool

	origin gfx.Point
	frame  gfx.Point

	cur  string
	next string
	// held is text set with ModeDelay, shown when the next move starts.
	held    string
	holding bool

	phase  Phase
	mode   Mode
	handle anim.Handle
	dirty  bool

	log func(string)
}

// New returns an idle, empty layer at the top-left corner.
func New(sched *anim.Scheduler, font gfx.Font, height int) *Layer {
	return &Layer{
		sched:  sched,
		font:   font,
		height: height,
		fg:     gfx.White,
		bg:     gfx.Black,
		dirty:  true,
	}
}

// SetColors sets the text color and, when opaque, the fill behind it.
func (l *Layer) SetColors(fg, bg color.RGBA, opaque bool) {
	l.fg, l.bg, l.opaque = fg, bg, opaque
	l.dirty = true
}

// SetLogger installs a hook for scheduling failures.
func (l *Layer) SetLogger(fn func(string)) { l.log = fn }

func (l *Layer) logf(format string, args ...any) {
	if l.log != nil {
		l.log(fmt.Sprintf(format, args...))
	}
}

// Text returns the text the layer is heading to: held or incoming text
// first, the shown text otherwise.
func (l *Layer) Text() string {
	if l.holding {
		return l.held
	}
	if l.phase == PhaseSlidingOut {
		return l.next
	}
	return l.cur
}

// Visible returns the text currently drawn.
func (l *Layer) Visible() string { return l.cur }

func (l *Layer) Origin() gfx.Point { return l.origin }

// Frame is the rectangle the text is drawn in right now.
func (l *Layer) Frame() gfx.Rect {
	return gfx.Rect{Origin: l.frame, Size: gfx.Size{W: Width, H: l.height}}
}

func (l *Layer) Phase() Phase { return l.phase }
func (l *Layer) Mode() Mode   { return l.mode }

// Animating reports whether the layer owns a scheduled animation.
func (l *Layer) Animating() bool { return l.sched != nil && l.sched.Active(l.handle) }

func (l *Layer) Dirty() bool { return l.dirty }

// SetText changes the text. Slide modes move the current frame one widget
// width left or right, swap in the new text and slide it back to the origin
// from the opposite side.
func (l *Layer) SetText(text string, mode Mode, delayed bool) {
	l.cancel()
	text = gfx.TruncateBytes(text, MaxTextBytes)
	l.mode = mode
	l.held, l.holding = "", false

	switch mode {
	case ModeSlideLeft, ModeSlideRight:
		dx := -Width
		if mode == ModeSlideRight {
			dx = Width
		}
		from := l.frame
		to := from.Add(gfx.Point{X: dx})
		l.next = text
		if !l.animate(from, to, SlideDuration, delayed, l.slideOutDone) {
			l.cur, l.next = text, ""
			l.dirty = true
			return
		}
		l.phase = transition(l.phase, evSlide)
	case ModeInstant:
		l.cur = text
		l.phase = transition(l.phase, evSnap)
		l.dirty = true
	case ModeDelay:
		l.held, l.holding = text, true
		l.phase = transition(l.phase, evSnap)
	default:
		l.cur = text
		l.phase = transition(l.phase, evSnap)
	}
}

// SetOrigin moves the layer's resting position, animating over
// OriginDuration when mode asks for motion.
func (l *Layer) SetOrigin(p gfx.Point, mode Mode, delayed bool) {
	l.MoveTo(p, mode, delayed, OriginDuration)
}

// MoveTo is SetOrigin with an explicit duration in milliseconds. ModeDelay
// only records p and leaves a running animation alone.
func (l *Layer) MoveTo(p gfx.Point, mode Mode, delayed bool, duration uint32) {
	if mode != ModeDelay {
		l.cancel()
		l.mode = mode
		l.release()
	}
	l.origin = p

	switch mode {
	case ModeDelay:
		return
	case ModeNone:
		l.frame = p
		l.phase = transition(l.phase, evSnap)
		l.dirty = true
	default:
		from := l.frame
		if from == p {
			l.phase = transition(l.phase, evSnap)
			return
		}
		if l.animate(from, p, duration, delayed, l.moveDone) {
			l.phase = transition(l.phase, evMove)
		}
	}
}

// release shows text held back by ModeDelay.
func (l *Layer) release() {
	if !l.holding {
		return
	}
	l.cur = l.held
	l.held, l.holding = "", false
	l.dirty = true
}

// drawWidth is the room for text: the widget width, less whatever lies past
// the right screen edge when the layer rests at its origin.
func (l *Layer) drawWidth() int {
	w := hal.ScreenWidth - l.origin.X
	if w > Width {
		w = Width
	}
	return w
}

// Draw renders the shown text into its frame and clears the dirty flag.
func (l *Layer) Draw(c *gfx.Canvas) {
	l.dirty = false
	r := l.Frame()
	r.Size.W = l.drawWidth()
	if l.opaque {
		c.FillRect(r, l.bg)
	}
	gfx.DrawText(c, l.font, l.cur, r, l.fg)
}

// cancel drops the running animation without its completion callback.
// Pending text is committed, the frame stays where the animation left it.
func (l *Layer) cancel() {
	if l.sched != nil {
		l.sched.Cancel(l.handle)
	}
	l.handle = anim.Handle{}
	if l.phase == PhaseSlidingOut {
		l.cur = l.next
		l.dirty = true
	}
	l.next = ""
	l.phase = transition(l.phase, evCancel)
}

func (l *Layer) animate(from, to gfx.Point, duration uint32, delayed bool, done func()) bool {
	if l.sched == nil {
		return false
	}
	var delay uint32
	if delayed {
		delay = StartDelay
	}
	h, err := l.sched.Schedule(anim.Animation{
		Delay:    delay,
		Duration: duration,
		Curve:    anim.CurveEaseInOut,
		Update: func(p float64) {
			l.frame = gfx.Point{X: anim.Lerp(from.X, to.X, p), Y: anim.Lerp(from.Y, to.Y, p)}
			l.dirty = true
		},
		Done: done,
	})
	if err != nil {
		l.logf("movietext: %q: %v", l.Text(), err)
		return false
	}
	l.handle = h
	return true
}

// entry is where incoming text starts: one width beyond the origin on the
// side opposite to the exit.
func (l *Layer) entry() gfx.Point {
	if l.mode == ModeSlideRight {
		return gfx.Point{X: l.origin.X - Width, Y: l.origin.Y}
	}
	return gfx.Point{X: l.origin.X + Width, Y: l.origin.Y}
}

func (l *Layer) slideOutDone() {
	l.handle = anim.Handle{}
	l.phase = transition(l.phase, evOutDone)
	l.cur, l.next = l.next, ""
	l.frame = l.entry()
	l.dirty = true

	if !l.animate(l.frame, l.origin, SlideDuration, false, l.slideInDone) {
		l.frame = l.origin
		l.phase = transition(l.phase, evCancel)
	}
}

func (l *Layer) slideInDone() {
	l.handle = anim.Handle{}
	l.phase = transition(l.phase, evInDone)
	l.frame = l.origin
	l.mode = ModeInstant
	l.dirty = true
}

func (l *Layer) moveDone() {
	l.handle = anim.Handle{}
	l.phase = transition(l.phase, evInDone)
	l.frame = l.origin
	l.dirty = true
}
