package movietext

import (
	"image/color"
	"testing"

	"filmplakat/hal"
	"filmplakat/plakat/anim"
	"filmplakat/plakat/gfx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type blockGlyph struct{ r rune }

// Draw fills a 3x5 block; the ellipsis only gets its bottom row.
func (g *blockGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	top := int16(0)
	if g.r == '…' {
		top = 4
	}
	for dy := top; dy < 5; dy++ {
		for dx := int16(0); dx < 3; dx++ {
			d.SetPixel(x+dx, y-5+dy, c)
		}
	}
}

func (g *blockGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{Rune: g.r, Width: 3, Height: 5, XAdvance: 4, YOffset: -5}
}

type blockFont struct{ g blockGlyph }

func (f *blockFont) GetYAdvance() uint8 { return 6 }
func (f *blockFont) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}
func (f *blockFont) Ascent() int { return 5 }

func newLayer(slots int) (*Layer, *anim.Scheduler) {
	s := anim.NewScheduler(slots)
	l := New(s, &blockFont{}, 10)
	l.SetOrigin(gfx.Point{X: 20, Y: 10}, ModeNone, false)
	l.SetText("alt", ModeInstant, false)
	return l, s
}

func wantFrame(t *testing.T, l *Layer, x, y int) {
	t.Helper()
	if got := l.Frame().Origin; got != (gfx.Point{X: x, Y: y}) {
		t.Fatalf("Frame().Origin = %+v, want (%d,%d)", got, x, y)
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from Phase
		ev   event
		want Phase
	}{
		{PhaseIdle, evSlide, PhaseSlidingOut},
		{PhaseIdle, evMove, PhaseSlidingIn},
		{PhaseSlidingOut, evOutDone, PhaseSlidingIn},
		{PhaseSlidingIn, evInDone, PhaseIdle},
		{PhaseSlidingOut, evCancel, PhaseIdle},
		{PhaseSlidingIn, evSnap, PhaseIdle},
		{PhaseIdle, evOutDone, PhaseIdle},
		{PhaseSlidingOut, evInDone, PhaseSlidingOut},
	}
	for _, tc := range cases {
		if got := transition(tc.from, tc.ev); got != tc.want {
			t.Fatalf("transition(%s, %d) = %s, want %s", tc.from, tc.ev, got, tc.want)
		}
	}
}

func TestSlideLeftEndsIdleAtOrigin(t *testing.T) {
	l, s := newLayer(anim.DefaultSlots)

	l.SetText("neu", ModeSlideLeft, false)
	if l.Phase() != PhaseSlidingOut {
		t.Fatalf("Phase() = %s, want sliding-out", l.Phase())
	}
	if l.Text() != "neu" || l.Visible() != "alt" {
		t.Fatalf("Text() = %q, Visible() = %q, want neu, alt", l.Text(), l.Visible())
	}

	s.Advance(250)
	wantFrame(t, l, -52, 10)

	s.Advance(500)
	if l.Phase() != PhaseSlidingIn {
		t.Fatalf("Phase() = %s after slide-out, want sliding-in", l.Phase())
	}
	if l.Visible() != "neu" {
		t.Fatalf("Visible() = %q after slide-out, want neu", l.Visible())
	}
	wantFrame(t, l, 164, 10)

	s.Advance(750)
	wantFrame(t, l, 92, 10)

	s.Advance(1000)
	wantFrame(t, l, 20, 10)
	if l.Phase() != PhaseIdle {
		t.Fatalf("Phase() = %s, want idle", l.Phase())
	}
	if l.Animating() || s.Running() != 0 {
		t.Fatalf("Animating() = %v, Running() = %d, want no animation left", l.Animating(), s.Running())
	}
	if l.Text() != "neu" {
		t.Fatalf("Text() = %q, want neu", l.Text())
	}
}

func TestSlideRightPicksUpDelayedOrigin(t *testing.T) {
	l, s := newLayer(anim.DefaultSlots)

	l.SetOrigin(gfx.Point{X: 30, Y: 40}, ModeDelay, false)
	wantFrame(t, l, 20, 10)
	if s.Running() != 0 {
		t.Fatalf("Running() = %d after delayed origin, want 0", s.Running())
	}

	l.SetText("neu", ModeSlideRight, true)
	s.Advance(50)
	wantFrame(t, l, 20, 10)

	s.Advance(600)
	wantFrame(t, l, 30-Width, 40)

	s.Advance(1100)
	wantFrame(t, l, 30, 40)
	if l.Phase() != PhaseIdle {
		t.Fatalf("Phase() = %s, want idle", l.Phase())
	}
}

func TestCancelSkipsCallback(t *testing.T) {
	l, s := newLayer(anim.DefaultSlots)

	l.SetText("neu", ModeSlideLeft, false)
	s.Advance(100)
	mid := l.Frame().Origin

	l.SetText("x", ModeInstant, false)
	if l.Phase() != PhaseIdle || s.Running() != 0 {
		t.Fatalf("Phase() = %s, Running() = %d after cancel, want idle, 0", l.Phase(), s.Running())
	}
	s.Advance(5000)
	if got := l.Frame().Origin; got != mid {
		t.Fatalf("Frame().Origin = %+v after cancel, want %+v", got, mid)
	}
	if l.Visible() != "x" {
		t.Fatalf("Visible() = %q, want x", l.Visible())
	}
}

func TestCancelCommitsPendingText(t *testing.T) {
	l, s := newLayer(anim.DefaultSlots)

	l.SetText("neu", ModeSlideLeft, false)
	s.Advance(100)
	l.SetOrigin(gfx.Point{X: 5, Y: 5}, ModeNone, false)

	if l.Visible() != "neu" {
		t.Fatalf("Visible() = %q, want neu", l.Visible())
	}
	wantFrame(t, l, 5, 5)
}

func TestNoSlotDegradesToInstant(t *testing.T) {
	l, s := newLayer(1)
	if _, err := s.Schedule(anim.Animation{Duration: 10000}); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	var logged []string
	l.SetLogger(func(line string) { logged = append(logged, line) })

	l.SetText("neu", ModeSlideLeft, false)
	if l.Phase() != PhaseIdle || l.Visible() != "neu" {
		t.Fatalf("Phase() = %s, Visible() = %q, want idle, neu", l.Phase(), l.Visible())
	}
	wantFrame(t, l, 20, 10)

	l.MoveTo(gfx.Point{}, ModeInstant, false, 500)
	wantFrame(t, l, 20, 10)
	if l.Origin() != (gfx.Point{}) {
		t.Fatalf("Origin() = %+v, want zero", l.Origin())
	}
	if len(logged) != 2 {
		t.Fatalf("logged %d lines, want 2", len(logged))
	}
}

func TestSetOriginAnimates(t *testing.T) {
	l, s := newLayer(anim.DefaultSlots)

	l.SetOrigin(gfx.Point{X: 20, Y: 50}, ModeInstant, false)
	if l.Phase() != PhaseSlidingIn {
		t.Fatalf("Phase() = %s, want sliding-in", l.Phase())
	}
	s.Advance(500)
	wantFrame(t, l, 20, 30)
	s.Advance(1000)
	wantFrame(t, l, 20, 50)
	if l.Phase() != PhaseIdle {
		t.Fatalf("Phase() = %s, want idle", l.Phase())
	}

	l.MoveTo(gfx.Point{X: 20, Y: 50}, ModeInstant, false, 500)
	if s.Running() != 0 {
		t.Fatalf("Running() = %d for a move in place, want 0", s.Running())
	}
}

func TestTextIsTruncated(t *testing.T) {
	l, _ := newLayer(anim.DefaultSlots)
	l.SetText("einundzwanzigeinundzwanzig", ModeInstant, false)
	if got := len(l.Text()); got != MaxTextBytes {
		t.Fatalf("len(Text()) = %d, want %d", got, MaxTextBytes)
	}
}

func TestDrawClearsDirtyAndClips(t *testing.T) {
	l, _ := newLayer(anim.DefaultSlots)
	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)
	c := gfx.NewCanvas(fb)

	if !l.Dirty() {
		t.Fatal("new text should mark the layer dirty")
	}
	l.Draw(c)
	if l.Dirty() {
		t.Fatal("Draw() should clear dirty")
	}
	buf := fb.Buffer()
	off := 12*fb.StrideBytes() + 21*2
	if buf[off] == 0 && buf[off+1] == 0 {
		t.Fatal("expected text pixel at (21,12)")
	}

	fb.ClearRGB(0, 0, 0)
	l.SetOrigin(gfx.Point{X: -Width, Y: 10}, ModeNone, false)
	l.Draw(c)
	for i, b := range fb.Buffer() {
		if b != 0 {
			t.Fatalf("byte %d set for an off-screen layer", i)
		}
	}
}

func lit(fb hal.Framebuffer, x, y int) bool {
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	return buf[off] != 0 || buf[off+1] != 0
}

func TestDelayedTextWaitsForMove(t *testing.T) {
	l, s := newLayer(anim.DefaultSlots)
	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)
	c := gfx.NewCanvas(fb)
	l.Draw(c)

	l.SetText("neu", ModeDelay, false)
	if got := l.Visible(); got != "alt" {
		t.Fatalf("Visible() = %q before the move, want alt", got)
	}
	if got := l.Text(); got != "neu" {
		t.Fatalf("Text() = %q, want neu", got)
	}
	if l.Dirty() {
		t.Fatal("delayed text marked the layer dirty")
	}

	l.SetOrigin(gfx.Point{X: 20, Y: 40}, ModeDelay, false)
	if got := l.Visible(); got != "alt" {
		t.Fatalf("Visible() = %q after a delayed origin, want alt", got)
	}

	l.SetOrigin(gfx.Point{X: 20, Y: 40}, ModeInstant, false)
	if got := l.Visible(); got != "neu" {
		t.Fatalf("Visible() = %q once the move starts, want neu", got)
	}
	if !l.Dirty() || !l.Animating() {
		t.Fatal("move should redraw and animate")
	}
	s.Advance(1000)
	wantFrame(t, l, 20, 40)
	if got := l.Text(); got != "neu" {
		t.Fatalf("Text() = %q after the move, want neu", got)
	}
}

func TestDelayedTextReplacedBySetText(t *testing.T) {
	l, _ := newLayer(anim.DefaultSlots)
	l.SetText("neu", ModeDelay, false)
	l.SetText("jetzt", ModeInstant, false)
	l.SetOrigin(gfx.Point{X: 30, Y: 10}, ModeNone, false)
	if got := l.Visible(); got != "jetzt" {
		t.Fatalf("Visible() = %q, want jetzt", got)
	}
}

func TestDrawTruncatesAtScreenEdge(t *testing.T) {
	l, _ := newLayer(anim.DefaultSlots)
	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)

	l.SetOrigin(gfx.Point{X: 100, Y: 10}, ModeNone, false)
	if got := l.drawWidth(); got != 44 {
		t.Fatalf("drawWidth() = %d, want 44", got)
	}
	l.SetText("abcdefghijklmno", ModeInstant, false)
	l.Draw(gfx.NewCanvas(fb))

	// "abcdefghij" fills 100..139, the ellipsis 140..142.
	if !lit(fb, 137, 10) {
		t.Fatal("last full glyph missing")
	}
	if lit(fb, 141, 10) || !lit(fb, 141, 14) {
		t.Fatal("text at the screen edge should end in an ellipsis")
	}

	l.SetOrigin(gfx.Point{X: -Width, Y: 10}, ModeNone, false)
	if got := l.drawWidth(); got != Width {
		t.Fatalf("drawWidth() off screen = %d, want %d", got, Width)
	}
}
