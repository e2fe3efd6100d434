package statusbar

import (
	"testing"

	"filmplakat/hal"
	"filmplakat/plakat/anim"
	"filmplakat/plakat/gfx"
)

func lit(fb hal.Framebuffer, x, y int) bool {
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	return buf[off] != 0 || buf[off+1] != 0
}

func TestFillWidth(t *testing.T) {
	cases := []struct {
		percent uint8
		want    int
	}{
		{0, 0},
		{50, 8},
		{100, 16},
		{250, 16},
	}
	for _, tc := range cases {
		if got := fillWidth(tc.percent); got != tc.want {
			t.Fatalf("fillWidth(%d) = %d, want %d", tc.percent, got, tc.want)
		}
	}
}

func TestHiddenBarDrawsNothing(t *testing.T) {
	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)
	b := New(nil)
	b.Update(State{Battery: hal.Battery{Percent: 100}, Bluetooth: true})
	b.Draw(gfx.NewCanvas(fb), gfx.White, gfx.Black)
	for i, v := range fb.Buffer() {
		if v != 0 {
			t.Fatalf("byte %d set by a hidden bar", i)
		}
	}
	if b.Dirty() {
		t.Fatal("Draw() should clear dirty")
	}
}

func TestBatteryFill(t *testing.T) {
	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)
	b := New(nil)
	b.SetVisible(true)
	b.Update(State{Battery: hal.Battery{Percent: 50}})
	b.Draw(gfx.NewCanvas(fb), gfx.White, gfx.Black)

	r := BatteryRect()
	y := r.Origin.Y + batteryH/2
	if !lit(fb, r.Origin.X, y) {
		t.Fatal("battery outline not drawn")
	}
	if !lit(fb, r.Origin.X+2, y) || !lit(fb, r.Origin.X+2+7, y) {
		t.Fatal("battery fill missing")
	}
	if lit(fb, r.Origin.X+2+8, y) {
		t.Fatal("battery fill too wide for 50%")
	}
	if lit(fb, 0, Height+1) {
		t.Fatal("bar drew below its bounds")
	}
}

func TestUpdateReportsRedraw(t *testing.T) {
	b := New(nil)
	s := State{Battery: hal.Battery{Percent: 40}, Bluetooth: true}
	if b.Update(s) {
		t.Fatal("Update() on a hidden bar should not ask for a redraw")
	}
	if !b.SetVisible(true) || b.SetVisible(true) {
		t.Fatal("SetVisible() change reporting is wrong")
	}
	if b.Update(s) {
		t.Fatal("Update() with the same state should not ask for a redraw")
	}
	s.Bluetooth = false
	if !b.Update(s) {
		t.Fatal("Update() with a new state should ask for a redraw")
	}
}

func TestRevealSpringsIntoPlace(t *testing.T) {
	s := anim.NewScheduler(anim.DefaultSlots)
	b := New(nil)
	b.SetScheduler(s)
	b.SetVisible(true)
	if !b.Animating() || b.Offset() != -Height {
		t.Fatalf("Offset() = %d after show, want %d", b.Offset(), -Height)
	}

	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)
	b.Draw(gfx.NewCanvas(fb), gfx.White, gfx.Black)
	if lit(fb, BatteryRect().Origin.X, BatteryRect().Origin.Y+batteryH/2) {
		t.Fatal("bar drawn in place before the reveal started")
	}

	overshoot := 0
	for now := uint64(10); now <= uint64(RevealDuration); now += 10 {
		s.Advance(now)
		if o := b.Offset(); o > overshoot {
			overshoot = o
		}
	}
	if overshoot == 0 {
		t.Fatal("reveal never dipped past its resting place")
	}
	if b.Animating() || b.Offset() != 0 {
		t.Fatalf("Offset() = %d after the reveal, want 0", b.Offset())
	}
	if !b.Dirty() {
		t.Fatal("reveal frames should ask for a redraw")
	}

	b.Draw(gfx.NewCanvas(fb), gfx.White, gfx.Black)
	if !lit(fb, BatteryRect().Origin.X, BatteryRect().Origin.Y+batteryH/2) {
		t.Fatal("battery outline missing after the reveal")
	}
}

func TestHideCancelsReveal(t *testing.T) {
	s := anim.NewScheduler(anim.DefaultSlots)
	b := New(nil)
	b.SetScheduler(s)
	b.SetVisible(true)
	s.Advance(100)
	b.SetVisible(false)
	if b.Animating() || b.Offset() != 0 || s.Running() != 0 {
		t.Fatal("hiding should stop the reveal")
	}
}
