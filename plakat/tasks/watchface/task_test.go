package watchface

import (
	"strings"
	"testing"
	"time"

	"filmplakat/hal"
	"filmplakat/plakat/kernel"
	"filmplakat/plakat/layout"
	"filmplakat/plakat/services/clock"
	"filmplakat/plakat/services/logger"
	"filmplakat/plakat/settings"
	"filmplakat/plakat/statusbar"

	"github.com/tidwall/gjson"
)

type fakeLogger struct{ lines []string }

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *fakeLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type fakeClock struct {
	now time.Time
	set []time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) SetTime(t time.Time) {
	c.now = t
	c.set = append(c.set, t)
}

type fakeSensors struct {
	battery hal.Battery
	taps    chan hal.TapEvent
}

func (s *fakeSensors) Battery() hal.Battery      { return s.battery }
func (s *fakeSensors) Bluetooth() bool           { return true }
func (s *fakeSensors) Taps() <-chan hal.TapEvent { return s.taps }

type fakeLink struct {
	in   chan []byte
	sent [][]byte
}

func (l *fakeLink) Incoming() <-chan []byte { return l.in }

func (l *fakeLink) Send(msg []byte) error {
	l.sent = append(l.sent, append([]byte(nil), msg...))
	return nil
}

func (l *fakeLink) last() []byte {
	if len(l.sent) == 0 {
		return nil
	}
	return l.sent[len(l.sent)-1]
}

type memDisplay struct{ fb hal.Framebuffer }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type rig struct {
	k       *kernel.Kernel
	face    *Task
	log     *fakeLogger
	clk     *fakeClock
	flash   *hal.MemFlash
	fb      hal.Framebuffer
	sensors *fakeSensors
	link    *fakeLink
	tick    uint64
}

func newRig(t *testing.T, now time.Time) *rig {
	t.Helper()
	r := &rig{
		k:       kernel.New(),
		log:     &fakeLogger{},
		clk:     &fakeClock{now: now},
		flash:   hal.NewMemFlash(64*1024, 4096),
		fb:      hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight),
		sensors: &fakeSensors{battery: hal.Battery{Percent: 80}, taps: make(chan hal.TapEvent, 4)},
		link:    &fakeLink{in: make(chan []byte, 4)},
	}
	logEP := r.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	clockEP := r.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	faceEP := r.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	r.k.AddTask(logger.New(r.log, logEP.Restrict(kernel.RightRecv)))
	r.k.AddTask(clock.New(r.clk, clockEP))
	r.face = New(Config{
		Display:  memDisplay{fb: r.fb},
		Clock:    r.clk,
		Flash:    r.flash,
		Sensors:  r.sensors,
		Link:     r.link,
		EP:       faceEP,
		ClockCap: clockEP.Restrict(kernel.RightSend),
		LogCap:   logEP.Restrict(kernel.RightSend),
	})
	r.k.AddTask(r.face)
	r.k.RunUntilIdle(100)
	return r
}

// run advances the kernel clock by ms in 10ms frames.
func (r *rig) run(ms uint64) {
	end := r.tick + ms
	for r.tick < end {
		r.tick += 10
		r.k.TickTo(r.tick)
		r.k.RunUntilIdle(100)
	}
}

func (r *rig) pixel(x, y int) (lo, hi byte) {
	buf := r.fb.Buffer()
	off := y*r.fb.StrideBytes() + x*2
	return buf[off], buf[off+1]
}

func TestRowsSettleOnTheMinute(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 30, 0, time.UTC))
	r.run(3000)

	f := r.face.engine.Current()
	if f.Count != 5 {
		t.Fatalf("Count = %d, want 5", f.Count)
	}
	for row := layout.Role(0); row < layout.NumRows; row++ {
		l := r.face.layers[row]
		if got, want := l.Text(), f.Words[row].Text; got != want {
			t.Fatalf("%s Text() = %q, want %q", row, got, want)
		}
		if got, want := l.Frame().Origin, f.Words[row].Pos; got != want {
			t.Fatalf("%s frame = %v, want %v", row, got, want)
		}
		if l.Animating() {
			t.Fatalf("%s still animating", row)
		}
	}
	if !r.log.contains("watchface: 10:21 ") {
		t.Fatalf("log = %q, want the minute line", r.log.lines)
	}
	if !r.log.contains("watchface: started invert=off statusbar=off accel=on") {
		t.Fatalf("log = %q, want the start line", r.log.lines)
	}
}

func TestNextMinuteUpdatesRows(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 29, 50, 0, time.UTC))
	r.run(3000)
	r.clk.now = r.clk.now.Add(20 * time.Second)
	r.run(3000)

	f := r.face.engine.Current()
	if f.Count != 4 {
		t.Fatalf("Count = %d, want 4 at 10:30", f.Count)
	}
	if got, want := r.face.layers[layout.RowMinute1].Text(), f.Words[layout.RowMinute1].Text; got != want {
		t.Fatalf("minute Text() = %q, want %q", got, want)
	}
	if got := r.face.layers[layout.RowMinute2].Frame().Origin.X; got != -hal.ScreenWidth {
		t.Fatalf("second minute row X = %d, want %d", got, -hal.ScreenWidth)
	}
}

func TestCompanionInvertPersists(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 0, 0, time.UTC))
	r.run(2000)
	if len(r.link.sent) == 0 {
		t.Fatal("no state report on start")
	}
	if lo, hi := r.pixel(0, 0); lo != 0 || hi != 0 {
		t.Fatalf("background = %02x%02x, want black", hi, lo)
	}

	r.link.in <- []byte(`{"invert":true}`)
	r.run(100)

	st, err := settings.Open(r.flash)
	if err != nil {
		t.Fatalf("settings.Open() error = %v", err)
	}
	if !st.Values().Invert {
		t.Fatal("invert not persisted")
	}
	if !gjson.GetBytes(r.link.last(), "invert").Bool() {
		t.Fatalf("report = %s, want invert true", r.link.last())
	}
	if lo, hi := r.pixel(0, 0); lo != 0xff || hi != 0xff {
		t.Fatalf("background = %02x%02x, want white", hi, lo)
	}
}

func TestCompanionSetsClock(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 0, 0, time.UTC))
	r.run(1000)

	r.link.in <- []byte(`{"time":1709632800,"utcOffset":3600}`)
	r.run(2000)

	if len(r.clk.set) != 1 || r.clk.set[0].Unix() != 1709632800 {
		t.Fatalf("SetTime calls = %v", r.clk.set)
	}
	if got := r.face.engine.Current().Words[layout.RowHour].Plain; !strings.Contains(got, "elf") {
		t.Fatalf("hour word = %q, want elf", got)
	}
}

func TestCompanionRejectsGarbage(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 0, 0, time.UTC))
	r.run(1000)
	sent := len(r.link.sent)

	r.link.in <- []byte(`{"invert":"yes"}`)
	r.run(100)

	if len(r.link.sent) != sent+1 {
		t.Fatalf("reports = %d, want %d", len(r.link.sent), sent+1)
	}
	if r.face.vals != settings.Defaults {
		t.Fatalf("values = %+v, want defaults", r.face.vals)
	}
	if !r.log.contains("companion: invalid message") {
		t.Fatalf("log = %q, want the decode error", r.log.lines)
	}
}

func TestTapShowsStatusBar(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 0, 0, time.UTC))
	r.run(1000)
	if r.face.bar.Visible() {
		t.Fatal("bar visible before a tap")
	}

	r.sensors.taps <- hal.TapEvent{Axis: hal.AxisX, Direction: 1}
	r.run(100)
	if !r.face.bar.Visible() {
		t.Fatal("bar hidden after a tap")
	}
	if got := r.face.bar.State().Battery.Percent; got != 80 {
		t.Fatalf("battery = %d, want 80", got)
	}
	if !r.face.bar.Animating() {
		t.Fatal("bar should still be springing into place")
	}

	r.run(GestureTimeout - 500)
	if !r.face.bar.Visible() {
		t.Fatal("bar hidden before the gesture timeout")
	}
	if r.face.bar.Animating() || r.face.bar.Offset() != 0 {
		t.Fatalf("bar offset = %d after the reveal, want 0", r.face.bar.Offset())
	}
	r.run(1000)
	if r.face.bar.Visible() {
		t.Fatal("bar still visible after the gesture timeout")
	}
}

func TestTapIgnoredWhenGestureOff(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 0, 0, time.UTC))
	r.run(1000)
	r.link.in <- []byte(`{"accel":false}`)
	r.run(100)

	r.sensors.taps <- hal.TapEvent{Axis: hal.AxisZ, Direction: -1}
	r.run(100)
	if r.face.bar.Visible() {
		t.Fatal("tap showed the bar with the gesture off")
	}
}

func TestStatusBarToggle(t *testing.T) {
	r := newRig(t, time.Date(2024, 3, 5, 10, 21, 0, 0, time.UTC))
	r.run(1000)
	r.link.in <- []byte(`{"statusbar":true}`)
	r.run(uint64(statusbar.RevealDuration) + 100)
	if !r.face.bar.Visible() {
		t.Fatal("bar hidden with statusbar on")
	}
	if lo, hi := r.pixel(3+2, 7); lo == 0 && hi == 0 {
		t.Fatal("bluetooth icon not drawn")
	}
}
