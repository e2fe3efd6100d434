// Package watchface is the Filmplakat face: the time as German words on five
// animated rows, an optional status bar and the companion toggles.
package watchface

import (
	"errors"
	"image/color"
	"time"

	"filmplakat/hal"
	"filmplakat/plakat/anim"
	clockclient "filmplakat/plakat/client/clock"
	logclient "filmplakat/plakat/client/logger"
	"filmplakat/plakat/companion"
	"filmplakat/plakat/fonts"
	"filmplakat/plakat/gfx"
	"filmplakat/plakat/kernel"
	"filmplakat/plakat/layout"
	"filmplakat/plakat/movietext"
	"filmplakat/plakat/settings"
	"filmplakat/plakat/statusbar"
)

const (
	// GestureTimeout is how long a wrist tap shows the status bar.
	GestureTimeout = 5000

	sensorPollTicks = 1000

	hourRowHeight = 37
	rowHeight     = 50
)

// Config wires the task to the HAL and the services.
type Config struct {
	Display hal.Display
	Clock   hal.Clock
	Flash   hal.Flash
	Sensors hal.Sensors
	Link    hal.Link

	// EP is the task's own endpoint; it needs send and receive rights.
	EP       kernel.Capability
	ClockCap kernel.Capability
	LogCap   kernel.Capability
}

type Task struct {
	cfg Config
	ctx *kernel.Context
	log func(string)

	started bool

	fb     hal.Framebuffer
	canvas *gfx.Canvas

	sched  *anim.Scheduler
	engine *layout.Engine
	layers [layout.NumRows]*movietext.Layer
	rows   [layout.NumRows]layout.Row
	bar    *statusbar.Bar

	store *settings.Store
	vals  settings.Values

	gesture     clockclient.Timer
	gestureShow bool

	lastPoll uint64
	minute   time.Time
	dirty    bool
}

func New(cfg Config) *Task {
	t := &Task{
		cfg:    cfg,
		sched:  anim.NewScheduler(anim.DefaultSlots),
		engine: layout.NewEngine(),
		bar:    statusbar.New(fonts.Status),
		vals:   settings.Defaults,
		dirty:  true,
	}
	t.log = logclient.Prefixed(func() *kernel.Context { return t.ctx }, cfg.LogCap, "watchface")
	t.bar.SetScheduler(t.sched)

	faces := [layout.NumRows]gfx.Font{
		layout.RowDate:    fonts.Date,
		layout.RowHour:    fonts.Hour,
		layout.RowUhr:     fonts.Uhr,
		layout.RowMinute1: fonts.Minutes,
		layout.RowMinute2: fonts.Minutes,
	}
	for r := range t.layers {
		h := rowHeight
		if layout.Role(r) == layout.RowHour {
			h = hourRowHeight
		}
		l := movietext.New(t.sched, faces[r], h)
		l.SetOrigin(gfx.Point{X: -movietext.Width}, movietext.ModeNone, false)
		l.SetLogger(t.log)
		t.layers[r] = l
		t.rows[r] = l
	}

	if cfg.Display != nil {
		t.fb = cfg.Display.Framebuffer()
	}
	if t.fb != nil {
		t.canvas = gfx.NewCanvas(t.fb)
	}
	return t
}

func (t *Task) Step(ctx *kernel.Context) {
	t.ctx = ctx
	defer func() { t.ctx = nil }()

	if !t.started {
		t.start(ctx)
	}

	for {
		msg, ok := ctx.TryRecv(t.cfg.EP)
		if !ok {
			break
		}
		t.handle(&msg)
	}

	now := ctx.NowTick()
	if now-t.lastPoll >= sensorPollTicks || t.lastPoll == 0 {
		t.lastPoll = now
		t.pollSensors()
	}
	t.pollTaps(ctx)
	t.pollLink()

	t.sched.Advance(now)
	t.render()
	ctx.BlockOnTick()
}

func (t *Task) start(ctx *kernel.Context) {
	t.started = true

	store, err := settings.Open(t.cfg.Flash)
	if err != nil {
		t.log("settings: " + err.Error())
	}
	t.store = store
	t.applyValues(store.Values())

	if err := clockclient.Subscribe(ctx, t.cfg.ClockCap, t.cfg.EP); err != nil {
		t.log(err.Error())
	}
	t.report()
	t.log("started " + describe(t.vals))
}

func (t *Task) handle(msg *kernel.Message) {
	ev, err := clockclient.Decode(msg)
	if err != nil {
		t.log(err.Error())
		return
	}
	switch ev.Kind {
	case clockclient.EventMinute:
		t.onMinute(ev.Time)
	case clockclient.EventWake:
		if t.gesture.Fired(ev) {
			t.gestureShow = false
			t.syncBar()
		}
	case clockclient.EventError:
		t.log("clock: " + ev.Err.Error())
		if ev.RequestID != 0 {
			t.gesture.Stop()
			t.gestureShow = false
			t.syncBar()
		}
	}
}

func (t *Task) onMinute(now time.Time) {
	if !t.minute.IsZero() && sameMinute(now, t.minute) {
		return
	}
	t.minute = now
	t.engine.Update(now, t.rows)
	f := t.engine.Current()
	t.log(now.Format("15:04") + " " + f.String())
}

// sameMinute compares local minutes, so a timezone change counts as new.
func sameMinute(a, b time.Time) bool {
	_, ao := a.Zone()
	_, bo := b.Zone()
	return ao == bo && a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}

func (t *Task) pollSensors() {
	if t.cfg.Sensors == nil {
		return
	}
	s := statusbar.State{Battery: t.cfg.Sensors.Battery(), Bluetooth: t.cfg.Sensors.Bluetooth()}
	if t.bar.Update(s) {
		t.dirty = true
	}
}

func (t *Task) pollTaps(ctx *kernel.Context) {
	if t.cfg.Sensors == nil {
		return
	}
	taps := t.cfg.Sensors.Taps()
	if taps == nil {
		return
	}
	for {
		select {
		case <-taps:
			t.onTap(ctx)
		default:
			return
		}
	}
}

// onTap shows the status bar for GestureTimeout when the gesture is enabled
// and the bar is otherwise hidden.
func (t *Task) onTap(ctx *kernel.Context) {
	if !t.vals.Gesture || t.vals.StatusBar {
		return
	}
	if err := t.gesture.Start(ctx, t.cfg.ClockCap, t.cfg.EP, GestureTimeout); err != nil {
		t.log("gesture: " + err.Error())
		return
	}
	t.gestureShow = true
	t.pollSensors()
	t.syncBar()
}

func (t *Task) pollLink() {
	if t.cfg.Link == nil {
		return
	}
	in := t.cfg.Link.Incoming()
	if in == nil {
		return
	}
	for {
		select {
		case msg := <-in:
			t.onCompanion(msg)
		default:
			return
		}
	}
}

func (t *Task) onCompanion(msg []byte) {
	u, err := companion.Decode(msg, t.vals)
	if err != nil {
		t.log(err.Error())
		t.report()
		return
	}
	if !u.Time.IsZero() {
		if cs, ok := t.cfg.Clock.(hal.ClockSetter); ok {
			cs.SetTime(u.Time)
			t.log("clock set to " + u.Time.Format(time.RFC3339))
		}
	}
	if changed, err := t.store.SetValues(u.Values); err != nil {
		t.log("settings: " + err.Error())
	} else if changed {
		t.log("settings " + describe(u.Values))
	}
	t.applyValues(u.Values)
	t.report()
}

// report sends the full toggle state to the phone.
func (t *Task) report() {
	if t.cfg.Link == nil {
		return
	}
	b, err := companion.Encode(t.vals)
	if err == nil {
		err = t.cfg.Link.Send(b)
	}
	if err != nil && !errors.Is(err, hal.ErrNotImplemented) {
		t.log("link: " + err.Error())
	}
}

func (t *Task) applyValues(v settings.Values) {
	if v.Invert != t.vals.Invert {
		t.dirty = true
	}
	if !v.Gesture || v.StatusBar {
		t.gesture.Stop()
		t.gestureShow = false
	}
	t.vals = v
	fg, bg := t.colors()
	for r, l := range t.layers {
		l.SetColors(fg, bg, layout.Role(r) == layout.RowHour)
	}
	t.syncBar()
}

func (t *Task) syncBar() {
	if t.bar.SetVisible(t.vals.StatusBar || t.gestureShow) {
		t.dirty = true
	}
}

func (t *Task) colors() (fg, bg color.RGBA) {
	if t.vals.Invert {
		return gfx.Black, gfx.White
	}
	return gfx.White, gfx.Black
}

func (t *Task) needsRedraw() bool {
	if t.dirty || t.bar.Dirty() {
		return true
	}
	for _, l := range t.layers {
		if l.Dirty() {
			return true
		}
	}
	return false
}

// drawOrder keeps the opaque hour row beneath the rows that overlap it.
var drawOrder = [layout.NumRows]layout.Role{
	layout.RowHour,
	layout.RowUhr,
	layout.RowMinute1,
	layout.RowMinute2,
	layout.RowDate,
}

func (t *Task) render() {
	if t.canvas == nil || !t.needsRedraw() {
		return
	}
	fg, bg := t.colors()
	t.canvas.Clear(bg)
	for _, r := range drawOrder {
		t.layers[r].Draw(t.canvas)
	}
	t.bar.Draw(t.canvas, fg, bg)
	if err := t.canvas.Present(); err != nil {
		t.log("present: " + err.Error())
	}
	t.dirty = false
}

func describe(v settings.Values) string {
	return "invert=" + onOff(v.Invert) + " statusbar=" + onOff(v.StatusBar) + " accel=" + onOff(v.Gesture)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
