// Package statusbar draws the bluetooth and battery indicators across the
// top of the screen.
package statusbar

import (
	"image/color"
	"strconv"

	"filmplakat/hal"
	"filmplakat/plakat/anim"
	"filmplakat/plakat/gfx"
)

const (
	Height = 14

	// RevealDuration is how long the bar takes to drop in from above.
	RevealDuration uint32 = 400

	batteryW = 20
	batteryH = 9
	nibW     = 2
	nibH     = 4
	margin   = 3
)

// bluetoothIcon is 5 pixels wide; bit 4 is the leftmost column.
var bluetoothIcon = [9]uint8{
	0b00100,
	0b00110,
	0b10101,
	0b01110,
	0b00100,
	0b01110,
	0b10101,
	0b00110,
	0b00100,
}

// State is what the bar shows.
type State struct {
	Battery   hal.Battery
	Bluetooth bool
}

type Bar struct {
	font    gfx.Font
	state   State
	visible bool
	dirty   bool

	sched  *anim.Scheduler
	handle anim.Handle
	// lift is how far the bar sits above its resting place; it dips below
	// zero while the spring overshoots.
	lift int
}

func New(font gfx.Font) *Bar {
	return &Bar{font: font, dirty: true}
}

// Update records s and reports whether the bar needs a redraw.
func (b *Bar) Update(s State) bool {
	if s == b.state {
		return false
	}
	b.state = s
	b.dirty = true
	return b.visible
}

func (b *Bar) State() State { return b.state }

// SetScheduler makes the bar spring down into place when shown. Without a
// scheduler it appears at once.
func (b *Bar) SetScheduler(s *anim.Scheduler) { b.sched = s }

// SetVisible shows or hides the bar and reports whether that changed.
func (b *Bar) SetVisible(v bool) bool {
	if v == b.visible {
		return false
	}
	b.visible = v
	b.dirty = true
	if b.sched != nil {
		b.sched.Cancel(b.handle)
	}
	b.handle = anim.Handle{}
	b.lift = 0
	if v {
		b.reveal()
	}
	return true
}

func (b *Bar) reveal() {
	if b.sched == nil {
		return
	}
	h, err := b.sched.Schedule(anim.Animation{
		Duration: RevealDuration,
		Curve:    anim.CurveSpring,
		Update: func(p float64) {
			b.lift = anim.Lerp(Height, 0, p)
			b.dirty = true
		},
	})
	if err != nil {
		return
	}
	b.handle = h
	b.lift = Height
}

// Animating reports whether the reveal is still running.
func (b *Bar) Animating() bool { return b.sched != nil && b.sched.Active(b.handle) }

// Offset is the bar's current vertical displacement from its resting place.
func (b *Bar) Offset() int { return -b.lift }

func (b *Bar) Visible() bool { return b.visible }
func (b *Bar) Dirty() bool   { return b.dirty }

// Bounds is the strip the bar covers when visible.
func Bounds() gfx.Rect { return gfx.R(0, 0, hal.ScreenWidth, Height) }

// Draw paints the bar when visible.
func (b *Bar) Draw(c *gfx.Canvas, fg, bg color.RGBA) {
	b.dirty = false
	if !b.visible {
		return
	}
	dy := -b.lift
	c.FillRect(down(Bounds(), dy), bg)
	b.drawBluetooth(c, fg, dy)
	b.drawBattery(c, fg, dy)
}

func down(r gfx.Rect, dy int) gfx.Rect {
	r.Origin.Y += dy
	return r
}

func (b *Bar) drawBluetooth(c *gfx.Canvas, fg color.RGBA, dy int) {
	x0, y0 := margin, (Height-len(bluetoothIcon))/2+dy
	for y, row := range bluetoothIcon {
		for x := 0; x < 5; x++ {
			if row&(1<<(4-x)) != 0 {
				c.SetPixel(int16(x0+x), int16(y0+y), fg)
			}
		}
	}
	if !b.state.Bluetooth {
		// strike through
		for i := 0; i < len(bluetoothIcon); i++ {
			c.SetPixel(int16(x0+7-i*7/8), int16(y0+i), fg)
		}
	}
}

// BatteryRect is the battery outline.
func BatteryRect() gfx.Rect {
	return gfx.R(hal.ScreenWidth-margin-nibW-batteryW, (Height-batteryH)/2, batteryW, batteryH)
}

// fillWidth is the lit width inside the outline for a charge level.
func fillWidth(percent uint8) int {
	if percent > 100 {
		percent = 100
	}
	return int(percent) * (batteryW - 4) / 100
}

func (b *Bar) drawBattery(c *gfx.Canvas, fg color.RGBA, dy int) {
	r := down(BatteryRect(), dy)
	c.DrawRect(r, fg)
	c.FillRect(gfx.R(r.MaxX(), r.Origin.Y+(batteryH-nibH)/2, nibW, nibH), fg)
	c.FillRect(gfx.R(r.Origin.X+2, r.Origin.Y+2, fillWidth(b.state.Battery.Percent), batteryH-4), fg)

	label := strconv.Itoa(int(b.state.Battery.Percent)) + "%"
	if b.state.Battery.Charging {
		label = "+" + label
	}
	w := gfx.TextWidth(b.font, label)
	frame := gfx.R(r.Origin.X-margin-w, dy, w, Height)
	if b.font != nil {
		frame.Origin.Y += (Height - b.font.Ascent()) / 2
	}
	gfx.DrawText(c, b.font, label, frame, fg)
}
