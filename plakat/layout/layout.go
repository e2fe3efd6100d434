package layout

import (
	"filmplakat/hal"
	"filmplakat/plakat/gfx"
)

// Tuned poster geometry.
const (
	BaseX        = 20
	HourHeight   = 28
	UhrHeight    = 25
	MinuteHeight = 28
	DateHeight   = 36
	DotlessLift  = 5
	BottomPad    = 22

	DateNudge = 4
	HourNudge = -7

	ScreenWidth  = hal.ScreenWidth
	ScreenHeight = hal.ScreenHeight
)

// Layout assigns every active row its target position: hour, "uhr", the
// minute words and the date stacked top to bottom, centered vertically and
// skewed left as they go down.
func Layout(f *Frame) {
	var y [NumRows]int

	acc := 0
	y[RowHour] = acc
	acc += HourHeight
	y[RowUhr] = acc

	if f.Count >= 4 {
		acc += UhrHeight - lift(f.Words[RowMinute1])
		y[RowMinute1] = acc
	}
	if f.Count == 5 {
		acc += MinuteHeight - lift(f.Words[RowMinute2])
		y[RowMinute2] = acc
	}
	acc += DateHeight
	y[RowDate] = acc

	acc += BottomPad
	offset := (ScreenHeight - acc) / 2

	for r := 0; r < NumRows; r++ {
		if r >= f.Count {
			f.Words[r].Pos = gfx.Point{}
			continue
		}
		f.Words[r].Pos = gfx.Point{X: BaseX - y[r]/5, Y: y[r] + offset}
	}
	f.Words[RowDate].Pos.X += DateNudge
	f.Words[RowHour].Pos.X += HourNudge
}

// lift shortens the gap above a row drawn with dotless glyphs.
func lift(w TimeWord) int {
	if w.IsASCII {
		return 0
	}
	return DotlessLift
}
