package gfx

import (
	"image/color"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Font is a tinyfont face that knows its ascent, so text can be placed by
// the top of its frame rather than by baseline.
type Font interface {
	tinyfont.Fonter
	Ascent() int
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(f tinyfont.Fonter, s string) int {
	if f == nil || s == "" {
		return 0
	}
	_, w := tinyfont.LineWidth(f, s)
	return int(w)
}

// Truncate shortens s so it fits maxW, ending it with an ellipsis.
func Truncate(f tinyfont.Fonter, s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if TextWidth(f, s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if TextWidth(f, string(r)+Ellipsis) <= maxW {
			return string(r) + Ellipsis
		}
	}
	return ""
}

// TruncateBytes shortens s to at most n bytes without splitting a rune.
func TruncateBytes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// DrawText renders a single left-aligned line with its top at the frame
// origin. Text wider than the frame ends in an ellipsis; nothing is drawn
// outside the frame.
func DrawText(c *Canvas, f Font, s string, frame Rect, col color.RGBA) {
	if c == nil || f == nil || s == "" || frame.Empty() {
		return
	}
	s = Truncate(f, s, frame.Size.W)
	if s == "" {
		return
	}
	dst := c.Clipped(frame)
	baseline := frame.Origin.Y + f.Ascent()
	tinyfont.WriteLine(dst, f, int16(frame.Origin.X), int16(baseline), s, col)
}
