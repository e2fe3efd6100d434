package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"filmplakat/hal"
	"filmplakat/plakat/fonts"
	"filmplakat/plakat/gfx"
	"filmplakat/plakat/kernel"
)

const panicLineHeight = 10

// installPanicHandler logs a task panic with its stack and paints it on the
// display, black on white so it cannot be mistaken for the face.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			return
		}
		fb := disp.Framebuffer()
		if fb == nil {
			return
		}
		drawPanic(gfx.NewCanvas(fb), lines)
		_ = fb.Present()
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"Filmplakat panic",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func drawPanic(c *gfx.Canvas, lines []string) {
	c.Clear(gfx.White)
	font := fonts.Status
	width := c.Bounds().Size.W

	y := 0
	for _, line := range lines {
		for line != "" {
			if y+panicLineHeight > c.Bounds().Size.H {
				return
			}
			chunk := fitPrefix(font, line, width)
			gfx.DrawText(c, font, chunk, gfx.R(0, y, width, panicLineHeight), gfx.Black)
			y += panicLineHeight
			line = strings.TrimLeft(line[len(chunk):], " ")
		}
	}
}

// fitPrefix returns the longest prefix of s that fits in w pixels, and at
// least one rune.
func fitPrefix(f gfx.Font, s string, w int) string {
	_, n := utf8.DecodeRuneInString(s)
	for n < len(s) {
		_, size := utf8.DecodeRuneInString(s[n:])
		if gfx.TextWidth(f, s[:n+size]) > w {
			break
		}
		n += size
	}
	return s[:n]
}
