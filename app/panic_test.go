package app

import (
	"strings"
	"testing"

	"filmplakat/hal"
	"filmplakat/plakat/fonts"
	"filmplakat/plakat/gfx"
	"filmplakat/plakat/kernel"
)

func TestPanicLines(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{TaskID: 2, Value: "boom", Stack: []byte("a\n\nb\n")})
	want := []string{"Filmplakat panic", "task: 2", "panic: boom", "stack:", "a", "b"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("panicLines() = %q, want %q", lines, want)
	}

	lines = panicLines(kernel.PanicInfo{Value: 1})
	if lines[len(lines)-1] != "stack: unavailable" {
		t.Fatalf("panicLines() last = %q, want stack: unavailable", lines[len(lines)-1])
	}
}

func TestFitPrefix(t *testing.T) {
	s := strings.Repeat("m", 100)
	got := fitPrefix(fonts.Status, s, hal.ScreenWidth)
	if len(got) == 0 || len(got) == len(s) {
		t.Fatalf("fitPrefix() kept %d of %d runes", len(got), len(s))
	}
	if w := gfx.TextWidth(fonts.Status, got); w > hal.ScreenWidth {
		t.Fatalf("fitPrefix() width = %d, want <= %d", w, hal.ScreenWidth)
	}
	if got := fitPrefix(fonts.Status, "ü", 0); got != "ü" {
		t.Fatalf("fitPrefix() = %q, want one rune", got)
	}
}

func TestDrawPanicClearsWhite(t *testing.T) {
	fb := hal.NewMemFramebuffer(hal.ScreenWidth, hal.ScreenHeight)
	drawPanic(gfx.NewCanvas(fb), []string{"x"})
	buf := fb.Buffer()
	last := len(buf) - 2
	if buf[last] != 0xff || buf[last+1] != 0xff {
		t.Fatalf("bottom right = %02x%02x, want white", buf[last+1], buf[last])
	}
}
