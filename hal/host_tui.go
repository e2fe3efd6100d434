//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TUIConfig controls the terminal preview runner.
type TUIConfig struct {
	Enabled bool
	Hz      int
}

// Each terminal cell shows a 2x4 pixel block as two half-block glyphs.
const (
	tuiCellW = 2
	tuiCellH = 4
)

const tuiHelp = "t tap  b bt  p batt  i invert  s bar  a accel  q quit"

// RunTUI renders the framebuffer into the terminal and maps keys to
// simulator events. It blocks until q, Esc or Ctrl-C.
func RunTUI(ctx context.Context, opts HostOptions, newApp func(HAL) func() error, cfg TUIConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tui init: %w", err)
	}
	defer screen.Fini()

	h := newHostHAL(opts)
	step := newApp(h)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, events, done)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer ticker.Stop()

	scratch := make([]byte, len(h.fb.buf))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					if ev.Rune() == 'q' {
						return nil
					}
					h.handleKey(ev.Rune())
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			h.fb.snapshotRGB565(scratch)
			drawTUI(screen, scratch, h.fb.width, h.fb.height, h.fb.stride)
			screen.Show()
		}
	}
}

// pumpEvents forwards terminal events until poll reports the screen is gone
// or done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func drawTUI(screen tcell.Screen, buf []byte, width, height, stride int) {
	on := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	cols := width / tuiCellW
	rows := height / tuiCellH
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := blockLit(buf, stride, cx*tuiCellW, cy*tuiCellH)
			bottom := blockLit(buf, stride, cx*tuiCellW, cy*tuiCellH+tuiCellH/2)
			screen.SetContent(cx, cy, halfBlock(top, bottom), nil, on)
		}
	}
	for i, r := range tuiHelp {
		screen.SetContent(i, rows+1, r, nil, tcell.StyleDefault)
	}
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// blockLit reports whether at least half of the 2x2 pixels at (x, y) are lit.
func blockLit(buf []byte, stride, x, y int) bool {
	n := 0
	for dy := 0; dy < tuiCellH/2; dy++ {
		for dx := 0; dx < tuiCellW; dx++ {
			if lit(pixelAt(buf, stride, x+dx, y+dy)) {
				n++
			}
		}
	}
	return n*2 >= tuiCellW*tuiCellH/2
}
