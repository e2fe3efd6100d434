//go:build tinygo && bootdebug

package app

import (
	"machine"
	"sync"
	"time"

	"filmplakat/hal"
	"filmplakat/plakat/fonts"
	"filmplakat/plakat/gfx"
)

var (
	bootMu      sync.Mutex
	bootCurrent string
	bootOnce    sync.Once
)

// bootStep records the boot stage, repeats it on the UART and USB CDC every
// 250ms and shows it on the display.
func bootStep(h hal.HAL, msg string) {
	bootMu.Lock()
	bootCurrent = msg
	bootMu.Unlock()
	if h == nil {
		return
	}
	bootOnce.Do(func() { go bootRepeat(h.Logger()) })

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	c := gfx.NewCanvas(fb)
	c.Clear(gfx.Black)
	gfx.DrawText(c, fonts.Date, "Filmplakat boot", gfx.R(0, 4, hal.ScreenWidth, 20), gfx.White)
	gfx.DrawText(c, fonts.Status, msg, gfx.R(0, 28, hal.ScreenWidth, 12), gfx.White)
	_ = fb.Present()
}

func bootRepeat(l hal.Logger) {
	for {
		bootMu.Lock()
		step := bootCurrent
		bootMu.Unlock()

		line := "bootdiag: " + step
		if l != nil {
			l.WriteLineString(line)
		}
		if usb := machine.USBCDC; usb != nil {
			_, _ = usb.Write([]byte(line + "\r\n"))
		}
		time.Sleep(250 * time.Millisecond)
	}
}
