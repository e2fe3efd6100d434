//go:build tinygo && !baremetal

package hal

import (
	"time"
)

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	fb      *memFramebuffer
	t       *tinyGoHostTime
	clock   tinyGoHostClock
	flash   *MemFlash
	sensors *tinyGoHostSensors
	link    *tinyGoHostLink
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping. Settings live in RAM only.
func New() HAL {
	return &tinyGoHostHAL{
		logger:  &tinyGoHostLogger{},
		fb:      newMemFramebuffer(ScreenWidth, ScreenHeight),
		t:       newTinyGoHostTime(),
		flash:   NewMemFlash(16*1024, 4096),
		sensors: &tinyGoHostSensors{taps: make(chan TapEvent)},
		link:    &tinyGoHostLink{in: make(chan []byte)},
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHostHAL) Time() Time       { return h.t }
func (h *tinyGoHostHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHostHAL) Sensors() Sensors { return h.sensors }
func (h *tinyGoHostHAL) Link() Link       { return h.link }

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoHostTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoHostClock struct{}

func (tinyGoHostClock) Now() time.Time { return time.Now() }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostSensors struct {
	taps chan TapEvent
}

func (s *tinyGoHostSensors) Battery() Battery      { return Battery{Percent: 100, Plugged: true} }
func (s *tinyGoHostSensors) Bluetooth() bool       { return false }
func (s *tinyGoHostSensors) Taps() <-chan TapEvent { return s.taps }

type tinyGoHostLink struct {
	in chan []byte
}

func (l *tinyGoHostLink) Incoming() <-chan []byte { return l.in }

func (l *tinyGoHostLink) Send(msg []byte) error {
	println("link> " + string(msg))
	return nil
}
