//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HostOptions configures the simulated watch on the host.
type HostOptions struct {
	// Location is the watch's timezone. Nil means time.Local.
	Location *time.Location
	// Start is the wall-clock time at boot. Zero means now.
	Start time.Time
	// Scale speeds up the wall clock; 60 turns a second into a minute.
	Scale float64

	FlashPath string

	Battery   Battery
	Bluetooth bool

	// LinkStdin feeds newline-delimited companion messages from stdin.
	LinkStdin bool
}

type hostHAL struct {
	logger  *hostLogger
	fb      *hostFramebuffer
	t       *hostTime
	clock   *hostClock
	flash   *hostFlash
	sensors *hostSensors
	link    *hostLink
}

// New returns a host HAL implementation with default options.
func New() HAL {
	return NewHost(HostOptions{})
}

// NewHost returns a host HAL implementation.
func NewHost(opts HostOptions) HAL {
	return newHostHAL(opts)
}

func newHostHAL(opts HostOptions) *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	link := newHostLink(logger)
	if opts.LinkStdin {
		link.readFrom(os.Stdin)
	}
	return &hostHAL{
		logger:  logger,
		fb:      newHostFramebuffer(ScreenWidth, ScreenHeight),
		t:       newHostTime(),
		clock:   newHostClock(opts.Location, opts.Start, opts.Scale),
		flash:   newHostFlash(opts.FlashPath),
		sensors: newHostSensors(opts.Battery, opts.Bluetooth),
		link:    link,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Sensors() Sensors { return h.sensors }
func (h *hostHAL) Link() Link       { return h.link }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
