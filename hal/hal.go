package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Watch display geometry.
const (
	ScreenWidth  = 144
	ScreenHeight = 168
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Time provides a base tick stream with one tick per millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// Clock provides the wall-clock time in the watch's local timezone.
type Clock interface {
	Now() time.Time
}

// ClockSetter is implemented by clocks that accept a correction from the
// companion app. The location of t becomes the watch's timezone.
type ClockSetter interface {
	SetTime(t time.Time)
}

// Battery is a snapshot of the power state.
type Battery struct {
	Percent  uint8
	Charging bool
	Plugged  bool
}

// Axis identifies the accelerometer axis of a tap.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// TapEvent is a wrist tap reported by the accelerometer.
type TapEvent struct {
	Axis      Axis
	Direction int8
}

// Sensors exposes the watch's state inputs.
type Sensors interface {
	Battery() Battery
	Bluetooth() bool
	Taps() <-chan TapEvent
}

// Link is the message channel to the companion app.
//
// Messages are opaque byte strings (JSON objects in practice).
type Link interface {
	Incoming() <-chan []byte
	Send(msg []byte) error
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Flash() Flash
	Time() Time
	Clock() Clock
	Sensors() Sensors
	Link() Link
}
