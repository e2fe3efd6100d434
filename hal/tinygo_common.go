//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
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

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// tinyGoClock keeps wall time as an offset over the monotonic clock; the
// board has no battery-backed RTC, so it starts at the epoch until the
// companion sets it.
type tinyGoClock struct {
	mu     sync.Mutex
	offset time.Duration
	loc    *time.Location
}

func (c *tinyGoClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc := c.loc
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().Add(c.offset).In(loc)
}

func (c *tinyGoClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = t.Sub(time.Now())
	c.loc = t.Location()
}

type uartLogger struct {
	mu   sync.Mutex
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// uartLink carries companion messages as newline-delimited lines on the
// console UART, shared with the logger.
type uartLink struct {
	log *uartLogger
	in  chan []byte
}

func newUARTLink(log *uartLogger) *uartLink {
	l := &uartLink{log: log, in: make(chan []byte, 4)}
	go l.readLoop()
	return l
}

func (l *uartLink) Incoming() <-chan []byte { return l.in }

func (l *uartLink) Send(msg []byte) error {
	if l.log == nil || l.log.uart == nil {
		return ErrNotImplemented
	}
	l.log.WriteLineBytes(msg)
	return nil
}

func (l *uartLink) readLoop() {
	var line []byte
	for {
		if l.log.uart.Buffered() == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		c, err := l.log.uart.ReadByte()
		if err != nil {
			continue
		}
		switch c {
		case '\r':
		case '\n':
			if len(line) > 0 {
				msg := make([]byte, len(line))
				copy(msg, line)
				select {
				case l.in <- msg:
				default:
				}
			}
			line = line[:0]
		default:
			if len(line) < 256 {
				line = append(line, c)
			}
		}
	}
}

// pinSensors reads the battery through the VSYS divider and reports button
// presses as taps.
type pinSensors struct {
	adc  machine.ADC
	taps chan TapEvent
}

func newPinSensors(vsys machine.Pin, button machine.Pin) *pinSensors {
	machine.InitADC()
	adc := machine.ADC{Pin: vsys}
	adc.Configure(machine.ADCConfig{})

	button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	s := &pinSensors{adc: adc, taps: make(chan TapEvent, 4)}
	go func() {
		prev := true
		for {
			cur := button.Get()
			if prev && !cur {
				select {
				case s.taps <- TapEvent{Axis: AxisZ, Direction: 1}:
				default:
				}
			}
			prev = cur
			time.Sleep(20 * time.Millisecond)
		}
	}()
	return s
}

// Battery maps 3.3 V .. 4.2 V on VSYS (a 1/3 divider into a 3.3 V ADC) to
// 0..100 percent. Above 4.3 V the board runs from USB.
func (s *pinSensors) Battery() Battery {
	mv := uint32(s.adc.Get()) * 3300 * 3 / 65535
	if mv > 4300 {
		return Battery{Percent: 100, Plugged: true}
	}
	switch {
	case mv <= 3300:
		return Battery{Percent: 0}
	case mv >= 4200:
		return Battery{Percent: 100}
	default:
		return Battery{Percent: uint8((mv - 3300) * 100 / 900)}
	}
}

func (s *pinSensors) Bluetooth() bool       { return false }
func (s *pinSensors) Taps() <-chan TapEvent { return s.taps }
