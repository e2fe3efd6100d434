//go:build !tinygo

package hal

import (
	"bufio"
	"bytes"
	"io"
	"sync"
)

type hostSensors struct {
	mu        sync.Mutex
	battery   Battery
	bluetooth bool
	taps      chan TapEvent
}

func newHostSensors(battery Battery, bluetooth bool) *hostSensors {
	if battery.Percent == 0 && !battery.Plugged {
		battery.Percent = 80
	}
	return &hostSensors{
		battery:   battery,
		bluetooth: bluetooth,
		taps:      make(chan TapEvent, 8),
	}
}

func (s *hostSensors) Battery() Battery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battery
}

func (s *hostSensors) Bluetooth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bluetooth
}

func (s *hostSensors) Taps() <-chan TapEvent { return s.taps }

func (s *hostSensors) tap() {
	select {
	case s.taps <- TapEvent{Axis: AxisX, Direction: 1}:
	default:
	}
}

func (s *hostSensors) toggleBluetooth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bluetooth = !s.bluetooth
	return s.bluetooth
}

// cycleBattery drains the simulated battery in 10% steps and plugs the
// charger when it runs empty.
func (s *hostSensors) cycleBattery() Battery {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.battery.Charging && s.battery.Percent >= 100:
		s.battery = Battery{Percent: 100}
	case s.battery.Charging:
		s.battery.Percent += 10
	case s.battery.Percent <= 10:
		s.battery = Battery{Percent: 0, Charging: true, Plugged: true}
	default:
		s.battery.Percent -= 10
	}
	return s.battery
}

// hostLink plays the phone side of the companion channel: inbound messages
// come from stdin or simulator keys, outbound ones are logged.
type hostLink struct {
	in    chan []byte
	log   Logger
	phone *phoneState
}

func newHostLink(log Logger) *hostLink {
	return &hostLink{in: make(chan []byte, 8), log: log, phone: newPhoneState()}
}

func (l *hostLink) Incoming() <-chan []byte { return l.in }

func (l *hostLink) Send(msg []byte) error {
	if l.log == nil {
		return ErrNotImplemented
	}
	l.phone.observe(msg)
	l.log.WriteLineString("link> " + string(msg))
	return nil
}

func (l *hostLink) inject(msg []byte) bool {
	if len(msg) == 0 {
		return false
	}
	select {
	case l.in <- msg:
		return true
	default:
		return false
	}
}

func (l *hostLink) readFrom(r io.Reader) {
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			msg := make([]byte, len(line))
			copy(msg, line)
			l.inject(msg)
		}
	}()
}
