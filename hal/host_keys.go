//go:build !tinygo

package hal

import (
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Simulator key bindings shared by the window and terminal runners.
const (
	keyTap       = 't'
	keyBluetooth = 'b'
	keyBattery   = 'p'
	keyInvert    = 'i'
	keyStatusBar = 's'
	keyGesture   = 'a'
)

// phoneState mirrors the companion app's toggles so simulator keys can flip
// them; the watch's echoes keep it in sync.
type phoneState struct {
	mu     sync.Mutex
	toggle map[string]bool
}

func newPhoneState() *phoneState {
	return &phoneState{toggle: map[string]bool{}}
}

func (p *phoneState) observe(msg []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	gjson.ParseBytes(msg).ForEach(func(key, value gjson.Result) bool {
		if value.IsBool() {
			p.toggle[key.String()] = value.Bool()
		}
		return true
	})
}

func (p *phoneState) flip(key string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := !p.toggle[key]
	p.toggle[key] = v
	msg, err := sjson.SetBytes([]byte(`{}`), key, v)
	if err != nil {
		return nil
	}
	return msg
}

// handleKey applies a simulator key. It reports whether the key was bound.
func (h *hostHAL) handleKey(r rune) bool {
	switch r {
	case keyTap:
		h.sensors.tap()
	case keyBluetooth:
		on := h.sensors.toggleBluetooth()
		if on {
			h.logger.WriteLineString("sim: bluetooth connected")
		} else {
			h.logger.WriteLineString("sim: bluetooth disconnected")
		}
	case keyBattery:
		h.sensors.cycleBattery()
	case keyInvert:
		h.link.inject(h.link.phone.flip("invert"))
	case keyStatusBar:
		h.link.inject(h.link.phone.flip("statusbar"))
	case keyGesture:
		h.link.inject(h.link.phone.flip("accel"))
	default:
		return false
	}
	return true
}
