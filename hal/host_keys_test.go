//go:build !tinygo

package hal

import "testing"

func TestPhoneStateFlipFollowsEcho(t *testing.T) {
	p := newPhoneState()
	p.observe([]byte(`{"invert":true,"statusbar":false,"accel":true}`))

	if got := string(p.flip("invert")); got != `{"invert":false}` {
		t.Fatalf("flip(invert) = %s, want {\"invert\":false}", got)
	}
	if got := string(p.flip("statusbar")); got != `{"statusbar":true}` {
		t.Fatalf("flip(statusbar) = %s, want {\"statusbar\":true}", got)
	}
}

func TestHandleKeyInjectsCompanionMessage(t *testing.T) {
	log := &memLogger{}
	h := &hostHAL{
		sensors: newHostSensors(Battery{}, false),
		link:    newHostLink(log),
	}

	if !h.handleKey(keyGesture) {
		t.Fatal("handleKey(gesture) = false, want true")
	}
	select {
	case msg := <-h.link.Incoming():
		if string(msg) != `{"accel":true}` {
			t.Fatalf("injected %s, want {\"accel\":true}", msg)
		}
	default:
		t.Fatal("no message injected")
	}
	if h.handleKey('z') {
		t.Fatal("handleKey(z) = true, want false")
	}
}

func TestHandleKeyTap(t *testing.T) {
	h := &hostHAL{sensors: newHostSensors(Battery{}, false), link: newHostLink(&memLogger{})}
	h.handleKey(keyTap)
	select {
	case <-h.sensors.Taps():
	default:
		t.Fatal("tap key did not produce a tap event")
	}
}
