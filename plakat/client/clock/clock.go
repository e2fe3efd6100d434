package clock

import (
	"errors"
	"fmt"
	"time"

	"filmplakat/plakat/kernel"
	"filmplakat/plakat/proto"
)

var (
	ErrNoReply    = errors.New("clock: invalid reply capability")
	ErrBadPayload = errors.New("clock: bad payload")
)

// Subscribe asks the clock service for minute ticks on reply.
//
// The first tick arrives right away; later ones follow each wall-clock
// minute change.
func Subscribe(ctx *kernel.Context, clockCap, reply kernel.Capability) error {
	if ctx == nil {
		return fmt.Errorf("clock subscribe: nil context")
	}
	replySend := reply.Restrict(kernel.RightSend)
	if !replySend.Valid() {
		return ErrNoReply
	}
	if res := ctx.SendToCapResult(clockCap, uint16(proto.MsgSubscribeMinutes), nil, replySend); res != kernel.SendOK {
		return fmt.Errorf("clock subscribe send: %s", res)
	}
	return nil
}

// Timer is a one-shot timer served by the clock service. Wakes for a
// stopped or restarted timer are ignored by request ID.
type Timer struct {
	id    uint32
	armed bool
}

// Start arms the timer for dt milliseconds, replacing any pending wake.
func (t *Timer) Start(ctx *kernel.Context, clockCap, reply kernel.Capability, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("clock timer: nil context")
	}
	replySend := reply.Restrict(kernel.RightSend)
	if !replySend.Valid() {
		return ErrNoReply
	}
	t.id++
	if t.id == 0 {
		t.id++
	}
	res := ctx.SendToCapResult(clockCap, uint16(proto.MsgSleep), proto.SleepPayload(t.id, dt), replySend)
	if res != kernel.SendOK {
		t.armed = false
		return fmt.Errorf("clock timer send: %s", res)
	}
	t.armed = true
	return nil
}

// Stop disarms the timer.
func (t *Timer) Stop() { t.armed = false }

// Armed reports whether a wake is pending.
func (t *Timer) Armed() bool { return t.armed }

// Fired reports whether ev is the wake for the pending request and disarms
// the timer if so.
func (t *Timer) Fired(ev Event) bool {
	if !t.armed || ev.Kind != EventWake || ev.RequestID != t.id {
		return false
	}
	t.armed = false
	return true
}

type EventKind uint8

const (
	EventMinute EventKind = iota + 1
	EventWake
	EventError
)

// Event is a decoded clock service message.
type Event struct {
	Kind      EventKind
	Time      time.Time
	RequestID uint32
	Err       error
}

// Decode turns a message from the clock service into an Event.
func Decode(msg *kernel.Message) (Event, error) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgMinuteTick:
		unix, offset, ok := proto.DecodeMinuteTickPayload(msg.Payload())
		if !ok {
			return Event{}, fmt.Errorf("minute tick: %w", ErrBadPayload)
		}
		return Event{Kind: EventMinute, Time: time.Unix(unix, 0).In(zone(offset))}, nil

	case proto.MsgWake:
		id, ok := proto.DecodeWakePayload(msg.Payload())
		if !ok {
			return Event{}, fmt.Errorf("wake: %w", ErrBadPayload)
		}
		return Event{Kind: EventWake, RequestID: id}, nil

	case proto.MsgError:
		perr, ok := proto.DecodeErrorPayload(msg.Payload())
		if !ok {
			return Event{}, fmt.Errorf("error reply: %w", ErrBadPayload)
		}
		return Event{Kind: EventError, RequestID: perr.RequestID, Err: perr}, nil

	default:
		return Event{}, fmt.Errorf("unexpected %s: %w", proto.Kind(msg.Kind), ErrBadPayload)
	}
}

func zone(offset int32) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", int(offset))
}
