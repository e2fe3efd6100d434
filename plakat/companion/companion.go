// Package companion encodes and decodes the JSON messages exchanged with
// the phone app.
//
// The phone sends partial objects such as {"invert":true}; missing keys keep
// their current value. An optional "time" (unix seconds) with "utcOffset"
// (seconds east of UTC) corrects the watch clock. The watch answers every
// message with its full state.
package companion

import (
	"errors"
	"fmt"
	"time"

	"filmplakat/plakat/settings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	KeyInvert    = "invert"
	KeyStatusBar = "statusbar"
	KeyAccel     = "accel"
	KeyTime      = "time"
	KeyUTCOffset = "utcOffset"
)

var ErrInvalid = errors.New("companion: invalid message")

// Update is a decoded phone message applied on top of the current state.
type Update struct {
	Values settings.Values
	// Time is zero unless the message carried a clock correction.
	Time time.Time
}

// Decode merges msg into cur.
func Decode(msg []byte, cur settings.Values) (Update, error) {
	u := Update{Values: cur}
	if !gjson.ValidBytes(msg) {
		return u, fmt.Errorf("%w: not json", ErrInvalid)
	}
	root := gjson.ParseBytes(msg)
	if !root.IsObject() {
		return u, fmt.Errorf("%w: not an object", ErrInvalid)
	}

	for _, f := range []struct {
		key string
		dst *bool
	}{
		{KeyInvert, &u.Values.Invert},
		{KeyStatusBar, &u.Values.StatusBar},
		{KeyAccel, &u.Values.Gesture},
	} {
		r := root.Get(f.key)
		if !r.Exists() {
			continue
		}
		switch r.Type {
		case gjson.True, gjson.False, gjson.Number:
			*f.dst = r.Bool()
		default:
			return Update{Values: cur}, fmt.Errorf("%w: %s is %s", ErrInvalid, f.key, r.Type)
		}
	}

	if ts := root.Get(KeyTime); ts.Exists() {
		if ts.Type != gjson.Number {
			return Update{Values: cur}, fmt.Errorf("%w: %s is %s", ErrInvalid, KeyTime, ts.Type)
		}
		off := int(root.Get(KeyUTCOffset).Int())
		loc := time.UTC
		if off != 0 {
			loc = time.FixedZone("", off)
		}
		u.Time = time.Unix(ts.Int(), 0).In(loc)
	}
	return u, nil
}

// Encode renders the full state reported back to the phone.
func Encode(v settings.Values) ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, f := range []struct {
		key string
		val bool
	}{
		{KeyInvert, v.Invert},
		{KeyStatusBar, v.StatusBar},
		{KeyAccel, v.Gesture},
	} {
		out, err = sjson.SetBytes(out, f.key, f.val)
		if err != nil {
			return nil, fmt.Errorf("companion: encode %s: %w", f.key, err)
		}
	}
	return out, nil
}
