package proto

import "strings"

// MaxLogLineBytes bounds a single log line so it fits one kernel message.
const MaxLogLineBytes = 120

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Lines longer than MaxLogLineBytes are cut.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(line string) []byte {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > MaxLogLineBytes {
		line = line[:MaxLogLineBytes]
	}
	return []byte(line)
}
