package proto

import (
	"strings"
	"testing"
)

func TestMinuteTickPayload(t *testing.T) {
	unix, off, ok := DecodeMinuteTickPayload(MinuteTickPayload(1_700_000_040, -3600))
	if !ok {
		t.Fatal("DecodeMinuteTickPayload() ok = false")
	}
	if unix != 1_700_000_040 || off != -3600 {
		t.Fatalf("DecodeMinuteTickPayload() = (%d, %d), want (1700000040, -3600)", unix, off)
	}
	if _, _, ok := DecodeMinuteTickPayload([]byte{1, 2, 3}); ok {
		t.Fatal("short payload should not decode")
	}
}

func TestErrorPayload(t *testing.T) {
	e, ok := DecodeErrorPayload(ErrorPayload(ErrOverflow, MsgSleep, 42))
	if !ok {
		t.Fatal("DecodeErrorPayload() ok = false")
	}
	if e.Code != ErrOverflow || e.Ref != MsgSleep || e.RequestID != 42 {
		t.Fatalf("DecodeErrorPayload() = %+v", e)
	}
	if got := e.Error(); got != "sleep failed: overflow (request 42)" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestLogLinePayloadTrims(t *testing.T) {
	if got := string(LogLinePayload("hello\r\n")); got != "hello" {
		t.Fatalf("LogLinePayload() = %q, want hello", got)
	}
	long := strings.Repeat("x", 300)
	if got := len(LogLinePayload(long)); got != MaxLogLineBytes {
		t.Fatalf("LogLinePayload() len = %d, want %d", got, MaxLogLineBytes)
	}
}
