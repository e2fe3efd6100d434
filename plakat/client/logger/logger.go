package logger

import (
	"fmt"

	"filmplakat/plakat/kernel"
	"filmplakat/plakat/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line), kernel.Capability{})
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}

// Prefixed returns a log hook bound to a component name.
//
// The hook reads the context through ctxFn at call time, so it is safe to keep
// across Step calls as long as ctxFn returns the current step's context.
func Prefixed(ctxFn func() *kernel.Context, logCap kernel.Capability, name string) func(string) {
	return func(line string) {
		_ = Log(ctxFn(), logCap, name+": "+line)
	}
}
