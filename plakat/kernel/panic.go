package kernel

import "sync"

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

var (
	panicMu      sync.Mutex
	panicActive  bool
	panicHandler func(PanicInfo)
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	panicMu.Lock()
	defer panicMu.Unlock()
	return panicActive
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicMu.Lock()
	defer panicMu.Unlock()
	panicHandler = fn
}

func triggerPanic(info PanicInfo) {
	panicMu.Lock()
	if panicActive {
		panicMu.Unlock()
		return
	}
	panicActive = true
	fn := panicHandler
	panicMu.Unlock()

	info.Stack = captureStack()
	if fn != nil {
		fn(info)
	}
}
