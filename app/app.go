// Package app boots the watch: one kernel running the logger, the clock
// service and the watchface.
package app

import (
	"errors"

	"filmplakat/hal"
	"filmplakat/internal/buildinfo"
	"filmplakat/plakat/kernel"
	"filmplakat/plakat/services/clock"
	"filmplakat/plakat/services/logger"
	"filmplakat/plakat/tasks/watchface"
)

// stepBudget caps task steps per frame so one busy task cannot stall the
// host loop.
const stepBudget = 64

var ErrPanicked = errors.New("app: task panicked")

type system struct {
	k     *kernel.Kernel
	ticks <-chan uint64
}

// New boots the system and returns its per-frame step function.
func New(h hal.HAL) func() error {
	installPanicHandler(h)
	s := newSystem(h)
	return s.step
}

// Run boots the system and drives it from the HAL tick stream forever
// (TinyGo entrypoint).
func Run(h hal.HAL) {
	bootStep(h, "panic handler")
	installPanicHandler(h)
	bootStep(h, "kernel")
	s := newSystem(h)
	bootStep(h, "running")
	if s.ticks == nil {
		select {}
	}
	for seq := range s.ticks {
		s.k.TickTo(seq)
		if err := s.step(); err != nil {
			break
		}
	}
	select {}
}

func newSystem(h hal.HAL) *system {
	if l := h.Logger(); l != nil {
		l.WriteLineString(buildinfo.Banner())
	}
	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	clockEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	faceEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(clock.New(h.Clock(), clockEP))
	k.AddTask(watchface.New(watchface.Config{
		Display:  h.Display(),
		Clock:    h.Clock(),
		Flash:    h.Flash(),
		Sensors:  h.Sensors(),
		Link:     h.Link(),
		EP:       faceEP,
		ClockCap: clockEP.Restrict(kernel.RightSend),
		LogCap:   logEP.Restrict(kernel.RightSend),
	}))

	s := &system{k: k}
	if ht := h.Time(); ht != nil {
		s.ticks = ht.Ticks()
	}
	return s
}

// step drains pending ticks and runs tasks until they idle.
func (s *system) step() error {
drain:
	for {
		select {
		case seq := <-s.ticks:
			s.k.TickTo(seq)
		default:
			break drain
		}
	}
	s.k.RunUntilIdle(stepBudget)
	if kernel.InPanicMode() {
		return ErrPanicked
	}
	return nil
}
