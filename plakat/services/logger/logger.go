package logger

import (
	"filmplakat/hal"
	"filmplakat/plakat/kernel"
	"filmplakat/plakat/proto"
)

// Service drains log lines from its endpoint into the HAL logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability

	dropped int
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if s.log == nil || proto.Kind(msg.Kind) != proto.MsgLogLine {
			s.dropped++
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
}
