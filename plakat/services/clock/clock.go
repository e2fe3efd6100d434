package clock

import (
	"filmplakat/hal"
	"filmplakat/plakat/kernel"
	"filmplakat/plakat/proto"
)

const (
	maxSleepers    = 8
	maxSubscribers = 4
)

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

// Service owns wall-clock time for the system. It serves one-shot sleeps
// measured in kernel ticks and notifies subscribers once per wall-clock
// minute.
type Service struct {
	clk hal.Clock
	ep  kernel.Capability

	sleepers [maxSleepers]sleeper
	subs     [maxSubscribers]kernel.Capability
	nsubs    int

	lastMinute int64
	haveMinute bool
}

func New(clk hal.Clock, ep kernel.Capability) *Service {
	return &Service{clk: clk, ep: ep}
}

func (s *Service) Step(ctx *kernel.Context) {
	now := ctx.NowTick()
	s.wakeReady(ctx, now)
	s.publishMinute(ctx)

	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			break
		}
		s.handle(ctx, &msg, now)
	}
	ctx.BlockOnTick()
}

func (s *Service) handle(ctx *kernel.Context, msg *kernel.Message, now uint64) {
	if !msg.Cap.Valid() {
		return
	}
	switch proto.Kind(msg.Kind) {
	case proto.MsgSleep:
		requestID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
		if !ok {
			s.replyError(ctx, msg.Cap, proto.ErrBadMessage, proto.MsgSleep, 0)
			return
		}
		if dt == 0 {
			_ = ctx.Send(s.ep, msg.Cap, uint16(proto.MsgWake), proto.WakePayload(requestID))
			return
		}
		if !s.schedule(now+uint64(dt), requestID, msg.Cap) {
			s.replyError(ctx, msg.Cap, proto.ErrOverflow, proto.MsgSleep, requestID)
		}

	case proto.MsgSubscribeMinutes:
		if s.nsubs >= len(s.subs) {
			s.replyError(ctx, msg.Cap, proto.ErrOverflow, proto.MsgSubscribeMinutes, 0)
			return
		}
		s.subs[s.nsubs] = msg.Cap
		s.nsubs++
		// New subscribers get the current minute right away.
		if s.clk != nil {
			s.lastMinute, _ = s.localMinute()
			s.haveMinute = true
		}
		s.sendMinute(ctx, msg.Cap)

	default:
		s.replyError(ctx, msg.Cap, proto.ErrBadMessage, proto.Kind(msg.Kind), 0)
	}
}

func (s *Service) replyError(ctx *kernel.Context, to kernel.Capability, code proto.ErrCode, ref proto.Kind, requestID uint32) {
	_ = ctx.Send(s.ep, to, uint16(proto.MsgError), proto.ErrorPayload(code, ref, requestID))
}

func (s *Service) schedule(due uint64, requestID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: reply}
		return true
	}
	return false
}

func (s *Service) wakeReady(ctx *kernel.Context, now uint64) {
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > now {
			continue
		}
		_ = ctx.Send(s.ep, sl.reply, uint16(proto.MsgWake), proto.WakePayload(sl.id))
		*sl = sleeper{}
	}
}

// publishMinute notifies subscribers when the local wall-clock minute
// changes. Timezone changes count as a change.
func (s *Service) publishMinute(ctx *kernel.Context) {
	if s.clk == nil || s.nsubs == 0 {
		return
	}
	minute, _ := s.localMinute()
	if s.haveMinute && minute == s.lastMinute {
		return
	}
	s.lastMinute = minute
	s.haveMinute = true
	for i := 0; i < s.nsubs; i++ {
		s.sendMinute(ctx, s.subs[i])
	}
}

func (s *Service) localMinute() (minute int64, offset int32) {
	now := s.clk.Now()
	_, off := now.Zone()
	return (now.Unix() + int64(off)) / 60, int32(off)
}

func (s *Service) sendMinute(ctx *kernel.Context, to kernel.Capability) {
	if s.clk == nil {
		return
	}
	now := s.clk.Now()
	_, off := now.Zone()
	_ = ctx.Send(s.ep, to, uint16(proto.MsgMinuteTick), proto.MinuteTickPayload(now.Unix(), int32(off)))
}
