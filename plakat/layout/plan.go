package layout

import (
	"filmplakat/plakat/gfx"
	"filmplakat/plakat/movietext"
)

// Row animation timings in milliseconds.
const (
	StartDelay     = movietext.StartDelay
	SpeedDefault   = 500
	SpeedIntro     = 600
	SpeedAppear    = 1000
	SpeedDisappear = 1400
)

// Kind is how a row gets from the previous frame to the current one.
type Kind uint8

const (
	// KindHidden rows are inactive before and after.
	KindHidden Kind = iota
	// KindKeep rows keep their text and glide to the new position.
	KindKeep
	// KindUpdate rows slide the old text out to the left and the new text in
	// from the right.
	KindUpdate
	// KindAppear rows enter from the right edge.
	KindAppear
	// KindDisappear rows leave to the left edge.
	KindDisappear
	// KindShift moves the tens word from the first minute row down to the
	// second when "ein" joins it.
	KindShift
	// KindIntro rows fly in on the first frame, alternating sides.
	KindIntro
)

func (k Kind) String() string {
	switch k {
	case KindHidden:
		return "hidden"
	case KindKeep:
		return "keep"
	case KindUpdate:
		return "update"
	case KindAppear:
		return "appear"
	case KindDisappear:
		return "disappear"
	case KindShift:
		return "shift"
	case KindIntro:
		return "intro"
	default:
		return "unknown"
	}
}

// Row is the widget a step is applied to. *movietext.Layer implements it.
type Row interface {
	Text() string
	SetText(text string, mode movietext.Mode, delayed bool)
	SetOrigin(p gfx.Point, mode movietext.Mode, delayed bool)
	MoveTo(p gfx.Point, mode movietext.Mode, delayed bool, duration uint32)
}

// Step is the animation for one row.
type Step struct {
	Kind     Kind
	Text     string
	From     gfx.Point
	To       gfx.Point
	Duration uint32
	Delayed  bool
}

// Plan holds one step per row role.
type Plan struct {
	Steps [NumRows]Step
}

// shiftDown reports the x0 to x1 minute change where the tens word moves
// one row down and the new ones word takes its place.
func shiftDown(prev, cur *Frame) bool {
	return cur.TenAndMark && prev.Count == 4 && cur.Count == 5
}

// Classify picks the transition of every row. Minute row r is active iff
// r < Count; an active row appears whenever the count changed, since its
// word then belongs to a different part of the sentence.
func Classify(prev, cur *Frame, first bool) [NumRows]Kind {
	var k [NumRows]Kind
	for r := Role(0); r < NumRows; r++ {
		switch {
		case first:
			if cur.Active(r) {
				k[r] = KindIntro
			}
		case r == RowUhr:
			k[r] = KindKeep
		case r == RowDate || r == RowHour:
			k[r] = KindKeep
			if prev.Words[r].Text != cur.Words[r].Text {
				k[r] = KindUpdate
			}
		default:
			k[r] = classifyMinute(prev, cur, r)
		}
	}
	if !first && shiftDown(prev, cur) {
		k[RowMinute1] = KindAppear
		k[RowMinute2] = KindShift
	}
	return k
}

func classifyMinute(prev, cur *Frame, r Role) Kind {
	was, is := prev.Active(r), cur.Active(r)
	switch {
	case is && was && prev.Count == cur.Count:
		if prev.Words[r].Text != cur.Words[r].Text {
			return KindUpdate
		}
		return KindKeep
	case is:
		return KindAppear
	case was:
		return KindDisappear
	default:
		return KindHidden
	}
}

// speed mirrors the tuned durations: the intro is uniform, moves off the
// left edge are slow, entries from the right edge a bit faster.
func speed(first bool, from, to gfx.Point) uint32 {
	switch {
	case first:
		return SpeedIntro
	case to.X == -ScreenWidth:
		return SpeedDisappear
	case from.X == ScreenWidth:
		return SpeedAppear
	default:
		return SpeedDefault
	}
}

// NewPlan turns the classification of prev to cur into per-row steps. Both
// frames must already be laid out.
func NewPlan(prev, cur *Frame, first bool) Plan {
	var p Plan
	kinds := Classify(prev, cur, first)

	for r := Role(0); r < NumRows; r++ {
		s := Step{Kind: kinds[r], Text: cur.Words[r].Text, From: prev.Words[r].Pos, To: cur.Words[r].Pos}
		switch s.Kind {
		case KindHidden:
			continue
		case KindIntro:
			side := ScreenWidth
			if r%2 == 1 {
				side = -ScreenWidth
			}
			s.From = gfx.Point{X: side, Y: s.To.Y}
			s.Delayed = r == RowHour || r == RowDate
		case KindKeep:
			s.Delayed = r == RowHour || r == RowDate
		case KindUpdate:
			s.Duration = movietext.SlideDuration
		case KindAppear:
			s.From = gfx.Point{X: ScreenWidth, Y: s.To.Y}
			s.Delayed = r == RowMinute1 && kinds[RowMinute2] == KindShift
		case KindDisappear:
			s.Text = prev.Words[r].Text
			s.To = gfx.Point{X: -ScreenWidth, Y: s.From.Y}
		case KindShift:
			s.From = prev.Words[RowMinute1].Pos
		}
		if s.Duration == 0 {
			s.Duration = speed(first, s.From, s.To)
		}
		p.Steps[r] = s
	}
	return p
}

// Apply drives the rows. rows is indexed by Role.
func (p *Plan) Apply(rows [NumRows]Row) {
	for r, s := range p.Steps {
		row := rows[r]
		if row == nil {
			continue
		}
		switch s.Kind {
		case KindKeep:
			if row.Text() != s.Text {
				row.SetText(s.Text, movietext.ModeInstant, false)
			}
			row.MoveTo(s.To, movietext.ModeInstant, s.Delayed, s.Duration)
		case KindUpdate:
			row.SetOrigin(s.To, movietext.ModeDelay, false)
			row.SetText(s.Text, movietext.ModeSlideLeft, s.Delayed)
		case KindAppear, KindIntro, KindShift:
			row.SetOrigin(s.From, movietext.ModeNone, false)
			row.SetText(s.Text, movietext.ModeNone, false)
			row.MoveTo(s.To, movietext.ModeInstant, s.Delayed, s.Duration)
		case KindDisappear:
			row.MoveTo(s.To, movietext.ModeInstant, false, s.Duration)
		}
	}
}
