package layout

import "time"

// Engine keeps the previous frame and turns each new time into a plan.
// The first plan after New or Reset is the intro.
type Engine struct {
	prev    Frame
	cur     Frame
	started bool
}

func NewEngine() *Engine { return &Engine{} }

// Reset makes the next update play the intro again.
func (e *Engine) Reset() { e.started = false }

// Current returns the frame of the last update.
func (e *Engine) Current() Frame { return e.cur }

// Previous returns the frame before the last update.
func (e *Engine) Previous() Frame { return e.prev }

// Next computes the frame for t and the plan that gets there from the
// previous one.
func (e *Engine) Next(t time.Time) Plan {
	cur := CopyTime(t)
	Layout(&cur)

	first := !e.started
	e.prev = e.cur
	if first {
		e.prev = cur
	}
	e.cur = cur
	e.started = true
	return NewPlan(&e.prev, &e.cur, first)
}

// Update is Next followed by Apply.
func (e *Engine) Update(t time.Time, rows [NumRows]Row) Plan {
	p := e.Next(t)
	p.Apply(rows)
	return p
}
