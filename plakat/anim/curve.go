package anim

import "github.com/charmbracelet/harmonica"

// Curve maps linear progress in [0,1] to eased progress.
type Curve uint8

const (
	CurveLinear Curve = iota
	CurveEaseIn
	CurveEaseOut
	CurveEaseInOut
	// CurveSpring overshoots slightly and settles, like a damped spring.
	CurveSpring
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveEaseIn:
		return "ease-in"
	case CurveEaseOut:
		return "ease-out"
	case CurveEaseInOut:
		return "ease-in-out"
	case CurveSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Apply returns the eased value for t. Inputs outside [0,1] are clamped.
func (c Curve) Apply(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	switch c {
	case CurveEaseIn:
		return t * t
	case CurveEaseOut:
		return t * (2 - t)
	case CurveEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case CurveSpring:
		return springAt(t)
	default:
		return t
	}
}

const springSteps = 64

// springTable samples an underdamped spring from 0 to 1 over one second.
var springTable = func() [springSteps + 1]float64 {
	var tab [springSteps + 1]float64
	s := harmonica.NewSpring(harmonica.FPS(springSteps), 9.0, 0.55)
	var pos, vel float64
	for i := 1; i <= springSteps; i++ {
		pos, vel = s.Update(pos, vel, 1)
		tab[i] = pos
	}
	tab[springSteps] = 1
	return tab
}()

func springAt(t float64) float64 {
	f := t * springSteps
	i := int(f)
	if i >= springSteps {
		return 1
	}
	frac := f - float64(i)
	return springTable[i] + (springTable[i+1]-springTable[i])*frac
}

// Lerp interpolates between a and b by eased progress p, rounding to the
// nearest pixel.
func Lerp(a, b int, p float64) int {
	v := float64(a) + float64(b-a)*p
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
