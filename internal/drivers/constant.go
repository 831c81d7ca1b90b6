// Package drivers produces excitation for muscle simulations, either as a
// fixed schedule or by feedback on the force produced.
package drivers

import "github.com/san-kum/musclesim/internal/muscle"

// Constant drives every motor unit at Level.
type Constant struct {
	Level float64
}

func NewConstant(level float64) *Constant {
	return &Constant{Level: level}
}

func (c *Constant) Compute(force float64, t float64) muscle.Input {
	return muscle.Scalar(c.Level)
}

// Ramp moves excitation linearly from From to To over RampTime seconds and
// holds To afterwards.
type Ramp struct {
	From     float64
	To       float64
	RampTime float64
}

func NewRamp(from, to, rampTime float64) *Ramp {
	return &Ramp{From: from, To: to, RampTime: rampTime}
}

func (r *Ramp) Compute(force float64, t float64) muscle.Input {
	if r.RampTime <= 0 || t >= r.RampTime {
		return muscle.Scalar(r.To)
	}
	frac := t / r.RampTime
	return muscle.Scalar(r.From + (r.To-r.From)*frac)
}
