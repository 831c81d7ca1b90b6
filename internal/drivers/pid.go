package drivers

import (
	"math"

	"github.com/san-kum/musclesim/internal/muscle"
)

// PID tracks TargetForce by adjusting a uniform excitation, clamped to
// [0, MaxExcitation].
type PID struct {
	Kp            float64
	Ki            float64
	Kd            float64
	TargetForce   float64
	MaxExcitation float64
	integral      float64
	prevErr       float64
	prevT         float64
	first         bool
}

func NewPID(kp, ki, kd, targetForce, maxExcitation float64) *PID {
	return &PID{
		Kp:            kp,
		Ki:            ki,
		Kd:            kd,
		TargetForce:   targetForce,
		MaxExcitation: maxExcitation,
		first:         true,
	}
}

func (p *PID) Compute(force float64, t float64) muscle.Input {
	err := p.TargetForce - force

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return muscle.Scalar(p.clamp(p.Kp * err))
	}

	dt := t - p.prevT
	if dt <= 0 {
		return muscle.Scalar(p.clamp(p.Kp*err + p.Ki*p.integral))
	}

	p.integral += err * dt
	derivative := (err - p.prevErr) / dt
	u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

	// undo the integration step while saturated
	if c := p.clamp(u); c != u {
		p.integral -= err * dt
		u = c
	}

	p.prevErr = err
	p.prevT = t
	return muscle.Scalar(u)
}

func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.first = true
}

func (p *PID) clamp(u float64) float64 {
	return math.Max(0, math.Min(p.MaxExcitation, u))
}
