package fibers

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/musclesim/internal/muscle"
)

// Standard reports force in physical units. Each unit contributes at most
// its peak twitch force, reached when fused, scaled by
// ForceConversionFactor. Fatigued capacity recovers toward full at
// RecoveryRate.
type Standard struct {
	*twitchModel
	current float64
}

func NewStandard(p Params) (*Standard, error) {
	if p.ForceConversionFactor <= 0 {
		return nil, fmt.Errorf("%w: force conversion factor %g", ErrInvalidParams, p.ForceConversionFactor)
	}
	m, err := newTwitchModel(p)
	if err != nil {
		return nil, err
	}
	return &Standard{twitchModel: m}, nil
}

// MaxForce is the force the fibers produce with every unit fused and rested.
func (f *Standard) MaxForce() float64 {
	return floats.Sum(f.peakForces) * f.params.ForceConversionFactor
}

func (f *Standard) Step(rates muscle.Activation, dt float64) (float64, error) {
	if err := f.check(rates, dt); err != nil {
		return 0, err
	}

	f.current = f.forces(rates, linearGain*f.params.ForceConversionFactor)
	if f.params.ApplyFatigue {
		f.fatigue(rates, dt, f.params.RecoveryRate)
	}
	return f.current, nil
}

func (f *Standard) CurrentForces() float64 { return f.current }

func (f *Standard) UnitForces() []float64 {
	return append([]float64(nil), f.unitForces...)
}
