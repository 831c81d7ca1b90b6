// Package preset builds muscles from a fixed pairing of pool and fiber
// models.
package preset

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/musclesim/internal/fibers"
	"github.com/san-kum/musclesim/internal/muscle"
	"github.com/san-kum/musclesim/internal/pools"
)

// MeanTwitchForce is the empirical average contribution of one motor unit,
// in arbitrary force units, used to size a muscle from its maximum force.
// It is an approximation and must not be replaced by the analytic mean.
const MeanTwitchForce = 17.66

var ErrInvalidParameter = errors.New("preset: invalid parameter")

type PotvinFuglevandConfig struct {
	MotorUnitCount         int
	ApplyCentralFatigue    bool
	ApplyPeripheralFatigue bool
	PreCalcFiringRates     bool
}

func DefaultPotvinFuglevandConfig(motorUnitCount int) PotvinFuglevandConfig {
	return PotvinFuglevandConfig{
		MotorUnitCount:         motorUnitCount,
		ApplyCentralFatigue:    true,
		ApplyPeripheralFatigue: true,
	}
}

// NewPotvinFuglevand pairs the Potvin & Fuglevand pool with the matching
// fiber model. Force is in arbitrary units.
func NewPotvinFuglevand(cfg PotvinFuglevandConfig) (*muscle.Muscle, error) {
	pp := pools.DefaultParams(cfg.MotorUnitCount)
	pp.ApplyFatigue = cfg.ApplyCentralFatigue
	pp.PreCalcFiringRates = cfg.PreCalcFiringRates
	pool, err := pools.NewPotvinFuglevand2017(pp)
	if err != nil {
		return nil, err
	}

	fp := fibers.DefaultParams(cfg.MotorUnitCount)
	fp.ApplyFatigue = cfg.ApplyPeripheralFatigue
	fib, err := fibers.NewPotvinFuglevand2017(fp)
	if err != nil {
		return nil, err
	}

	return muscle.New(pool, fib)
}

// StandardConfig sizes a muscle by force. MaxForce is in newtons and
// ForceConversionFactor in newtons per arbitrary force unit.
type StandardConfig struct {
	MaxForce               float64
	ForceConversionFactor  float64
	ApplyCentralFatigue    bool
	ApplyPeripheralFatigue bool
	PreCalcFiringRates     bool
}

// DefaultStandardConfig disables central fatigue, whose recovery is not
// modeled.
func DefaultStandardConfig() StandardConfig {
	return StandardConfig{
		MaxForce:               60.0,
		ForceConversionFactor:  fibers.DefaultForceConversionFactor,
		ApplyPeripheralFatigue: true,
	}
}

func (c StandardConfig) MotorUnitCount() (int, error) {
	return MotorUnitCount(c.MaxForce, c.ForceConversionFactor)
}

// MotorUnitCount derives the number of motor units needed to reach
// maxForce: maxForce / (factor * MeanTwitchForce), truncated.
func MotorUnitCount(maxForce, forceConversionFactor float64) (int, error) {
	if !(maxForce > 0) || math.IsInf(maxForce, 0) {
		return 0, fmt.Errorf("%w: max force %g", ErrInvalidParameter, maxForce)
	}
	if !(forceConversionFactor > 0) || math.IsInf(forceConversionFactor, 0) {
		return 0, fmt.Errorf("%w: force conversion factor %g", ErrInvalidParameter, forceConversionFactor)
	}

	n := int(maxForce / (forceConversionFactor * MeanTwitchForce))
	if n < 1 {
		return 0, fmt.Errorf("%w: max force %g yields no motor units at factor %g", ErrInvalidParameter, maxForce, forceConversionFactor)
	}
	return n, nil
}

// NewStandard pairs the Potvin & Fuglevand pool with the standard fibers,
// which report force in newtons.
func NewStandard(cfg StandardConfig) (*muscle.Muscle, error) {
	n, err := cfg.MotorUnitCount()
	if err != nil {
		return nil, err
	}

	pp := pools.DefaultParams(n)
	pp.ApplyFatigue = cfg.ApplyCentralFatigue
	pp.PreCalcFiringRates = cfg.PreCalcFiringRates
	pool, err := pools.NewPotvinFuglevand2017(pp)
	if err != nil {
		return nil, err
	}

	fp := fibers.DefaultParams(n)
	fp.ForceConversionFactor = cfg.ForceConversionFactor
	fp.ApplyFatigue = cfg.ApplyPeripheralFatigue
	fib, err := fibers.NewStandard(fp)
	if err != nil {
		return nil, err
	}

	return muscle.New(pool, fib)
}
