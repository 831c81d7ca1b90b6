package fibers

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/musclesim/internal/muscle"
)

const (
	// Peak twitch forces lie in [1, DefaultPeakTwitchForceRange] arbitrary units.
	DefaultPeakTwitchForceRange  = 100.0
	DefaultMaxContractionTime    = 90.0 // ms
	DefaultContractionTimeRange  = 3.0
	DefaultFatigueRateFirstUnit  = 0.001 // 1/s at full relative force
	DefaultFatigabilityRange     = 180.0
	DefaultRecoveryRate          = 0.005 // 1/s
	DefaultForceConversionFactor = 0.028 // N per arbitrary unit

	// Normalized stimulus rate below which force grows linearly with rate.
	linearStimulusLimit = 0.4
)

// linearGain is the sigmoid value at the end of the linear region, as a
// fraction of rate. Its inverse is the largest gain*nsr any unit reaches,
// the fused tetanus force relative to a single twitch.
var linearGain = (1 - math.Exp(-2*math.Pow(linearStimulusLimit, 3))) / linearStimulusLimit

// ErrInvalidParams indicates fiber parameters that cannot describe a muscle.
var ErrInvalidParams = errors.New("fibers: invalid parameters")

type Params struct {
	MotorUnitCount        int
	PeakTwitchForceRange  float64
	MaxContractionTime    float64
	ContractionTimeRange  float64
	ApplyFatigue          bool
	FatigueRateFirstUnit  float64
	FatigabilityRange     float64
	RecoveryRate          float64
	ForceConversionFactor float64
}

func DefaultParams(motorUnitCount int) Params {
	return Params{
		MotorUnitCount:        motorUnitCount,
		PeakTwitchForceRange:  DefaultPeakTwitchForceRange,
		MaxContractionTime:    DefaultMaxContractionTime,
		ContractionTimeRange:  DefaultContractionTimeRange,
		ApplyFatigue:          true,
		FatigueRateFirstUnit:  DefaultFatigueRateFirstUnit,
		FatigabilityRange:     DefaultFatigabilityRange,
		RecoveryRate:          DefaultRecoveryRate,
		ForceConversionFactor: DefaultForceConversionFactor,
	}
}

func (p Params) validate() error {
	switch {
	case p.MotorUnitCount < 1:
		return fmt.Errorf("%w: motor unit count %d", ErrInvalidParams, p.MotorUnitCount)
	case p.PeakTwitchForceRange <= 1:
		return fmt.Errorf("%w: peak twitch force range %g must exceed 1", ErrInvalidParams, p.PeakTwitchForceRange)
	case p.MaxContractionTime <= 0 || p.ContractionTimeRange < 1:
		return fmt.Errorf("%w: contraction times", ErrInvalidParams)
	case p.ApplyFatigue && (p.FatigueRateFirstUnit < 0 || p.FatigabilityRange < 1):
		return fmt.Errorf("%w: fatigue rates", ErrInvalidParams)
	case p.RecoveryRate < 0:
		return fmt.Errorf("%w: recovery rate %g", ErrInvalidParams, p.RecoveryRate)
	}
	return nil
}

// twitchModel holds the per-unit twitch properties and fatigue state shared
// by the fiber implementations. Forces are in arbitrary units.
type twitchModel struct {
	params           Params
	peakForces       []float64
	contractionTimes []float64
	fatigueRates     []float64
	capacities       []float64
	unitForces       []float64
}

func newTwitchModel(p Params) (*twitchModel, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	n := p.MotorUnitCount
	m := &twitchModel{
		params:           p,
		peakForces:       make([]float64, n),
		contractionTimes: make([]float64, n),
		fatigueRates:     make([]float64, n),
		capacities:       make([]float64, n),
		unitForces:       make([]float64, n),
	}

	b := math.Log(p.PeakTwitchForceRange) / float64(n)
	c := math.Log(p.ContractionTimeRange) / math.Log(p.PeakTwitchForceRange)
	f := math.Log(p.FatigabilityRange) / float64(n)
	for i := 0; i < n; i++ {
		m.peakForces[i] = math.Exp(b * float64(i+1))
		m.contractionTimes[i] = p.MaxContractionTime * math.Pow(1/m.peakForces[i], c)
		m.fatigueRates[i] = p.FatigueRateFirstUnit * math.Exp(f*float64(i))
		m.capacities[i] = 1
	}

	return m, nil
}

func (m *twitchModel) MotorUnitCount() int { return m.params.MotorUnitCount }

func (m *twitchModel) Params() Params { return m.params }

func (m *twitchModel) PeakTwitchForces() []float64 {
	return append([]float64(nil), m.peakForces...)
}

func (m *twitchModel) ContractionTimes() []float64 {
	return append([]float64(nil), m.contractionTimes...)
}

// Capacities returns the remaining force capacity of each unit in [0, 1].
func (m *twitchModel) Capacities() []float64 {
	return append([]float64(nil), m.capacities...)
}

func (m *twitchModel) check(rates muscle.Activation, dt float64) error {
	if len(rates) != m.params.MotorUnitCount {
		return fmt.Errorf("fiber step: %w: got %d, want %d", muscle.ErrDimensionMismatch, len(rates), m.params.MotorUnitCount)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("fiber step: %w: got %g", muscle.ErrInvalidStepSize, dt)
	}
	return nil
}

// forces fills unitForces from firing rates, each scaled by scale, and
// returns their sum.
func (m *twitchModel) forces(rates muscle.Activation, scale float64) float64 {
	for i, rate := range rates {
		nsr := rate * m.contractionTimes[i] / 1000
		m.unitForces[i] = scale * m.peakForces[i] * m.capacities[i] * stimulusGain(nsr) * nsr
	}
	return floats.Sum(m.unitForces)
}

// fatigue depletes capacity in proportion to each unit's relative force and
// recovers it toward 1 at recovery.
func (m *twitchModel) fatigue(rates muscle.Activation, dt, recovery float64) {
	for i, rate := range rates {
		nsr := rate * m.contractionTimes[i] / 1000
		relative := stimulusGain(nsr) * nsr * linearGain
		if relative > 1 {
			relative = 1
		}
		c := m.capacities[i]
		c += (recovery*(1-c) - m.fatigueRates[i]*relative) * dt
		m.capacities[i] = math.Max(0, math.Min(1, c))
	}
}

// stimulusGain is the sigmoidal force-frequency gain of a unit driven at
// normalized stimulus rate nsr.
func stimulusGain(nsr float64) float64 {
	if nsr <= linearStimulusLimit {
		return 1
	}
	return ((1 - math.Exp(-2*math.Pow(nsr, 3))) / nsr) / linearGain
}
