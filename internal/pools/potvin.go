package pools

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/musclesim/internal/muscle"
)

const (
	DefaultMaxRecruitmentThreshold = 50.0
	DefaultFiringGain              = 1.0
	DefaultMinFiringRate           = 8.0
	DefaultMaxFiringRateFirstUnit  = 35.0
	DefaultMaxFiringRateLastUnit   = 25.0
	DefaultPreCalcResolution       = 0.1
	DefaultPreCalcMax              = 70.0
	DefaultAdaptationMagnitude     = 0.67
	DefaultAdaptationTau           = 22.0
)

// ErrInvalidParams indicates pool parameters that cannot describe a pool.
var ErrInvalidParams = errors.New("pools: invalid parameters")

// Params configures a PotvinFuglevand2017 pool. Rates are in Hz, Tau in seconds.
type Params struct {
	MotorUnitCount          int
	MaxRecruitmentThreshold float64
	FiringGain              float64
	MinFiringRate           float64
	MaxFiringRateFirstUnit  float64
	MaxFiringRateLastUnit   float64
	PreCalcFiringRates      bool
	PreCalcResolution       float64
	PreCalcMax              float64
	ApplyFatigue            bool
	AdaptationMagnitude     float64
	AdaptationTau           float64
}

func DefaultParams(motorUnitCount int) Params {
	return Params{
		MotorUnitCount:          motorUnitCount,
		MaxRecruitmentThreshold: DefaultMaxRecruitmentThreshold,
		FiringGain:              DefaultFiringGain,
		MinFiringRate:           DefaultMinFiringRate,
		MaxFiringRateFirstUnit:  DefaultMaxFiringRateFirstUnit,
		MaxFiringRateLastUnit:   DefaultMaxFiringRateLastUnit,
		PreCalcResolution:       DefaultPreCalcResolution,
		PreCalcMax:              DefaultPreCalcMax,
		ApplyFatigue:            true,
		AdaptationMagnitude:     DefaultAdaptationMagnitude,
		AdaptationTau:           DefaultAdaptationTau,
	}
}

func (p Params) validate() error {
	switch {
	case p.MotorUnitCount < 1:
		return fmt.Errorf("%w: motor unit count %d", ErrInvalidParams, p.MotorUnitCount)
	case p.MaxRecruitmentThreshold <= 1:
		return fmt.Errorf("%w: max recruitment threshold %g must exceed 1", ErrInvalidParams, p.MaxRecruitmentThreshold)
	case p.FiringGain <= 0:
		return fmt.Errorf("%w: firing gain %g", ErrInvalidParams, p.FiringGain)
	case p.MinFiringRate < 0 || p.MaxFiringRateLastUnit < p.MinFiringRate || p.MaxFiringRateFirstUnit < p.MinFiringRate:
		return fmt.Errorf("%w: firing rates must satisfy 0 <= min <= peak", ErrInvalidParams)
	case p.PreCalcFiringRates && (p.PreCalcResolution <= 0 || p.PreCalcMax < p.PreCalcResolution):
		return fmt.Errorf("%w: precalc grid needs 0 < resolution <= max", ErrInvalidParams)
	case p.ApplyFatigue && p.AdaptationTau <= 0:
		return fmt.Errorf("%w: adaptation tau %g", ErrInvalidParams, p.AdaptationTau)
	}
	return nil
}

// PotvinFuglevand2017 is the motor neuron pool of Potvin & Fuglevand (2017).
// Recruitment thresholds rise exponentially across units and firing rates
// grow linearly with excitation above threshold up to a per-unit peak.
// Central fatigue is modeled as firing rate adaptation that grows with the
// time a unit has spent above threshold.
type PotvinFuglevand2017 struct {
	params        Params
	thresholds    []float64
	peakRates     []float64
	maxAdaptation []float64
	durations     []float64
	table         [][]float64
}

func NewPotvinFuglevand2017(p Params) (*PotvinFuglevand2017, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	n := p.MotorUnitCount
	pool := &PotvinFuglevand2017{
		params:        p,
		thresholds:    make([]float64, n),
		peakRates:     make([]float64, n),
		maxAdaptation: make([]float64, n),
		durations:     make([]float64, n),
	}

	r := math.Log(p.MaxRecruitmentThreshold) / float64(n)
	for i := range pool.thresholds {
		pool.thresholds[i] = math.Exp(r * float64(i+1))
	}

	first, last := pool.thresholds[0], pool.thresholds[n-1]
	rateRange := p.MaxFiringRateFirstUnit - p.MaxFiringRateLastUnit
	for i, thr := range pool.thresholds {
		if n == 1 {
			pool.peakRates[i] = p.MaxFiringRateFirstUnit
		} else {
			pool.peakRates[i] = p.MaxFiringRateFirstUnit - rateRange*(thr-first)/(last-first)
		}
		pool.maxAdaptation[i] = p.AdaptationMagnitude * pool.peakRates[i] * (thr - 1) / (last - 1)
	}

	if p.PreCalcFiringRates {
		pool.buildTable()
	}

	return pool, nil
}

func (p *PotvinFuglevand2017) MotorUnitCount() int { return p.params.MotorUnitCount }

func (p *PotvinFuglevand2017) Params() Params { return p.params }

func (p *PotvinFuglevand2017) RecruitmentThresholds() []float64 {
	return append([]float64(nil), p.thresholds...)
}

func (p *PotvinFuglevand2017) PeakFiringRates() []float64 {
	return append([]float64(nil), p.peakRates...)
}

// MaxExcitation is the excitation at which the last recruited unit reaches
// its peak firing rate.
func (p *PotvinFuglevand2017) MaxExcitation() float64 {
	n := p.params.MotorUnitCount
	return p.thresholds[n-1] + (p.peakRates[n-1]-p.params.MinFiringRate)/p.params.FiringGain
}

// Reset clears accumulated central fatigue.
func (p *PotvinFuglevand2017) Reset() {
	for i := range p.durations {
		p.durations[i] = 0
	}
}

func (p *PotvinFuglevand2017) Step(input muscle.Excitation, dt float64) (muscle.Activation, error) {
	if len(input) != p.params.MotorUnitCount {
		return nil, fmt.Errorf("pool step: %w: got %d, want %d", muscle.ErrDimensionMismatch, len(input), p.params.MotorUnitCount)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("pool step: %w: got %g", muscle.ErrInvalidStepSize, dt)
	}

	rates := make(muscle.Activation, len(input))
	for i, e := range input {
		if math.IsNaN(e) {
			return nil, fmt.Errorf("pool step: %w: unit %d", muscle.ErrInvalidExcitation, i)
		}
		rates[i] = p.rate(i, e)
	}

	if p.params.ApplyFatigue {
		p.adapt(rates, dt)
	}

	return rates, nil
}

func (p *PotvinFuglevand2017) rate(i int, e float64) float64 {
	if p.table != nil {
		if pos := math.Round(e / p.params.PreCalcResolution); pos >= 0 && pos < float64(len(p.table)) {
			return p.table[int(pos)][i]
		}
	}
	return p.directRate(i, e)
}

func (p *PotvinFuglevand2017) directRate(i int, e float64) float64 {
	thr := p.thresholds[i]
	if e < thr {
		return 0
	}
	r := p.params.FiringGain*(e-thr) + p.params.MinFiringRate
	return math.Min(r, p.peakRates[i])
}

func (p *PotvinFuglevand2017) adapt(rates muscle.Activation, dt float64) {
	for i, r := range rates {
		if r > 0 {
			p.durations[i] += dt
		} else {
			p.durations[i] = 0
			continue
		}
		adaptation := p.maxAdaptation[i] * (1 - math.Exp(-p.durations[i]/p.params.AdaptationTau))
		rates[i] = math.Max(0, r-adaptation)
	}
}

// buildTable precalculates firing rates on an excitation grid covering
// [0, PreCalcMax] for every unit.
func (p *PotvinFuglevand2017) buildTable() {
	steps := int(math.Round(p.params.PreCalcMax/p.params.PreCalcResolution)) + 1
	levels := floats.Span(make([]float64, steps), 0, float64(steps-1)*p.params.PreCalcResolution)

	p.table = make([][]float64, steps)
	for j, e := range levels {
		row := make([]float64, p.params.MotorUnitCount)
		for i := range row {
			row[i] = p.directRate(i, e)
		}
		p.table[j] = row
	}
}
