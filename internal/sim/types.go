package sim

import (
	"fmt"

	"github.com/san-kum/musclesim/internal/muscle"
)

// Stepper is a steppable force generator, usually a *muscle.Muscle.
type Stepper interface {
	MotorUnitCount() int
	Step(in muscle.Input, dt float64) (float64, error)
}

// Driver chooses the excitation for the next step from the force produced
// by the previous one.
type Driver interface {
	Compute(force float64, t float64) muscle.Input
}

type Metric interface {
	Name() string
	Observe(force float64, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(force float64, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
}

func DefaultConfig() Config {
	return Config{
		Dt:       1.0 / 50.0,
		Duration: 10.0,
	}
}

type Result struct {
	Times      []float64
	Forces     []float64
	Metrics    map[string]float64
	StepsTaken int
}

// PeakForce returns the largest recorded force.
func (r *Result) PeakForce() float64 {
	peak := 0.0
	for _, f := range r.Forces {
		if f > peak {
			peak = f
		}
	}
	return peak
}

// SimulationError wraps a collaborator failure with the step it occurred on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
