package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/musclesim/internal/muscle"
)

type Simulator struct {
	muscle    Stepper
	driver    Driver
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(m Stepper, driver Driver) *Simulator {
	return &Simulator{
		muscle:    m,
		driver:    driver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.logger = l }

// Run steps the muscle int(Duration/Dt) times. The driver sees the force of
// the previous step, zero before the first. A step error ends the run.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps),
		Forces:  make([]float64, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("simulation start",
		"motor_units", s.muscle.MotorUnitCount(),
		"dt", cfg.Dt,
		"steps", steps,
	)

	force := 0.0
	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		in := s.driver.Compute(force, t)

		next, err := s.muscle.Step(in, cfg.Dt)
		if err != nil {
			s.logger.Warn("simulation step failed", "step", i, "time", t, "error", err)
			return result, &SimulationError{Step: i, Time: t, Wrapped: err}
		}

		force = next
		t += cfg.Dt
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(force, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(force, t)
		}

		result.Times = append(result.Times, t)
		result.Forces = append(result.Forces, force)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Info("simulation complete",
		"steps", result.StepsTaken,
		"peak_force", result.PeakForce(),
	)

	return result, nil
}

// maxSteps bounds int(Duration/Dt) so the trace buffers can be allocated.
const maxSteps = 1 << 30

func (s *Simulator) validateConfig(cfg Config) error {
	if s.muscle == nil {
		return fmt.Errorf("simulator: %w: stepper", muscle.ErrMissingModel)
	}
	if s.driver == nil {
		return fmt.Errorf("simulator: %w: driver", muscle.ErrMissingModel)
	}
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive and finite, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be positive and finite, got %f", cfg.Duration)
	}
	if n := cfg.Duration / cfg.Dt; n > maxSteps {
		return fmt.Errorf("duration/dt gives %g steps, limit is %d", n, maxSteps)
	}
	return nil
}
