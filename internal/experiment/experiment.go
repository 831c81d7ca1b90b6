package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/musclesim/internal/config"
	"github.com/san-kum/musclesim/internal/metrics"
	"github.com/san-kum/musclesim/internal/muscle"
	"github.com/san-kum/musclesim/internal/preset"
	"github.com/san-kum/musclesim/internal/sim"
)

// Experiment runs one configured muscle under a driver.
type Experiment struct {
	cfg       *config.Config
	registry  *preset.Registry
	muscle    *muscle.Muscle
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: preset.NewRegistry(),
	}
}

func (e *Experiment) Setup(driver sim.Driver, ms []sim.Metric) error {
	m, err := e.registry.Build(e.cfg)
	if err != nil {
		return fmt.Errorf("build muscle: %w", err)
	}

	e.muscle = m
	e.simulator = sim.New(m, driver)
	for _, metric := range ms {
		e.simulator.AddMetric(metric)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, simConfig(e.cfg))
}

// Simulator returns the underlying simulator, nil before Setup.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Muscle() *muscle.Muscle {
	return e.muscle
}

// NewEnsemble builds n independent muscles from cfg, each with its own
// driver and fresh default metrics.
func NewEnsemble(cfg *config.Config, n int, driver func(idx int) sim.Driver) *sim.Ensemble {
	registry := preset.NewRegistry()
	return sim.NewEnsemble(func(idx int) (*sim.Simulator, error) {
		m, err := registry.Build(cfg)
		if err != nil {
			return nil, fmt.Errorf("build muscle %d: %w", idx, err)
		}
		s := sim.New(m, driver(idx))
		for _, metric := range DefaultMetrics() {
			s.AddMetric(metric)
		}
		return s, nil
	}, n)
}

// RunConfig returns the simulation timing of cfg.
func RunConfig(cfg *config.Config) sim.Config {
	return simConfig(cfg)
}

func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewPeakForce(),
		metrics.NewMeanForce(),
		metrics.NewImpulse(),
		metrics.NewFatigueIndex(),
	}
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:       cfg.StepSize,
		Duration: cfg.Duration,
	}
}
