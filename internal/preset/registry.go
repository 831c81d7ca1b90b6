package preset

import (
	"fmt"
	"sort"

	"github.com/san-kum/musclesim/internal/config"
	"github.com/san-kum/musclesim/internal/muscle"
)

type Factory func(cfg *config.Config) (*muscle.Muscle, error)

// Registry maps preset kinds to muscle factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.factories[config.KindPotvinFuglevand] = func(cfg *config.Config) (*muscle.Muscle, error) {
		return NewPotvinFuglevand(PotvinFuglevandConfig{
			MotorUnitCount:         cfg.MotorUnitCount,
			ApplyCentralFatigue:    cfg.ApplyCentralFatigue,
			ApplyPeripheralFatigue: cfg.ApplyPeripheralFatigue,
			PreCalcFiringRates:     cfg.PreCalcFiringRates,
		})
	}
	r.factories[config.KindStandard] = func(cfg *config.Config) (*muscle.Muscle, error) {
		return NewStandard(StandardConfig{
			MaxForce:               cfg.MaxForce,
			ForceConversionFactor:  cfg.ForceConversionFactor,
			ApplyCentralFatigue:    cfg.ApplyCentralFatigue,
			ApplyPeripheralFatigue: cfg.ApplyPeripheralFatigue,
			PreCalcFiringRates:     cfg.PreCalcFiringRates,
		})
	}

	return r
}

func (r *Registry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

func (r *Registry) Build(cfg *config.Config) (*muscle.Muscle, error) {
	fn, ok := r.factories[cfg.Preset]
	if !ok {
		return nil, fmt.Errorf("unknown preset kind: %s", cfg.Preset)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return fn(cfg)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
