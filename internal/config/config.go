package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	KindPotvinFuglevand = "potvin_fuglevand"
	KindStandard        = "standard"

	DefaultStepSize              = 1.0 / 50.0
	DefaultDuration              = 10.0
	DefaultMotorUnitCount        = 120
	DefaultMaxForce              = 60.0
	DefaultForceConversionFactor = 0.028
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset kind")
	ErrInvalid       = errors.New("config: invalid value")
)

// Config describes one muscle and how long to simulate it. MotorUnitCount
// applies to potvin_fuglevand; MaxForce and ForceConversionFactor apply to
// standard, which derives its unit count from them.
type Config struct {
	Preset                 string  `yaml:"preset"`
	MotorUnitCount         int     `yaml:"motor_unit_count,omitempty"`
	MaxForce               float64 `yaml:"max_force,omitempty"`
	ForceConversionFactor  float64 `yaml:"force_conversion_factor,omitempty"`
	ApplyCentralFatigue    bool    `yaml:"apply_central_fatigue"`
	ApplyPeripheralFatigue bool    `yaml:"apply_peripheral_fatigue"`
	PreCalcFiringRates     bool    `yaml:"pre_calc_firing_rates"`
	StepSize               float64 `yaml:"step_size"`
	Duration               float64 `yaml:"duration"`
}

// DefaultConfig is the standard muscle: 60 N, central fatigue off.
func DefaultConfig() *Config {
	return &Config{
		Preset:                 KindStandard,
		MaxForce:               DefaultMaxForce,
		ForceConversionFactor:  DefaultForceConversionFactor,
		ApplyPeripheralFatigue: true,
		StepSize:               DefaultStepSize,
		Duration:               DefaultDuration,
	}
}

// DefaultFor returns the defaults of a preset kind, nil when unknown.
func DefaultFor(kind string) *Config {
	switch kind {
	case KindStandard, "":
		return DefaultConfig()
	case KindPotvinFuglevand:
		return &Config{
			Preset:                 KindPotvinFuglevand,
			MotorUnitCount:         DefaultMotorUnitCount,
			ApplyCentralFatigue:    true,
			ApplyPeripheralFatigue: true,
			StepSize:               DefaultStepSize,
			Duration:               DefaultDuration,
		}
	default:
		return nil
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults of the preset kind it names, so
// omitted keys keep that kind's defaults.
func Parse(data []byte) (*Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	cfg := DefaultFor(head.Preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, head.Preset)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !positive(c.StepSize) {
		return fmt.Errorf("%w: step_size must be positive and finite, got %f", ErrInvalid, c.StepSize)
	}
	if !positive(c.Duration) {
		return fmt.Errorf("%w: duration must be positive and finite, got %f", ErrInvalid, c.Duration)
	}

	switch c.Preset {
	case KindPotvinFuglevand:
		if c.MotorUnitCount < 1 {
			return fmt.Errorf("%w: motor_unit_count must be positive, got %d", ErrInvalid, c.MotorUnitCount)
		}
		if c.MaxForce != 0 || c.ForceConversionFactor != 0 {
			return fmt.Errorf("%w: max_force and force_conversion_factor do not apply to %s", ErrInvalid, c.Preset)
		}
	case KindStandard:
		if !positive(c.MaxForce) {
			return fmt.Errorf("%w: max_force must be positive and finite, got %f", ErrInvalid, c.MaxForce)
		}
		if !positive(c.ForceConversionFactor) {
			return fmt.Errorf("%w: force_conversion_factor must be positive and finite, got %f", ErrInvalid, c.ForceConversionFactor)
		}
		if c.MotorUnitCount != 0 {
			return fmt.Errorf("%w: motor_unit_count does not apply to %s, it is derived from max_force", ErrInvalid, c.Preset)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
