package config

var Presets = map[string]map[string]*Config{
	KindStandard: {
		"default": {
			Preset: KindStandard, MaxForce: 60.0, ForceConversionFactor: 0.028,
			ApplyPeripheralFatigue: true, StepSize: DefaultStepSize, Duration: 10.0,
		},
		"strong": {
			Preset: KindStandard, MaxForce: 500.0, ForceConversionFactor: 0.028,
			ApplyPeripheralFatigue: true, StepSize: DefaultStepSize, Duration: 10.0,
		},
		"coarse": {
			Preset: KindStandard, MaxForce: 500.0, ForceConversionFactor: 0.28,
			ApplyPeripheralFatigue: true, StepSize: DefaultStepSize, Duration: 10.0,
		},
		"tireless": {
			Preset: KindStandard, MaxForce: 60.0, ForceConversionFactor: 0.028,
			StepSize: DefaultStepSize, Duration: 10.0,
		},
		"endurance": {
			Preset: KindStandard, MaxForce: 60.0, ForceConversionFactor: 0.028,
			ApplyPeripheralFatigue: true, StepSize: 1.0 / 20.0, Duration: 600.0,
		},
	},
	KindPotvinFuglevand: {
		"small": {
			Preset: KindPotvinFuglevand, MotorUnitCount: 60,
			ApplyCentralFatigue: true, ApplyPeripheralFatigue: true, StepSize: DefaultStepSize, Duration: 10.0,
		},
		"large": {
			Preset: KindPotvinFuglevand, MotorUnitCount: 120,
			ApplyCentralFatigue: true, ApplyPeripheralFatigue: true, StepSize: DefaultStepSize, Duration: 10.0,
		},
		"fast": {
			Preset: KindPotvinFuglevand, MotorUnitCount: 120, PreCalcFiringRates: true,
			ApplyCentralFatigue: true, ApplyPeripheralFatigue: true, StepSize: DefaultStepSize, Duration: 10.0,
		},
		"rested": {
			Preset: KindPotvinFuglevand, MotorUnitCount: 120, StepSize: DefaultStepSize, Duration: 10.0,
		},
	},
}

// GetPreset returns a copy of a named preset, nil when either name is unknown.
func GetPreset(kind, name string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	return names
}
