package fibers

import "github.com/san-kum/musclesim/internal/muscle"

// PotvinFuglevand2017 sums twitch forces in arbitrary units following
// Potvin & Fuglevand (2017). Peripheral fatigue depletes unit capacity and
// never recovers.
type PotvinFuglevand2017 struct {
	*twitchModel
	current float64
}

func NewPotvinFuglevand2017(p Params) (*PotvinFuglevand2017, error) {
	m, err := newTwitchModel(p)
	if err != nil {
		return nil, err
	}
	return &PotvinFuglevand2017{twitchModel: m}, nil
}

func (f *PotvinFuglevand2017) Step(rates muscle.Activation, dt float64) (float64, error) {
	if err := f.check(rates, dt); err != nil {
		return 0, err
	}

	f.current = f.forces(rates, 1)
	if f.params.ApplyFatigue {
		f.fatigue(rates, dt, 0)
	}
	return f.current, nil
}

func (f *PotvinFuglevand2017) CurrentForces() float64 { return f.current }

func (f *PotvinFuglevand2017) UnitForces() []float64 {
	return append([]float64(nil), f.unitForces...)
}
