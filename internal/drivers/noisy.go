package drivers

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/san-kum/musclesim/internal/muscle"
	"github.com/san-kum/musclesim/internal/sim"
)

// Noisy adds smooth noise in [-Amplitude, Amplitude] to a base driver.
// Scalar input stays scalar; per-unit input gets independent noise per
// unit. Excitation is clamped at zero.
type Noisy struct {
	Base      sim.Driver
	Amplitude float64
	Frequency float64
	noise     opensimplex.Noise
}

func NewNoisy(base sim.Driver, amplitude, frequency float64, seed int64) *Noisy {
	return &Noisy{
		Base:      base,
		Amplitude: amplitude,
		Frequency: frequency,
		noise:     opensimplex.NewNormalized(seed),
	}
}

func (n *Noisy) Compute(force float64, t float64) muscle.Input {
	in := n.Base.Compute(force, t)
	if in.IsScalar() {
		return muscle.Scalar(math.Max(0, in.Value()+n.sample(t, 0)))
	}

	e := in.Resolve(0).Clone()
	for i := range e {
		e[i] = math.Max(0, e[i]+n.sample(t, float64(i)))
	}
	return muscle.PerUnit(e)
}

func (n *Noisy) sample(t, unit float64) float64 {
	return n.Amplitude * (2*n.noise.Eval2(t*n.Frequency, unit) - 1)
}
