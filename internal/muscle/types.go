package muscle

// Excitation is the per-motor-unit excitatory input to a pool model.
type Excitation []float64

func (e Excitation) Clone() Excitation {
	c := make(Excitation, len(e))
	copy(c, e)
	return c
}

// Activation is the per-motor-unit pool output, usually firing rates in Hz.
type Activation []float64

func (a Activation) Clone() Activation {
	c := make(Activation, len(a))
	copy(c, a)
	return c
}

// Model is the capability shared by every collaborator.
type Model interface {
	MotorUnitCount() int
}

type MotorNeuronPool interface {
	Model
	Step(input Excitation, dt float64) (Activation, error)
}

type MuscleFibers interface {
	Model
	Step(rates Activation, dt float64) (float64, error)
	// CurrentForces returns the force computed by the most recent Step.
	CurrentForces() float64
}

// UnitForceReporter is an optional fiber capability exposing the per-unit
// forces behind the last net force.
type UnitForceReporter interface {
	UnitForces() []float64
}

// Input is either one value broadcast to every motor unit or an explicit
// per-unit sequence. The zero value is an empty per-unit sequence.
type Input struct {
	scalar   float64
	perUnit  Excitation
	isScalar bool
}

func Scalar(v float64) Input {
	return Input{scalar: v, isScalar: true}
}

func PerUnit(values []float64) Input {
	return Input{perUnit: Excitation(values)}
}

func (in Input) IsScalar() bool { return in.isScalar }

// Value returns the broadcast value of a scalar input, 0 otherwise.
func (in Input) Value() float64 { return in.scalar }

// Resolve returns the excitation for a muscle of n motor units. Per-unit
// input is returned unchanged, whatever its length.
func (in Input) Resolve(n int) Excitation {
	if !in.isScalar {
		return in.perUnit
	}
	e := make(Excitation, n)
	for i := range e {
		e[i] = in.scalar
	}
	return e
}
