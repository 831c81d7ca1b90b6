package muscle

// Muscle steps a motor neuron pool and a fiber model as one unit.
type Muscle struct {
	pool   MotorNeuronPool
	fibers MuscleFibers
}

// New composes pool and fibers. Their motor unit counts must agree; the
// check happens here only and is not repeated per step.
func New(pool MotorNeuronPool, fibers MuscleFibers) (*Muscle, error) {
	if pool == nil || fibers == nil {
		return nil, &ConfigurationError{Wrapped: ErrMissingModel}
	}
	if pool.MotorUnitCount() != fibers.MotorUnitCount() {
		return nil, &ConfigurationError{
			PoolUnits:  pool.MotorUnitCount(),
			FiberUnits: fibers.MotorUnitCount(),
			Wrapped:    ErrUnitCountMismatch,
		}
	}
	return &Muscle{pool: pool, fibers: fibers}, nil
}

func (m *Muscle) MotorUnitCount() int {
	return m.pool.MotorUnitCount()
}

// CurrentForces returns the force cached by the fiber model. It does not
// compute anything.
func (m *Muscle) CurrentForces() float64 {
	return m.fibers.CurrentForces()
}

// UnitForces returns per-unit forces when the fiber model reports them,
// nil otherwise.
func (m *Muscle) UnitForces() []float64 {
	if r, ok := m.fibers.(UnitForceReporter); ok {
		return r.UnitForces()
	}
	return nil
}

// Step advances the muscle by dt. Scalar input is broadcast to every motor
// unit; per-unit input is passed through unchecked. Collaborator errors are
// returned as is.
func (m *Muscle) Step(in Input, dt float64) (float64, error) {
	excitation := in.Resolve(m.pool.MotorUnitCount())

	rates, err := m.pool.Step(excitation, dt)
	if err != nil {
		return 0, err
	}
	return m.fibers.Step(rates, dt)
}
