// Package muscle binds a motor-neuron pool model to a muscle-fiber model
// into a single steppable force generator.
//
// The package defines the collaborator contracts and the orchestrator:
//
//   - [MotorNeuronPool]: excitation in, per-unit firing rates out
//   - [MuscleFibers]: firing rates in, net force out
//   - [Input]: scalar or per-unit excitation, resolved once per step
//   - [Muscle]: owns one pool and one fiber model and steps them in order
//
// # Example
//
//	pool, _ := pools.NewPotvinFuglevand2017(pools.DefaultParams(60))
//	fib, _ := fibers.NewPotvinFuglevand2017(fibers.DefaultParams(60))
//	m, err := muscle.New(pool, fib)
//	if err != nil {
//		return err
//	}
//	force, err := m.Step(muscle.Scalar(32.0), 1/50.0)
//
// # Thread Safety
//
// A Muscle is NOT safe for concurrent stepping. Collaborators mutate
// internal fatigue state on every step. Independent Muscle instances share
// nothing and may be stepped in parallel, see sim.Ensemble.
package muscle
