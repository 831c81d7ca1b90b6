package muscle

import (
	"errors"
	"fmt"
)

var (
	// ErrUnitCountMismatch indicates pool and fiber models disagree on motor unit count.
	ErrUnitCountMismatch = errors.New("muscle: pool and fibers motor unit counts differ")

	// ErrMissingModel indicates a nil collaborator was supplied.
	ErrMissingModel = errors.New("muscle: nil collaborator")

	// ErrDimensionMismatch indicates a per-unit vector whose length differs
	// from the collaborator's motor unit count. Collaborators wrap it.
	ErrDimensionMismatch = errors.New("muscle: input length does not match motor unit count")

	// ErrInvalidExcitation indicates a NaN excitation value.
	ErrInvalidExcitation = errors.New("muscle: excitation is not a number")

	// ErrInvalidStepSize indicates a non-positive or non-finite step size.
	ErrInvalidStepSize = errors.New("muscle: step size must be positive")
)

// ConfigurationError reports an incompatible pool/fiber pairing at construction.
type ConfigurationError struct {
	PoolUnits  int
	FiberUnits int
	Wrapped    error
}

func (e *ConfigurationError) Error() string {
	if errors.Is(e.Wrapped, ErrMissingModel) {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%s (pool=%d, fibers=%d)", e.Wrapped.Error(), e.PoolUnits, e.FiberUnits)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}
