package sim

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Factory builds the simulator for one ensemble member. Each call must
// return a simulator over its own muscle; members share no state.
type Factory func(idx int) (*Simulator, error)

// Ensemble runs independent simulations concurrently.
type Ensemble struct {
	build   Factory
	numRuns int
	logger  *slog.Logger
}

func NewEnsemble(build Factory, numRuns int) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, logger: slog.Default()}
}

func (e *Ensemble) SetLogger(l *slog.Logger) { e.logger = l }

// Run returns results in member order. The first failure cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			s, err := e.build(idx)
			if err != nil {
				return err
			}
			s.SetLogger(e.logger.With("member", idx))

			res, err := s.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("ensemble complete", "members", e.numRuns)
	return results, nil
}
