package resilience

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// Comparison pairs a targeted and a random run over the same network and
// budget.
type Comparison struct {
	Budget   int     `json:"budget"`
	Targeted *Result `json:"targeted"`
	Random   *Result `json:"random"`
}

// Compare runs both strategies against g concurrently. Each run works on its
// own clone, so g is only read. The first failing run cancels the comparison.
func Compare(ctx context.Context, g *graph.Graph, budget int, sim *Simulator) (*Comparison, error) {
	if sim == nil {
		return nil, fmt.Errorf("%w: simulator is nil", ErrInvalidInput)
	}

	cmp := &Comparison{Budget: budget}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		res, err := runWithContext(ctx, sim, g, budget, Targeted)
		cmp.Targeted = res
		return err
	})
	eg.Go(func() error {
		res, err := runWithContext(ctx, sim, g, budget, Random)
		cmp.Random = res
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return cmp, nil
}

// RandomTrials runs trials independent Random simulations with seeds
// seed, seed+1, ... and returns them in seed order. Trials run in parallel
// up to workers at a time; workers <= 0 leaves the group unbounded.
func RandomTrials(ctx context.Context, g *graph.Graph, budget, trials int, seed uint64, workers int, opts ...Option) ([]*Result, error) {
	if trials < 0 {
		return nil, fmt.Errorf("%w: trial count %d is negative", ErrInvalidInput, trials)
	}

	results := make([]*Result, trials)
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i := range trials {
		trialOpts := append(append([]Option(nil), opts...), WithSeed(seed+uint64(i)))
		eg.Go(func() error {
			sim := NewSimulator(trialOpts...)
			res, err := runWithContext(ctx, sim, g, budget, Random)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runWithContext skips the run when ctx is already done. A run in progress
// is not interrupted.
func runWithContext(ctx context.Context, sim *Simulator, g *graph.Graph, budget int, strategy Strategy) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sim.Run(g, budget, strategy)
}
