package resilience

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/transit-resilience/pkg/algorithms"
	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/logging"
	"github.com/dd0wney/transit-resilience/pkg/metrics"
)

// DefaultRemovalFraction is the share of stations removed when no explicit
// budget is given.
const DefaultRemovalFraction = 0.2

// Simulator runs progressive node-removal experiments against a template
// graph. The template is cloned for every run and never mutated.
//
// The random source is only read by Random runs; do not start two Random runs
// on one Simulator concurrently.
type Simulator struct {
	rng        *rand.Rand
	logger     logging.Logger
	metrics    *metrics.Registry
	centrality algorithms.CentralityOptions
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRand injects the random source used by Random runs.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

// WithSeed seeds a PCG source for reproducible Random runs.
func WithSeed(seed uint64) Option {
	return WithRand(newSeededRand(seed))
}

// WithLogger sets the structured logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithMetrics records run, step and algorithm metrics into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Simulator) {
		s.metrics = r
	}
}

// WithCentralityWorkers sets the goroutine count of each betweenness pass.
func WithCentralityWorkers(workers int) Option {
	return func(s *Simulator) {
		s.centrality.Workers = workers
	}
}

// NewSimulator creates a simulator. Without WithRand or WithSeed, Random runs
// draw from an unseeded source and are not reproducible.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		logger:     logging.NewNopLogger(),
		centrality: algorithms.DefaultCentralityOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

func newSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// BudgetForFraction returns floor(nodes * fraction), the number of removal
// iterations for a run covering that share of the network.
func BudgetForFraction(nodes int, fraction float64) (int, error) {
	if nodes < 0 {
		return 0, fmt.Errorf("%w: node count %d is negative", ErrInvalidInput, nodes)
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: removal fraction %v outside [0, 1]", ErrInvalidInput, fraction)
	}
	return int(math.Floor(float64(nodes) * fraction)), nil
}

// Run degrades a clone of g for up to budget iterations. Each iteration
// records a snapshot of the working graph and then removes one node chosen
// by strategy. The first snapshot always reflects the untouched graph, so a
// zero budget yields exactly that one snapshot. A graph that empties before
// the budget runs out completes normally with EarlyCompletion set.
func (s *Simulator) Run(g *graph.Graph, budget int, strategy Strategy) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: graph is nil", ErrInvalidInput)
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w: removal budget %d is negative", ErrInvalidInput, budget)
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidInput, int(strategy))
	}

	r := s.newRun(g, budget, strategy)
	timer := logging.StartTimer(r.logger, "simulation finished")
	r.logger.Info("simulation started", logging.Nodes(r.result.InitialNodes),
		logging.Edges(g.EdgeCount()), logging.Budget(budget))
	if budget > r.result.InitialNodes {
		r.logger.Warn("removal budget exceeds node count; run will end early",
			logging.Budget(budget), logging.Nodes(r.result.InitialNodes))
	}

	if err := r.iterate(); err != nil {
		elapsed := timer.EndError(err)
		if s.metrics != nil {
			s.metrics.RecordSimulation(strategy.String(), "error", elapsed, false)
		}
		return nil, err
	}

	r.result.Duration = timer.End(logging.Int("snapshots", len(r.result.Snapshots)),
		logging.Components(r.result.FinalComponents),
		logging.Bool("early_completion", r.result.EarlyCompletion))
	if s.metrics != nil {
		s.metrics.RecordSimulation(strategy.String(), "success", r.result.Duration, r.result.EarlyCompletion)
	}
	return r.result, nil
}

// run is the mutable state of one simulation. It owns its working graph.
type run struct {
	sim      *Simulator
	working  *graph.Graph
	selector selector
	logger   logging.Logger
	result   *Result
}

func (s *Simulator) newRun(g *graph.Graph, budget int, strategy Strategy) *run {
	working := g.Clone()
	id := uuid.NewString()

	var sel selector
	switch strategy {
	case Targeted:
		sel = &targetedSelector{opts: s.centrality, metrics: s.metrics}
	case Random:
		sel = &randomSelector{rng: s.rng, remaining: newRemainingSet(working)}
	}

	return &run{
		sim:      s,
		working:  working,
		selector: sel,
		logger:   s.logger.With(logging.RunID(id), logging.Strategy(strategy.String())),
		result: &Result{
			RunID:        id,
			Strategy:     strategy,
			State:        Initialized,
			Budget:       budget,
			InitialNodes: working.NodeCount(),
			Snapshots:    make([]Snapshot, 0, min(budget, working.NodeCount())+1),
			Removed:      make([]graph.NodeID, 0, min(budget, working.NodeCount())),
		},
	}
}

// iterate drives the run from Initialized to Completed.
func (r *run) iterate() error {
	r.result.State = Iterating

	for step := 0; ; step++ {
		if step > 0 && step >= r.result.Budget {
			break
		}
		if step > 0 && r.working.IsEmpty() {
			r.result.EarlyCompletion = true
			break
		}

		if err := r.snapshot(step); err != nil {
			return err
		}
		if step >= r.result.Budget {
			break
		}
		if r.working.IsEmpty() {
			r.result.EarlyCompletion = true
			break
		}

		if err := r.removeNext(step); err != nil {
			return err
		}
	}

	r.result.FinalComponents = algorithms.ComponentCount(r.working)
	r.result.final = r.working
	r.result.State = Completed
	return nil
}

// snapshot records the cohesion indices of the current working graph.
func (r *run) snapshot(step int) error {
	start := time.Now()
	cohesion, err := algorithms.Cohesion(r.working)
	if err != nil {
		return fmt.Errorf("%w: step %d: %w", ErrInvariantViolation, step, err)
	}

	snap := Snapshot{
		Step:       step,
		Wiener:     cohesion.Wiener,
		Randic:     cohesion.Randic,
		Components: cohesion.Components,
		Nodes:      cohesion.NodeCount,
		Edges:      cohesion.EdgeCount,

		LargestComponent: cohesion.LargestComponent,
	}
	r.result.Snapshots = append(r.result.Snapshots, snap)

	if m := r.sim.metrics; m != nil {
		m.RecordAlgorithm("cohesion", snap.Nodes, time.Since(start))
		m.RecordStep(r.result.Strategy.String(), snap.Components, snap.Nodes)
	}
	r.logger.Debug("snapshot recorded", logging.Step(step), logging.Nodes(snap.Nodes),
		logging.Float64("wiener", snap.Wiener), logging.Float64("randic", snap.Randic),
		logging.Components(snap.Components))
	return nil
}

// removeNext selects one node and deletes it with its incident edges.
func (r *run) removeNext(step int) error {
	id, err := r.selector.next(r.working)
	if err != nil {
		return fmt.Errorf("%w: step %d: selecting node: %w", ErrInvariantViolation, step, err)
	}
	if err := r.working.RemoveNode(id); err != nil {
		return fmt.Errorf("%w: step %d: %w", ErrInvariantViolation, step, err)
	}
	r.result.Removed = append(r.result.Removed, id)

	if m := r.sim.metrics; m != nil {
		m.RecordRemoval(r.result.Strategy.String(), 1)
	}
	r.logger.Debug("station removed", logging.Step(step), logging.Station(string(id)))
	return nil
}
