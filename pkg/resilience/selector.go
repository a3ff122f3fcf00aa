package resilience

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dd0wney/transit-resilience/pkg/algorithms"
	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/metrics"
)

// selector picks the next station to remove from a working graph.
type selector interface {
	next(working *graph.Graph) (graph.NodeID, error)
}

// targetedSelector removes the current highest-betweenness node.
type targetedSelector struct {
	opts    algorithms.CentralityOptions
	metrics *metrics.Registry
}

func (s *targetedSelector) next(working *graph.Graph) (graph.NodeID, error) {
	start := time.Now()
	top, err := algorithms.TopByBetweennessWithOptions(working, 1, s.opts)
	if err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.RecordAlgorithm("betweenness", working.NodeCount(), time.Since(start))
	}
	if len(top) == 0 {
		return "", fmt.Errorf("no node ranked in a graph of %d nodes", working.NodeCount())
	}
	return top[0].NodeID, nil
}

// randomSelector draws uniformly from the nodes not yet removed.
type randomSelector struct {
	rng       *rand.Rand
	remaining *remainingSet
}

func (s *randomSelector) next(working *graph.Graph) (graph.NodeID, error) {
	if s.remaining.len() != working.NodeCount() {
		return "", fmt.Errorf("remaining set holds %d nodes, working graph %d",
			s.remaining.len(), working.NodeCount())
	}
	id, ok := s.remaining.draw(s.rng)
	if !ok {
		return "", fmt.Errorf("no node left to draw")
	}
	return id, nil
}

// remainingSet is the pool of nodes a random run may still remove. Draws
// swap the chosen slot with the last one and shrink the slice, so each node
// leaves the pool exactly once.
type remainingSet struct {
	ids []graph.NodeID
}

// newRemainingSet fills the pool in node ID order, making draws from a
// seeded generator reproducible.
func newRemainingSet(g *graph.Graph) *remainingSet {
	return &remainingSet{ids: g.Nodes()}
}

func (r *remainingSet) len() int {
	return len(r.ids)
}

func (r *remainingSet) draw(rng *rand.Rand) (graph.NodeID, bool) {
	if len(r.ids) == 0 {
		return "", false
	}
	i := rng.IntN(len(r.ids))
	last := len(r.ids) - 1
	id := r.ids[i]
	r.ids[i] = r.ids[last]
	r.ids = r.ids[:last]
	return id, true
}
