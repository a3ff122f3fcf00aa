package resilience

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

func buildTestGraph(t *testing.T, edges [][2]graph.NodeID, isolated ...graph.NodeID) *graph.Graph {
	t.Helper()

	g := graph.New()
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s) failed: %v", e[0], e[1], err)
		}
	}
	for _, id := range isolated {
		if err := g.AddNode(id); err != nil {
			t.Fatalf("AddNode(%s) failed: %v", id, err)
		}
	}
	return g
}

func pathGraph(t *testing.T) *graph.Graph {
	return buildTestGraph(t, [][2]graph.NodeID{{"A", "B"}, {"B", "C"}, {"C", "D"}})
}

// hubGraph is a star of the given number of leaves around hub "C".
func hubGraph(t *testing.T, leaves int) *graph.Graph {
	t.Helper()

	edges := make([][2]graph.NodeID, leaves)
	for i := range edges {
		edges[i] = [2]graph.NodeID{"C", graph.NodeID(fmt.Sprintf("L%02d", i+1))}
	}
	return buildTestGraph(t, edges)
}

func randomGraph(seed uint64, n, edges int) *graph.Graph {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(graph.NodeID(fmt.Sprintf("S%03d", i)))
	}
	for i := 0; n > 0 && i < edges; i++ {
		u, v := rng.IntN(n), rng.IntN(n)
		if u != v {
			g.AddEdge(graph.NodeID(fmt.Sprintf("S%03d", u)), graph.NodeID(fmt.Sprintf("S%03d", v)))
		}
	}
	return g
}

// expectedSnapshots is the snapshot count of a run over n nodes.
func expectedSnapshots(n, budget int) int {
	if budget == 0 || n == 0 {
		return 1
	}
	return min(budget, n)
}
