package algorithms

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// buildTestGraph creates a graph from edge pairs plus any isolated nodes
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

func starGraph(t *testing.T) *graph.Graph {
	return buildTestGraph(t, [][2]graph.NodeID{
		{"C", "L1"}, {"C", "L2"}, {"C", "L3"}, {"C", "L4"}, {"C", "L5"},
	})
}

// randomGraph creates a reproducible sparse graph of n nodes
func randomGraph(seed uint64, n, edges int) *graph.Graph {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(nodeName(i))
	}
	for i := 0; n > 0 && i < edges; i++ {
		u, v := rng.IntN(n), rng.IntN(n)
		if u != v {
			g.AddEdge(nodeName(u), nodeName(v))
		}
	}
	return g
}

func nodeName(i int) graph.NodeID {
	return graph.NodeID(fmt.Sprintf("S%03d", i))
}
