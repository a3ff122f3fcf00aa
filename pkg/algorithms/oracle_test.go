package algorithms

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// toGonum converts g into a gonum undirected graph, returning the node ID map.
func toGonum(g *graph.Graph) (*simple.UndirectedGraph, map[graph.NodeID]int64) {
	ug := simple.NewUndirectedGraph()
	ids := make(map[graph.NodeID]int64)
	for i, id := range g.Nodes() {
		ids[id] = int64(i)
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(ug.NewEdge(simple.Node(ids[e.A]), simple.Node(ids[e.B])))
	}
	return ug, ids
}

// TestCohesion_MatchesGonum cross-checks Wiener index and component count
// against gonum's all-pairs shortest paths and connected components
func TestCohesion_MatchesGonum(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		g := randomGraph(seed, 30, 35)
		ug, ids := toGonum(g)

		paths := path.DijkstraAllPaths(ug)
		want := 0.0
		nodes := g.Nodes()
		for i, u := range nodes {
			for _, v := range nodes[i+1:] {
				if w := paths.Weight(ids[u], ids[v]); !math.IsInf(w, 1) {
					want += w
				}
			}
		}

		if got := WienerIndex(g); got != want {
			t.Errorf("seed %d: WienerIndex = %f, gonum = %f", seed, got, want)
		}

		if got, want := ComponentCount(g), len(topo.ConnectedComponents(ug)); got != want {
			t.Errorf("seed %d: ComponentCount = %d, gonum = %d", seed, got, want)
		}
	}
}
