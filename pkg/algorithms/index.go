package algorithms

import (
	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// indexedGraph is a read-only, integer-indexed view of a graph snapshot.
// Positions follow the lexicographic order of graph.Nodes, so every
// traversal over it is deterministic.
type indexedGraph struct {
	ids       []graph.NodeID
	adjacency [][]int32
}

// indexGraph builds the integer view of g. The view does not track later
// mutations of g.
func indexGraph(g *graph.Graph) *indexedGraph {
	ids := g.Nodes()
	position := make(map[graph.NodeID]int32, len(ids))
	for i, id := range ids {
		position[id] = int32(i)
	}

	adjacency := make([][]int32, len(ids))
	for i, id := range ids {
		neighbors := g.Neighbors(id)
		adjacent := make([]int32, len(neighbors))
		for j, neighbor := range neighbors {
			adjacent[j] = position[neighbor]
		}
		adjacency[i] = adjacent
	}

	return &indexedGraph{
		ids:       ids,
		adjacency: adjacency,
	}
}

func (ig *indexedGraph) size() int {
	return len(ig.ids)
}

func (ig *indexedGraph) degree(v int32) int {
	return len(ig.adjacency[v])
}
