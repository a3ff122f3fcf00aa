package algorithms

import (
	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// unreachable marks nodes a BFS has not reached.
const unreachable = -1

// bfsDistances fills dist with hop counts from source, using queue as scratch
// space. Unreached nodes keep the value unreachable. It returns the nodes in
// visit order (non-decreasing distance).
func bfsDistances(ig *indexedGraph, source int32, dist []int32, queue []int32) []int32 {
	for i := range dist {
		dist[i] = unreachable
	}
	dist[source] = 0

	queue = append(queue[:0], source)
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, w := range ig.adjacency[v] {
			if dist[w] == unreachable {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return queue
}

// ShortestPathLengths returns the hop distance from source to every node
// reachable from it, including source itself at distance 0. Nodes in other
// components are absent from the result.
func ShortestPathLengths(g *graph.Graph, source graph.NodeID) (map[graph.NodeID]int, error) {
	if !g.HasNode(source) {
		return nil, &graph.GraphError{Op: "ShortestPathLengths", Node: source, Cause: graph.ErrNodeNotFound}
	}

	ig := indexGraph(g)
	var start int32
	for i, id := range ig.ids {
		if id == source {
			start = int32(i)
			break
		}
	}

	dist := make([]int32, ig.size())
	visited := bfsDistances(ig, start, dist, make([]int32, 0, ig.size()))

	lengths := make(map[graph.NodeID]int, len(visited))
	for _, v := range visited {
		lengths[ig.ids[v]] = int(dist[v])
	}
	return lengths, nil
}
