package algorithms

import (
	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// componentLabels assigns each indexed node the number of its connected
// component using BFS flood fill, and returns the labels with the component
// count. Components are numbered in order of their smallest node.
func componentLabels(ig *indexedGraph) ([]int, int) {
	labels := make([]int, ig.size())
	for i := range labels {
		labels[i] = -1
	}

	queue := make([]int32, 0, ig.size())
	count := 0
	for start := range labels {
		if labels[start] >= 0 {
			continue
		}

		labels[start] = count
		queue = append(queue[:0], int32(start))
		for head := 0; head < len(queue); head++ {
			for _, w := range ig.adjacency[queue[head]] {
				if labels[w] < 0 {
					labels[w] = count
					queue = append(queue, w)
				}
			}
		}
		count++
	}
	return labels, count
}

// ConnectedComponents returns the maximal connected node sets of g. Isolated
// nodes form singleton components. Members of each component are in node ID
// order and components are ordered by their first member.
func ConnectedComponents(g *graph.Graph) [][]graph.NodeID {
	ig := indexGraph(g)
	labels, count := componentLabels(ig)

	components := make([][]graph.NodeID, count)
	for v, label := range labels {
		components[label] = append(components[label], ig.ids[v])
	}
	return components
}

// ComponentCount returns the number of connected components (0 for an empty graph).
func ComponentCount(g *graph.Graph) int {
	_, count := componentLabels(indexGraph(g))
	return count
}

// LargestComponentSize returns the node count of the biggest component.
func LargestComponentSize(g *graph.Graph) int {
	return largestComponent(componentLabels(indexGraph(g)))
}

// largestComponent returns the size of the most populous label.
func largestComponent(labels []int, count int) int {
	sizes := make([]int, count)
	largest := 0
	for _, label := range labels {
		sizes[label]++
		if sizes[label] > largest {
			largest = sizes[label]
		}
	}
	return largest
}
