package algorithms

import (
	"errors"
	"fmt"
	"math"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// ErrInvariantViolation signals a graph whose adjacency is inconsistent, such
// as an edge endpoint with degree zero. It is never a recoverable condition.
var ErrInvariantViolation = errors.New("graph invariant violated")

// CohesionResult holds the structural indices of one graph state.
type CohesionResult struct {
	Wiener           float64 `json:"wiener"`
	Randic           float64 `json:"randic"`
	Components       int     `json:"components"`
	LargestComponent int     `json:"largest_component"`
	NodeCount        int     `json:"node_count"`
	EdgeCount        int     `json:"edge_count"`
}

// WienerIndex returns the sum of shortest-path distances over all unordered
// node pairs that are mutually reachable. Pairs in different components are
// omitted rather than counted as zero or infinity.
func WienerIndex(g *graph.Graph) float64 {
	return wienerIndex(indexGraph(g))
}

func wienerIndex(ig *indexedGraph) float64 {
	n := ig.size()
	dist := make([]int32, n)
	queue := make([]int32, 0, n)

	// Every unordered pair is seen from both ends.
	var total int64
	for source := 0; source < n; source++ {
		queue = bfsDistances(ig, int32(source), dist, queue)
		for _, v := range queue {
			total += int64(dist[v])
		}
	}
	return float64(total) / 2
}

// RandicIndex returns the sum, over every node u and every neighbour v of u,
// of 1/sqrt(deg(u)*deg(v)). Each edge therefore contributes twice, once from
// each endpoint. Isolated nodes contribute nothing.
func RandicIndex(g *graph.Graph) (float64, error) {
	return randicIndex(indexGraph(g))
}

func randicIndex(ig *indexedGraph) (float64, error) {
	total := 0.0
	for u := range ig.adjacency {
		degreeU := ig.degree(int32(u))
		for _, v := range ig.adjacency[u] {
			degreeV := ig.degree(v)
			if degreeV == 0 {
				return 0, fmt.Errorf("%w: edge %q-%q has an endpoint of degree 0",
					ErrInvariantViolation, ig.ids[u], ig.ids[v])
			}
			total += 1 / math.Sqrt(float64(degreeU)*float64(degreeV))
		}
	}
	return total, nil
}

// Cohesion computes the Wiener index, Randić index and component statistics
// of g from a single indexed view. An empty graph yields all zeros.
func Cohesion(g *graph.Graph) (CohesionResult, error) {
	ig := indexGraph(g)

	randic, err := randicIndex(ig)
	if err != nil {
		return CohesionResult{}, err
	}

	labels, components := componentLabels(ig)

	return CohesionResult{
		Wiener:           wienerIndex(ig),
		Randic:           randic,
		Components:       components,
		LargestComponent: largestComponent(labels, components),
		NodeCount:        g.NodeCount(),
		EdgeCount:        g.EdgeCount(),
	}, nil
}
