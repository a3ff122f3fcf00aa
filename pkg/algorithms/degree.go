package algorithms

import (
	"sort"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// DegreeBucket counts the nodes sharing one degree.
type DegreeBucket struct {
	Degree int `json:"degree"`
	Nodes  int `json:"nodes"`
}

// DegreeDistribution returns how many nodes have each degree, ordered by
// ascending degree. Only degrees that occur are listed.
func DegreeDistribution(g *graph.Graph) []DegreeBucket {
	counts := make(map[int]int)
	for _, id := range g.Nodes() {
		counts[g.Degree(id)]++
	}

	buckets := make([]DegreeBucket, 0, len(counts))
	for degree, nodes := range counts {
		buckets = append(buckets, DegreeBucket{Degree: degree, Nodes: nodes})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Degree < buckets[j].Degree })
	return buckets
}
