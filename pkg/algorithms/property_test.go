package algorithms

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// TestCohesionInvariants uses property-based testing to verify index invariants
// that must hold for every graph
func TestCohesionInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("wiener is non-negative and zero iff no edges", prop.ForAll(
		func(seed uint64, n, e int) bool {
			g := randomGraph(seed, n, e)
			wiener := WienerIndex(g)
			return wiener >= 0 && (wiener == 0) == (g.EdgeCount() == 0)
		},
		gen.UInt64(),
		gen.IntRange(0, 20),
		gen.IntRange(0, 40),
	))

	properties.Property("randic is non-negative and zero iff no edges", prop.ForAll(
		func(seed uint64, n, e int) bool {
			g := randomGraph(seed, n, e)
			randic, err := RandicIndex(g)
			if err != nil {
				return false
			}
			return randic >= 0 && (randic == 0) == (g.EdgeCount() == 0)
		},
		gen.UInt64(),
		gen.IntRange(0, 20),
		gen.IntRange(0, 40),
	))

	properties.Property("edgeless graph has one component per node", prop.ForAll(
		func(n int) bool {
			g := randomGraph(0, n, 0)
			return ComponentCount(g) == n
		},
		gen.IntRange(0, 30),
	))

	properties.Property("component count lies between 1 and N for non-empty graphs", prop.ForAll(
		func(seed uint64, n, e int) bool {
			g := randomGraph(seed, n, e)
			count := ComponentCount(g)
			if n == 0 {
				return count == 0
			}
			return count >= 1 && count <= n && count >= n-g.EdgeCount()
		},
		gen.UInt64(),
		gen.IntRange(0, 20),
		gen.IntRange(0, 40),
	))

	properties.Property("ranking all nodes yields a permutation", prop.ForAll(
		func(seed uint64, n, e int) bool {
			g := randomGraph(seed, n, e)
			ranked, err := TopByBetweenness(g, g.NodeCount())
			if err != nil || len(ranked) != g.NodeCount() {
				return false
			}

			seen := make(map[graph.NodeID]bool, len(ranked))
			for i, r := range ranked {
				if seen[r.NodeID] || !g.HasNode(r.NodeID) {
					return false
				}
				seen[r.NodeID] = true
				if i > 0 && scoreGreater(r.Score, ranked[i-1].Score) {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.IntRange(0, 15),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
