package algorithms

import (
	"reflect"
	"testing"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// TestConnectedComponents_EmptyGraph tests component detection on empty graph
func TestConnectedComponents_EmptyGraph(t *testing.T) {
	g := graph.New()

	if got := ComponentCount(g); got != 0 {
		t.Errorf("Expected 0 components, got %d", got)
	}
	if got := ConnectedComponents(g); len(got) != 0 {
		t.Errorf("Expected no components, got %v", got)
	}
	if got := LargestComponentSize(g); got != 0 {
		t.Errorf("Expected largest component 0, got %d", got)
	}
}

// TestConnectedComponents_IsolatedNodes tests that every isolated node is a component
func TestConnectedComponents_IsolatedNodes(t *testing.T) {
	g := buildTestGraph(t, nil, "A", "B", "C", "D")

	if got := ComponentCount(g); got != 4 {
		t.Errorf("Expected 4 components, got %d", got)
	}
}

// TestConnectedComponents_Mixed tests membership and ordering
func TestConnectedComponents_Mixed(t *testing.T) {
	g := buildTestGraph(t, [][2]graph.NodeID{{"Y", "X"}, {"B", "A"}, {"B", "C"}}, "M")

	got := ConnectedComponents(g)
	want := [][]graph.NodeID{{"A", "B", "C"}, {"M"}, {"X", "Y"}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConnectedComponents = %v, want %v", got, want)
	}
	if LargestComponentSize(g) != 3 {
		t.Errorf("Expected largest component 3, got %d", LargestComponentSize(g))
	}
}
