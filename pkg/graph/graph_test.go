package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddEdge_Idempotent(t *testing.T) {
	g := New()

	if err := g.AddEdge("A", "B"); err != nil {
		t.Fatalf("AddEdge failed: %v", err)
	}
	if err := g.AddEdge("B", "A"); err != nil {
		t.Fatalf("AddEdge (reversed) failed: %v", err)
	}

	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if g.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NodeCount())
	}
	if !g.HasEdge("A", "B") || !g.HasEdge("B", "A") {
		t.Error("Edge should be visible from both endpoints")
	}
}

func TestAddEdge_SelfLoopRejected(t *testing.T) {
	g := New()

	err := g.AddEdge("A", "A")
	if !errors.Is(err, ErrSelfLoop) {
		t.Fatalf("Expected ErrSelfLoop, got %v", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("Rejected edge should not add nodes, got %d", g.NodeCount())
	}
}

func TestAddNode_EmptyID(t *testing.T) {
	g := New()

	if err := g.AddNode(""); !errors.Is(err, ErrEmptyNodeID) {
		t.Errorf("Expected ErrEmptyNodeID, got %v", err)
	}
}

func TestRemoveNode_DropsIncidentEdges(t *testing.T) {
	g := New()
	g.AddEdge("C", "L1")
	g.AddEdge("C", "L2")
	g.AddEdge("C", "L3")
	g.AddEdge("L1", "L2")

	if err := g.RemoveNode("C"); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}

	if g.HasNode("C") {
		t.Error("C should be gone")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 remaining edge, got %d", g.EdgeCount())
	}
	if g.Degree("L3") != 0 {
		t.Errorf("L3 should be isolated, degree %d", g.Degree("L3"))
	}
	if !g.HasEdge("L1", "L2") {
		t.Error("L1-L2 should survive")
	}
}

func TestRemoveNode_Missing(t *testing.T) {
	g := New()

	err := g.RemoveNode("ghost")
	if !IsNotFound(err) {
		t.Fatalf("Expected not found error, got %v", err)
	}

	var graphErr *GraphError
	if !errors.As(err, &graphErr) || graphErr.Op != "RemoveNode" {
		t.Errorf("Expected GraphError for RemoveNode, got %#v", err)
	}
}

func TestNodesAndEdges_Sorted(t *testing.T) {
	g := New()
	g.AddEdge("C", "A")
	g.AddEdge("B", "A")
	g.AddNode("D")

	wantNodes := []NodeID{"A", "B", "C", "D"}
	if got := g.Nodes(); !reflect.DeepEqual(got, wantNodes) {
		t.Errorf("Nodes() = %v, want %v", got, wantNodes)
	}

	wantEdges := []Edge{{A: "A", B: "B"}, {A: "A", B: "C"}}
	if got := g.Edges(); !reflect.DeepEqual(got, wantEdges) {
		t.Errorf("Edges() = %v, want %v", got, wantEdges)
	}

	if got := g.Neighbors("A"); !reflect.DeepEqual(got, []NodeID{"B", "C"}) {
		t.Errorf("Neighbors(A) = %v", got)
	}
}

func TestClone_Independent(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")

	clone := g.Clone()
	if err := clone.RemoveNode("B"); err != nil {
		t.Fatalf("RemoveNode on clone failed: %v", err)
	}

	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("Template mutated: %+v", g.GetStatistics())
	}
	if clone.NodeCount() != 2 || clone.EdgeCount() != 0 {
		t.Errorf("Clone has wrong shape: %+v", clone.GetStatistics())
	}
}

func TestNewEdge_Canonical(t *testing.T) {
	if NewEdge("B", "A") != NewEdge("A", "B") {
		t.Error("NewEdge should be order independent")
	}
}
