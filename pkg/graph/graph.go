// Package graph holds the undirected simple graph of stations that the
// resilience engine degrades, and the builder that derives it from trips.
package graph

import (
	"sort"
)

// NodeID identifies a station. Equality is by value.
type NodeID string

// Edge is an unordered pair of distinct nodes stored in canonical form (A < B).
type Edge struct {
	A NodeID `json:"a"`
	B NodeID `json:"b"`
}

// NewEdge returns the canonical edge between u and v.
func NewEdge(u, v NodeID) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{A: u, B: v}
}

// Graph is an undirected simple graph: no weights, no direction, no self-loops
// and at most one edge between any pair of nodes.
//
// A Graph is not safe for concurrent mutation. Clone it to hand an independent
// copy to another goroutine.
type Graph struct {
	adjacency map[NodeID]map[NodeID]struct{}
	edgeCount int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[NodeID]map[NodeID]struct{}),
	}
}

// AddNode adds id to the node set. Adding an existing node is a no-op.
func (g *Graph) AddNode(id NodeID) error {
	if id == "" {
		return &GraphError{Op: "AddNode", Cause: ErrEmptyNodeID}
	}
	if _, exists := g.adjacency[id]; !exists {
		g.adjacency[id] = make(map[NodeID]struct{})
	}
	return nil
}

// AddEdge connects u and v, adding either endpoint if missing.
// Adding an edge that already exists is a no-op.
func (g *Graph) AddEdge(u, v NodeID) error {
	if u == v {
		return &GraphError{Op: "AddEdge", Node: u, Other: v, Cause: ErrSelfLoop}
	}
	if err := g.AddNode(u); err != nil {
		return err
	}
	if err := g.AddNode(v); err != nil {
		return err
	}

	if _, exists := g.adjacency[u][v]; exists {
		return nil
	}
	g.adjacency[u][v] = struct{}{}
	g.adjacency[v][u] = struct{}{}
	g.edgeCount++
	return nil
}

// RemoveNode deletes id and every incident edge.
func (g *Graph) RemoveNode(id NodeID) error {
	neighbors, exists := g.adjacency[id]
	if !exists {
		return &GraphError{Op: "RemoveNode", Node: id, Cause: ErrNodeNotFound}
	}

	for neighbor := range neighbors {
		delete(g.adjacency[neighbor], id)
	}
	g.edgeCount -= len(neighbors)
	delete(g.adjacency, id)
	return nil
}

// RemoveNodes deletes each of ids, stopping at the first missing node.
func (g *Graph) RemoveNodes(ids ...NodeID) error {
	for _, id := range ids {
		if err := g.RemoveNode(id); err != nil {
			return err
		}
	}
	return nil
}

// HasNode reports whether id is in the node set.
func (g *Graph) HasNode(id NodeID) bool {
	_, exists := g.adjacency[id]
	return exists
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, exists := g.adjacency[u][v]
	return exists
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.adjacency)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.adjacency) == 0
}

// Degree returns the number of edges incident to id (0 for unknown nodes).
func (g *Graph) Degree(id NodeID) int {
	return len(g.adjacency[id])
}

// Nodes returns all node IDs in lexicographic order.
func (g *Graph) Nodes() []NodeID {
	nodes := make([]NodeID, 0, len(g.adjacency))
	for id := range g.adjacency {
		nodes = append(nodes, id)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// Neighbors returns the nodes adjacent to id in lexicographic order.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	adjacent := g.adjacency[id]
	neighbors := make([]NodeID, 0, len(adjacent))
	for neighbor := range adjacent {
		neighbors = append(neighbors, neighbor)
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
	return neighbors
}

// Edges returns every edge once, in canonical form, sorted by (A, B).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for u, adjacent := range g.adjacency {
		for v := range adjacent {
			if u < v {
				edges = append(edges, Edge{A: u, B: v})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// Clone returns a deep copy that shares no state with g.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		adjacency: make(map[NodeID]map[NodeID]struct{}, len(g.adjacency)),
		edgeCount: g.edgeCount,
	}
	for id, adjacent := range g.adjacency {
		copied := make(map[NodeID]struct{}, len(adjacent))
		for neighbor := range adjacent {
			copied[neighbor] = struct{}{}
		}
		clone.adjacency[id] = copied
	}
	return clone
}

// Statistics summarises the size of a graph.
type Statistics struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// GetStatistics returns the node and edge counts.
func (g *Graph) GetStatistics() Statistics {
	return Statistics{
		NodeCount: len(g.adjacency),
		EdgeCount: g.edgeCount,
	}
}
