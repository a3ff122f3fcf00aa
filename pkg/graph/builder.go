package graph

import (
	"sort"
)

// BuildNetwork derives the station graph from trips keyed by trip ID. Each
// trip lists its stops in visit order; consecutive stops become an edge and
// every visited stop becomes a node, so a single-stop trip still contributes
// an isolated node. Trips sharing a segment yield a single edge.
//
// Trip IDs are processed in sorted order, so the result is independent of map
// iteration.
//
// BuildNetwork does not report malformed input. An empty stop ID is dropped
// and the stops either side of it are linked directly, so {"A", "", "C"}
// yields the edge A-C. Callers that must reject such trips should run them
// through validation.ValidateTrips first.
func BuildNetwork(trips map[string][]NodeID) *Graph {
	tripIDs := make([]string, 0, len(trips))
	for tripID := range trips {
		tripIDs = append(tripIDs, tripID)
	}
	sort.Strings(tripIDs)

	g := New()
	for _, tripID := range tripIDs {
		addTrip(g, trips[tripID])
	}
	return g
}

// addTrip adds the nodes and consecutive-stop edges of one trip.
func addTrip(g *Graph, stops []NodeID) {
	var previous NodeID
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		// AddNode cannot fail for a non-empty ID.
		_ = g.AddNode(stop)
		// A repeated stop (dwell record) is not a self-loop.
		if previous != "" && previous != stop {
			_ = g.AddEdge(previous, stop)
		}
		previous = stop
	}
}
