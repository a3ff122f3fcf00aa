package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/validation"
)

// loadTrips reads a YAML mapping of trip ID to ordered stop IDs:
//
//	T1: [Central, Museum, Harbour]
//	T2: [Airport, Central]
func loadTrips(path string) (map[string][]graph.NodeID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trips: %w", err)
	}
	return parseTrips(data)
}

func parseTrips(data []byte) (map[string][]graph.NodeID, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing trips: %w", validation.ErrInvalidTrip, err)
	}
	if err := validation.ValidateTrips(raw); err != nil {
		return nil, err
	}

	trips := make(map[string][]graph.NodeID, len(raw))
	for id, stops := range raw {
		seq := make([]graph.NodeID, len(stops))
		for i, stop := range stops {
			seq[i] = graph.NodeID(stop)
		}
		trips[id] = seq
	}
	return trips, nil
}
