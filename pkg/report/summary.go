// Package report condenses simulation results into the figures the CLI prints.
package report

import (
	"errors"
	"fmt"

	"github.com/dd0wney/transit-resilience/pkg/algorithms"
	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/resilience"
)

// ErrMissingResult rejects a comparison lacking one of its runs.
var ErrMissingResult = errors.New("comparison is missing a run")

// Input gathers everything a summary is computed from.
type Input struct {
	Network    *graph.Graph
	Trips      int
	Comparison *resilience.Comparison
	// RandomTrials is an optional ensemble of seeded random runs.
	RandomTrials []*resilience.Result
	// TopStations limits the central-station listing.
	TopStations int
	// Workers bounds the betweenness pass of the base network.
	Workers int
}

// Summary is the printable outcome of a comparison.
type Summary struct {
	Network  NetworkSummary  `json:"network"`
	Budget   int             `json:"budget"`
	Targeted StrategySummary `json:"targeted"`
	Random   StrategySummary `json:"random"`
	Ensemble *OutageStats    `json:"ensemble,omitempty"`
}

// NetworkSummary describes the untouched network.
type NetworkSummary struct {
	Trips       int                       `json:"trips"`
	Stations    int                       `json:"stations"`
	Links       int                       `json:"links"`
	Cohesion    algorithms.CohesionResult `json:"cohesion"`
	Degrees     []algorithms.DegreeBucket `json:"degrees"`
	TopStations []algorithms.RankedNode   `json:"top_stations"`
}

// StrategySummary condenses one run.
type StrategySummary struct {
	Strategy        string         `json:"strategy"`
	Snapshots       int            `json:"snapshots"`
	Removed         []graph.NodeID `json:"removed"`
	FinalComponents int            `json:"final_components"`
	PeakComponents  int            `json:"peak_components"`
	EarlyCompletion bool           `json:"early_completion"`

	WienerDrop float64 `json:"wiener_drop"`
	RandicDrop float64 `json:"randic_drop"`

	// Correlation is the Pearson coefficient of the Wiener and Randić
	// series; nil when undefined.
	Correlation *float64 `json:"correlation,omitempty"`

	NormalizedWiener []float64 `json:"normalized_wiener"`
	NormalizedRandic []float64 `json:"normalized_randic"`
}

// Build computes the summary of in.
func Build(in Input) (*Summary, error) {
	if in.Network == nil {
		return nil, fmt.Errorf("%w: network is nil", resilience.ErrInvalidInput)
	}
	if in.Comparison == nil || in.Comparison.Targeted == nil || in.Comparison.Random == nil {
		return nil, ErrMissingResult
	}

	network, err := summarizeNetwork(in)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Network:  network,
		Budget:   in.Comparison.Budget,
		Targeted: summarizeRun(in.Comparison.Targeted),
		Random:   summarizeRun(in.Comparison.Random),
	}

	if len(in.RandomTrials) > 0 {
		finals := make([]float64, 0, len(in.RandomTrials))
		for _, res := range in.RandomTrials {
			if res != nil {
				finals = append(finals, float64(res.FinalComponents))
			}
		}
		stats := NewOutageStats(finals)
		s.Ensemble = &stats
	}
	return s, nil
}

func summarizeNetwork(in Input) (NetworkSummary, error) {
	cohesion, err := algorithms.Cohesion(in.Network)
	if err != nil {
		return NetworkSummary{}, err
	}

	opts := algorithms.DefaultCentralityOptions()
	if in.Workers > 0 {
		opts.Workers = in.Workers
	}
	top, err := algorithms.TopByBetweennessWithOptions(in.Network, max(in.TopStations, 0), opts)
	if err != nil {
		return NetworkSummary{}, err
	}

	return NetworkSummary{
		Trips:       in.Trips,
		Stations:    in.Network.NodeCount(),
		Links:       in.Network.EdgeCount(),
		Cohesion:    cohesion,
		Degrees:     algorithms.DegreeDistribution(in.Network),
		TopStations: top,
	}, nil
}

func summarizeRun(res *resilience.Result) StrategySummary {
	wiener := res.WienerSeries()
	randic := res.RandicSeries()

	peak := res.FinalComponents
	for _, snap := range res.Snapshots {
		peak = max(peak, snap.Components)
	}

	s := StrategySummary{
		Strategy:         res.Strategy.String(),
		Snapshots:        len(res.Snapshots),
		Removed:          res.Removed,
		FinalComponents:  res.FinalComponents,
		PeakComponents:   peak,
		EarlyCompletion:  res.EarlyCompletion,
		WienerDrop:       RelativeDrop(wiener),
		RandicDrop:       RelativeDrop(randic),
		NormalizedWiener: Normalize(wiener),
		NormalizedRandic: Normalize(randic),
	}
	if r, ok := Correlation(wiener, randic); ok {
		s.Correlation = &r
	}
	return s
}
