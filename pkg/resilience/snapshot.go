package resilience

import (
	"time"

	"github.com/dd0wney/transit-resilience/pkg/graph"
)

// State is the lifecycle stage of a simulation run.
type State int

const (
	Initialized State = iota
	Iterating
	Completed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Snapshot holds the cohesion indices of a working graph taken before the
// removal of the same step.
type Snapshot struct {
	Step       int     `json:"step"`
	Wiener     float64 `json:"wiener"`
	Randic     float64 `json:"randic"`
	Components int     `json:"components"`
	// LargestComponent is the node count of the biggest component.
	LargestComponent int `json:"largest_component"`
	Nodes            int `json:"nodes"`
	Edges            int `json:"edges"`
}

// Result is the outcome of one completed simulation run.
type Result struct {
	RunID    string   `json:"run_id"`
	Strategy Strategy `json:"strategy"`
	State    State    `json:"state"`

	// Budget is the requested number of removals; InitialNodes is the
	// node count of the untouched graph.
	Budget       int `json:"budget"`
	InitialNodes int `json:"initial_nodes"`

	Snapshots []Snapshot     `json:"snapshots"`
	Removed   []graph.NodeID `json:"removed"`

	// FinalComponents is the component count of the post-run working graph.
	FinalComponents int `json:"final_components"`
	// EarlyCompletion is set when the graph emptied before the budget ran out.
	EarlyCompletion bool          `json:"early_completion"`
	Duration        time.Duration `json:"duration"`

	final *graph.Graph
}

// FinalGraph returns the post-run working graph. The run no longer touches
// it, so callers own it.
func (r *Result) FinalGraph() *graph.Graph {
	return r.final
}

// WienerSeries returns the Wiener index of every snapshot in step order.
func (r *Result) WienerSeries() []float64 {
	series := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		series[i] = s.Wiener
	}
	return series
}

// RandicSeries returns the Randić index of every snapshot in step order.
func (r *Result) RandicSeries() []float64 {
	series := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		series[i] = s.Randic
	}
	return series
}

// ComponentSeries returns the component count of every snapshot in step order.
func (r *Result) ComponentSeries() []float64 {
	series := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		series[i] = float64(s.Components)
	}
	return series
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
