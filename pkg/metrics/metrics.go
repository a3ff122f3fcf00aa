package metrics

import (
	"runtime"
	"time"
)

// RecordSimulation records a finished (or aborted) simulation run
func (r *Registry) RecordSimulation(strategy, status string, duration time.Duration, earlyCompletion bool) {
	r.SimulationsTotal.WithLabelValues(strategy, status).Inc()
	r.SimulationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if earlyCompletion {
		r.EarlyCompletionsTotal.WithLabelValues(strategy).Inc()
	}
}

// RecordStep records one snapshot and the state of the working graph it saw
func (r *Registry) RecordStep(strategy string, components, remainingNodes int) {
	r.SimulationStepsTotal.WithLabelValues(strategy).Inc()
	r.SimulationComponents.WithLabelValues(strategy).Set(float64(components))
	r.SimulationRemainingNodes.WithLabelValues(strategy).Set(float64(remainingNodes))
}

// RecordRemoval records stations removed from a working graph
func (r *Registry) RecordRemoval(strategy string, removed int) {
	r.NodesRemovedTotal.WithLabelValues(strategy).Add(float64(removed))
}

// RecordAlgorithm records one algorithm invocation over a graph of nodes nodes
func (r *Registry) RecordAlgorithm(algorithm string, nodes int, duration time.Duration) {
	r.AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.AlgorithmGraphSize.WithLabelValues(algorithm).Observe(float64(nodes))
}

// SetNetworkSize records the size of the base network
func (r *Registry) SetNetworkSize(trips, nodes, edges int) {
	r.TripsTotal.Set(float64(trips))
	r.NetworkNodesTotal.Set(float64(nodes))
	r.NetworkEdgesTotal.Set(float64(edges))
}

// UpdateSystemMetrics samples goroutine and heap statistics
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}
