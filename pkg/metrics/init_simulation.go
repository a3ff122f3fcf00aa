package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_simulations_total",
			Help: "Total number of removal simulations by strategy and outcome",
		},
		[]string{"strategy", "status"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_simulation_duration_seconds",
			Help:    "Wall time of one removal simulation in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60, 300},
		},
		[]string{"strategy"},
	)

	r.SimulationStepsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_simulation_steps_total",
			Help: "Total number of snapshots recorded",
		},
		[]string{"strategy"},
	)

	r.NodesRemovedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_nodes_removed_total",
			Help: "Total number of stations removed from working graphs",
		},
		[]string{"strategy"},
	)

	r.EarlyCompletionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "resilience_early_completions_total",
			Help: "Simulations that emptied their graph before exhausting the budget",
		},
		[]string{"strategy"},
	)

	r.SimulationComponents = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resilience_simulation_components",
			Help: "Connected components of the most recent working graph",
		},
		[]string{"strategy"},
	)

	r.SimulationRemainingNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resilience_simulation_remaining_nodes",
			Help: "Nodes left in the most recent working graph",
		},
		[]string{"strategy"},
	)
}

func (r *Registry) initAlgorithmMetrics() {
	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_algorithm_duration_seconds",
			Help:    "Duration of graph algorithm invocations in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		},
		[]string{"algorithm"},
	)

	r.AlgorithmGraphSize = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resilience_algorithm_graph_nodes",
			Help:    "Node count of graphs passed to algorithms",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		},
		[]string{"algorithm"},
	)
}

func (r *Registry) initNetworkMetrics() {
	r.NetworkNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_network_nodes",
			Help: "Stations in the base network",
		},
	)

	r.NetworkEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_network_edges",
			Help: "Undirected connections in the base network",
		},
	)

	r.TripsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_network_trips",
			Help: "Trips the base network was built from",
		},
	)
}

func (r *Registry) initSystemMetrics() {
	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_goroutines",
			Help: "Number of goroutines",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "resilience_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)
}
