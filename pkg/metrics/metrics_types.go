package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the resilience engine
type Registry struct {
	// Simulation Metrics
	SimulationsTotal         *prometheus.CounterVec
	SimulationDuration       *prometheus.HistogramVec
	SimulationStepsTotal     *prometheus.CounterVec
	NodesRemovedTotal        *prometheus.CounterVec
	EarlyCompletionsTotal    *prometheus.CounterVec
	SimulationComponents     *prometheus.GaugeVec
	SimulationRemainingNodes *prometheus.GaugeVec

	// Algorithm Metrics
	AlgorithmDuration  *prometheus.HistogramVec
	AlgorithmGraphSize *prometheus.HistogramVec

	// Network Metrics
	NetworkNodesTotal prometheus.Gauge
	NetworkEdgesTotal prometheus.Gauge
	TripsTotal        prometheus.Gauge

	// System Metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initSimulationMetrics()
	r.initAlgorithmMetrics()
	r.initNetworkMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
