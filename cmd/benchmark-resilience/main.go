// Command benchmark-resilience times the betweenness, cohesion and full
// simulation passes on a synthetic network of configurable size.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/dd0wney/transit-resilience/pkg/algorithms"
	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/resilience"
)

func main() {
	lines := flag.Int("lines", 40, "Number of synthetic lines")
	stops := flag.Int("stops", 25, "Stops per line")
	stations := flag.Int("stations", 600, "Size of the station pool lines draw from")
	budget := flag.Int("budget", 20, "Removals per simulation run")
	seed := flag.Uint64("seed", 1, "Seed of the network generator")
	flag.Parse()

	fmt.Printf("Transit Resilience - Algorithm Benchmark\n")
	fmt.Printf("========================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Lines:    %d\n", *lines)
	fmt.Printf("  Stops:    %d per line\n", *stops)
	fmt.Printf("  Stations: %d in pool\n", *stations)
	fmt.Printf("  Budget:   %d removals\n\n", *budget)

	start := time.Now()
	network := graph.BuildNetwork(syntheticTrips(*lines, *stops, *stations, *seed))
	stats := network.GetStatistics()
	fmt.Printf("Built network: %d stations, %d links in %v\n", stats.NodeCount, stats.EdgeCount, time.Since(start))

	// Benchmark 1: Betweenness at increasing worker counts
	fmt.Printf("\nBenchmark 1: Betweenness Centrality\n")
	var baseline time.Duration
	for _, workers := range workerCounts() {
		start = time.Now()
		top, err := algorithms.TopByBetweennessWithOptions(network, 3, algorithms.CentralityOptions{Workers: workers})
		if err != nil {
			log.Fatalf("Betweenness failed: %v", err)
		}
		duration := time.Since(start)
		if baseline == 0 {
			baseline = duration
		}
		if len(top) == 0 {
			fmt.Printf("  %2d workers: %v (empty network)\n", workers, duration)
			continue
		}
		fmt.Printf("  %2d workers: %v (speedup %.2fx), top station %s (%.1f)\n",
			workers, duration, float64(baseline)/float64(duration), top[0].NodeID, top[0].Score)
	}

	// Benchmark 2: Cohesion indices
	fmt.Printf("\nBenchmark 2: Cohesion\n")
	start = time.Now()
	cohesion, err := algorithms.Cohesion(network)
	if err != nil {
		log.Fatalf("Cohesion failed: %v", err)
	}
	fmt.Printf("  Completed in %v\n", time.Since(start))
	fmt.Printf("  Wiener: %.0f, Randić: %.3f, components: %d\n",
		cohesion.Wiener, cohesion.Randic, cohesion.Components)

	// Benchmark 3: Full simulations
	fmt.Printf("\nBenchmark 3: Simulation (%d removals)\n", *budget)
	sim := resilience.NewSimulator(resilience.WithSeed(*seed))
	for _, strategy := range resilience.Strategies {
		res, err := sim.Run(network, *budget, strategy)
		if err != nil {
			log.Fatalf("%s simulation failed: %v", strategy, err)
		}
		fmt.Printf("  %-8s %v, %v per step, final components %d\n",
			strategy, res.Duration, res.Duration/time.Duration(max(len(res.Snapshots), 1)), res.FinalComponents)
	}

	fmt.Printf("\nBenchmark complete!\n")
}

// syntheticTrips draws each line as a walk over a shared station pool, so
// lines overlap and create interchanges.
func syntheticTrips(lines, stops, stations int, seed uint64) map[string][]graph.NodeID {
	rng := rand.New(rand.NewPCG(seed, seed))
	trips := make(map[string][]graph.NodeID, lines)
	for l := 0; l < lines; l++ {
		seq := make([]graph.NodeID, stops)
		for s := range seq {
			seq[s] = graph.NodeID(fmt.Sprintf("S%05d", rng.IntN(max(stations, 1))))
		}
		trips[fmt.Sprintf("L%03d", l)] = seq
	}
	return trips
}

func workerCounts() []int {
	counts := []int{1}
	for w := 2; w <= runtime.GOMAXPROCS(0); w *= 2 {
		counts = append(counts, w)
	}
	return counts
}
