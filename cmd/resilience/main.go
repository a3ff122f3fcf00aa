// Command resilience compares targeted and random station removal on a
// transit network built from a trip file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/transit-resilience/pkg/config"
	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/logging"
	"github.com/dd0wney/transit-resilience/pkg/metrics"
	"github.com/dd0wney/transit-resilience/pkg/report"
	"github.com/dd0wney/transit-resilience/pkg/resilience"
	"github.com/dd0wney/transit-resilience/pkg/validation"
)

// options are the command-line inputs layered over the config file.
type options struct {
	configPath  string
	tripsPath   string
	metricsPath string
	jsonOutput  bool

	fraction float64
	budget   int
	seed     uint64
	workers  int
	trials   int
	top      int
	logLevel string

	// set records which of the overridable flags were given explicitly.
	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("resilience", flag.ContinueOnError)
	opts := &options{set: make(map[string]bool)}

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.tripsPath, "trips", "", "YAML file mapping trip ID to its ordered stop list (required)")
	fs.StringVar(&opts.metricsPath, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	fs.BoolVar(&opts.jsonOutput, "json", false, "Print the summary as JSON instead of a table")
	fs.Float64Var(&opts.fraction, "fraction", resilience.DefaultRemovalFraction, "Share of stations to remove")
	fs.IntVar(&opts.budget, "budget", 0, "Exact number of removals (overrides -fraction)")
	fs.Uint64Var(&opts.seed, "seed", 0, "Seed for random removal (0 = unseeded)")
	fs.IntVar(&opts.workers, "workers", 0, "Goroutines per betweenness pass (0 = GOMAXPROCS)")
	fs.IntVar(&opts.trials, "trials", config.DefaultRandomTrials, "Seeded random runs in the ensemble")
	fs.IntVar(&opts.top, "top", config.DefaultTopStations, "Central stations to list")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.tripsPath == "" {
		return nil, errors.New("-trips is required")
	}
	return opts, nil
}

// apply overlays explicitly given flags on cfg.
func (o *options) apply(cfg *config.Config) {
	if o.set["fraction"] {
		cfg.Simulation.RemovalFraction = o.fraction
	}
	if o.set["budget"] {
		budget := o.budget
		cfg.Simulation.Budget = &budget
	}
	if o.set["seed"] {
		cfg.Simulation.Seed = o.seed
	}
	if o.set["workers"] {
		cfg.Simulation.Workers = o.workers
	}
	if o.set["trials"] {
		cfg.Simulation.RandomTrials = o.trials
	}
	if o.set["top"] {
		cfg.Report.TopStations = o.top
	}
	if o.set["log-level"] {
		cfg.Logging.Level = o.logLevel
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateRunRequest(cfg.RunRequest()); err != nil {
		return err
	}

	logger := logging.NewJSONLogger(stderr, cfg.LogLevel())
	reg := metrics.NewRegistry()

	trips, err := loadTrips(opts.tripsPath)
	if err != nil {
		return err
	}

	timer := logging.StartTimer(logger, "network built", logging.Path(opts.tripsPath))
	network := graph.BuildNetwork(trips)
	stats := network.GetStatistics()
	reg.SetNetworkSize(len(trips), stats.NodeCount, stats.EdgeCount)
	timer.End(logging.Int("trips", len(trips)), logging.Nodes(stats.NodeCount), logging.Edges(stats.EdgeCount))

	budget, err := cfg.ResolveBudget(network.NodeCount())
	if err != nil {
		return err
	}

	simOpts := append(cfg.SimulatorOptions(), resilience.WithLogger(logger), resilience.WithMetrics(reg))
	cmp, err := resilience.Compare(ctx, network, budget, resilience.NewSimulator(simOpts...))
	if err != nil {
		return err
	}

	var ensemble []*resilience.Result
	if cfg.Simulation.RandomTrials > 1 {
		ensemble, err = resilience.RandomTrials(ctx, network, budget, cfg.Simulation.RandomTrials,
			cfg.EnsembleSeed(), cfg.Simulation.Workers,
			resilience.WithCentralityWorkers(cfg.Simulation.Workers), resilience.WithMetrics(reg))
		if err != nil {
			return err
		}
	}

	summary, err := report.Build(report.Input{
		Network:      network,
		Trips:        len(trips),
		Comparison:   cmp,
		RandomTrials: ensemble,
		TopStations:  cfg.Report.TopStations,
		Workers:      cfg.Simulation.Workers,
	})
	if err != nil {
		return err
	}

	if opts.metricsPath != "" {
		reg.UpdateSystemMetrics()
		if err := prometheus.WriteToTextfile(opts.metricsPath, reg.GetPrometheusRegistry()); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return report.Render(stdout, summary)
}
