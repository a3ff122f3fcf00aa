// Package config loads resilience run settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/transit-resilience/pkg/logging"
	"github.com/dd0wney/transit-resilience/pkg/resilience"
	"github.com/dd0wney/transit-resilience/pkg/validation"
)

// Default configuration values
const (
	DefaultRandomTrials = 1
	DefaultTopStations  = 10
	DefaultLogLevel     = "info"
)

// ErrConfigFile wraps failures to read or decode a configuration file.
var ErrConfigFile = errors.New("config file")

// Config is the complete configuration of a resilience run.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Report     ReportConfig     `yaml:"report"`
}

// SimulationConfig controls the removal experiment.
type SimulationConfig struct {
	// RemovalFraction sizes the budget as a share of the station count
	// when Budget is unset.
	RemovalFraction float64 `yaml:"removal_fraction"`

	// Budget, when set, is the exact number of removal iterations.
	Budget *int `yaml:"budget,omitempty"`

	// Seed drives the random strategy; zero picks an unseeded source.
	Seed uint64 `yaml:"seed"`

	// Workers bounds the goroutines of each betweenness pass (0 = GOMAXPROCS).
	Workers int `yaml:"workers"`

	// RandomTrials is the number of seeded random runs averaged in the report.
	RandomTrials int `yaml:"random_trials"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ReportConfig shapes the printed report.
type ReportConfig struct {
	// TopStations is how many of the most central stations are listed.
	TopStations int `yaml:"top_stations"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			RemovalFraction: resilience.DefaultRemovalFraction,
			RandomTrials:    DefaultRandomTrials,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Report:  ReportConfig{TopStations: DefaultTopStations},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", ErrConfigFile, path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up through
// lookup:
//
//	RESILIENCE_REMOVAL_FRACTION, RESILIENCE_BUDGET, RESILIENCE_SEED,
//	RESILIENCE_WORKERS, RESILIENCE_RANDOM_TRIALS, RESILIENCE_TOP_STATIONS,
//	LOG_LEVEL
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup("RESILIENCE_REMOVAL_FRACTION"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		errs = append(errs, envError("RESILIENCE_REMOVAL_FRACTION", err))
		if err == nil {
			c.Simulation.RemovalFraction = f
		}
	}
	if v, ok := lookup("RESILIENCE_BUDGET"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		errs = append(errs, envError("RESILIENCE_BUDGET", err))
		if err == nil {
			c.Simulation.Budget = &n
		}
	}
	if v, ok := lookup("RESILIENCE_SEED"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		errs = append(errs, envError("RESILIENCE_SEED", err))
		if err == nil {
			c.Simulation.Seed = n
		}
	}
	setInt(lookup, "RESILIENCE_WORKERS", &c.Simulation.Workers, &errs)
	setInt(lookup, "RESILIENCE_RANDOM_TRIALS", &c.Simulation.RandomTrials, &errs)
	setInt(lookup, "RESILIENCE_TOP_STATIONS", &c.Report.TopStations, &errs)

	if v, ok := lookup("LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}

	return errors.Join(errs...)
}

func setInt(lookup func(string) (string, bool), key string, dst *int, errs *[]error) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	*errs = append(*errs, envError(key, err))
	if err == nil {
		*dst = n
	}
}

func envError(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", validation.ErrInvalidConfig, key, err)
}

// Validate checks every section and reports all violations at once.
func (c *Config) Validate() error {
	budget := 0
	if c.Simulation.Budget != nil {
		budget = *c.Simulation.Budget
	}

	return validation.NewConfigValidator("Config").
		RangeFloat("Simulation.RemovalFraction", c.Simulation.RemovalFraction, 0, 1).
		NonNegative("Simulation.Budget", budget).
		RangeInt("Simulation.Workers", c.Simulation.Workers, 0, validation.MaxWorkers).
		RangeInt("Simulation.RandomTrials", c.Simulation.RandomTrials, 0, validation.MaxRandomTrials).
		NonNegative("Report.TopStations", c.Report.TopStations).
		OneOf("Logging.Level", c.levelName(), logging.LevelNames).
		Validate()
}

// levelName normalises the configured level; empty means the default.
func (c *Config) levelName() string {
	return validation.DefaultOr(strings.ToLower(strings.TrimSpace(c.Logging.Level)), DefaultLogLevel)
}

// LogLevel returns the parsed logging level. Validate guarantees it parses.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.levelName())
}

// RunRequest converts the simulation section for boundary validation.
func (c *Config) RunRequest() *validation.RunRequest {
	return &validation.RunRequest{
		RemovalFraction: c.Simulation.RemovalFraction,
		Budget:          c.Simulation.Budget,
		Workers:         c.Simulation.Workers,
		RandomTrials:    c.Simulation.RandomTrials,
	}
}

// ResolveBudget returns the explicit budget, or the fraction of nodes.
func (c *Config) ResolveBudget(nodes int) (int, error) {
	if c.Simulation.Budget != nil {
		return *c.Simulation.Budget, nil
	}
	return resilience.BudgetForFraction(nodes, c.Simulation.RemovalFraction)
}

// EnsembleSeed returns the first seed of the random-trial ensemble. A seeded
// run starts one past Seed so no trial repeats the compared random run; an
// unseeded run draws a fresh base so the ensemble varies between runs too.
func (c *Config) EnsembleSeed() uint64 {
	if c.Simulation.Seed != 0 {
		return c.Simulation.Seed + 1
	}
	return rand.Uint64()
}

// SimulatorOptions translates the simulation section into simulator options.
func (c *Config) SimulatorOptions() []resilience.Option {
	opts := []resilience.Option{resilience.WithCentralityWorkers(c.Simulation.Workers)}
	if c.Simulation.Seed != 0 {
		opts = append(opts, resilience.WithSeed(c.Simulation.Seed))
	}
	return opts
}
