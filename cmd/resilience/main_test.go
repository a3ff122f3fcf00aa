package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/validation"
)

const sampleTrips = `
red: [R1, R2, X, R3, R4]
blue: [B1, B2, X, B3]
loop: [R4, B3]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseTrips(t *testing.T) {
	trips, err := parseTrips([]byte(sampleTrips))
	require.NoError(t, err)

	require.Len(t, trips, 3)
	assert.Equal(t, []graph.NodeID{"B1", "B2", "X", "B3"}, trips["blue"])
}

func TestParseTrips_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":  "red: [R1, R2",
		"empty stop": "red: [R1, '', R2]",
		"no stops":   "red: []",
		"not a map":  "- R1\n- R2\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseTrips([]byte(body))
			assert.ErrorIs(t, err, validation.ErrInvalidTrip)
		})
	}
}

func TestLoadTrips_MissingFile(t *testing.T) {
	_, err := loadTrips(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-trips", "t.yaml", "-budget", "3", "-seed", "7"})
	require.NoError(t, err)

	assert.Equal(t, "t.yaml", opts.tripsPath)
	assert.True(t, opts.set["budget"])
	assert.True(t, opts.set["seed"])
	assert.False(t, opts.set["fraction"])

	_, err = parseFlags(nil)
	assert.Error(t, err, "-trips is required")
}

func TestRun_Table(t *testing.T) {
	tripsPath := writeFile(t, "trips.yaml", sampleTrips)
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")
	opts, err := parseFlags([]string{"-trips", tripsPath, "-budget", "2", "-seed", "5",
		"-trials", "4", "-metrics-file", metricsPath})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Removal of 2 stations")
	assert.Contains(t, out, "targeted removals: X")
	assert.Contains(t, out, "Random ensemble (4 runs)")
	assert.Contains(t, stderr.String(), `"msg":"simulation finished"`)

	metricsText, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(metricsText), "resilience_simulations_total"))
}

func TestRun_JSON(t *testing.T) {
	tripsPath := writeFile(t, "trips.yaml", sampleTrips)
	configPath := writeFile(t, "config.yaml", "simulation:\n  removal_fraction: 0.5\n  seed: 3\nlogging:\n  level: error\n")
	opts, err := parseFlags([]string{"-trips", tripsPath, "-config", configPath, "-json"})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout, &stderr))

	var decoded struct {
		Budget  int `json:"budget"`
		Network struct {
			Stations int `json:"stations"`
		} `json:"network"`
		Targeted struct {
			Removed []string `json:"removed"`
		} `json:"targeted"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, 8, decoded.Network.Stations)
	assert.Equal(t, 4, decoded.Budget)
	assert.Len(t, decoded.Targeted.Removed, 4)
	assert.Empty(t, stderr.String())
}

func TestRun_InvalidFraction(t *testing.T) {
	tripsPath := writeFile(t, "trips.yaml", sampleTrips)
	opts, err := parseFlags([]string{"-trips", tripsPath, "-fraction", "2"})
	require.NoError(t, err)

	err = run(context.Background(), opts, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, validation.ErrInvalidConfig)
}
