package resilience

import (
	"fmt"
	"strings"
)

// Strategy selects which station fails next.
type Strategy int

const (
	// Targeted removes the node with the highest betweenness centrality.
	Targeted Strategy = iota
	// Random removes a uniformly drawn remaining node.
	Random
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{Targeted, Random}

// String returns the strategy's label as used in logs and metrics.
func (s Strategy) String() string {
	switch s {
	case Targeted:
		return "targeted"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == Targeted || s == Random
}

// ParseStrategy converts a case-insensitive name to a Strategy. "attack" is
// accepted as an alias for targeted.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "targeted", "attack":
		return Targeted, nil
	case "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, name)
	}
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrInvalidInput, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a strategy name.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
