package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrSelfLoop     = errors.New("self-loop not allowed in a simple graph")
	ErrEmptyNodeID  = errors.New("empty node ID")
)

// GraphError provides structured error information for graph mutations.
type GraphError struct {
	Op    string // Operation that failed (e.g., "AddEdge", "RemoveNode")
	Node  NodeID // Node involved, if any
	Other NodeID // Second endpoint for edge operations
	Cause error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Other != "" {
		return fmt.Sprintf("%s %q-%q: %v", e.Op, e.Node, e.Other, e.Cause)
	}
	if e.Node != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Node, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
