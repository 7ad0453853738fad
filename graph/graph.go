package graph

import (
	"context"
	"errors"
	"fmt"
)

const (
	// START is the virtual node that precedes the entry point.
	START = "START"

	// END is a special constant used to represent the end node in the graph.
	END = "END"
)

var (
	// ErrEntryPointNotSet is returned when the entry point of the graph is not set.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrNodeNotFound is returned when a node is not found in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoOutgoingEdge is returned when no outgoing edge is found for a node.
	ErrNoOutgoingEdge = errors.New("no outgoing edge found for node")

	// ErrUnknownRoute is returned when a router yields a key missing from its path map.
	ErrUnknownRoute = errors.New("router returned unknown route")

	// ErrCycleDetected is returned when the graph would revisit a node.
	ErrCycleDetected = errors.New("cycle detected")
)

// Node represents a node in the graph.
type Node[S any] struct {
	// Name is the unique identifier for the node.
	Name string

	// Description describes the functionality of the node.
	Description string

	// Function receives the current state and returns the update produced by the node.
	Function func(ctx context.Context, state S) (S, error)
}

// Edge represents an unconditional edge in the graph.
type Edge struct {
	From string
	To   string
}

// Router decides which route to take from a node based on the current state.
// A non-nil error aborts the run before the next node executes.
type Router[S any] func(ctx context.Context, state S) (string, error)

// conditionalEdge couples a router with the mapping from route keys to node names.
type conditionalEdge[S any] struct {
	router  Router[S]
	pathMap map[string]string
}

func (c conditionalEdge[S]) resolve(ctx context.Context, from string, state S) (string, error) {
	key, err := c.router(ctx, state)
	if err != nil {
		return "", err
	}
	if c.pathMap == nil {
		if key == "" {
			return "", fmt.Errorf("%w: empty route from %s", ErrUnknownRoute, from)
		}
		return key, nil
	}
	target, ok := c.pathMap[key]
	if !ok {
		return "", fmt.Errorf("%w: %q from %s", ErrUnknownRoute, key, from)
	}
	return target, nil
}

// targets lists every node reachable through this edge, sorted by route key order in the map.
func (c conditionalEdge[S]) targets() []string {
	if c.pathMap == nil {
		return nil
	}
	out := make([]string, 0, len(c.pathMap))
	seen := make(map[string]bool, len(c.pathMap))
	for _, key := range sortedKeys(c.pathMap) {
		to := c.pathMap[key]
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	return out
}

// Transition is one row of the compiled transition table.
type Transition struct {
	From        string
	To          string
	Conditional bool
	// Route is the router key selecting this transition; empty for static edges.
	Route string
}

// NodeError wraps an error returned by a node.
type NodeError struct {
	Node string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("error in node %s: %v", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
