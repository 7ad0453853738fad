package graph

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"
)

// StateGraph represents a generic state-based graph with compile-time type safety.
// The type parameter S represents the state type, which is typically a struct.
//
// Nodes return an update rather than a full state; the reducer merges each
// update into the running state before the next routing decision is made.
//
// Example usage:
//
//	g := graph.NewStateGraph[MyState]()
//	g.AddNode("increment", "Increment counter", func(ctx context.Context, state MyState) (MyState, error) {
//	    return MyState{Count: state.Count + 1}, nil
//	})
type StateGraph[S any] struct {
	nodes map[string]Node[S]

	// order keeps node insertion order for deterministic exports
	order []string

	edges []Edge

	// conditionalEdges maps a "From" node to its router; START is allowed as a key
	conditionalEdges map[string]conditionalEdge[S]

	entryPoint string

	reducer func(current, update S) S
}

// NewStateGraph creates a new instance of StateGraph with type safety.
func NewStateGraph[S any]() *StateGraph[S] {
	return &StateGraph[S]{
		nodes:            make(map[string]Node[S]),
		conditionalEdges: make(map[string]conditionalEdge[S]),
	}
}

// AddNode adds a new node to the state graph with the given name, description and function.
func (g *StateGraph[S]) AddNode(name string, description string, fn func(ctx context.Context, state S) (S, error)) {
	if _, exists := g.nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.nodes[name] = Node[S]{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds a new edge to the state graph between the "from" and "to" nodes.
func (g *StateGraph[S]) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// AddConditionalEdge adds a conditional edge where the target node is determined at runtime.
// The router returns a route key which pathMap translates into a node name. A nil
// pathMap means the router returns node names directly.
//
// Example:
//
//	g.AddConditionalEdge("check", func(ctx context.Context, s MyState) (string, error) {
//	    if s.Count > 10 {
//	        return "high", nil
//	    }
//	    return "low", nil
//	}, map[string]string{"high": "big", "low": "small"})
func (g *StateGraph[S]) AddConditionalEdge(from string, router Router[S], pathMap map[string]string) {
	g.conditionalEdges[from] = conditionalEdge[S]{
		router:  router,
		pathMap: maps.Clone(pathMap),
	}
}

// SetEntryPoint sets the entry point node name for the state graph.
func (g *StateGraph[S]) SetEntryPoint(name string) {
	g.entryPoint = name
}

// SetConditionalEntryPoint routes from START with a router instead of a fixed entry node.
// A router error rejects the input before any node runs.
func (g *StateGraph[S]) SetConditionalEntryPoint(router Router[S], pathMap map[string]string) {
	g.entryPoint = START
	g.AddConditionalEdge(START, router, pathMap)
}

// SetReducer sets the function that merges a node update into the current state.
// Without a reducer the update replaces the state.
func (g *StateGraph[S]) SetReducer(reducer func(current, update S) S) {
	g.reducer = reducer
}

// Nodes returns the nodes in insertion order.
func (g *StateGraph[S]) Nodes() []Node[S] {
	out := make([]Node[S], 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// Transitions enumerates every possible transition, including those from START.
// The table can be inspected without executing any node.
func (g *StateGraph[S]) Transitions() []Transition {
	var out []Transition
	if g.entryPoint != "" && g.entryPoint != START {
		out = append(out, Transition{From: START, To: g.entryPoint})
	}
	froms := slices.Sorted(maps.Keys(g.conditionalEdges))
	if i := slices.Index(froms, START); i > 0 {
		froms = append([]string{START}, slices.Delete(froms, i, i+1)...)
	}
	for _, from := range froms {
		ce := g.conditionalEdges[from]
		for _, key := range sortedKeys(ce.pathMap) {
			out = append(out, Transition{From: from, To: ce.pathMap[key], Conditional: true, Route: key})
		}
	}
	for _, e := range g.edges {
		out = append(out, Transition{From: e.From, To: e.To})
	}
	return out
}

// successors returns the statically known successors of a node.
func (g *StateGraph[S]) successors(name string) []string {
	if ce, ok := g.conditionalEdges[name]; ok {
		return ce.targets()
	}
	var out []string
	for _, e := range g.edges {
		if e.From == name {
			out = append(out, e.To)
		}
	}
	return out
}

func (g *StateGraph[S]) validate() error {
	if g.entryPoint == "" {
		return ErrEntryPointNotSet
	}
	exists := func(name string) bool {
		if name == END {
			return true
		}
		_, ok := g.nodes[name]
		return ok
	}
	if g.entryPoint != START && !exists(g.entryPoint) {
		return fmt.Errorf("%w: entry point %s", ErrNodeNotFound, g.entryPoint)
	}
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return fmt.Errorf("%w: edge source %s", ErrNodeNotFound, e.From)
		}
		if !exists(e.To) {
			return fmt.Errorf("%w: edge target %s", ErrNodeNotFound, e.To)
		}
	}
	for from, ce := range g.conditionalEdges {
		if _, ok := g.nodes[from]; !ok && from != START {
			return fmt.Errorf("%w: conditional edge source %s", ErrNodeNotFound, from)
		}
		for _, to := range ce.targets() {
			if !exists(to) {
				return fmt.Errorf("%w: conditional edge target %s", ErrNodeNotFound, to)
			}
		}
	}
	for _, name := range g.order {
		_, conditional := g.conditionalEdges[name]
		if !conditional && len(g.successors(name)) == 0 {
			return fmt.Errorf("%w: %s", ErrNoOutgoingEdge, name)
		}
	}
	return g.checkAcyclic()
}

// checkAcyclic walks the static transition graph depth first.
func (g *StateGraph[S]) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	marks := make(map[string]int, len(g.nodes))
	var visit func(name string) error
	visit = func(name string) error {
		if name == END {
			return nil
		}
		switch marks[name] {
		case visiting:
			return fmt.Errorf("%w: at %s", ErrCycleDetected, name)
		case done:
			return nil
		}
		marks[name] = visiting
		for _, next := range g.successors(name) {
			if err := visit(next); err != nil {
				return err
			}
		}
		marks[name] = done
		return nil
	}
	if g.entryPoint == START {
		return visit(START)
	}
	return visit(g.entryPoint)
}

// Compile validates the state graph and returns a StateRunnable instance.
func (g *StateGraph[S]) Compile() (*StateRunnable[S], error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &StateRunnable[S]{graph: g}, nil
}

// StateRunnable represents a compiled state graph that can be invoked with type safety.
type StateRunnable[S any] struct {
	graph     *StateGraph[S]
	listeners []NodeListener[S]
}

// AddListener registers a listener notified around every node execution.
func (r *StateRunnable[S]) AddListener(listener NodeListener[S]) *StateRunnable[S] {
	r.listeners = append(r.listeners, listener)
	return r
}

// WithListeners returns a copy of the runnable with extra listeners appended.
// The receiver is left untouched so a shared runnable can serve concurrent runs.
func (r *StateRunnable[S]) WithListeners(listeners ...NodeListener[S]) *StateRunnable[S] {
	return &StateRunnable[S]{
		graph:     r.graph,
		listeners: append(slices.Clone(r.listeners), listeners...),
	}
}

// Graph returns the graph the runnable was compiled from.
func (r *StateRunnable[S]) Graph() *StateGraph[S] {
	return r.graph
}

// Invoke executes the compiled state graph with the given input state.
// Nodes run one at a time; each update is merged into the state before the
// next route is chosen. The first error aborts the run.
func (r *StateRunnable[S]) Invoke(ctx context.Context, initialState S) (S, error) {
	state := initialState
	var zero S

	current, err := r.next(ctx, START, state)
	if err != nil {
		return zero, err
	}

	visited := make(map[string]bool, len(r.graph.nodes))
	for current != END {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if visited[current] {
			return zero, fmt.Errorf("%w: %s visited twice", ErrCycleDetected, current)
		}
		visited[current] = true

		node, ok := r.graph.nodes[current]
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrNodeNotFound, current)
		}

		update, err := r.runNode(ctx, node, state)
		if err != nil {
			return zero, &NodeError{Node: node.Name, Err: err}
		}
		state = r.merge(state, update)
		r.notify(ctx, NodeEventStep, node.Name, state, nil, 0)

		current, err = r.next(ctx, node.Name, state)
		if err != nil {
			return zero, err
		}
	}

	return state, nil
}

func (r *StateRunnable[S]) runNode(ctx context.Context, node Node[S], state S) (S, error) {
	r.notify(ctx, NodeEventStart, node.Name, state, nil, 0)
	start := time.Now()
	update, err := node.Function(ctx, state)
	elapsed := time.Since(start)
	if err != nil {
		r.notify(ctx, NodeEventError, node.Name, state, err, elapsed)
		return update, err
	}
	r.notify(ctx, NodeEventComplete, node.Name, update, nil, elapsed)
	return update, nil
}

func (r *StateRunnable[S]) merge(current, update S) S {
	if r.graph.reducer == nil {
		return update
	}
	return r.graph.reducer(current, update)
}

// next determines the node that follows from, which may be START.
func (r *StateRunnable[S]) next(ctx context.Context, from string, state S) (string, error) {
	if ce, ok := r.graph.conditionalEdges[from]; ok {
		return ce.resolve(ctx, from, state)
	}
	if from == START {
		return r.graph.entryPoint, nil
	}
	for _, e := range r.graph.edges {
		if e.From == from {
			return e.To, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoOutgoingEdge, from)
}

func (r *StateRunnable[S]) notify(ctx context.Context, event NodeEvent, name string, state S, err error, elapsed time.Duration) {
	for _, l := range r.listeners {
		l.OnNodeEvent(ctx, NodeEventInfo[S]{
			Event:    event,
			NodeName: name,
			State:    state,
			Error:    err,
			Duration: elapsed,
		})
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
