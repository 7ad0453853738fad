// Package graph provides a small typed state-graph engine.
//
// A StateGraph is a set of named nodes joined by static edges and conditional
// edges. Each node receives the current state and returns an update; a reducer
// merges the update into the state before the next route is chosen. Routers
// may fail, which lets an input check at START reject a run before any node
// executes.
//
// Execution is strictly sequential and a node is never visited twice. Compile
// rejects graphs with unknown targets, dangling nodes, or cycles, so the whole
// transition table can be inspected and tested without running anything.
//
// # Example
//
//	g := graph.NewStateGraph[State]()
//	g.AddNode("fetch", "Fetch data", fetch)
//	g.AddNode("summarize", "Summarize data", summarize)
//	g.SetConditionalEntryPoint(route, map[string]string{"fetch": "fetch", "skip": "summarize"})
//	g.AddEdge("fetch", "summarize")
//	g.AddEdge("summarize", graph.END)
//	g.SetReducer(merge)
//
//	runnable, err := g.Compile()
//	if err != nil {
//		return err
//	}
//	final, err := runnable.Invoke(ctx, State{Query: "go"})
//
// # Listeners
//
// NodeListener implementations observe start, complete, error and step
// events. LoggingListener logs them, PathRecorder captures the visiting
// order, and CheckpointListener persists the merged state after each step to
// a store.CheckpointStore.
package graph
