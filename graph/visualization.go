package graph

import (
	"fmt"
	"strings"
)

// Exporter renders a graph in diagram formats.
type Exporter[S any] struct {
	graph *StateGraph[S]
}

// NewExporter creates a new graph exporter for the given graph
func NewExporter[S any](graph *StateGraph[S]) *Exporter[S] {
	return &Exporter[S]{graph: graph}
}

// MermaidOptions defines configuration for Mermaid diagram generation
type MermaidOptions struct {
	// Direction of the flowchart (e.g., "TD", "LR")
	Direction string
}

// DrawMermaid generates a Mermaid diagram representation of the graph
func (ge *Exporter[S]) DrawMermaid() string {
	return ge.DrawMermaidWithOptions(MermaidOptions{Direction: "TD"})
}

// DrawMermaidWithOptions generates a Mermaid diagram with custom options.
// Conditional transitions are dashed and labelled with their route key.
func (ge *Exporter[S]) DrawMermaidWithOptions(opts MermaidOptions) string {
	var sb strings.Builder

	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}
	fmt.Fprintf(&sb, "flowchart %s\n", direction)
	sb.WriteString("    START([\"START\"])\n")
	for _, node := range ge.graph.Nodes() {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", node.Name, node.Name)
	}
	sb.WriteString("    END([\"END\"])\n")

	for _, t := range ge.graph.Transitions() {
		if t.Conditional {
			fmt.Fprintf(&sb, "    %s -.->|%s| %s\n", t.From, t.Route, t.To)
		} else {
			fmt.Fprintf(&sb, "    %s --> %s\n", t.From, t.To)
		}
	}

	sb.WriteString("    style START fill:#90EE90\n")
	sb.WriteString("    style END fill:#FFB6C1\n")
	return sb.String()
}

// DrawDOT generates a DOT (Graphviz) representation of the graph
func (ge *Exporter[S]) DrawDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    rankdir=TD;\n")
	sb.WriteString("    node [shape=box];\n")
	sb.WriteString("    START [label=\"START\", shape=ellipse, style=filled, fillcolor=lightgreen];\n")
	sb.WriteString("    END [label=\"END\", shape=ellipse, style=filled, fillcolor=lightpink];\n")

	for _, t := range ge.graph.Transitions() {
		if t.Conditional {
			fmt.Fprintf(&sb, "    %s -> %s [style=dashed, label=\"%s\"];\n", t.From, t.To, t.Route)
		} else {
			fmt.Fprintf(&sb, "    %s -> %s;\n", t.From, t.To)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}
