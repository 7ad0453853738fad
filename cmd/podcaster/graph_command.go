package main

import (
	"fmt"

	"github.com/smallnest/podcastgraph/graph"
	"github.com/smallnest/podcastgraph/podcast"
	"github.com/spf13/cobra"
)

func newGraphCommand() *cobra.Command {
	var format, direction string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the pipeline graph as Mermaid or DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := podcast.NewGraph(&podcast.Stages{})
			if _, err := g.Compile(); err != nil {
				return err
			}
			exporter := graph.NewExporter(g)

			switch format {
			case "mermaid":
				fmt.Fprint(cmd.OutOrStdout(), exporter.DrawMermaidWithOptions(graph.MermaidOptions{Direction: direction}))
			case "dot":
				fmt.Fprint(cmd.OutOrStdout(), exporter.DrawDOT())
			case "table":
				for _, t := range g.Transitions() {
					route := "-"
					if t.Conditional {
						route = t.Route
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-22s %s\n", t.From, t.To, route)
				}
			default:
				return fmt.Errorf("unknown format %q (want mermaid, dot or table)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "mermaid", "Output format: mermaid, dot or table")
	cmd.Flags().StringVar(&direction, "direction", "TD", "Mermaid flowchart direction")
	return cmd
}
