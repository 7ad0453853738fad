package main

import (
	"encoding/json"
	"fmt"

	"github.com/smallnest/podcastgraph/graph"
	"github.com/smallnest/podcastgraph/podcast"
	"github.com/spf13/cobra"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var (
		input     podcast.Input
		outputDir string
		provider  string
		notes     bool
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Research, script and voice a podcast episode",
		Example: `  podcaster create --topic "quantum error correction"
  podcaster create --video https://www.youtube.com/watch?v=abc --duration 3 --notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := podcast.Validate(input.State()); err != nil {
				return err
			}

			flagOverrides := map[string]any{}
			if outputDir != "" {
				flagOverrides["output_dir"] = outputDir
			}
			cfg, err := ctx.configuration(flagOverrides)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			gen, err := ctx.newGenerator(cmd.Context(), cfg, provider, logger)
			if err != nil {
				return err
			}

			cps, closeStore, err := ctx.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			stages := &podcast.Stages{
				Config:    cfg,
				Generator: gen,
				Logger:    logger,
			}
			opts := []podcast.Option{
				podcast.WithLogger(logger),
				podcast.WithListener(graph.NewLoggingListener[podcast.State](logger)),
			}
			if jsonOut {
				// Keep stdout for the JSON document.
				stages.Display = podcast.NewDisplay(cmd.ErrOrStderr())
			} else {
				stages.Display = podcast.NewDisplay(cmd.OutOrStdout())
			}
			if cps != nil {
				opts = append(opts, podcast.WithCheckpointStore(cps))
			}

			p, err := podcast.NewPipeline(stages, opts...)
			if err != nil {
				return err
			}
			res, err := p.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			if notes {
				mdPath, htmlPath, err := podcast.WriteShowNotes(res.State)
				if err != nil {
					return err
				}
				logger.Info("show notes written to %s and %s", mdPath, htmlPath)
			}

			out := res.State.Output()
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					RunID string `json:"run_id"`
					podcast.Output
				}{res.RunID, out})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "\nRun:         %s\n", res.RunID)
			fmt.Fprintf(w, "Title:       %s\n", out.PodcastTitle)
			fmt.Fprintf(w, "Audio:       %s\n", out.PodcastAudioFilename)
			fmt.Fprintf(w, "Duration:    %s\n", out.DurationEstimate)
			fmt.Fprintf(w, "Topics:      %v\n", out.TopicsCovered)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Topic, "topic", "t", "", "Topic to research")
	cmd.Flags().StringVarP(&input.VideoURL, "video", "v", "", "Video URL to analyze")
	cmd.Flags().IntVarP(&input.DurationMinutes, "duration", "d", 0, "Target episode length in minutes (default from configuration)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated audio")
	cmd.Flags().StringVar(&provider, "synthesis-provider", "gemini", "Provider for synthesis, metadata and script calls (gemini, openai)")
	cmd.Flags().BoolVar(&notes, "notes", false, "Write markdown and HTML show notes next to the audio")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")

	return cmd
}
