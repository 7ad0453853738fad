// Package podcast turns a topic and/or a video URL into a two-voice podcast
// episode.
//
// The work is split into five stages wired as a state graph:
//
//	START -> research_agent            (topic set)
//	START -> video_analysis_agent      (no topic)
//	research_agent -> video_analysis_agent (video_url set)
//	research_agent -> content_synthesis    (no video_url)
//	video_analysis_agent -> content_synthesis -> metadata_generator -> script_and_audio -> END
//
// Research runs when a topic is given, video analysis when a URL is given;
// an input with neither fails validation before any model is called. Every
// stage prompts a generative model through llms.Generator and returns only the
// fields it produces, which the graph merges into State. The final stage
// writes the synthesized conversation as a WAV file.
//
// Basic usage:
//
//	gen, err := gemini.New(ctx, gemini.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
//	if err != nil {
//		return err
//	}
//	stages := &podcast.Stages{
//		Config:    podcast.ResolveConfiguration(nil),
//		Generator: gen,
//		Display:   podcast.NewDisplay(os.Stdout),
//	}
//	p, err := podcast.NewPipeline(stages)
//	if err != nil {
//		return err
//	}
//	out, err := p.Run(ctx, podcast.Input{Topic: "quantum error correction"})
package podcast
