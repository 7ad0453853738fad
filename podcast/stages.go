package podcast

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallnest/podcastgraph/llms"
	"github.com/smallnest/podcastgraph/log"
)

const (
	noTopicText = "No research topic provided."
	noVideoText = "No video provided for analysis."

	defaultVideoTopic     = "this video content"
	defaultSynthesisTopic = "the provided content"
	defaultScriptTopic    = "the content"
	defaultTitle          = "Podcast Episode"

	fallbackInsight = "Key insight from content analysis"
)

// ErrNoAudio is returned when the speech response carries no audio bytes.
var ErrNoAudio = errors.New("speech response contained no audio data")

// AudioWriter persists raw PCM as an audio file.
type AudioWriter func(path string, pcm []byte, channels, rate, sampleWidth int) error

// Stages holds the collaborators shared by the pipeline stages. Each stage
// method reads the current state and returns only the fields it produces.
type Stages struct {
	Config    Configuration
	Generator llms.Generator

	// Display is optional; nil prints nothing.
	Display *Display
	// Writer defaults to WriteWAV.
	Writer AudioWriter
	// Logger defaults to the package logger.
	Logger log.Logger
}

func (st *Stages) logger() log.Logger {
	if st.Logger == nil {
		return log.GetDefaultLogger()
	}
	return st.Logger
}

func (st *Stages) writer() AudioWriter {
	if st.Writer == nil {
		return WriteWAV
	}
	return st.Writer
}

func (st *Stages) generateText(ctx context.Context, model string, parts []llms.Part, opts llms.Options) (*llms.Response, string, string, error) {
	resp, err := st.Generator.Generate(ctx, model, parts, opts)
	if err != nil {
		return nil, "", "", err
	}
	text, sources, err := ExtractContent(resp)
	if err != nil {
		return nil, "", "", fmt.Errorf("%s: %w", model, err)
	}
	return resp, text, sources, nil
}

// Research gathers search-grounded material on the topic.
func (st *Stages) Research(ctx context.Context, s State) (State, error) {
	if s.Topic == "" {
		return State{SearchText: noTopicText}, nil
	}
	st.logger().Info("researching %q with %s", s.Topic, st.Config.SearchModel)

	resp, text, sources, err := st.generateText(ctx, st.Config.SearchModel,
		[]llms.Part{llms.TextPart(researchPrompt(s.Topic, st.Config.TargetDurationMinutes))},
		llms.Options{Temperature: llms.Temperature(st.Config.SearchTemperature), GoogleSearch: true})
	if err != nil {
		return State{}, err
	}
	st.Display.Response(text, resp.Candidates[0].GroundingMetadata)

	return State{SearchText: text, SearchSourcesText: sources}, nil
}

// VideoAnalysis asks a multimodal model to analyze the video by URL.
// Any sources in the reply are discarded.
func (st *Stages) VideoAnalysis(ctx context.Context, s State) (State, error) {
	if s.VideoURL == "" {
		return State{VideoText: noVideoText}, nil
	}
	topic := orDefault(s.Topic, defaultVideoTopic)
	st.logger().Info("analyzing video %s with %s", s.VideoURL, st.Config.VideoModel)

	resp, text, _, err := st.generateText(ctx, st.Config.VideoModel, []llms.Part{
		llms.FilePart(s.VideoURL, ""),
		llms.TextPart(videoPrompt(topic, st.Config.TargetDurationMinutes)),
	}, llms.Options{})
	if err != nil {
		return State{}, err
	}
	st.Display.Response(text, resp.Candidates[0].GroundingMetadata)

	return State{VideoText: text}, nil
}

// ContentSynthesis condenses research and video material into a summary and key insights.
func (st *Stages) ContentSynthesis(ctx context.Context, s State) (State, error) {
	topic := orDefault(s.Topic, defaultSynthesisTopic)
	st.logger().Info("synthesizing content about %q", topic)

	_, text, _, err := st.generateText(ctx, st.Config.SynthesisModel,
		[]llms.Part{llms.TextPart(synthesisPrompt(topic, s.SearchText, s.VideoText))},
		llms.Options{Temperature: llms.Temperature(st.Config.SynthesisTemperature)})
	if err != nil {
		return State{}, err
	}

	syn, ok := ParseSynthesis(text)
	if !ok {
		st.logger().Warn("synthesis reply is not structured, using raw text as summary")
		return State{ContentSummary: text, KeyInsights: []string{fallbackInsight}}, nil
	}
	return State{ContentSummary: syn.ContentSummary, KeyInsights: syn.KeyInsights}, nil
}

// MetadataGeneration produces the episode title, description and topic list.
func (st *Stages) MetadataGeneration(ctx context.Context, s State) (State, error) {
	st.logger().Info("generating episode metadata")

	_, text, _, err := st.generateText(ctx, st.Config.SynthesisModel,
		[]llms.Part{llms.TextPart(metadataPrompt(s.Topic, s.ContentSummary, s.KeyInsights, st.Config.TargetDurationMinutes))},
		llms.Options{Temperature: llms.Temperature(st.Config.MetadataTemperature)})
	if err != nil {
		return State{}, err
	}

	md, ok := ParseMetadata(text)
	if !ok {
		st.logger().Warn("metadata reply is not structured, using templated metadata")
		return State{
			PodcastTitle:       "Podcast: " + s.Topic,
			PodcastDescription: "An insightful discussion about " + s.Topic,
			TopicsCovered:      []string{s.Topic},
		}, nil
	}
	return State{PodcastTitle: md.Title, PodcastDescription: md.Description, TopicsCovered: md.TopicsCovered}, nil
}

// ScriptAndAudio writes the two-speaker script, synthesizes it to speech and
// saves the audio as a WAV file under the configured output directory.
func (st *Stages) ScriptAndAudio(ctx context.Context, s State) (State, error) {
	cfg := st.Config
	topic := orDefault(s.Topic, defaultScriptTopic)
	title := orDefault(s.PodcastTitle, defaultTitle)
	minutes := s.DurationMinutes
	if minutes <= 0 {
		minutes = cfg.TargetDurationMinutes
	}

	st.logger().Info("writing %d-minute script for %q", minutes, title)
	_, script, _, err := st.generateText(ctx, cfg.SynthesisModel,
		[]llms.Part{llms.TextPart(scriptPrompt(cfg, topic, s.ContentSummary, s.KeyInsights, minutes))},
		llms.Options{Temperature: llms.Temperature(cfg.ScriptTemperature)})
	if err != nil {
		return State{}, err
	}

	st.logger().Info("synthesizing speech with %s", cfg.TTSModel)
	resp, err := st.Generator.Generate(ctx, cfg.TTSModel,
		[]llms.Part{llms.TextPart(ttsPrompt(cfg, script))},
		llms.Options{
			Modality: llms.ModalityAudio,
			SpeakerVoices: []llms.SpeakerVoice{
				{Speaker: cfg.HostName, Voice: cfg.HostVoice},
				{Speaker: cfg.ExpertName, Voice: cfg.ExpertVoice},
			},
		})
	if err != nil {
		return State{}, err
	}
	part, err := resp.FirstPart()
	if err != nil {
		return State{}, fmt.Errorf("%s: %w", cfg.TTSModel, err)
	}
	if len(part.InlineData) == 0 {
		return State{}, ErrNoAudio
	}

	path := AudioPath(cfg.OutputDir, title)
	if err := st.writer()(path, part.InlineData, cfg.TTSChannels, cfg.TTSRate, cfg.TTSSampleWidth); err != nil {
		return State{}, err
	}
	st.Display.AudioSaved(path)

	return State{
		PodcastScript:        script,
		PodcastAudioFilename: path,
		DurationEstimate:     DurationEstimate(script),
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
