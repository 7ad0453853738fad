package podcast

import (
	"context"
	"strings"
	"sync"

	"github.com/smallnest/podcastgraph/llms"
	"github.com/smallnest/podcastgraph/log"
)

type generateCall struct {
	Model string
	Parts []llms.Part
	Opts  llms.Options
}

func (c generateCall) prompt() string {
	var texts []string
	for _, p := range c.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// fakeGenerator records calls and answers them by recognizing the stage prompt.
// Fields override the canned replies.
type fakeGenerator struct {
	mu    sync.Mutex
	calls []generateCall

	research  *llms.Response
	video     string
	synthesis string
	metadata  string
	script    string
	audio     []byte
	err       error
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{
		research: &llms.Response{Candidates: []llms.Candidate{{
			Parts: []llms.Part{llms.TextPart("research findings")},
			GroundingMetadata: &llms.GroundingMetadata{
				Chunks: []llms.GroundingChunk{{Web: &llms.WebSource{Title: "T", URI: "U"}}},
			},
		}}},
		video:     "video analysis",
		synthesis: `{"content_summary": "summary", "key_insights": ["a", "b"]}`,
		metadata:  `{"title": "AI & the Future!", "description": "desc", "topics_covered": ["ai", "future"]}`,
		script:    "Alex: Welcome to the show.\nSam: Thanks for having me.",
		audio:     []byte{0, 0, 1, 0, 2, 0, 3, 0},
	}
}

func (f *fakeGenerator) Generate(ctx context.Context, model string, contents []llms.Part, opts llms.Options) (*llms.Response, error) {
	call := generateCall{Model: model, Parts: contents, Opts: opts}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.err != nil {
		return nil, &llms.ServiceError{Model: model, Err: f.err}
	}

	prompt := call.prompt()
	switch {
	case opts.Modality == llms.ModalityAudio:
		return &llms.Response{Candidates: []llms.Candidate{{
			Parts: []llms.Part{{InlineData: f.audio, MIMEType: "audio/L16;rate=24000"}},
		}}}, nil
	case strings.HasPrefix(prompt, "Research this topic"):
		return f.research, nil
	case strings.HasPrefix(prompt, "Analyze this video"):
		return textResponse(f.video), nil
	case strings.HasPrefix(prompt, "You are a content synthesizer"):
		return textResponse(f.synthesis), nil
	case strings.HasPrefix(prompt, "Create engaging podcast metadata"):
		return textResponse(f.metadata), nil
	default:
		return textResponse(f.script), nil
	}
}

func (f *fakeGenerator) models() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Model
	}
	return out
}

func textResponse(text string) *llms.Response {
	return &llms.Response{Candidates: []llms.Candidate{{Parts: []llms.Part{llms.TextPart(text)}}}}
}

func testStages(gen llms.Generator, outputDir string) *Stages {
	cfg := DefaultConfiguration()
	cfg.SearchModel = "search-model"
	cfg.VideoModel = "video-model"
	cfg.SynthesisModel = "synthesis-model"
	cfg.TTSModel = "tts-model"
	cfg.OutputDir = outputDir
	return &Stages{Config: cfg, Generator: gen, Logger: log.NoOpLogger{}}
}
