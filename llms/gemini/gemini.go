// Package gemini implements llms.Generator on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/smallnest/podcastgraph/llms"
	"google.golang.org/genai"
)

var ErrNotSetAuth = errors.New("gemini API key not set")

// modelsAPI is the part of genai.Models the generator calls.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator calls Gemini models through genai.
type Generator struct {
	models modelsAPI
}

var _ llms.Generator = (*Generator)(nil)

// Option is a function that configures a Generator.
type Option func(*options)

type options struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// WithAPIKey sets the API key.
func WithAPIKey(apiKey string) Option {
	return func(opts *options) {
		opts.apiKey = apiKey
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = client
	}
}

// New creates a Generator backed by the Gemini API.
func New(ctx context.Context, opts ...Option) (*Generator, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.apiKey == "" {
		return nil, ErrNotSetAuth
	}

	cfg := &genai.ClientConfig{
		APIKey:     o.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Generator{models: client.Models}, nil
}

// Generate implements llms.Generator.
func (g *Generator) Generate(ctx context.Context, model string, contents []llms.Part, opts llms.Options) (*llms.Response, error) {
	resp, err := g.models.GenerateContent(ctx, model, toContents(contents), toConfig(opts))
	if err != nil {
		return nil, &llms.ServiceError{Model: model, Err: err}
	}
	return fromResponse(resp), nil
}

func toContents(parts []llms.Part) []*genai.Content {
	out := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		switch {
		case p.FileURI != "":
			out = append(out, &genai.Part{FileData: &genai.FileData{FileURI: p.FileURI, MIMEType: p.MIMEType}})
		case p.InlineData != nil:
			out = append(out, &genai.Part{InlineData: &genai.Blob{Data: p.InlineData, MIMEType: p.MIMEType}})
		default:
			out = append(out, &genai.Part{Text: p.Text})
		}
	}
	return []*genai.Content{{Role: genai.RoleUser, Parts: out}}
}

func toConfig(opts llms.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if opts.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*opts.Temperature))
	}
	if opts.GoogleSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if opts.Modality == llms.ModalityAudio {
		cfg.ResponseModalities = []string{string(llms.ModalityAudio)}
	}

	switch len(opts.SpeakerVoices) {
	case 0:
	case 1:
		cfg.SpeechConfig = &genai.SpeechConfig{VoiceConfig: voiceConfig(opts.SpeakerVoices[0].Voice)}
	default:
		speakers := make([]*genai.SpeakerVoiceConfig, 0, len(opts.SpeakerVoices))
		for _, sv := range opts.SpeakerVoices {
			speakers = append(speakers, &genai.SpeakerVoiceConfig{
				Speaker:     sv.Speaker,
				VoiceConfig: voiceConfig(sv.Voice),
			})
		}
		cfg.SpeechConfig = &genai.SpeechConfig{
			MultiSpeakerVoiceConfig: &genai.MultiSpeakerVoiceConfig{SpeakerVoiceConfigs: speakers},
		}
	}
	return cfg
}

func voiceConfig(voice string) *genai.VoiceConfig {
	return &genai.VoiceConfig{
		PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
	}
}

func fromResponse(resp *genai.GenerateContentResponse) *llms.Response {
	out := &llms.Response{}
	if resp == nil {
		return out
	}
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		cand := llms.Candidate{GroundingMetadata: fromGrounding(c.GroundingMetadata)}
		if c.Content != nil {
			for _, p := range c.Content.Parts {
				if p == nil {
					continue
				}
				part := llms.Part{Text: p.Text}
				if p.InlineData != nil {
					part.InlineData = p.InlineData.Data
					part.MIMEType = p.InlineData.MIMEType
				}
				if p.FileData != nil {
					part.FileURI = p.FileData.FileURI
					part.MIMEType = p.FileData.MIMEType
				}
				cand.Parts = append(cand.Parts, part)
			}
		}
		out.Candidates = append(out.Candidates, cand)
	}
	return out
}

func fromGrounding(gm *genai.GroundingMetadata) *llms.GroundingMetadata {
	if gm == nil {
		return nil
	}
	out := &llms.GroundingMetadata{}
	for _, ch := range gm.GroundingChunks {
		chunk := llms.GroundingChunk{}
		if ch != nil && ch.Web != nil {
			chunk.Web = &llms.WebSource{Title: ch.Web.Title, URI: ch.Web.URI}
		}
		out.Chunks = append(out.Chunks, chunk)
	}
	for _, s := range gm.GroundingSupports {
		if s == nil {
			continue
		}
		support := llms.GroundingSupport{}
		if s.Segment != nil {
			support.SegmentText = s.Segment.Text
		}
		for _, idx := range s.GroundingChunkIndices {
			support.ChunkIndices = append(support.ChunkIndices, int(idx))
		}
		out.Supports = append(out.Supports, support)
	}
	return out
}
