// Package llms defines the contract between the podcast pipeline and a generative service.
//
// A Generator takes a model identifier, a list of content parts and call
// options, and returns candidates made of parts plus optional grounding
// metadata. Implementations live in subpackages (gemini, langchain); tests
// use in-memory fakes.
package llms

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoCandidates is returned when a response carries no content to read.
	ErrNoCandidates = errors.New("response has no candidates")

	// ErrUnsupported is returned when a generator cannot honour a request feature.
	ErrUnsupported = errors.New("unsupported by generator")
)

// Modality selects the kind of output requested from the model.
type Modality string

const (
	ModalityText  Modality = "TEXT"
	ModalityAudio Modality = "AUDIO"
)

// Part is one piece of request or response content. Exactly one of Text,
// InlineData or FileURI is normally set.
type Part struct {
	Text string

	// InlineData holds raw bytes such as PCM audio.
	InlineData []byte
	MIMEType   string

	// FileURI references remote content, such as a video, by URI.
	FileURI string
}

// TextPart creates a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// FilePart creates a part referencing remote content.
func FilePart(uri, mimeType string) Part {
	return Part{FileURI: uri, MIMEType: mimeType}
}

// SpeakerVoice binds a named speaker in a script to a prebuilt voice.
type SpeakerVoice struct {
	Speaker string
	Voice   string
}

// Options configure one Generate call.
type Options struct {
	// Temperature is left to the service default when nil.
	Temperature *float64

	// GoogleSearch enables search grounding.
	GoogleSearch bool

	// Modality defaults to text.
	Modality Modality

	// SpeakerVoices configures multi-speaker speech output.
	SpeakerVoices []SpeakerVoice
}

// Temperature returns a pointer for Options.Temperature.
func Temperature(t float64) *float64 {
	return &t
}

// WebSource is a web page backing a grounded answer.
type WebSource struct {
	Title string
	URI   string
}

// GroundingChunk is one source consulted by the model. Web is nil for non-web sources.
type GroundingChunk struct {
	Web *WebSource
}

// GroundingSupport links a segment of generated text to the chunks backing it.
type GroundingSupport struct {
	SegmentText string
	// ChunkIndices are zero-based indices into GroundingMetadata.Chunks.
	ChunkIndices []int
}

// GroundingMetadata carries the citations attached to a candidate.
type GroundingMetadata struct {
	Chunks   []GroundingChunk
	Supports []GroundingSupport
}

// Candidate is one generated alternative.
type Candidate struct {
	Parts             []Part
	GroundingMetadata *GroundingMetadata
}

// Response is the result of a Generate call.
type Response struct {
	Candidates []Candidate
}

// FirstPart returns the first part of the first candidate.
func (r *Response) FirstPart() (Part, error) {
	if r == nil || len(r.Candidates) == 0 || len(r.Candidates[0].Parts) == 0 {
		return Part{}, ErrNoCandidates
	}
	return r.Candidates[0].Parts[0], nil
}

// Generator is a stateless request/response boundary to a generative service.
type Generator interface {
	Generate(ctx context.Context, model string, contents []Part, opts Options) (*Response, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, model string, contents []Part, opts Options) (*Response, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, model string, contents []Part, opts Options) (*Response, error) {
	return f(ctx, model, contents, opts)
}

// ServiceError wraps a failure reported by the generative service.
// It is never retried; callers treat it as fatal for the run.
type ServiceError struct {
	Model string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generative service call to %s failed: %v", e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Router dispatches each call to the generator registered for its model,
// falling back to Default.
type Router struct {
	Default Generator
	Models  map[string]Generator
}

// Generate implements Generator.
func (r *Router) Generate(ctx context.Context, model string, contents []Part, opts Options) (*Response, error) {
	if g, ok := r.Models[model]; ok {
		return g.Generate(ctx, model, contents, opts)
	}
	if r.Default == nil {
		return nil, fmt.Errorf("no generator for model %s: %w", model, ErrUnsupported)
	}
	return r.Default.Generate(ctx, model, contents, opts)
}
