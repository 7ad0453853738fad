// Package langchain adapts any langchaingo model to llms.Generator.
//
// The adapter covers text generation only. Speech output and remote file
// references fail with llms.ErrUnsupported; search grounding is ignored with
// a warning, so responses never carry grounding metadata.
package langchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallnest/podcastgraph/llms"
	"github.com/smallnest/podcastgraph/log"
	lc "github.com/tmc/langchaingo/llms"
)

// Generator wraps a langchaingo model.
type Generator struct {
	model  lc.Model
	logger log.Logger
}

var _ llms.Generator = (*Generator)(nil)

// New creates a Generator around model. A nil logger falls back to the package default.
func New(model lc.Model, logger log.Logger) *Generator {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &Generator{model: model, logger: logger}
}

// Generate implements llms.Generator. The model argument is informational;
// langchaingo models are bound to a model name when constructed.
func (g *Generator) Generate(ctx context.Context, model string, contents []llms.Part, opts llms.Options) (*llms.Response, error) {
	if opts.Modality == llms.ModalityAudio {
		return nil, fmt.Errorf("audio output: %w", llms.ErrUnsupported)
	}
	if opts.GoogleSearch {
		g.logger.Warn("search grounding requested for %s; langchain generator ignores it", model)
	}

	var text []string
	for _, p := range contents {
		if p.FileURI != "" || p.InlineData != nil {
			return nil, fmt.Errorf("non-text content part: %w", llms.ErrUnsupported)
		}
		text = append(text, p.Text)
	}

	var callOpts []lc.CallOption
	if opts.Temperature != nil {
		callOpts = append(callOpts, lc.WithTemperature(*opts.Temperature))
	}

	messages := []lc.MessageContent{lc.TextParts(lc.ChatMessageTypeHuman, strings.Join(text, "\n\n"))}
	resp, err := g.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, &llms.ServiceError{Model: model, Err: err}
	}

	out := &llms.Response{}
	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		out.Candidates = append(out.Candidates, llms.Candidate{
			Parts: []llms.Part{llms.TextPart(choice.Content)},
		})
	}
	return out, nil
}
