package llms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_FirstPart(t *testing.T) {
	var nilResp *Response
	_, err := nilResp.FirstPart()
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = (&Response{Candidates: []Candidate{{}}}).FirstPart()
	assert.ErrorIs(t, err, ErrNoCandidates)

	part, err := (&Response{Candidates: []Candidate{{Parts: []Part{TextPart("a"), TextPart("b")}}}}).FirstPart()
	require.NoError(t, err)
	assert.Equal(t, "a", part.Text)
}

func TestServiceError_Unwrap(t *testing.T) {
	quota := errors.New("quota exceeded")
	err := error(&ServiceError{Model: "gemini-2.5-flash", Err: quota})

	assert.ErrorIs(t, err, quota)
	assert.Equal(t, "generative service call to gemini-2.5-flash failed: quota exceeded", err.Error())
}

func TestGeneratorFunc(t *testing.T) {
	var gotModel string
	g := GeneratorFunc(func(ctx context.Context, model string, contents []Part, opts Options) (*Response, error) {
		gotModel = model
		return &Response{Candidates: []Candidate{{Parts: contents}}}, nil
	})

	resp, err := g.Generate(context.Background(), "m", []Part{FilePart("https://youtu.be/x", "video/*")}, Options{Temperature: Temperature(0.3)})
	require.NoError(t, err)
	assert.Equal(t, "m", gotModel)
	part, err := resp.FirstPart()
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/x", part.FileURI)
}

func TestRouter(t *testing.T) {
	named := func(name string) Generator {
		return GeneratorFunc(func(ctx context.Context, model string, contents []Part, opts Options) (*Response, error) {
			return &Response{Candidates: []Candidate{{Parts: []Part{TextPart(name)}}}}, nil
		})
	}
	r := &Router{Default: named("default"), Models: map[string]Generator{"gpt-4o-mini": named("openai")}}

	resp, err := r.Generate(context.Background(), "gpt-4o-mini", nil, Options{})
	require.NoError(t, err)
	part, _ := resp.FirstPart()
	assert.Equal(t, "openai", part.Text)

	resp, err = r.Generate(context.Background(), "gemini-2.5-flash-preview-tts", nil, Options{})
	require.NoError(t, err)
	part, _ = resp.FirstPart()
	assert.Equal(t, "default", part.Text)

	_, err = (&Router{}).Generate(context.Background(), "m", nil, Options{})
	assert.ErrorIs(t, err, ErrUnsupported)
}
