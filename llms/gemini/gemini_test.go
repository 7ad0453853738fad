package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/smallnest/podcastgraph/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background())
	assert.ErrorIs(t, err, ErrNotSetAuth)
}

func TestGenerate_SearchGroundedText(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "findings"}}},
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{Title: "T", URI: "U"}},
					{},
				},
				GroundingSupports: []*genai.GroundingSupport{{
					Segment:               &genai.Segment{Text: "claim"},
					GroundingChunkIndices: []int32{0, 1},
				}},
			},
		}},
	}}
	g := &Generator{models: fake}

	resp, err := g.Generate(context.Background(), "gemini-2.5-flash",
		[]llms.Part{llms.TextPart("research go")},
		llms.Options{Temperature: llms.Temperature(0), GoogleSearch: true})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", fake.model)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "research go", fake.contents[0].Parts[0].Text)
	require.NotNil(t, fake.config.Temperature)
	assert.Equal(t, float32(0), *fake.config.Temperature)
	require.Len(t, fake.config.Tools, 1)
	assert.NotNil(t, fake.config.Tools[0].GoogleSearch)
	assert.Nil(t, fake.config.SpeechConfig)

	require.Len(t, resp.Candidates, 1)
	cand := resp.Candidates[0]
	assert.Equal(t, "findings", cand.Parts[0].Text)
	require.NotNil(t, cand.GroundingMetadata)
	require.Len(t, cand.GroundingMetadata.Chunks, 2)
	assert.Equal(t, &llms.WebSource{Title: "T", URI: "U"}, cand.GroundingMetadata.Chunks[0].Web)
	assert.Nil(t, cand.GroundingMetadata.Chunks[1].Web)
	assert.Equal(t, []llms.GroundingSupport{{SegmentText: "claim", ChunkIndices: []int{0, 1}}}, cand.GroundingMetadata.Supports)
}

func TestGenerate_VideoReference(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{}}
	g := &Generator{models: fake}

	_, err := g.Generate(context.Background(), "gemini-2.5-flash", []llms.Part{
		llms.FilePart("https://www.youtube.com/watch?v=abc", ""),
		llms.TextPart("analyze"),
	}, llms.Options{})
	require.NoError(t, err)

	parts := fake.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].FileData)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", parts[0].FileData.FileURI)
	assert.Equal(t, "analyze", parts[1].Text)
	assert.Nil(t, fake.config.Temperature)
	assert.Empty(t, fake.config.Tools)
}

func TestGenerate_MultiSpeakerAudio(t *testing.T) {
	pcm := []byte{1, 0, 2, 0}
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{Data: pcm, MIMEType: "audio/L16;rate=24000"}}}},
		}},
	}}
	g := &Generator{models: fake}

	resp, err := g.Generate(context.Background(), "gemini-2.5-flash-preview-tts",
		[]llms.Part{llms.TextPart("Alex: hi\nSam: hello")},
		llms.Options{
			Modality: llms.ModalityAudio,
			SpeakerVoices: []llms.SpeakerVoice{
				{Speaker: "Alex", Voice: "Kore"},
				{Speaker: "Sam", Voice: "Puck"},
			},
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"AUDIO"}, fake.config.ResponseModalities)
	require.NotNil(t, fake.config.SpeechConfig)
	multi := fake.config.SpeechConfig.MultiSpeakerVoiceConfig
	require.NotNil(t, multi)
	require.Len(t, multi.SpeakerVoiceConfigs, 2)
	assert.Equal(t, "Alex", multi.SpeakerVoiceConfigs[0].Speaker)
	assert.Equal(t, "Kore", multi.SpeakerVoiceConfigs[0].VoiceConfig.PrebuiltVoiceConfig.VoiceName)
	assert.Equal(t, "Sam", multi.SpeakerVoiceConfigs[1].Speaker)
	assert.Equal(t, "Puck", multi.SpeakerVoiceConfigs[1].VoiceConfig.PrebuiltVoiceConfig.VoiceName)

	part, err := resp.FirstPart()
	require.NoError(t, err)
	assert.Equal(t, pcm, part.InlineData)
	assert.Equal(t, "audio/L16;rate=24000", part.MIMEType)
}

func TestGenerate_SingleSpeaker(t *testing.T) {
	fake := &fakeModels{resp: &genai.GenerateContentResponse{}}
	g := &Generator{models: fake}

	_, err := g.Generate(context.Background(), "tts", []llms.Part{llms.TextPart("hi")},
		llms.Options{Modality: llms.ModalityAudio, SpeakerVoices: []llms.SpeakerVoice{{Speaker: "Alex", Voice: "Kore"}}})
	require.NoError(t, err)

	require.NotNil(t, fake.config.SpeechConfig)
	assert.Nil(t, fake.config.SpeechConfig.MultiSpeakerVoiceConfig)
	assert.Equal(t, "Kore", fake.config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestGenerate_ServiceError(t *testing.T) {
	quota := errors.New("429 RESOURCE_EXHAUSTED")
	g := &Generator{models: &fakeModels{err: quota}}

	_, err := g.Generate(context.Background(), "gemini-2.5-flash", []llms.Part{llms.TextPart("x")}, llms.Options{})
	require.ErrorIs(t, err, quota)

	var svcErr *llms.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "gemini-2.5-flash", svcErr.Model)
}
