package podcast

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallnest/podcastgraph/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResearch_NoTopic(t *testing.T) {
	gen := newFakeGenerator()
	st := testStages(gen, t.TempDir())

	update, err := st.Research(context.Background(), State{VideoURL: "https://youtu.be/x"})
	require.NoError(t, err)
	assert.Equal(t, State{SearchText: "No research topic provided."}, update)
	assert.Empty(t, gen.calls)
}

func TestResearch_SearchGrounded(t *testing.T) {
	gen := newFakeGenerator()
	st := testStages(gen, t.TempDir())
	var out bytes.Buffer
	st.Display = NewDisplay(&out)

	update, err := st.Research(context.Background(), State{Topic: "solid state batteries"})
	require.NoError(t, err)
	assert.Equal(t, "research findings", update.SearchText)
	assert.Equal(t, "1. T\n   U", update.SearchSourcesText)

	require.Len(t, gen.calls, 1)
	call := gen.calls[0]
	assert.Equal(t, "search-model", call.Model)
	assert.True(t, call.Opts.GoogleSearch)
	require.NotNil(t, call.Opts.Temperature)
	assert.Equal(t, 0.0, *call.Opts.Temperature)
	assert.Contains(t, call.prompt(), "solid state batteries")
	assert.Contains(t, call.prompt(), "6. Real-world examples or case studies")

	assert.Contains(t, out.String(), "References & Sources")
}

func TestVideoAnalysis(t *testing.T) {
	t.Run("no video", func(t *testing.T) {
		gen := newFakeGenerator()
		update, err := testStages(gen, t.TempDir()).VideoAnalysis(context.Background(), State{Topic: "x"})
		require.NoError(t, err)
		assert.Equal(t, State{VideoText: "No video provided for analysis."}, update)
		assert.Empty(t, gen.calls)
	})

	t.Run("multimodal request", func(t *testing.T) {
		gen := newFakeGenerator()
		update, err := testStages(gen, t.TempDir()).VideoAnalysis(context.Background(), State{VideoURL: "https://youtu.be/x"})
		require.NoError(t, err)
		assert.Equal(t, State{VideoText: "video analysis"}, update)

		require.Len(t, gen.calls, 1)
		call := gen.calls[0]
		assert.Equal(t, "video-model", call.Model)
		require.Len(t, call.Parts, 2)
		assert.Equal(t, "https://youtu.be/x", call.Parts[0].FileURI)
		assert.Contains(t, call.Parts[1].Text, "about: this video content")
		assert.Contains(t, call.Parts[1].Text, "7. Discussion-worthy points")
		assert.False(t, call.Opts.GoogleSearch)
	})
}

func TestContentSynthesis(t *testing.T) {
	t.Run("structured reply", func(t *testing.T) {
		gen := newFakeGenerator()
		gen.synthesis = "```json\n" + gen.synthesis + "\n```"
		update, err := testStages(gen, t.TempDir()).ContentSynthesis(context.Background(), State{SearchText: "s", VideoText: "v"})
		require.NoError(t, err)
		assert.Equal(t, "summary", update.ContentSummary)
		assert.Equal(t, []string{"a", "b"}, update.KeyInsights)

		prompt := gen.calls[0].prompt()
		assert.Contains(t, prompt, `about "the provided content"`)
		assert.Contains(t, prompt, "RESEARCH CONTENT:\ns\n")
		assert.Contains(t, prompt, "VIDEO CONTENT:\nv\n")
	})

	t.Run("fallback", func(t *testing.T) {
		gen := newFakeGenerator()
		gen.synthesis = "Here is a free-form summary."
		update, err := testStages(gen, t.TempDir()).ContentSynthesis(context.Background(), State{Topic: "x"})
		require.NoError(t, err)
		assert.Equal(t, "Here is a free-form summary.", update.ContentSummary)
		assert.Equal(t, []string{"Key insight from content analysis"}, update.KeyInsights)
	})
}

func TestMetadataGeneration(t *testing.T) {
	t.Run("structured reply", func(t *testing.T) {
		gen := newFakeGenerator()
		update, err := testStages(gen, t.TempDir()).MetadataGeneration(context.Background(), State{
			Topic: "x", ContentSummary: "summary", KeyInsights: []string{"a", "b"},
		})
		require.NoError(t, err)
		assert.Equal(t, "AI & the Future!", update.PodcastTitle)
		assert.Equal(t, "desc", update.PodcastDescription)
		assert.Equal(t, []string{"ai", "future"}, update.TopicsCovered)

		call := gen.calls[0]
		assert.Equal(t, "synthesis-model", call.Model)
		assert.InDelta(t, 0.4, *call.Opts.Temperature, 1e-9)
		assert.Contains(t, call.prompt(), "5-minute episode")
		assert.Contains(t, call.prompt(), "KEY INSIGHTS:\na, b\n")
	})

	t.Run("fallback", func(t *testing.T) {
		gen := newFakeGenerator()
		gen.metadata = "not json"
		update, err := testStages(gen, t.TempDir()).MetadataGeneration(context.Background(), State{Topic: "X"})
		require.NoError(t, err)
		assert.Equal(t, "Podcast: X", update.PodcastTitle)
		assert.Equal(t, "An insightful discussion about X", update.PodcastDescription)
		assert.Equal(t, []string{"X"}, update.TopicsCovered)
	})

	t.Run("missing key falls back", func(t *testing.T) {
		gen := newFakeGenerator()
		gen.metadata = `{"title": "Only a title"}`
		update, err := testStages(gen, t.TempDir()).MetadataGeneration(context.Background(), State{Topic: "X"})
		require.NoError(t, err)
		assert.Equal(t, "Podcast: X", update.PodcastTitle)
	})
}

func TestScriptAndAudio(t *testing.T) {
	gen := newFakeGenerator()
	dir := t.TempDir()
	st := testStages(gen, dir)

	update, err := st.ScriptAndAudio(context.Background(), State{
		Topic:           "AI",
		PodcastTitle:    "AI & the Future!",
		ContentSummary:  "summary",
		KeyInsights:     []string{"a"},
		DurationMinutes: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, gen.script, update.PodcastScript)
	assert.Equal(t, filepath.Join(dir, "podcast_AI__the_Future.wav"), update.PodcastAudioFilename)
	assert.Equal(t, "0 min 3 sec", update.DurationEstimate)

	require.Len(t, gen.calls, 2)
	script, tts := gen.calls[0], gen.calls[1]
	assert.Equal(t, "synthesis-model", script.Model)
	assert.InDelta(t, 0.7, *script.Opts.Temperature, 1e-9)
	assert.Contains(t, script.prompt(), "aim for ~600 words total")
	assert.Contains(t, script.prompt(), "Alex: [opening introduction]\nSam: [expert response]")
	assert.Contains(t, script.prompt(), "CONVERSATION STYLE: professional")

	assert.Equal(t, "tts-model", tts.Model)
	assert.Equal(t, llms.ModalityAudio, tts.Opts.Modality)
	assert.Equal(t, []llms.SpeakerVoice{{Speaker: "Alex", Voice: "Kore"}, {Speaker: "Sam", Voice: "Puck"}}, tts.Opts.SpeakerVoices)
	assert.Equal(t, "Create a professional podcast conversation between Alex and Sam:\n\n"+gen.script, tts.prompt())

	info, err := ReadWAVInfo(update.PodcastAudioFilename)
	require.NoError(t, err)
	assert.Equal(t, WAVInfo{Channels: 1, SampleRate: 24000, SampleWidth: 2, Frames: 4}, info)
}

func TestScriptAndAudio_Defaults(t *testing.T) {
	gen := newFakeGenerator()
	var written string
	st := testStages(gen, "out")
	st.Writer = func(path string, pcm []byte, channels, rate, sampleWidth int) error {
		written = path
		return nil
	}

	update, err := st.ScriptAndAudio(context.Background(), State{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "podcast_Podcast_Episode.wav"), written)
	assert.Equal(t, written, update.PodcastAudioFilename)
	assert.Contains(t, gen.calls[0].prompt(), `5-minute podcast conversation between Alex (curious host) and Sam (knowledgeable expert) about "the content"`)
	assert.Contains(t, gen.calls[0].prompt(), "aim for ~1000 words total")
}

func TestScriptAndAudio_NoAudio(t *testing.T) {
	gen := newFakeGenerator()
	gen.audio = nil
	_, err := testStages(gen, t.TempDir()).ScriptAndAudio(context.Background(), State{Topic: "x"})
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestStages_ServiceErrorPropagates(t *testing.T) {
	gen := newFakeGenerator()
	gen.err = errors.New("quota exceeded")
	st := testStages(gen, t.TempDir())

	_, err := st.Research(context.Background(), State{Topic: "x"})
	var svcErr *llms.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "search-model", svcErr.Model)
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
}

func TestStages_EmptyResponse(t *testing.T) {
	st := testStages(llms.GeneratorFunc(func(ctx context.Context, model string, contents []llms.Part, opts llms.Options) (*llms.Response, error) {
		return &llms.Response{}, nil
	}), t.TempDir())

	_, err := st.ContentSynthesis(context.Background(), State{Topic: "x"})
	assert.ErrorIs(t, err, llms.ErrNoCandidates)
}
