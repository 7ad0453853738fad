package podcast

import (
	"context"
	"errors"

	"github.com/smallnest/podcastgraph/graph"
)

// Node names of the podcast graph.
const (
	NodeResearch         = "research_agent"
	NodeVideoAnalysis    = "video_analysis_agent"
	NodeContentSynthesis = "content_synthesis"
	NodeMetadata         = "metadata_generator"
	NodeScriptAndAudio   = "script_and_audio"
)

// ErrMissingInput is wrapped by the ValidationError returned for an empty input.
var ErrMissingInput = errors.New("at least one of 'topic' or 'video_url' must be provided")

// ValidationError reports an input the pipeline refuses to start on.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the pipeline precondition on s.
func Validate(s State) error {
	if s.Topic == "" && s.VideoURL == "" {
		return &ValidationError{Err: ErrMissingInput}
	}
	return nil
}

// RouteEntry validates the input and picks the first stage: research when a
// topic is given, video analysis otherwise.
func RouteEntry(_ context.Context, s State) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	if s.Topic != "" {
		return NodeResearch, nil
	}
	return NodeVideoAnalysis, nil
}

// RouteAfterResearch chains video analysis when a video URL is present.
func RouteAfterResearch(_ context.Context, s State) (string, error) {
	if s.VideoURL != "" {
		return NodeVideoAnalysis, nil
	}
	return NodeContentSynthesis, nil
}

// NewGraph wires the stages into the podcast state graph.
func NewGraph(st *Stages) *graph.StateGraph[State] {
	g := graph.NewStateGraph[State]()
	g.SetReducer(MergeState)

	g.AddNode(NodeResearch, "Web search and topic analysis", st.Research)
	g.AddNode(NodeVideoAnalysis, "Video content extraction", st.VideoAnalysis)
	g.AddNode(NodeContentSynthesis, "Synthesize sources into key insights", st.ContentSynthesis)
	g.AddNode(NodeMetadata, "Generate title, description and topics", st.MetadataGeneration)
	g.AddNode(NodeScriptAndAudio, "Write the conversation and produce audio", st.ScriptAndAudio)

	g.SetConditionalEntryPoint(RouteEntry, map[string]string{
		NodeResearch:      NodeResearch,
		NodeVideoAnalysis: NodeVideoAnalysis,
	})
	g.AddConditionalEdge(NodeResearch, RouteAfterResearch, map[string]string{
		NodeVideoAnalysis:    NodeVideoAnalysis,
		NodeContentSynthesis: NodeContentSynthesis,
	})
	g.AddEdge(NodeVideoAnalysis, NodeContentSynthesis)
	g.AddEdge(NodeContentSynthesis, NodeMetadata)
	g.AddEdge(NodeMetadata, NodeScriptAndAudio)
	g.AddEdge(NodeScriptAndAudio, graph.END)

	return g
}
