package podcast

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/smallnest/podcastgraph/graph"
	"github.com/smallnest/podcastgraph/log"
	"github.com/smallnest/podcastgraph/store"
)

// Pipeline runs the compiled podcast graph.
type Pipeline struct {
	runnable  *graph.StateRunnable[State]
	listeners []graph.NodeListener[State]
	store     store.CheckpointStore
	newRunID  func() string
	logger    log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithListener adds a node listener to every run.
func WithListener(l graph.NodeListener[State]) Option {
	return func(p *Pipeline) {
		p.listeners = append(p.listeners, l)
	}
}

// WithCheckpointStore saves a checkpoint after every completed stage.
func WithCheckpointStore(s store.CheckpointStore) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithRunIDGenerator overrides how run IDs are generated.
func WithRunIDGenerator(f func() string) Option {
	return func(p *Pipeline) {
		p.newRunID = f
	}
}

// WithLogger sets the logger for pipeline and checkpoint messages.
func WithLogger(l log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// NewPipeline compiles the podcast graph over st.
func NewPipeline(st *Stages, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		newRunID: func() string { return uuid.New().String() },
		logger:   log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	runnable, err := NewGraph(st).Compile()
	if err != nil {
		return nil, fmt.Errorf("compile podcast graph: %w", err)
	}
	p.runnable = runnable
	return p, nil
}

// Graph returns the underlying state graph, for export and inspection.
func (p *Pipeline) Graph() *graph.StateGraph[State] {
	return p.runnable.Graph()
}

// Result is the outcome of one run.
type Result struct {
	RunID string
	State State
}

// Run executes the pipeline and returns its public output.
func (p *Pipeline) Run(ctx context.Context, in Input) (Output, error) {
	res, err := p.Execute(ctx, in)
	if err != nil {
		return Output{}, err
	}
	return res.State.Output(), nil
}

// Execute runs the pipeline and returns the full final state. An input with
// neither topic nor video URL fails with *ValidationError before any stage runs.
func (p *Pipeline) Execute(ctx context.Context, in Input) (Result, error) {
	initial := in.State()
	if err := Validate(initial); err != nil {
		return Result{}, err
	}

	runID := p.newRunID()
	listeners := append([]graph.NodeListener[State](nil), p.listeners...)
	if p.store != nil {
		listeners = append(listeners, graph.NewCheckpointListener[State](p.store, runID, p.logger))
	}

	p.logger.Info("run %s started (topic=%q video=%q)", runID, in.Topic, in.VideoURL)
	final, err := p.runnable.WithListeners(listeners...).Invoke(ctx, initial)
	if err != nil {
		p.logger.Error("run %s failed: %v", runID, err)
		return Result{RunID: runID}, err
	}
	p.logger.Info("run %s finished: %s", runID, final.PodcastAudioFilename)
	return Result{RunID: runID, State: final}, nil
}
