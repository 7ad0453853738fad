package graph

import (
	"context"
	"time"

	"github.com/smallnest/podcastgraph/log"
)

// NodeEvent represents different types of node events
type NodeEvent string

const (
	// NodeEventStart indicates a node has started execution
	NodeEventStart NodeEvent = "start"

	// NodeEventComplete indicates a node has completed successfully; State holds the node's update
	NodeEventComplete NodeEvent = "complete"

	// NodeEventError indicates a node encountered an error
	NodeEventError NodeEvent = "error"

	// NodeEventStep indicates the node's update has been merged; State holds the merged state
	NodeEventStep NodeEvent = "step"
)

// NodeEventInfo describes a single event delivered to listeners.
type NodeEventInfo[S any] struct {
	Event    NodeEvent
	NodeName string
	State    S
	Error    error

	// Duration is how long the node took (Complete and Error events only)
	Duration time.Duration
}

// NodeListener defines the interface for node event listeners.
// Listeners are called synchronously on the executing goroutine.
type NodeListener[S any] interface {
	OnNodeEvent(ctx context.Context, info NodeEventInfo[S])
}

// NodeListenerFunc is a function adapter for NodeListener
type NodeListenerFunc[S any] func(ctx context.Context, info NodeEventInfo[S])

// OnNodeEvent implements the NodeListener interface
func (f NodeListenerFunc[S]) OnNodeEvent(ctx context.Context, info NodeEventInfo[S]) {
	f(ctx, info)
}

// LoggingListener writes node lifecycle events to a logger.
type LoggingListener[S any] struct {
	logger log.Logger
}

// NewLoggingListener creates a listener that logs to logger, or to the package logger when nil.
func NewLoggingListener[S any](logger log.Logger) *LoggingListener[S] {
	return &LoggingListener[S]{logger: logger}
}

// OnNodeEvent implements the NodeListener interface
func (l *LoggingListener[S]) OnNodeEvent(_ context.Context, info NodeEventInfo[S]) {
	logger := l.logger
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	switch info.Event {
	case NodeEventStart:
		logger.Info("node %s started", info.NodeName)
	case NodeEventComplete:
		logger.Info("node %s completed in %s", info.NodeName, info.Duration.Round(time.Millisecond))
	case NodeEventError:
		logger.Error("node %s failed after %s: %v", info.NodeName, info.Duration.Round(time.Millisecond), info.Error)
	}
}

// PathRecorder records the order in which nodes complete.
type PathRecorder[S any] struct {
	Path []string
}

// OnNodeEvent implements the NodeListener interface
func (p *PathRecorder[S]) OnNodeEvent(_ context.Context, info NodeEventInfo[S]) {
	if info.Event == NodeEventComplete {
		p.Path = append(p.Path, info.NodeName)
	}
}
