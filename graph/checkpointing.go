package graph

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smallnest/podcastgraph/log"
	"github.com/smallnest/podcastgraph/store"
)

// CheckpointListener saves a checkpoint every time a node's update has been merged.
// Save failures are logged and do not abort the run.
type CheckpointListener[S any] struct {
	store       store.CheckpointStore
	executionID string
	version     int
	logger      log.Logger
}

// NewCheckpointListener creates a checkpoint listener for one execution.
// A fresh listener is needed per run because versions are counted locally.
func NewCheckpointListener[S any](s store.CheckpointStore, executionID string, logger log.Logger) *CheckpointListener[S] {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &CheckpointListener[S]{
		store:       s,
		executionID: executionID,
		logger:      logger,
	}
}

// ExecutionID returns the execution the listener writes under.
func (cl *CheckpointListener[S]) ExecutionID() string {
	return cl.executionID
}

// OnNodeEvent implements the NodeListener interface
func (cl *CheckpointListener[S]) OnNodeEvent(ctx context.Context, info NodeEventInfo[S]) {
	if info.Event != NodeEventStep {
		return
	}
	cl.version++
	cp := &store.Checkpoint{
		ID:        generateCheckpointID(),
		NodeName:  info.NodeName,
		State:     info.State,
		Timestamp: time.Now(),
		Version:   cl.version,
		Metadata: map[string]any{
			"execution_id": cl.executionID,
			"event":        "step",
		},
	}
	if err := cl.store.Save(ctx, cp); err != nil {
		cl.logger.Warn("checkpoint after %s not saved: %v", info.NodeName, err)
	}
}

func generateCheckpointID() string {
	return uuid.New().String()
}
