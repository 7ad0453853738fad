package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNotFound is returned when a checkpoint does not exist.
var ErrNotFound = errors.New("checkpoint not found")

// Checkpoint is the pipeline state saved after a node completed.
type Checkpoint struct {
	ID        string         `json:"id"`
	NodeName  string         `json:"node_name"`
	State     any            `json:"state"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp time.Time      `json:"timestamp"`
	Version   int            `json:"version"`
}

// ExecutionID returns the execution the checkpoint belongs to, if recorded.
func (c *Checkpoint) ExecutionID() string {
	if id, ok := c.Metadata["execution_id"].(string); ok {
		return id
	}
	return ""
}

// DecodeState copies the checkpoint state into out, which must be a pointer.
// Stores that round-trip through JSON hand back generic maps; this restores the typed value.
func (c *Checkpoint) DecodeState(out any) error {
	data, err := json.Marshal(c.State)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return nil
}

// CheckpointStore defines the interface for checkpoint persistence
type CheckpointStore interface {
	// Save stores a checkpoint, replacing any checkpoint with the same ID
	Save(ctx context.Context, checkpoint *Checkpoint) error

	// Load retrieves a checkpoint by ID
	Load(ctx context.Context, checkpointID string) (*Checkpoint, error)

	// List returns all checkpoints for a given execution, oldest version first
	List(ctx context.Context, executionID string) ([]*Checkpoint, error)

	// Delete removes a checkpoint
	Delete(ctx context.Context, checkpointID string) error

	// Clear removes all checkpoints for an execution
	Clear(ctx context.Context, executionID string) error
}

// Latest returns the checkpoint with the highest version for an execution.
func Latest(ctx context.Context, s CheckpointStore, executionID string) (*Checkpoint, error) {
	list, err := s.List(ctx, executionID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no checkpoints for execution %s", ErrNotFound, executionID)
	}
	return list[len(list)-1], nil
}

// SortByVersion orders checkpoints by version, then timestamp.
func SortByVersion(list []*Checkpoint) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Version != list[j].Version {
			return list[i].Version < list[j].Version
		}
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
}
