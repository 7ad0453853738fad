// Package store defines checkpoint persistence for pipeline runs.
//
// Every time a pipeline stage finishes, the merged state can be written as a
// Checkpoint tagged with the run's execution ID. Backends live in
// subpackages:
//
//   - memory: process-local map, the default
//   - sqlite: a single file via mattn/go-sqlite3
//   - postgres: pgx connection pool, JSONB columns
//   - redis: go-redis with optional TTL
//
// Checkpoints loaded from a persistent backend carry their state as decoded
// JSON; use Checkpoint.DecodeState to restore a typed value.
package store
