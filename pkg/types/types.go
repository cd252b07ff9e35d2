// Package types defines shared types for the pool library
package types

// ErrorHandler defines an error handling function invoked when a job fails.
// The handler receives the wrapped *JobError; a non-nil return is ignored by
// the worker but lets handlers compose.
type ErrorHandler func(error) error

// PoolStats defines a point-in-time snapshot of pool state. Every field is
// racy by nature; use for introspection only.
type PoolStats struct {
	// Workers is the current number of worker slots
	Workers int

	// Idle is the number of workers blocked waiting for work
	Idle int

	// Queued is the number of jobs waiting in the queue
	Queued int
}
