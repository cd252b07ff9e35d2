// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrPoolClosed indicates the pool no longer accepts work because a
	// shutdown signal is set
	ErrPoolClosed = errors.New("pool is closed")

	// ErrJobDiscarded indicates a queued job was discarded during shutdown
	// before any worker dequeued it
	ErrJobDiscarded = errors.New("job discarded before execution")

	// ErrWaitTimeout indicates a future wait timed out
	ErrWaitTimeout = errors.New("wait timeout")
)

// SlotRangeError reports an out-of-range worker slot index
type SlotRangeError struct {
	// Index is the requested slot index
	Index int

	// Size is the pool size at the time of the call
	Size int
}

// Error implements the error interface
func (e *SlotRangeError) Error() string {
	return fmt.Sprintf("worker index %d out of range [0,%d)", e.Index, e.Size)
}

// JobError represents a failure inside a submitted job's body
type JobError struct {
	// JobID is the identifier of the job that failed
	JobID string

	// WorkerID is the index of the worker that ran the job
	WorkerID int

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *JobError) Error() string {
	return fmt.Sprintf("job %s failed on worker %d: %v", e.JobID, e.WorkerID, e.Cause)
}

// Unwrap returns the underlying error
func (e *JobError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *JobError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewJobError creates a new job error
func NewJobError(jobID string, workerID int, cause error) *JobError {
	return &JobError{
		JobID:    jobID,
		WorkerID: workerID,
		Cause:    cause,
		Context:  make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *JobError) WithContext(key string, value interface{}) *JobError {
	e.Context[key] = value
	return e
}
