package pool

import (
	"fmt"
	"runtime"

	"github.com/oklog/ulid/v2"

	"github.com/poolkit/poolkit/pkg/types"
)

// job is the type-erased unit of work stored in the queue. It is enqueued
// once and either run or discarded exactly once.
type job struct {
	id string

	// run executes the job on the given worker and fulfills its future,
	// returning the wrapped error (if any) for the worker's bookkeeping
	run func(workerID int) error

	// discard fulfills the future with types.ErrJobDiscarded without
	// running the job
	discard func()
}

// Submit wraps fn in a job, enqueues it, wakes one idle worker and returns
// the matching future immediately. If a shutdown signal is set the job is
// never enqueued and the future is already rejected with
// types.ErrPoolClosed. Additional arguments bind through the closure.
func Submit[T any](p *Pool, fn func(workerID int) (T, error)) *Future[T] {
	f := newFuture[T](p.config.Clock)

	if p.interrupting.Load() || p.killing.Load() {
		f.reject(types.ErrPoolClosed)
		return f
	}

	j := &job{id: ulid.Make().String()}
	j.run = func(workerID int) error {
		value, err := guarded(j.id, workerID, fn)
		if err != nil {
			f.reject(err)
			if je, ok := err.(*types.JobError); ok {
				return je
			}
			return types.NewJobError(j.id, workerID, err)
		}
		f.complete(value, nil)
		return nil
	}
	j.discard = func() {
		f.reject(types.ErrJobDiscarded)
	}

	p.enqueue(j)

	// Re-check after the push: a shutdown racing this submit may already
	// have drained the queue, leaving nothing to ever pop the job. The
	// shutdown signal is set before that final drain, so one of the two
	// (the drain or this check) always resolves the future.
	if p.interrupting.Load() || p.killing.Load() {
		j.discard()
	}
	return f
}

// Run submits a job that produces no value
func Run(p *Pool, fn func(workerID int) error) *Future[struct{}] {
	return Submit(p, func(workerID int) (struct{}, error) {
		return struct{}{}, fn(workerID)
	})
}

// guarded executes fn with panic recovery so a misbehaving job can never
// kill its worker. A recovered panic is converted into a *types.JobError
// carrying the stack trace.
func guarded[T any](jobID string, workerID int, fn func(int) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			var cause error
			switch v := r.(type) {
			case error:
				cause = v
			default:
				cause = fmt.Errorf("panic: %v", v)
			}

			err = types.NewJobError(jobID, workerID, cause).
				WithContext("stack_trace", string(buf[:n])).
				WithContext("panic", true)
		}
	}()

	return fn(workerID)
}
