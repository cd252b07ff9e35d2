/*
Package pool provides a resizable worker pool that runs callable jobs and
hands the submitter a future for each job's eventual result.

# Overview

The pool owns a fixed-or-resizable set of worker goroutines that drain a
shared unbounded FIFO queue. Each job receives the index of the worker that
runs it. Submission is non-blocking and returns a Future whose Get blocks
until the job's value or error is stored.

# Core Components

## Pool

The controller owning the queue, the per-slot abort flags, and the worker
handles:
- Resize grows or shrinks the worker set under concurrent load
- Interrupt supports two shutdown tiers: graceful (drain first) and kill
  (abort after the current job, discard queued work)
- Restart returns a shut-down pool to a usable zero-worker state
- Size, Idle, Worker and Stats expose introspection snapshots

## Worker

One worker slot: a goroutine running the drain/idle-wait/terminated state
machine, its own abort flag, and per-worker statistics. Shrinking the pool
detaches a slot; the detached goroutine keeps observing its own flag and
exits at its next check point without blocking the resize call.

## Future

Single-assignment result handle. A job's return value, returned error, or
recovered panic is stored exactly once; a misbehaving job never kills its
worker.

# Error Handling

- A job error or panic surfaces only through that job's Future
- Submitting to a shut-down pool returns a Future rejected with
  types.ErrPoolClosed
- Jobs discarded during shutdown resolve their Futures with
  types.ErrJobDiscarded
- An optional types.ErrorHandler on the Config observes every wrapped
  *types.JobError

# Usage

	p, err := pool.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	f := pool.Submit(p, func(workerID int) (int, error) {
		return workerID * 2, nil
	})

	v, err := f.Get()

# Concurrency Contract

Submit may be called from any goroutine. Resize, Interrupt and Restart are
not reentrant: callers must serialize them with each other. Jobs are never
preempted mid-execution; cancellation only ever means a queued job is not
started.
*/
package pool
