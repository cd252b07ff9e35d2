package pool

import (
	"sync/atomic"
	"time"

	"github.com/poolkit/poolkit/pkg/types"
)

// WorkerState defines the state of a Worker
type WorkerState int32

const (
	// WorkerStateDraining represents a worker actively pulling and running jobs
	WorkerStateDraining WorkerState = iota
	// WorkerStateIdle represents a worker blocked waiting for work
	WorkerStateIdle
	// WorkerStateTerminated represents a worker whose goroutine has returned
	WorkerStateTerminated
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateDraining:
		return "draining"
	case WorkerStateIdle:
		return "idle"
	case WorkerStateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Worker is one slot of the pool: a goroutine draining the shared queue,
// paired with its own abort flag. The flag lives inside the Worker, so a
// slot detached by a shrink keeps observing its flag through the goroutine's
// receiver even after the controller forgets the slot.
type Worker struct {
	id   int
	pool *Pool

	abort atomic.Bool
	state atomic.Int32
	done  chan struct{}

	// statistics
	totalProcessed atomic.Int64
	totalFailed    atomic.Int64
	totalExecTime  atomic.Int64 // cumulative job execution time in nanoseconds
	lastJobTime    atomic.Int64 // Unix nanosecond timestamp

	clock types.Clock
}

func newWorker(id int, p *Pool) *Worker {
	return &Worker{
		id:    id,
		pool:  p,
		done:  make(chan struct{}),
		clock: p.config.Clock,
	}
}

// ID returns the worker's slot index at spawn time
func (w *Worker) ID() int {
	return w.id
}

// State returns the current worker state
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Done returns a channel closed when the worker's goroutine has returned.
// It is the join handle for this slot.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// run is the worker goroutine body. It pops one job up front, then loops:
// drain while jobs keep arriving, park in the guarded wait when the queue is
// empty, and terminate when the abort flag or a graceful interrupt fires
// with nothing left to pop. The abort flag takes priority over draining: it
// is re-checked after every job, even if more jobs remain queued.
func (w *Worker) run() {
	defer close(w.done)
	defer w.state.Store(int32(WorkerStateTerminated))

	p := w.pool
	j, ok := p.queue.TryPop()

	for {
		w.state.Store(int32(WorkerStateDraining))
		for ok {
			w.execute(j)
			if w.abort.Load() {
				return
			}
			j, ok = p.queue.TryPop()
		}

		// The queue looked empty; park until a job, an abort, or an
		// interrupt arrives. The pop happens inside the predicate while
		// holding the cond mutex, so a wakeup cannot be lost between the
		// check and the wait. An aborted worker that wins a job here runs
		// it once before terminating.
		w.state.Store(int32(WorkerStateIdle))
		p.mu.Lock()
		p.nIdle.Add(1)
		for {
			j, ok = p.queue.TryPop()
			if ok || w.abort.Load() || p.interrupting.Load() {
				break
			}
			p.cond.Wait()
		}
		p.nIdle.Add(-1)
		p.mu.Unlock()

		if !ok {
			return
		}
	}
}

// execute runs one job and updates the worker's counters. Job failures
// never propagate out of the loop; they reach the submitter through the
// future and, when configured, the pool's error handler.
func (w *Worker) execute(j *job) {
	start := w.clock.Now()
	w.lastJobTime.Store(start.UnixNano())

	err := j.run(w.id)
	w.totalExecTime.Add(int64(w.clock.Since(start)))

	if err != nil {
		w.totalFailed.Add(1)
		if handler := w.pool.config.ErrorHandler; handler != nil {
			_ = handler(err)
		}
		return
	}
	w.totalProcessed.Add(1)
}

// Stats returns a snapshot of the worker's statistics
func (w *Worker) Stats() WorkerStats {
	return WorkerStats{
		ID:             w.id,
		State:          w.State(),
		TotalProcessed: w.totalProcessed.Load(),
		TotalFailed:    w.totalFailed.Load(),
		TotalExecTime:  time.Duration(w.totalExecTime.Load()),
		LastJobTime:    time.Unix(0, w.lastJobTime.Load()),
	}
}

// WorkerStats defines per-worker statistics
type WorkerStats struct {
	ID             int
	State          WorkerState
	TotalProcessed int64
	TotalFailed    int64
	TotalExecTime  time.Duration
	LastJobTime    time.Time
}

// GetSuccessRate gets the success rate
func (ws WorkerStats) GetSuccessRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalProcessed) / float64(total)
}
