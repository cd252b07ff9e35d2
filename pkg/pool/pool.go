package pool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/poolkit/poolkit/pkg/queue"
	"github.com/poolkit/poolkit/pkg/types"
)

// Config contains configuration for the pool
type Config struct {
	// Workers is the initial number of worker slots
	Workers int

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler observes every failed job's wrapped *types.JobError
	ErrorHandler types.ErrorHandler
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers: 0,
		Clock:   types.NewRealClock(),
	}
}

// Pool is the controller owning the job queue, the worker slots and the
// shutdown signals. Submit is safe from any goroutine; Resize, Interrupt
// and Restart must be serialized by the caller.
type Pool struct {
	config *Config
	queue  *queue.Queue[*job]

	// mu guards the worker slice and is the condition's lock; the queue
	// carries its own internal lock.
	mu      sync.Mutex
	cond    *sync.Cond
	workers []*Worker

	nIdle atomic.Int64

	// shutdown signals, monotonic within one pool generation
	interrupting atomic.Bool
	killing      atomic.Bool
}

// New creates a pool with n worker slots
func New(workers int) (*Pool, error) {
	return NewWithConfig(&Config{Workers: workers})
}

// NewWithConfig creates a pool from the given configuration
func NewWithConfig(config *Config) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Workers < 0 {
		return nil, fmt.Errorf("workers must be non-negative, got %d", config.Workers)
	}
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}

	p := &Pool{
		config: config,
		queue:  queue.New[*job](),
	}
	p.cond = sync.NewCond(&p.mu)

	if err := p.Resize(config.Workers); err != nil {
		return nil, err
	}
	return p, nil
}

// enqueue pushes a wrapped job and wakes exactly one idle worker. The push
// happens before the signal and the signal is sent under the cond mutex, so
// a worker between its failed pop and its wait cannot miss it.
func (p *Pool) enqueue(j *job) {
	p.queue.Push(j)

	p.mu.Lock()
	p.cond.Signal()
	p.mu.Unlock()
}

// Resize changes the number of worker slots to target. Growing spawns fresh
// slots; shrinking sets the abort flag on the detached slots and returns
// without waiting for them (each detached goroutine exits at its next check
// point, finishing its current job first). Queued jobs survive a shrink as
// long as any slot remains. While a shutdown signal is set Resize is a
// documented no-op.
func (p *Pool) Resize(target int) error {
	if target < 0 {
		return fmt.Errorf("target must be non-negative, got %d", target)
	}
	if p.killing.Load() || p.interrupting.Load() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current := len(p.workers)
	if target >= current {
		for i := current; i < target; i++ {
			w := newWorker(i, p)
			p.workers = append(p.workers, w)
			go w.run()
		}
		return nil
	}

	for i := current - 1; i >= target; i-- {
		p.workers[i].abort.Store(true)
	}
	p.workers = p.workers[:target:target]

	// wake any idle workers among the detached slots so they observe
	// their abort and exit
	p.cond.Broadcast()
	return nil
}

// Interrupt shuts the pool down and blocks until every worker slot's
// goroutine has terminated and joined.
//
// With kill=false (graceful) the pool stops accepting new work; workers
// keep draining already-queued jobs and terminate once the queue is empty.
// With kill=true (immediate) every slot's abort flag is set: workers finish
// the job they are running, then terminate, and jobs still queued are
// discarded without running (their futures resolve with
// types.ErrJobDiscarded).
//
// Either way the worker and flag collections are cleared on return. Repeat
// calls return immediately.
func (p *Pool) Interrupt(kill bool) {
	if kill {
		if !p.killing.CompareAndSwap(false, true) {
			return
		}
		p.mu.Lock()
		for _, w := range p.workers {
			w.abort.Store(true)
		}
		p.cond.Broadcast()
		p.mu.Unlock()
	} else {
		if p.killing.Load() {
			return
		}
		if !p.interrupting.CompareAndSwap(false, true) {
			return
		}
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	}

	p.mu.Lock()
	workers := p.workers
	p.workers = nil
	p.mu.Unlock()

	for _, w := range workers {
		<-w.done
	}

	for _, j := range p.queue.Drain() {
		j.discard()
	}
}

// Restart performs a graceful interrupt, then resets all shutdown and idle
// state to its construct-time defaults. The pool is left with zero workers,
// ready to be resized again.
func (p *Pool) Restart() {
	p.Interrupt(false)
	p.interrupting.Store(false)
	p.killing.Store(false)
	p.nIdle.Store(0)
}

// Close gracefully shuts the pool down. It is the teardown hook: no worker
// goroutine outlives a pool that has been closed. Safe to call repeatedly.
func (p *Pool) Close() error {
	p.Interrupt(false)
	return nil
}

// Size returns the current number of worker slots
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Idle returns a snapshot of the number of workers blocked waiting for work
func (p *Pool) Idle() int {
	return int(p.nIdle.Load())
}

// Worker returns the slot at index i, or a *types.SlotRangeError if i is
// out of range
func (p *Pool) Worker(i int) (*Worker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.workers) {
		return nil, &types.SlotRangeError{Index: i, Size: len(p.workers)}
	}
	return p.workers[i], nil
}

// Stats returns a snapshot of pool-level statistics
func (p *Pool) Stats() types.PoolStats {
	p.mu.Lock()
	workers := len(p.workers)
	p.mu.Unlock()

	return types.PoolStats{
		Workers: workers,
		Idle:    p.Idle(),
		Queued:  p.queue.Len(),
	}
}

// WorkerStatsAll returns statistics for every current slot
func (p *Pool) WorkerStatsAll() []WorkerStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}

// IsShutdown reports whether either shutdown signal is set
func (p *Pool) IsShutdown() bool {
	return p.interrupting.Load() || p.killing.Load()
}
