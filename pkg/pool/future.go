package pool

import (
	"context"
	"sync"
	"time"

	"github.com/poolkit/poolkit/pkg/types"
)

// Future is the single-assignment handle for a submitted job's outcome. The
// job's worker stores exactly one value-or-error; every Get variant observes
// that one fulfillment.
type Future[T any] struct {
	clock types.Clock
	done  chan struct{}
	once  sync.Once

	value T
	err   error
}

func newFuture[T any](clock types.Clock) *Future[T] {
	return &Future[T]{
		clock: clock,
		done:  make(chan struct{}),
	}
}

// complete stores the outcome. Only the first call wins; later calls are
// no-ops so a discard racing a worker cannot double-fulfill.
func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

func (f *Future[T]) reject(err error) {
	var zero T
	f.complete(zero, err)
}

// Get blocks until the job's outcome is stored, then returns it
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetContext blocks until the outcome is stored or ctx is done, returning
// ctx.Err() in the latter case
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// GetTimeout blocks up to d for the outcome, returning types.ErrWaitTimeout
// if it is not stored in time
func (f *Future[T]) GetTimeout(d time.Duration) (T, error) {
	timer := f.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C():
		var zero T
		return zero, types.ErrWaitTimeout
	}
}

// TryGet returns the outcome if it is already stored, without blocking
func (f *Future[T]) TryGet() (T, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Done returns a channel closed once the outcome is stored
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
