package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolkit/poolkit/internal/testutils"
	"github.com/poolkit/poolkit/pkg/types"
)

func TestFuture_GetBlocksUntilComplete(t *testing.T) {
	f := newFuture[int](types.NewRealClock())

	_, _, ok := f.TryGet()
	assert.False(t, ok)

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.complete(42, nil)
	}()

	v, err := f.Get()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err, ok = f.TryGet()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFuture_SingleAssignment(t *testing.T) {
	f := newFuture[string](types.NewRealClock())

	f.complete("first", nil)
	f.reject(errors.New("late"))
	f.complete("second", nil)

	v, err := f.Get()
	assert.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestFuture_Reject(t *testing.T) {
	f := newFuture[int](types.NewRealClock())
	f.reject(types.ErrJobDiscarded)

	v, err := f.Get()
	assert.ErrorIs(t, err, types.ErrJobDiscarded)
	assert.Zero(t, v)

	select {
	case <-f.Done():
	default:
		t.Fatal("Done channel should be closed after rejection")
	}
}

func TestFuture_GetContext(t *testing.T) {
	f := newFuture[int](types.NewRealClock())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.GetContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// fulfillment after a cancelled wait is still observable
	f.complete(7, nil)
	v, err := f.GetContext(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFuture_GetTimeout(t *testing.T) {
	mock := testutils.NewMockClock(t)
	clock := testutils.NewClockWrapper(mock)

	f := newFuture[int](clock)

	trap := mock.Trap().NewTimer()

	errCh := make(chan error, 1)
	go func() {
		_, err := f.GetTimeout(time.Minute)
		errCh <- err
	}()

	ctx := context.Background()
	call := trap.MustWait(ctx)
	call.MustRelease(ctx)
	mock.Advance(time.Minute).MustWait(ctx)

	require.ErrorIs(t, <-errCh, types.ErrWaitTimeout)
	trap.Close()

	// an already-fulfilled future returns without touching the timer
	f.complete(3, nil)
	v, err := f.GetTimeout(time.Nanosecond)
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
}
