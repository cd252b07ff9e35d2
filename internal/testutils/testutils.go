// Package testutils provides testing utilities and helper functions
package testutils

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestContext carries a per-test timeout and deferred cleanup
type TestContext struct {
	t       *testing.T
	timeout time.Duration
	cleanup []func()
	mu      sync.Mutex
}

// NewTestContext creates a new test context with the given timeout
func NewTestContext(t *testing.T, timeout time.Duration) *TestContext {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	tc := &TestContext{t: t, timeout: timeout}
	t.Cleanup(tc.runCleanup)
	return tc
}

// Context returns a context bound to the test timeout
func (tc *TestContext) Context() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), tc.timeout)
	tc.AddCleanup(cancel)
	return ctx
}

// AddCleanup registers a function to run when the test finishes
func (tc *TestContext) AddCleanup(fn func()) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.cleanup = append(tc.cleanup, fn)
}

func (tc *TestContext) runCleanup() {
	tc.mu.Lock()
	fns := tc.cleanup
	tc.cleanup = nil
	tc.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// WaitTimeout waits for wg up to timeout and reports whether it finished
func WaitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
