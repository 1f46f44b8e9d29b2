// Package mutation provides a generic lifecycle tracker for asynchronous
// side-effecting operations (chat sends, uploads, deletes).
//
// A Controller owns the request lifecycle of a single logical operation
// kind: idle until first use, pending while an attempt is in flight, then
// succeeded or failed. Starting a new attempt moves straight back to
// pending. Each attempt is identified by an opaque token so a completion
// that arrives after a newer attempt has begun is discarded instead of
// being cross-matched.
package mutation

import (
	"sync"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Controller.
type Status int

const (
	// StatusIdle means no attempt has been made yet.
	StatusIdle Status = iota

	// StatusPending means an attempt is in flight.
	StatusPending

	// StatusSucceeded means the latest attempt completed with a result.
	StatusSucceeded

	// StatusFailed means the latest attempt completed with an error.
	StatusFailed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Controller tracks the lifecycle of one asynchronous operation kind.
// It does not run the operation itself: the caller begins an attempt,
// performs the work, and reports the outcome with the attempt token.
//
// Completion hooks fire at most once per attempt and never both.
type Controller[T any] struct {
	mu      sync.Mutex
	status  Status
	attempt string
	result  T
	err     error

	onSuccess func(T)
	onError   func(error)
}

// New creates a controller in the idle state.
func New[T any]() *Controller[T] {
	return &Controller[T]{status: StatusIdle}
}

// OnSuccess registers the hook fired when an attempt succeeds.
// It returns the controller for chaining.
func (c *Controller[T]) OnSuccess(fn func(T)) *Controller[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSuccess = fn
	return c
}

// OnError registers the hook fired when an attempt fails.
// It returns the controller for chaining.
func (c *Controller[T]) OnError(fn func(error)) *Controller[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
	return c
}

// Begin starts a new attempt and returns its token. Any state may
// transition to pending; there is no required return to idle between
// attempts. A previously in-flight attempt is orphaned: its completion
// will be rejected because the token no longer matches.
func (c *Controller[T]) Begin() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.status = StatusPending
	c.attempt = uuid.NewString()
	c.result = zero
	c.err = nil
	return c.attempt
}

// Succeed completes the attempt identified by token with a result.
// It reports whether the completion was accepted; stale or duplicate
// completions return false and have no effect.
func (c *Controller[T]) Succeed(token string, result T) bool {
	c.mu.Lock()
	if !c.accepts(token) {
		c.mu.Unlock()
		return false
	}
	c.status = StatusSucceeded
	c.attempt = ""
	c.result = result
	hook := c.onSuccess
	c.mu.Unlock()

	// Hooks run outside the lock so they may call back into the owner.
	if hook != nil {
		hook(result)
	}
	return true
}

// Fail completes the attempt identified by token with an error.
// It reports whether the completion was accepted; stale or duplicate
// completions return false and have no effect.
func (c *Controller[T]) Fail(token string, err error) bool {
	c.mu.Lock()
	if !c.accepts(token) {
		c.mu.Unlock()
		return false
	}
	c.status = StatusFailed
	c.attempt = ""
	c.err = err
	hook := c.onError
	c.mu.Unlock()

	if hook != nil {
		hook(err)
	}
	return true
}

// accepts reports whether token identifies the in-flight attempt.
// Caller must hold the lock.
func (c *Controller[T]) accepts(token string) bool {
	return c.status == StatusPending && token != "" && token == c.attempt
}

// Status returns the current lifecycle state.
func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Pending reports whether an attempt is in flight.
func (c *Controller[T]) Pending() bool {
	return c.Status() == StatusPending
}

// Result returns the result of the latest successful attempt.
func (c *Controller[T]) Result() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the error of the latest failed attempt, or nil.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
