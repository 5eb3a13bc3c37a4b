// Package resource wraps asynchronous boundary results in a tri-state
// envelope: loading, success with a payload, or error with a message. Every
// repository call made by a session-scoped controller terminates by producing
// exactly one terminal envelope, optionally preceded by one loading emission.
// "Not yet called" is the zero value of a Holder, not a fourth envelope state.
package resource

import (
	"context"
	"sync"
)

type state uint8

const (
	stateLoading state = iota
	stateSuccess
	stateError
)

// Resource is the envelope produced by an asynchronous operation.
type Resource[T any] struct {
	state   state
	value   T
	message string
}

// Loading returns a non-terminal envelope.
func Loading[T any]() Resource[T] {
	return Resource[T]{state: stateLoading}
}

// Success returns a terminal envelope carrying the payload.
func Success[T any](value T) Resource[T] {
	return Resource[T]{state: stateSuccess, value: value}
}

// Fail returns a terminal envelope carrying the error message verbatim.
func Fail[T any](message string) Resource[T] {
	return Resource[T]{state: stateError, message: message}
}

func (r Resource[T]) IsLoading() bool { return r.state == stateLoading }
func (r Resource[T]) IsSuccess() bool { return r.state == stateSuccess }
func (r Resource[T]) IsError() bool   { return r.state == stateError }

// Terminal reports whether the envelope concludes a call.
func (r Resource[T]) Terminal() bool { return r.state != stateLoading }

// Value returns the payload and whether the envelope is a success.
func (r Resource[T]) Value() (T, bool) {
	return r.value, r.state == stateSuccess
}

// MustValue returns the payload of a success envelope and panics otherwise.
// Reserved for tests and call sites that already checked IsSuccess.
func (r Resource[T]) MustValue() T {
	if r.state != stateSuccess {
		panic("resource: MustValue on non-success envelope")
	}
	return r.value
}

// Message returns the error message of an error envelope ("" otherwise).
func (r Resource[T]) Message() string {
	return r.message
}

// Holder owns the last-resolved envelope for one session-scoped controller.
// Begin hands out a monotonic token; Resolve discards terminal values whose
// token is older than the newest issued call, so the held state follows the
// most recently issued request rather than whichever response landed last.
type Holder[T any] struct {
	mu      sync.Mutex
	seq     uint64
	started bool
	current Resource[T]
}

// Begin marks a new in-flight call: the held state becomes loading and the
// returned token must be passed to Resolve.
func (h *Holder[T]) Begin() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.started = true
	h.current = Loading[T]()
	return h.seq
}

// Resolve installs a terminal envelope for the call identified by token. It
// reports whether the value was accepted; stale resolutions are dropped and
// the held state is left untouched.
func (h *Holder[T]) Resolve(token uint64, r Resource[T]) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if token != h.seq {
		return false
	}
	h.current = r
	return true
}

// Get returns the held envelope and whether any call was ever begun.
func (h *Holder[T]) Get() (Resource[T], bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.started
}

// Go runs fn on its own goroutine and returns a channel that emits Loading
// followed by exactly one terminal envelope, then closes. The error message
// is carried verbatim. A caller that walks away simply never observes the
// terminal value; fn still honors ctx for its own cancellation.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Resource[T] {
	out := make(chan Resource[T], 2)
	out <- Loading[T]()
	go func() {
		defer close(out)
		value, err := fn(ctx)
		if err != nil {
			out <- Fail[T](err.Error())
			return
		}
		out <- Success(value)
	}()
	return out
}

// Await drains a Go channel and returns its terminal envelope.
func Await[T any](ch <-chan Resource[T]) Resource[T] {
	var last Resource[T]
	for r := range ch {
		last = r
	}
	return last
}
