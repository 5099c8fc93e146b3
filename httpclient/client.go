// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package httpclient implements a one-shot, future-style HTTP/HTTPS
// request object: construct with New, drive it to completion with
// Perform, optionally abort in flight with Cancel, observe the result
// exactly once on the channel Perform returns.
package httpclient

import (
	"context"
	"net/http"
	"sync"
)

// Result is sent exactly once on the channel returned by Perform, then
// the channel is closed. Exactly one of Response/Err is non-nil.
type Result struct {
	Response *Response
	Err      error
}

// Request is one outbound HTTP/HTTPS request and its lifecycle. A
// Request is used once: construct it with New, call Perform, and
// optionally Cancel while it is in flight. It must not be reused after
// reaching a terminal state.
type Request struct {
	cfg    *requestConfig
	client *http.Client

	mu    sync.Mutex
	state State

	resultCh chan Result
	cancelCh chan bool

	cancelFunc   context.CancelFunc
	teardownOnce sync.Once
}

// New validates rawURL and opts and returns a Request positioned at
// StateCreated. It performs no I/O. Validation failures are the kinds
// listed in spec.md §7.
func New(rawURL string, opts *Options) (*Request, error) {
	cfg, err := buildConfig(rawURL, opts)
	if err != nil {
		return nil, err
	}
	return &Request{
		cfg:      cfg,
		client:   &http.Client{CheckRedirect: neverFollowRedirects},
		state:    StateCreated,
		resultCh: make(chan Result, 1),
	}, nil
}

// neverFollowRedirects keeps redirect-following out of scope (spec.md
// §1 Non-goals): the first response net/http receives is the one this
// package assembles, redirect or not.
func neverFollowRedirects(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

// Perform drives the request to completion, returning the channel the
// caller reads exactly one Result from. A second call while
// StateRequesting returns the same channel (spec.md §4.1 idempotence).
// Calling Perform from any other non-terminal-adjacent state returns
// ErrMakeRequestUnavailable synchronously.
func (r *Request) Perform(ctx context.Context) (<-chan Result, error) {
	started, err := r.transitionPerform()
	if err != nil {
		return nil, err
	}
	if !started {
		return r.resultCh, nil
	}

	d := newDriver(r)
	go d.run(ctx)
	return r.resultCh, nil
}

// Cancel requests teardown of an in-flight request, returning the
// channel that resolves true once the transport has acknowledged the
// cancellation. A second call while StateCancelling returns the same
// channel. Calling Cancel from any other state returns
// ErrCancelRequestUnavailable synchronously.
func (r *Request) Cancel() (<-chan bool, error) {
	r.mu.Lock()
	if r.cancelCh == nil {
		r.cancelCh = make(chan bool, 1)
	}
	ch := r.cancelCh
	cancelFunc := r.cancelFunc
	r.mu.Unlock()

	started, err := r.transitionCancel()
	if err != nil {
		return nil, err
	}
	if started && cancelFunc != nil {
		cancelFunc()
	}
	return ch, nil
}
