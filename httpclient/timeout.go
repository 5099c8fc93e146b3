// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import "time"

// timeoutController owns the two mutually exclusive timers from
// spec.md §4.2. At most one of requestTimer/responseTimer is armed at
// any instant; callers are expected to honor that invariant (the
// driver never calls armResponse without having cleared the request
// timer first, and vice versa).
type timeoutController struct {
	duration time.Duration

	requestTimer  *time.Timer
	responseTimer *time.Timer
}

func newTimeoutController(d time.Duration) *timeoutController {
	return &timeoutController{duration: d}
}

// armRequest starts the request-phase timer. fire is invoked (on its
// own goroutine, per time.AfterFunc) if no refresh/clear happens
// within the configured duration.
func (c *timeoutController) armRequest(fire func()) {
	c.requestTimer = time.AfterFunc(c.duration, fire)
}

// refreshRequest restarts the request-phase timer's countdown from
// now, per spec.md §4.2's "refresh" operation.
func (c *timeoutController) refreshRequest() {
	if c.requestTimer != nil {
		c.requestTimer.Reset(c.duration)
	}
}

// clearRequest stops the request-phase timer. Safe to call even if
// already cleared or never armed.
func (c *timeoutController) clearRequest() {
	if c.requestTimer != nil {
		c.requestTimer.Stop()
		c.requestTimer = nil
	}
}

func (c *timeoutController) armResponse(fire func()) {
	c.responseTimer = time.AfterFunc(c.duration, fire)
}

func (c *timeoutController) refreshResponse() {
	if c.responseTimer != nil {
		c.responseTimer.Reset(c.duration)
	}
}

func (c *timeoutController) clearResponse() {
	if c.responseTimer != nil {
		c.responseTimer.Stop()
		c.responseTimer = nil
	}
}

// clearAll stops both timers unconditionally; called once from
// teardown regardless of which phase the driver was in.
func (c *timeoutController) clearAll() {
	c.clearRequest()
	c.clearResponse()
}
