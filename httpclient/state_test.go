// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import (
	"errors"
	"testing"
)

func newCreatedRequest(t *testing.T) *Request {
	t.Helper()
	req, err := New("http://example.com", nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return req
}

func TestTransitionPerform_FromCreated(t *testing.T) {
	req := newCreatedRequest(t)
	started, err := req.transitionPerform()
	if err != nil {
		t.Fatalf("transitionPerform() failed: %v", err)
	}
	if !started {
		t.Fatal("transitionPerform() from CREATED should report started=true")
	}
	if got := req.State(); got != StateRequesting {
		t.Errorf("state = %s, want REQUESTING", got)
	}
}

func TestTransitionPerform_Idempotent(t *testing.T) {
	req := newCreatedRequest(t)
	if _, err := req.transitionPerform(); err != nil {
		t.Fatalf("first transitionPerform() failed: %v", err)
	}
	started, err := req.transitionPerform()
	if err != nil {
		t.Fatalf("second transitionPerform() failed: %v", err)
	}
	if started {
		t.Error("second transitionPerform() while REQUESTING should report started=false")
	}
}

func TestTransitionPerform_RejectedAfterTerminal(t *testing.T) {
	req := newCreatedRequest(t)
	if _, err := req.transitionPerform(); err != nil {
		t.Fatalf("transitionPerform() failed: %v", err)
	}
	req.settleTerminal(StateFulfilled)

	_, err := req.transitionPerform()
	if !errors.Is(err, ErrMakeRequestUnavailable) {
		t.Errorf("transitionPerform() after terminal = %v, want ErrMakeRequestUnavailable", err)
	}
}

func TestTransitionCancel_RequiresRequesting(t *testing.T) {
	req := newCreatedRequest(t)
	_, err := req.transitionCancel()
	if !errors.Is(err, ErrCancelRequestUnavailable) {
		t.Errorf("transitionCancel() from CREATED = %v, want ErrCancelRequestUnavailable", err)
	}
}

func TestTransitionCancel_Idempotent(t *testing.T) {
	req := newCreatedRequest(t)
	if _, err := req.transitionPerform(); err != nil {
		t.Fatalf("transitionPerform() failed: %v", err)
	}
	started, err := req.transitionCancel()
	if err != nil {
		t.Fatalf("first transitionCancel() failed: %v", err)
	}
	if !started {
		t.Error("first transitionCancel() should report started=true")
	}

	started, err = req.transitionCancel()
	if err != nil {
		t.Fatalf("second transitionCancel() failed: %v", err)
	}
	if started {
		t.Error("second transitionCancel() while CANCELLING should report started=false")
	}
}

func TestTransitionCancel_RejectedAfterTerminal(t *testing.T) {
	req := newCreatedRequest(t)
	if _, err := req.transitionPerform(); err != nil {
		t.Fatalf("transitionPerform() failed: %v", err)
	}
	req.settleTerminal(StateFailed)

	_, err := req.transitionCancel()
	if !errors.Is(err, ErrCancelRequestUnavailable) {
		t.Errorf("transitionCancel() after terminal = %v, want ErrCancelRequestUnavailable", err)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "CREATED"},
		{StateRequesting, "REQUESTING"},
		{StateCancelling, "CANCELLING"},
		{StateFulfilled, "FULFILLED"},
		{StateCancelled, "CANCELLED"},
		{StateFailed, "FAILED"},
		{State(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Terminal(t *testing.T) {
	terminal := []State{StateFulfilled, StateCancelled, StateFailed}
	nonTerminal := []State{StateCreated, StateRequesting, StateCancelling}

	for _, s := range terminal {
		if !s.terminal() {
			t.Errorf("%s.terminal() = false, want true", s)
		}
	}
	for _, s := range nonTerminal {
		if s.terminal() {
			t.Errorf("%s.terminal() = true, want false", s)
		}
	}
}
