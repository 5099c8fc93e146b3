// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimeoutController_RequestFiresAfterDuration(t *testing.T) {
	c := newTimeoutController(20 * time.Millisecond)
	var fired int32
	c.armRequest(func() { atomic.StoreInt32(&fired, 1) })

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 1 {
		t.Error("armRequest's fire callback did not run within the expected window")
	}
}

func TestTimeoutController_ClearPreventsFire(t *testing.T) {
	c := newTimeoutController(20 * time.Millisecond)
	var fired int32
	c.armRequest(func() { atomic.StoreInt32(&fired, 1) })
	c.clearRequest()

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("fire callback ran after clearRequest()")
	}
}

func TestTimeoutController_RefreshExtendsDeadline(t *testing.T) {
	c := newTimeoutController(40 * time.Millisecond)
	var fired int32
	c.armRequest(func() { atomic.StoreInt32(&fired, 1) })

	// Refresh twice before the original deadline would have elapsed.
	time.Sleep(20 * time.Millisecond)
	c.refreshRequest()
	time.Sleep(20 * time.Millisecond)
	c.refreshRequest()

	if atomic.LoadInt32(&fired) != 0 {
		t.Error("fire callback ran despite continuous refreshing")
	}

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 1 {
		t.Error("fire callback did not run once refreshing stopped")
	}
}

// TestTimeoutController_Exclusivity exercises spec.md's property that
// at most one of the two timers is armed at any instant: clearing the
// request timer and arming the response timer in sequence must never
// leave both live, i.e. stopping the request timer truly prevents it
// from firing even after the response timer is armed.
func TestTimeoutController_Exclusivity(t *testing.T) {
	c := newTimeoutController(30 * time.Millisecond)
	var reqFired, respFired int32
	c.armRequest(func() { atomic.StoreInt32(&reqFired, 1) })
	c.clearRequest()
	c.armResponse(func() { atomic.StoreInt32(&respFired, 1) })

	time.Sleep(90 * time.Millisecond)
	if atomic.LoadInt32(&reqFired) != 0 {
		t.Error("request timer fired after being cleared before the response timer was armed")
	}
	if atomic.LoadInt32(&respFired) != 1 {
		t.Error("response timer never fired")
	}
}

func TestTimeoutController_ClearAllStopsBoth(t *testing.T) {
	c := newTimeoutController(20 * time.Millisecond)
	var reqFired, respFired int32
	c.armRequest(func() { atomic.StoreInt32(&reqFired, 1) })
	c.armResponse(func() { atomic.StoreInt32(&respFired, 1) })
	c.clearAll()

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&reqFired) != 0 || atomic.LoadInt32(&respFired) != 0 {
		t.Error("a timer fired after clearAll()")
	}
}
