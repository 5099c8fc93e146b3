// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"

	"github.com/jfabello/httpclientgo/internal/govars"
)

// defaultChunkSize bounds how much of a request/response body this
// driver moves per pipe write/socket read. It is overridable at
// process start via HTTPCLIENTGODEBUG=chunksize=N (bytes), the same
// "tuning knob, not a log level" role the teacher's MCPGODEBUG keys
// play for its own internals — a small chunk size is useful for
// exercising the backpressure/progress-refresh path deterministically
// in tests without streaming megabytes.
const defaultChunkSize = 32 * 1024

var chunkSize = resolveChunkSize(govars.Value("chunksize"))

// resolveChunkSize parses the chunksize tuning knob, falling back to
// defaultChunkSize for an absent or nonsensical value. Split out from
// its govars.Value call so the parsing rule is unit-testable without
// relying on process environment state.
func resolveChunkSize(raw string) int {
	if raw == "" {
		return defaultChunkSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultChunkSize
	}
	return n
}

// driver implements the Transport Driver (spec.md §4.4): it owns the
// single *http.Request/*http.Response exchange for one Request,
// streaming the body through an io.Pipe (whose blocking Write is this
// driver's backpressure suspension point) and accumulating the
// response body, funneling every transport milestone through a single
// select loop so the instance's mutable state — the two timers, the
// accumulated bytes, the response metadata — is only ever touched from
// one goroutine, per spec.md §5's single-task confinement requirement.
type driver struct {
	r        *Request
	timeouts *timeoutController

	writeProgress chan int
	writeDone     chan error
	headReceived  chan *http.Response
	doErr         chan error
	readProgress  chan []byte
	readDone      chan error
	reqTimedOut   chan struct{}
	respTimedOut  chan struct{}

	pipeWriter *io.PipeWriter
	resp       *http.Response

	respStatusCode int
	respStatus     string
	respHeader     http.Header
}

func newDriver(r *Request) *driver {
	return &driver{
		r:             r,
		timeouts:      newTimeoutController(r.cfg.timeout),
		writeProgress: make(chan int, 1),
		writeDone:     make(chan error, 1),
		headReceived:  make(chan *http.Response, 1),
		doErr:         make(chan error, 1),
		readProgress:  make(chan []byte, 1),
		readDone:      make(chan error, 1),
		reqTimedOut:   make(chan struct{}, 1),
		respTimedOut:  make(chan struct{}, 1),
	}
}

// run is the driver's entry point, launched on its own goroutine by
// Request.Perform. It builds and issues the HTTP request, then owns
// the select loop until the request settles.
func (d *driver) run(callerCtx context.Context) {
	reqCtx, cancel := context.WithCancel(callerCtx)
	d.r.mu.Lock()
	d.r.cancelFunc = cancel
	d.r.mu.Unlock()

	data, contentLength, err := encodeBody(d.r.cfg.body)
	if err != nil {
		d.fail(err)
		return
	}

	var reqBody io.ReadCloser
	if data != nil {
		pr, pw := io.Pipe()
		reqBody = pr
		d.pipeWriter = pw
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, d.r.cfg.method, d.r.cfg.url.String(), reqBody)
	if err != nil {
		d.fail(err)
		return
	}
	d.r.cfg.headers.each(func(k, v string) { httpReq.Header.Set(k, v) })
	if data != nil {
		httpReq.ContentLength = int64(contentLength)
	}

	// "Connection-ready" has no distinct hook in net/http's public API
	// (see SPEC_FULL.md §4.4); this driver treats the launch below as
	// connection-ready and arms the request-phase timer here.
	d.timeouts.armRequest(func() { nonBlockingSend(d.reqTimedOut) })

	if data != nil {
		go d.writeBody(d.pipeWriter, data)
	} else {
		// No body: close the write half immediately (spec.md §4.4 step
		// 2). Reported through the same writeDone event the body-writing
		// goroutine would use, so the loop below handles "request
		// finished" the same way with or without a body.
		d.writeDone <- nil
	}

	go func() {
		resp, err := d.r.client.Do(httpReq)
		if err != nil {
			d.doErr <- err
			return
		}
		d.headReceived <- resp
	}()

	d.loop()
}

// loop processes transport milestones one at a time, the Go
// translation of spec.md §5's cooperative single-thread scheduling:
// every branch below runs to completion before the next is selected,
// so the timers and accumulated buffer are never touched concurrently.
func (d *driver) loop() {
	var accumulated []byte
	responsePhase := false

	for {
		select {
		case <-d.writeProgress:
			d.timeouts.refreshRequest()

		case err := <-d.writeDone:
			if err != nil {
				d.fail(err)
				return
			}
			d.timeouts.clearRequest()
			if !responsePhase {
				responsePhase = true
				d.timeouts.armResponse(func() { nonBlockingSend(d.respTimedOut) })
			}

		case resp := <-d.headReceived:
			d.resp = resp
			d.respStatusCode = resp.StatusCode
			d.respStatus = statusMessage(resp)
			d.respHeader = resp.Header
			d.timeouts.clearRequest()
			if !responsePhase {
				responsePhase = true
				d.timeouts.armResponse(func() { nonBlockingSend(d.respTimedOut) })
			}
			go d.readBody(resp)

		case err := <-d.doErr:
			d.fail(err)
			return

		case chunk := <-d.readProgress:
			accumulated = append(accumulated, chunk...)
			d.timeouts.refreshResponse()

		case err := <-d.readDone:
			d.timeouts.clearResponse()
			if err != nil {
				d.fail(err)
				return
			}
			d.succeed(accumulated)
			return

		case <-d.reqTimedOut:
			d.fail(fmt.Errorf("%w: %s after %v", ErrHTTPRequestTimedOut, d.r.cfg.origin, d.r.cfg.timeout))
			return

		case <-d.respTimedOut:
			d.fail(fmt.Errorf("%w: %s after %v", ErrHTTPResponseTimedOut, d.r.cfg.origin, d.r.cfg.timeout))
			return
		}
	}
}

// writeBody streams data to the transport through pw in bounded
// chunks, reporting progress on d.writeProgress. pw.Write blocks until
// net/http's transport reads the previous chunk, which is this
// package's backpressure suspension point (spec.md §4.4 step 3) —
// there is no separate "ready"/"drain" handshake to model because
// io.Pipe is synchronous and unbuffered by construction.
func (d *driver) writeBody(pw *io.PipeWriter, data []byte) {
	for offset := 0; offset < len(data); {
		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}
		n, err := pw.Write(data[offset:end])
		if err != nil {
			d.writeDone <- err
			return
		}
		offset += n
		d.writeProgress <- n
	}
	pw.Close()
	d.writeDone <- nil
}

// readBody accumulates the response body in bounded chunks, reporting
// each one on d.readProgress, until EOF or an error.
func (d *driver) readBody(resp *http.Response) {
	defer resp.Body.Close()
	buf := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			d.readProgress <- chunk
		}
		if err != nil {
			if err == io.EOF {
				d.readDone <- nil
			} else {
				d.readDone <- err
			}
			return
		}
	}
}

// fail routes a transport or local error through teardown.
func (d *driver) fail(err error) {
	d.teardown(Result{}, err)
}

// succeed assembles the finished Response from accumulated bytes and
// routes it through teardown. A JSON auto-decode failure is itself a
// failure cause (spec.md §4.5), not a successful settlement.
func (d *driver) succeed(raw []byte) {
	resp, err := assembleResponse(d.respStatusCode, d.respStatus, d.respHeader, raw, d.r.cfg.autoJSON)
	if err != nil {
		d.teardown(Result{}, err)
		return
	}
	d.teardown(Result{Response: resp}, nil)
}

// teardown is the one-shot procedure from spec.md §4.4/Glossary: it
// clears both timers, destroys the transport halves, decides the
// terminal state (resolving a cancel/success race by simply being a
// sync.Once — whichever of fail/succeed calls it first wins, per
// spec.md §5's cancellation semantics), and settles the outstanding
// futures after one scheduler yield.
func (d *driver) teardown(result Result, causeErr error) {
	d.r.teardownOnce.Do(func() {
		d.timeouts.clearAll()

		if d.pipeWriter != nil {
			d.pipeWriter.CloseWithError(io.ErrClosedPipe)
		}
		if d.resp != nil && d.resp.Body != nil {
			// Always closed, regardless of cause: leaving a socket open
			// on a successful settlement would leak a file descriptor,
			// which spec.md's source runtime does not have to worry
			// about but Go does.
			d.resp.Body.Close()
		}
		d.r.mu.Lock()
		cancelFunc := d.r.cancelFunc
		d.r.mu.Unlock()
		if cancelFunc != nil {
			cancelFunc()
		}

		cancelling := d.r.State() == StateCancelling
		switch {
		case causeErr == nil:
			d.r.settleTerminal(StateFulfilled)
		case cancelling:
			result = Result{Err: ErrHTTPRequestCancelled}
			d.r.settleTerminal(StateCancelled)
		default:
			result = Result{Err: mapTransportError(causeErr, d.r.cfg.origin)}
			d.r.settleTerminal(StateFailed)
		}

		if cancelling {
			d.r.mu.Lock()
			ch := d.r.cancelCh
			d.r.mu.Unlock()
			if ch != nil {
				ch <- true
			}
		}

		// The mandated "yield once" (spec.md §5) so external observers
		// see the terminal state before the result arrives.
		runtime.Gosched()
		d.r.resultCh <- result
		close(d.r.resultCh)
	})
}

func nonBlockingSend(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// statusMessage extracts the reason phrase from an *http.Response's
// "NNN Reason" Status field, falling back to the standard text for
// the status code if the transport didn't supply one.
func statusMessage(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if strings.HasPrefix(resp.Status, prefix) {
		return strings.TrimPrefix(resp.Status, prefix)
	}
	if resp.Status != "" {
		return resp.Status
	}
	return http.StatusText(resp.StatusCode)
}
