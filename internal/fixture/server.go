// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fixture implements the loopback scenario server spec.md §8
// names S1-S7 against: a handful of endpoints that simulate silent
// rejections, silent timeouts, and an echoing endpoint used to verify
// round-tripping and backpressure. It is an external test collaborator
// (spec.md §1 names a "test fixture server" out of scope for the
// client itself), not part of the public httpclient API.
package fixture

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/jfabello/httpclientgo/internal/util"
)

// Pattern is the literal byte sequence spec.md §8's S2/S4 scenarios
// repeat to fill a large request body.
const Pattern = "This is a pattern!"

// Server is a loopback-only HTTP fixture server exposing the scenario
// endpoints. It must be started with Start and stopped with Stop; it
// refuses to listen on anything but a loopback address.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	addr       string

	mu      sync.Mutex
	hijacked []net.Conn

	// echoLimiter paces the /checkpattern echo write-back so a large
	// body is actually streamed in multiple chunks over loopback,
	// grounded on golang.org/x/time/rate the same way
	// pitabwire-frame/ratelimiter/limiter.go uses rate.NewLimiter for
	// per-key pacing.
	echoLimiter *rate.Limiter
}

// New binds a Server to an ephemeral loopback port without starting it.
func New() (*Server, error) {
	ln, err := net.Listen("tcp", util.LoopbackListenAddr)
	if err != nil {
		return nil, err
	}
	if !util.IsLoopback(ln.Addr().String()) {
		ln.Close()
		panic("fixture: refusing to serve on a non-loopback address")
	}

	s := &Server{
		listener:    ln,
		addr:        ln.Addr().String(),
		echoLimiter: rate.NewLimiter(rate.Limit(4*1024*1024), 256*1024),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/silentrejection", s.handleSilentRejection)
	mux.HandleFunc("/silenttimeout", s.handleSilentTimeout)
	mux.HandleFunc("/checkpattern", s.handleCheckPattern)
	mux.HandleFunc("/silentresponse", s.handleSilentResponse)
	s.httpServer = &http.Server{Handler: mux}
	return s, nil
}

// Start serves requests until Stop is called. It does not block.
func (s *Server) Start() {
	go s.httpServer.Serve(s.listener)
}

// Stop closes the listener, any hijacked connections left hanging by
// /silenttimeout, and shuts the server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	for _, c := range s.hijacked {
		c.Close()
	}
	s.hijacked = nil
	s.mu.Unlock()
	return s.httpServer.Close()
}

// URL returns the absolute URL of path against this server.
func (s *Server) URL(path string) string {
	return "http://" + s.addr + path
}

// handleSilentRejection hijacks the connection and closes it with
// SO_LINGER set to zero, which makes the kernel emit an RST instead of
// a graceful FIN — simulating a peer that resets the connection rather
// than responding (S1/S2).
func (s *Server) handleSilentRejection(w http.ResponseWriter, r *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetLinger(0)
	}
	conn.Close()
}

// handleSilentTimeout hijacks the connection and never writes
// anything back, simulating a peer that accepted the request but
// never responds (S3/S5). The connection is tracked so Stop() can
// reclaim it.
func (s *Server) handleSilentTimeout(w http.ResponseWriter, r *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}
	s.mu.Lock()
	s.hijacked = append(s.hijacked, conn)
	s.mu.Unlock()
	// Block until the server is stopped or the client gives up and
	// closes its side; either way this goroutine exits without ever
	// writing a response.
	buf := make([]byte, 1)
	conn.Read(buf) //nolint:errcheck // blocks until the peer closes or Stop() closes conn
}

// handleCheckPattern echoes the request body back verbatim, pacing the
// write-back through echoLimiter so a multi-megabyte body is streamed
// in multiple chunks rather than completing in one syscall (S4).
func (s *Server) handleCheckPattern(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	// Declaring Content-Length up front keeps this a fixed-length
	// response even though the body is written in paced chunks below;
	// without it net/http would fall back to chunked transfer-encoding
	// on the first Flush, and S4 requires a literal Content-Length.
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	const chunkSize = 64 * 1024
	ctx := context.Background()
	for offset := 0; offset < len(body); {
		end := offset + chunkSize
		if end > len(body) {
			end = len(body)
		}
		chunk := body[offset:end]
		if err := s.echoLimiter.WaitN(ctx, len(chunk)); err != nil {
			return
		}
		if _, err := w.Write(chunk); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		offset = end
	}
}

// handleSilentResponse always answers 204 No Content with no body (S6).
func (s *Server) handleSilentResponse(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
