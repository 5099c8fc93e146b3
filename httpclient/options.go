// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import (
	"net/url"
	"time"
)

// Recognized methods (spec.md §4.6; the method set includes HEAD per
// the Open Question this specification fixes).
var recognizedMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
	"HEAD":   true,
}

// Recognized text encodings (spec.md §3/§4.6).
var recognizedEncodings = map[string]bool{
	"utf8": true, "utf-8": true,
	"utf16le": true, "utf-16le": true,
	"ucs2": true, "ucs-2": true,
	"latin1": true, "ascii": true,
	"base64": true, "base64url": true, "hex": true,
}

const (
	// DefaultTimeout is the default timeout used by both the
	// request-phase and response-phase timers (spec.md §4.6).
	DefaultTimeout = 60 * time.Second
	// DefaultBodyEncoding is the default text encoding for Text bodies.
	DefaultBodyEncoding = "utf8"
)

// Options configures a Request. All fields are optional; see the
// Default* constants above and the per-field doc comments for what an
// absent value resolves to.
type Options struct {
	// Method is one of GET, POST, PUT, DELETE, PATCH, HEAD. Defaults to GET.
	Method string

	// Headers is the set of request headers, sent in the given order
	// (spec.md §3's "preserved for reproducibility" requirement — a Go
	// map's iteration order is randomized per run, so a slice is the
	// only shape that can actually satisfy it). Header name matching is
	// case-insensitive.
	Headers []Header

	// Timeout bounds both the request-phase and response-phase timers.
	// Defaults to DefaultTimeout. Must be >= 1ms.
	Timeout time.Duration

	// Body is the request payload, or nil for no body. See NewBytesBody,
	// NewTextBody, NewJSONBody.
	Body Body

	// AutoJSONResponseParse enables JSON auto-decoding of the response
	// body when Content-Type negotiates to application/json with a
	// recognized charset (spec.md §4.5). Defaults to true; set a
	// pointer so "unset" is distinguishable from "false".
	AutoJSONResponseParse *bool
}

// Header is one request header in the order-preserving list Options.Headers
// carries. A repeated Name overwrites the earlier Value but keeps the
// earlier position, matching orderedHeaders.set's semantics.
type Header struct {
	Name  string
	Value string
}

// requestConfig is the immutable, validated configuration produced by
// New. Nothing downstream of New mutates it.
type requestConfig struct {
	url         *url.URL
	method      string
	headers     *orderedHeaders
	timeout     time.Duration
	body        Body
	autoJSON    bool
	origin      string
}

// buildConfig validates rawURL and opts, producing an immutable
// requestConfig or the first validation error encountered, per
// spec.md §7's closed list of validation kinds.
func buildConfig(rawURL string, opts *Options) (*requestConfig, error) {
	if opts == nil {
		opts = &Options{}
	}

	if rawURL == "" {
		return nil, ErrURLStringInvalid
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrURLStringInvalid
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrURLProtocolInvalid
	}

	method := opts.Method
	if method == "" {
		method = "GET"
	}
	if !recognizedMethods[method] {
		return nil, ErrMethodInvalid
	}

	headers := newOrderedHeaders()
	for _, h := range opts.Headers {
		if h.Name == "" {
			return nil, ErrHeadersTypeInvalid
		}
		headers.set(h.Name, h.Value)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout < time.Millisecond {
		return nil, ErrTimeoutOutOfBounds
	}

	if opts.Body != nil {
		if tb, ok := opts.Body.(*textBody); ok {
			enc := tb.encoding
			if enc == "" {
				enc = DefaultBodyEncoding
			}
			if !recognizedEncodings[enc] {
				return nil, ErrBodyEncodingInvalid
			}
			tb.encoding = enc
		}
	}

	autoJSON := true
	if opts.AutoJSONResponseParse != nil {
		autoJSON = *opts.AutoJSONResponseParse
	}

	port := parsed.Port()
	origin := parsed.Scheme + "://" + parsed.Hostname()
	if port != "" {
		origin += ":" + port
	}

	return &requestConfig{
		url:      parsed,
		method:   method,
		headers:  headers,
		timeout:  timeout,
		body:     opts.Body,
		autoJSON: autoJSON,
		origin:   origin,
	}, nil
}

// orderedHeaders preserves insertion order for reproducibility while
// matching header names case-insensitively, per spec.md §3.
type orderedHeaders struct {
	order []string          // canonical insertion-order keys (original case)
	index map[string]string // lower(key) -> original-case key
	value map[string]string // lower(key) -> value
}

func newOrderedHeaders() *orderedHeaders {
	return &orderedHeaders{
		index: make(map[string]string),
		value: make(map[string]string),
	}
}

func (h *orderedHeaders) set(key, val string) {
	lower := lowerASCII(key)
	if _, exists := h.index[lower]; !exists {
		h.order = append(h.order, key)
		h.index[lower] = key
	}
	h.value[lower] = val
}

// each calls fn once per header in insertion order.
func (h *orderedHeaders) each(fn func(key, val string)) {
	for _, key := range h.order {
		fn(key, h.value[lowerASCII(key)])
	}
}

func (h *orderedHeaders) get(key string) (string, bool) {
	v, ok := h.value[lowerASCII(key)]
	return v, ok
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
