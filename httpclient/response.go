// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import (
	"net/http"

	"github.com/jfabello/httpclientgo/internal/codec"
)

// Response is the finished artifact of a successful request (spec.md
// §3). Body is nil when the response carried no bytes, a []byte when
// delivered raw, or the JSON-decoded value when auto-parse applied.
type Response struct {
	StatusCode    int
	StatusMessage string
	Header        http.Header
	Body          any
}

// newResponse validates and builds a Response, enforcing the sibling
// error taxonomy from spec.md §7. StatusCode/StatusMessage/Header are
// plain Go types enforced at compile time, so only the bounds check
// below and the Body shape check (body is `any`, the one field this
// taxonomy's *TypeInvalid siblings can actually catch at runtime) are
// reachable; see DESIGN.md's httpclient/response.go entry for the rest.
func newResponse(statusCode int, statusMessage string, header http.Header, body any) (*Response, error) {
	if statusCode < 100 || statusCode > 599 {
		return nil, ErrRespStatusCodeOutOfBounds
	}
	if !isValidResponseBody(body) {
		return nil, ErrRespBodyTypeInvalid
	}
	if header == nil {
		header = http.Header{}
	}
	return &Response{
		StatusCode:    statusCode,
		StatusMessage: statusMessage,
		Header:        header,
		Body:          body,
	}, nil
}

// isValidResponseBody reports whether body is one of the shapes this
// package ever assembles: absent, raw bytes, or a value
// internal/codec.UnmarshalJSON can produce (object, array, string,
// float64, bool, or null-as-nil, including nested combinations of
// those).
func isValidResponseBody(body any) bool {
	switch v := body.(type) {
	case nil, []byte, string, float64, bool:
		return true
	case map[string]any:
		for _, elem := range v {
			if !isValidResponseBody(elem) {
				return false
			}
		}
		return true
	case []any:
		for _, elem := range v {
			if !isValidResponseBody(elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// assembleResponse implements the Response Assembler (spec.md §4.5):
// given accumulated raw bytes and the response headers, it decides
// whether to auto-decode JSON and builds the final Response.
func assembleResponse(statusCode int, statusMessage string, header http.Header, raw []byte, autoJSON bool) (*Response, error) {
	if len(raw) == 0 {
		return newResponse(statusCode, statusMessage, header, nil)
	}

	if autoJSON {
		pmt := parseMediaType(header.Get("Content-Type"))
		if charset, ok := pmt.isJSON(); ok {
			text, err := codec.DecodeText(raw, charset)
			if err != nil {
				return nil, ErrHTTPResponseBodyNotParseableAsJSON
			}
			value, err := codec.UnmarshalJSON([]byte(text))
			if err != nil {
				return nil, ErrHTTPResponseBodyNotParseableAsJSON
			}
			return newResponse(statusCode, statusMessage, header, value)
		}
	}

	return newResponse(statusCode, statusMessage, header, raw)
}
