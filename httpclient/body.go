// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import (
	"fmt"

	"github.com/jfabello/httpclientgo/internal/codec"
)

// Body is the tagged variant spec.md §9 calls for in place of dynamic
// typing: a byte buffer, text under a named encoding, or an arbitrary
// structured value serialized as JSON. The interface is unexported in
// spirit (only this package's three implementations satisfy it in a
// way encodeBody understands); callers build one with the New*Body
// constructors below.
type Body interface {
	isBody()
}

type bytesBody struct{ data []byte }

func (*bytesBody) isBody() {}

// NewBytesBody wraps a raw byte buffer to be sent as-is.
func NewBytesBody(data []byte) Body { return &bytesBody{data: data} }

type textBody struct {
	text     string
	encoding string // resolved to a recognized name by buildConfig
}

func (*textBody) isBody() {}

// NewTextBody wraps text to be encoded under the named encoding (one
// of spec.md §3's closed set) when the request is sent. An empty
// encoding resolves to DefaultBodyEncoding.
func NewTextBody(text, encoding string) Body {
	return &textBody{text: text, encoding: encoding}
}

type jsonBody struct{ value any }

func (*jsonBody) isBody() {}

// NewJSONBody wraps an arbitrary structured value to be serialized as
// JSON (UTF-8) when the request is sent.
func NewJSONBody(value any) Body { return &jsonBody{value: value} }

// encodeBody converts the configured body into bytes plus its exact byte
// count, per spec.md §4.3. No body yields (nil, 0, no write).
func encodeBody(b Body) (data []byte, contentLength int, err error) {
	if b == nil {
		return nil, 0, nil
	}
	switch v := b.(type) {
	case *bytesBody:
		return v.data, len(v.data), nil
	case *textBody:
		encoded, err := codec.EncodeText(v.text, v.encoding)
		if err != nil {
			// Validation already rejected unrecognized encodings at
			// construction; a failure here means the encoder itself
			// could not represent the text (e.g. non-ASCII under the
			// ascii encoding).
			return nil, 0, fmt.Errorf("%w: %v", ErrBodyEncodingInvalid, err)
		}
		return encoded, len(encoded), nil
	case *jsonBody:
		encoded, err := codec.MarshalJSON(v.value)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrHTTPRequestBodyObjectNotSerializable, err)
		}
		return encoded, len(encoded), nil
	default:
		return nil, 0, ErrBodyTypeInvalid
	}
}
