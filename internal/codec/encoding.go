// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package codec implements the text-encoding and JSON conversions the
// body encoder and response assembler need, grounded on
// golang.org/x/text for the encodings the standard library does not
// cover and github.com/segmentio/encoding/json for JSON.
package codec

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"encoding/base64"
	"encoding/hex"

	segjson "github.com/segmentio/encoding/json"
)

// utf16LE is shared by the utf16le and ucs2 names: UCS-2 is UTF-16
// restricted to the Basic Multilingual Plane, and this transformer
// does not distinguish the two, matching the ucs2 row of the encoding
// table in SPEC_FULL.md §4.3.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeText converts s to bytes under the named encoding. name must
// already be one of the recognized closed-set values (validated at
// Request construction); this function still returns an error for
// codec-level failures, such as non-ASCII text under the ascii
// encoding.
func EncodeText(s, name string) ([]byte, error) {
	switch name {
	case "utf8", "utf-8", "":
		return []byte(s), nil
	case "utf16le", "utf-16le", "ucs2", "ucs-2":
		return encodeWith(utf16LE.NewEncoder(), s)
	case "latin1":
		return encodeWith(charmap.ISO8859_1.NewEncoder(), s)
	case "ascii":
		return encodeASCII(s)
	case "base64":
		return decodeBase64(base64.StdEncoding, s)
	case "base64url":
		return decodeBase64(base64.URLEncoding, s)
	case "hex":
		return hex.DecodeString(s)
	default:
		return nil, fmt.Errorf("codec: unrecognized encoding %q", name)
	}
}

// DecodeText is the inverse of EncodeText, used by the response
// assembler to turn accumulated bytes back into text before JSON
// parsing under a declared charset.
func DecodeText(data []byte, name string) (string, error) {
	switch name {
	case "utf8", "utf-8", "":
		return string(data), nil
	case "utf16le", "utf-16le", "ucs2", "ucs-2":
		return decodeWith(utf16LE.NewDecoder(), data)
	case "latin1":
		return decodeWith(charmap.ISO8859_1.NewDecoder(), data)
	case "ascii":
		for _, b := range data {
			if b >= 0x80 {
				return "", fmt.Errorf("codec: byte 0x%02x is not valid ascii", b)
			}
		}
		return string(data), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "base64url":
		return base64.URLEncoding.EncodeToString(data), nil
	case "hex":
		return hex.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("codec: unrecognized encoding %q", name)
	}
}

func encodeWith(enc *encoding.Encoder, s string) ([]byte, error) {
	return enc.Bytes([]byte(s))
}

func decodeWith(dec *encoding.Decoder, data []byte) (string, error) {
	out, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func encodeASCII(s string) ([]byte, error) {
	b := []byte(s)
	for _, c := range b {
		if c >= 0x80 {
			return nil, fmt.Errorf("codec: byte 0x%02x is not valid ascii", c)
		}
	}
	return b, nil
}

func decodeBase64(enc *base64.Encoding, s string) ([]byte, error) {
	return enc.DecodeString(s)
}

// MarshalJSON serializes v as JSON via segmentio/encoding/json, the
// faster drop-in encoding/json replacement this module's teacher
// depends on directly.
func MarshalJSON(v any) ([]byte, error) {
	return segjson.Marshal(v)
}

// UnmarshalJSON decodes data into a generic value (map[string]any,
// []any, or a scalar), for the response assembler's auto-decode path.
func UnmarshalJSON(data []byte) (any, error) {
	var v any
	if err := segjson.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
