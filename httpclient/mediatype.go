// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import "strings"

// parsedMediaType is the result of parsing a Content-Type header with
// the small grammar spec.md §9 calls for: "type/subtype; charset=token".
// No other parameters are recognized or needed by this package.
type parsedMediaType struct {
	typeSubtype string // lowercased "type/subtype"
	charset     string // lowercased charset value, "" if absent
}

// parseMediaType implements just enough of RFC 2045/7231 §3.1.1.1 for
// spec.md §4.5's auto-JSON decision: split on the first ';', lowercase
// and trim the type/subtype, then scan remaining ';'-separated
// parameters for "charset=...", stripping optional quotes.
func parseMediaType(contentType string) parsedMediaType {
	parts := strings.Split(contentType, ";")
	pmt := parsedMediaType{
		typeSubtype: strings.ToLower(strings.TrimSpace(parts[0])),
	}
	for _, param := range parts[1:] {
		name, value, ok := strings.Cut(param, "=")
		if !ok {
			continue
		}
		if strings.ToLower(strings.TrimSpace(name)) != "charset" {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"`)
		pmt.charset = strings.ToLower(value)
	}
	return pmt
}

// isJSON reports whether this media type should trigger spec.md
// §4.5's auto-decode path: type+subtype exactly "application/json"
// and a charset (default "utf8") drawn from the recognized encoding
// set. encoding is the resolved charset to decode under.
func (pmt parsedMediaType) isJSON() (encoding string, ok bool) {
	if pmt.typeSubtype != "application/json" {
		return "", false
	}
	charset := pmt.charset
	if charset == "" {
		charset = "utf8"
	}
	if !recognizedEncodings[charset] {
		return "", false
	}
	return charset, true
}
