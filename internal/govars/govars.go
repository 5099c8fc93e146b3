// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package govars provides a mechanism to configure developer-only
// tuning knobs via the HTTPCLIENTGODEBUG environment variable.
//
// The value of HTTPCLIENTGODEBUG is a comma-separated list of
// key=value pairs. For example:
//
//	HTTPCLIENTGODEBUG=trace=1,chunksize=4096
//
// Recognized keys: "trace" (cmd/httpreq logs at debug level when set)
// and "chunksize" (overrides httpclient's request/response streaming
// chunk size, in bytes; httpclient.driver reads this directly, not
// just the CLI).
package govars

import (
	"fmt"
	"os"
	"strings"
)

const envKey = "HTTPCLIENTGODEBUG"

var params map[string]string

func init() {
	var err error
	params, err = parse(os.Getenv(envKey))
	if err != nil {
		panic(err)
	}
}

// Value returns the value of the named tuning knob, or "" if unset.
func Value(key string) string {
	return params[key]
}

func parse(envValue string) (map[string]string, error) {
	if envValue == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for part := range strings.SplitSeq(envValue, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%s: invalid format: %q", envKey, part)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
