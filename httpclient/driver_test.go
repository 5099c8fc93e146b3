// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpclient

import "testing"

func TestResolveChunkSize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"Unset", "", defaultChunkSize},
		{"Valid", "4096", 4096},
		{"Zero", "0", defaultChunkSize},
		{"Negative", "-1", defaultChunkSize},
		{"NotANumber", "bogus", defaultChunkSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveChunkSize(tt.raw); got != tt.want {
				t.Errorf("resolveChunkSize(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
