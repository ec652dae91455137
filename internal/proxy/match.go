// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package proxy

import "bytes"

// Find returns the smallest index at which needle occurs as a contiguous
// subsequence of haystack, and false if it does not occur at all. Matching
// is byte-exact and never spans beyond the bounds of haystack: callers are
// responsible for not calling Find across separate read chunks, since a
// pattern split between two chunks is never detected.
func Find(haystack, needle []byte) (int, bool) {
	if len(needle) == 0 {
		return 0, false
	}
	idx := bytes.Index(haystack, needle)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}
