// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package proxy

import "github.com/relaygate/relaygate/internal/rules"

// Snapshot is a worker-local mapping of active rule ids to patterns. It is
// owned exclusively by the worker that maintains it: Apply is only ever
// called from the worker's own goroutine between accepts, and the copies
// handed to in-flight connections (via Clone) are never mutated after
// handoff.
type Snapshot struct {
	patterns map[int64][]byte
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{patterns: make(map[int64][]byte)}
}

// Apply mutates the snapshot in place according to msg's kind.
func (s *Snapshot) Apply(msg rules.UpdateMessage) {
	switch msg.Kind {
	case rules.KindAdd:
		s.patterns[msg.ID] = msg.Pattern
	case rules.KindRemove:
		delete(s.patterns, msg.ID)
	}
}

// Clone returns an independent copy of the snapshot's current contents,
// safe to hand to a connection task that outlives the next Apply call.
func (s *Snapshot) Clone() *Snapshot {
	clone := make(map[int64][]byte, len(s.patterns))
	for id, pattern := range s.patterns {
		clone[id] = pattern
	}
	return &Snapshot{patterns: clone}
}

// Len returns the number of active rules in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.patterns)
}

// Match reports whether chunk contains any of the snapshot's patterns,
// returning the matching rule's id. Iteration order over rules is
// unspecified; when multiple patterns match the same chunk, any one of
// them may be reported.
func (s *Snapshot) Match(chunk []byte) (id int64, ok bool) {
	for ruleID, pattern := range s.patterns {
		if _, found := Find(chunk, pattern); found {
			return ruleID, true
		}
	}
	return 0, false
}
