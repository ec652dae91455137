// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package proxy

import (
	"testing"

	"github.com/relaygate/relaygate/internal/rules"
)

func TestSnapshot_ApplyAddAndRemove(t *testing.T) {
	s := NewSnapshot()
	s.Apply(rules.NewAdd(1, []byte("abc")))
	s.Apply(rules.NewAdd(2, []byte("xyz")))

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	s.Apply(rules.NewRemove(1))
	if s.Len() != 1 {
		t.Fatalf("Len() after remove = %d, want 1", s.Len())
	}

	// Removing an id twice is a no-op.
	s.Apply(rules.NewRemove(1))
	if s.Len() != 1 {
		t.Fatalf("Len() after double remove = %d, want 1", s.Len())
	}
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	s := NewSnapshot()
	s.Apply(rules.NewAdd(1, []byte("abc")))

	clone := s.Clone()
	s.Apply(rules.NewAdd(2, []byte("def")))

	if clone.Len() != 1 {
		t.Errorf("clone.Len() = %d, want 1 (mutation after Clone leaked in)", clone.Len())
	}
}

func TestSnapshot_Match(t *testing.T) {
	s := NewSnapshot()
	s.Apply(rules.NewAdd(1, []byte(".git")))

	id, ok := s.Match([]byte("GET /.git/config HTTP/1.0\r\n\r\n"))
	if !ok || id != 1 {
		t.Errorf("Match() = (%d, %v), want (1, true)", id, ok)
	}

	if _, ok := s.Match([]byte("GET / HTTP/1.0\r\n\r\n")); ok {
		t.Error("Match() unexpectedly found a pattern")
	}
}
