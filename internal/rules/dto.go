// Relaygate - multi-tenant TCP reverse proxy with live content filtering
// Copyright 2026 Relaygate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/relaygate/relaygate

package rules

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// RuleType names the encoding rule_text is submitted in.
type RuleType string

const (
	Ascii  RuleType = "Ascii"
	Hex    RuleType = "Hex"
	Base64 RuleType = "Base64"
)

// MaxPatternLen bounds a decoded pattern to the relay's chunk size: a
// pattern longer than one read chunk could never match, since screening
// never spans chunk boundaries.
const MaxPatternLen = 1024

// RuleDTO is the ingress shape for POST /rules.
type RuleDTO struct {
	ServiceName string   `json:"service_name"`
	RuleText    string   `json:"rule_text"`
	RuleType    RuleType `json:"rule_type"`
}

// Decode turns RuleText into raw pattern bytes according to RuleType.
// It rejects unknown types, decode failures, empty patterns, and patterns
// that exceed MaxPatternLen.
func (d RuleDTO) Decode() ([]byte, error) {
	var pattern []byte
	switch d.RuleType {
	case Ascii:
		pattern = []byte(d.RuleText)
	case Hex:
		decoded, err := hex.DecodeString(d.RuleText)
		if err != nil {
			return nil, fmt.Errorf("decode hex rule_text: %w", err)
		}
		pattern = decoded
	case Base64:
		decoded, err := base64.StdEncoding.DecodeString(d.RuleText)
		if err != nil {
			return nil, fmt.Errorf("decode base64 rule_text: %w", err)
		}
		pattern = decoded
	default:
		return nil, fmt.Errorf("unknown rule_type %q", d.RuleType)
	}

	if len(pattern) == 0 {
		return nil, fmt.Errorf("decoded pattern is empty")
	}
	if len(pattern) > MaxPatternLen {
		return nil, fmt.Errorf("decoded pattern exceeds %d bytes", MaxPatternLen)
	}
	return pattern, nil
}

// Rule is the egress shape returned by every rule-bearing endpoint: the
// canonical transport form of a stored rule regardless of the encoding it
// was submitted in.
type Rule struct {
	ID          int64  `json:"id"`
	B64Rule     string `json:"b64_rule"`
	ServiceName string `json:"service_name"`
}
